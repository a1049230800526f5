package wheel

import (
	"errors"
	dto "fortune_wheel/internal/api/dto/wheel"
	"fortune_wheel/internal/converter"
	"fortune_wheel/internal/service"
	"fortune_wheel/pkg/resp"
	"net/http"

	"go.uber.org/zap"
)

type HandlerDeps struct {
	Serv service.WheelService
	Log  *zap.Logger
}

type Handler struct {
	serv service.WheelService
	log  *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{serv: deps.Serv, log: log}
}

// Spin запускает колесо. Приз известен сразу, клиент только проигрывает анимацию
func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	result, err := h.serv.Spin(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSpinResponse(*result))
}

// State - текущее состояние колеса игрока
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	state, err := h.serv.State(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStateResponse(*state))
}

// Status - можно ли крутить сейчас (кулдаун на бэкенде)
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.serv.Status(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatusResponse(*status))
}

func (h *Handler) Sectors(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSectorsResponse(h.serv.Sectors()))
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var cooldown *service.CooldownError
	switch {
	case errors.As(err, &cooldown):
		resp.WriteJSONResponse(w, http.StatusForbidden, dto.ErrorResponse{
			Error:        "already spun recently",
			NextSpinTime: cooldown.NextSpinTime,
		})
	case errors.Is(err, service.ErrSpinInProgress):
		resp.WriteJSONResponse(w, http.StatusConflict, dto.ErrorResponse{Error: "spin already in progress"})
	case errors.Is(err, service.ErrNoUser):
		resp.WriteJSONResponse(w, http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	case errors.Is(err, service.ErrStatusUnavailable), errors.Is(err, service.ErrClosed):
		resp.WriteJSONResponse(w, http.StatusServiceUnavailable, dto.ErrorResponse{Error: "wheel is temporarily unavailable"})
	default:
		h.log.Error("wheel request failed", zap.Error(err))
		resp.WriteJSONResponse(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
	}
}
