package converter

import (
	dto "fortune_wheel/internal/api/dto/wheel"
	"fortune_wheel/internal/model"
	"fortune_wheel/internal/wheel"
)

func ToSpinResponse(res model.SpinResult) dto.SpinResponse {
	return dto.SpinResponse{
		SpinID:        res.ID,
		FinalRotation: res.Rotation,
		Angle:         res.Angle,
		Sector:        res.Sector,
		Prize:         res.Prize,
		PrizeLabel:    wheel.Prize(res.Prize).String(),
		DurationMs:    res.Duration.Milliseconds(),
		StartedAt:     res.StartedAt,
	}
}

func ToStateResponse(state model.WheelState) dto.StateResponse {
	out := dto.StateResponse{
		State:      state.State,
		Rotation:   state.Rotation,
		TotalStars: state.TotalStars,
	}
	if state.Current != nil {
		cur := ToSpinResponse(*state.Current)
		out.Current = &cur
	}
	if state.Last != nil {
		prize := state.Last.Prize
		out.LastPrize = &prize
	}
	return out
}

func ToStatusResponse(status model.SpinStatus) dto.StatusResponse {
	return dto.StatusResponse{
		CanSpin:      status.CanSpin,
		NextSpinTime: status.NextSpinTime,
	}
}

func ToSectorsResponse(sectors []model.Sector) []dto.SectorResponse {
	result := make([]dto.SectorResponse, len(sectors))
	for i, s := range sectors {
		result[i] = dto.SectorResponse{
			Center: s.Center,
			Range:  [2]float64{s.Start, s.End},
			Prize:  s.Prize,
		}
	}
	return result
}
