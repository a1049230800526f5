package stars

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
)

const (
	spinResultPath  = "/api/spin-wheel/"
	wheelStatusPath = "/api/check-wheel-status/"
)

var (
	// ErrInvalidResponse - ответ бэкенда не разобрался или пришел не 200
	ErrInvalidResponse = errors.New("invalid stars backend response")

	json           = jsoniter.ConfigCompatibleWithStandardLibrary
	jsonBufferPool = sync.Pool{
		New: func() any {
			return &bytes.Buffer{}
		},
	}
)

// APIError - бэкенд ответил success=false
type APIError struct {
	Op  string
	Msg string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s error: %s", e.Op, e.Msg)
}

// NewHTTPClient - http клиент с таймаутами для запросов к бэкенду звезд
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 5 * time.Second,
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			ResponseHeaderTimeout: timeout,
		},
	}
}

// Client - клиент внешнего бэкенда звезд
type Client struct {
	http    *http.Client
	baseURL string
	now     func() time.Time
}

func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(10 * time.Second)
	}
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// SubmitRequest - тело POST /api/spin-wheel/
type SubmitRequest struct {
	Prize     string `json:"prize"`
	Timestamp int64  `json:"timestamp"`
}

// SubmitResponse - ответ на запись результата спина
type SubmitResponse struct {
	Success    bool   `json:"success"`
	TotalStars int    `json:"total_stars"`
	Error      string `json:"error,omitempty"`
}

// Status - ответ GET /api/check-wheel-status/
type Status struct {
	Success bool `json:"success"`
	CanSpin bool `json:"can_spin"`
	// RawNextSpinTime - время как прислал бэкенд, NextSpinTime - разобранное
	RawNextSpinTime string     `json:"next_spin_time"`
	NextSpinTime    *time.Time `json:"-"`
	Error           string     `json:"error,omitempty"`
}

// Форматы next_spin_time. Время без зоны считается UTC.
var spinTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// ParseSpinTime разбирает next_spin_time. Пустая или неразборчивая строка дает nil.
func ParseSpinTime(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range spinTimeLayouts {
		t, err := time.ParseInLocation(layout, raw, time.UTC)
		if err == nil {
			return &t
		}
	}
	return nil
}

// SubmitResult отправляет выпавший приз на бэкенд. prize - метка вида "4⭐"
func (c *Client) SubmitResult(ctx context.Context, token, prize string, at time.Time) (*SubmitResponse, error) {
	if at.IsZero() {
		at = c.now()
	}
	body := SubmitRequest{
		Prize:     prize,
		Timestamp: at.UnixMilli(),
	}

	var res SubmitResponse
	if err := c.do(ctx, http.MethodPost, spinResultPath, token, body, &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return &res, &APIError{Op: "submit result", Msg: errorMessage(res.Error)}
	}
	return &res, nil
}

// CheckStatus спрашивает у бэкенда, доступен ли спин (кулдаун)
func (c *Client) CheckStatus(ctx context.Context, token string) (*Status, error) {
	var res Status
	if err := c.do(ctx, http.MethodGet, wheelStatusPath, token, nil, &res); err != nil {
		return nil, err
	}
	// Кривое время не ломает статус: игрок все равно получит отказ по кулдауну
	res.NextSpinTime = ParseSpinTime(res.RawNextSpinTime)
	if !res.Success {
		return &res, &APIError{Op: "check status", Msg: errorMessage(res.Error)}
	}
	return &res, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		buf := jsonBufferPool.Get().(*bytes.Buffer)
		defer func() {
			buf.Reset()
			jsonBufferPool.Put(buf)
		}()

		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return err
		}
		bodyReader = bytes.NewReader(buf.Bytes())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.CopyN(io.Discard, resp.Body, 1024)
		return fmt.Errorf("%w: http status %d", ErrInvalidResponse, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

func errorMessage(msg string) string {
	if msg == "" {
		return "unknown error"
	}
	return msg
}
