package stars

import (
	"context"
	stdjson "encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSubmitResult(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != spinResultPath {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("authorization %q", got)
		}
		var req SubmitRequest
		if err := stdjson.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode body: %v", err)
			return
		}
		if req.Prize != "4⭐" || req.Timestamp != at.UnixMilli() {
			t.Errorf("unexpected body %+v", req)
		}
		_, _ = w.Write([]byte(`{"success":true,"total_stars":17}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL+"/")
	res, err := c.SubmitResult(context.Background(), "tok", "4⭐", at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TotalStars != 17 {
		t.Errorf("total stars %d, want 17", res.TotalStars)
	}
}

func TestSubmitResultRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"already spun recently"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	_, err := c.SubmitResult(context.Background(), "", "1⭐", time.Time{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %v, want *APIError", err)
	}
	if apiErr.Msg != "already spun recently" {
		t.Errorf("message %q", apiErr.Msg)
	}
}

func TestCheckStatus(t *testing.T) {
	next := time.Date(2026, 10, 20, 9, 30, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != wheelStatusPath {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success":true,"can_spin":false,"next_spin_time":"2026-10-20T09:30:00Z"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	st, err := c.CheckStatus(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.CanSpin {
		t.Error("can_spin should be false")
	}
	if st.NextSpinTime == nil || !st.NextSpinTime.Equal(next) {
		t.Errorf("next spin time %v, want %v", st.NextSpinTime, next)
	}
}

func TestCheckStatusSpinTimeFormats(t *testing.T) {
	want := time.Date(2026, 10, 20, 9, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		raw  string
		want *time.Time
	}{
		{name: "rfc3339", raw: "2026-10-20T09:30:00Z", want: &want},
		{name: "offset", raw: "2026-10-20T12:30:00+03:00", want: &want},
		{name: "no zone", raw: "2026-10-20T09:30:00", want: &want},
		{name: "no zone with micros", raw: "2026-10-20T09:30:00.000000", want: &want},
		{name: "space separated", raw: "2026-10-20 09:30:00", want: &want},
		{name: "empty", raw: "", want: nil},
		{name: "garbage", raw: "tomorrow", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"success":true,"can_spin":false,"next_spin_time":"` + tt.raw + `"}`))
			}))
			defer srv.Close()

			st, err := NewClient(srv.Client(), srv.URL).CheckStatus(context.Background(), "tok")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if st.CanSpin {
				t.Error("can_spin should be false")
			}
			switch {
			case tt.want == nil && st.NextSpinTime != nil:
				t.Errorf("next spin time %v, want nil", st.NextSpinTime)
			case tt.want != nil && (st.NextSpinTime == nil || !st.NextSpinTime.Equal(*tt.want)):
				t.Errorf("next spin time %v, want %v", st.NextSpinTime, tt.want)
			}
		})
	}
}

func TestCheckStatusNullSpinTime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"can_spin":true,"next_spin_time":null}`))
	}))
	defer srv.Close()

	st, err := NewClient(srv.Client(), srv.URL).CheckStatus(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !st.CanSpin || st.NextSpinTime != nil {
		t.Errorf("unexpected status %+v", st)
	}
}

func TestInvalidResponses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom"},
		{name: "not json", status: http.StatusOK, body: "<html>login</html>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.Client(), srv.URL)
			if _, err := c.CheckStatus(context.Background(), ""); !errors.Is(err, ErrInvalidResponse) {
				t.Errorf("got %v, want ErrInvalidResponse", err)
			}
		})
	}
}
