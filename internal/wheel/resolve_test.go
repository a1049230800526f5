package wheel

import (
	"errors"
	"math"
	"testing"
)

func TestResolveSectorMidpoints(t *testing.T) {
	table := DefaultTable()
	for i, s := range table.Sectors() {
		mid := (s.Start + s.End) / 2
		if got := table.Resolve(mid); got != s.Prize {
			t.Errorf("sector %d midpoint %.2f: got %s, want %s", i, mid, got, s.Prize)
		}
	}
}

func TestResolveCoversCircle(t *testing.T) {
	table := DefaultTable()
	counts := make(map[Prize]int)
	for i := 0; i < 36000; i++ {
		angle := float64(i) / 100
		s, idx := table.Locate(angle)
		if idx < 0 {
			t.Fatalf("angle %.2f matched no sector", angle)
		}
		counts[s.Prize]++
	}
	// 0⭐ занимает три сектора, остальные призы по одному
	for _, p := range []Prize{OneStar, TwoStars, ThreeStars, FourStars} {
		if counts[p] < 5100 || counts[p] > 5200 {
			t.Errorf("prize %s covers %d samples, want about one seventh", p, counts[p])
		}
	}
	if counts[NoPrize] < 3*5100 || counts[NoPrize] > 3*5200 {
		t.Errorf("no prize covers %d samples, want about three sevenths", counts[NoPrize])
	}
}

func TestResolveNormalization(t *testing.T) {
	table := DefaultTable()
	want := table.Resolve(0)
	for _, a := range []float64{360, -360, 720, -720, 3600} {
		if got := table.Resolve(a); got != want {
			t.Errorf("Resolve(%v) = %s, want %s", a, got, want)
		}
	}
	if want != OneStar {
		t.Errorf("Resolve(0) = %s, want 1⭐", want)
	}
	if got := table.Resolve(-10); got != OneStar {
		t.Errorf("Resolve(-10) = %s, want 1⭐", got)
	}
	if got := table.Resolve(-50); got != TwoStars {
		t.Errorf("Resolve(-50) = %s, want 2⭐", got)
	}
}

func TestResolveBoundaries(t *testing.T) {
	table := DefaultTable()
	tests := []struct {
		angle float64
		want  Prize
	}{
		{25.7, OneStar},
		{25.71, FourStars},
		{77.1, FourStars},
		{77.11, NoPrize},
		{180.0, ThreeStars},
		{334.29, TwoStars},
		{334.31, OneStar},
		{359.99, OneStar},
	}
	for _, tt := range tests {
		if got := table.Resolve(tt.angle); got != tt.want {
			t.Errorf("Resolve(%v) = %s, want %s", tt.angle, got, tt.want)
		}
	}
}

func TestResolveFallback(t *testing.T) {
	table := DefaultTable()
	s, idx := table.Locate(math.NaN())
	if idx != -1 {
		t.Fatalf("NaN located at %d, want fallback", idx)
	}
	if s.Prize != OneStar {
		t.Errorf("fallback prize %s, want 1⭐", s.Prize)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{-360, 0},
		{1840, 40},
		{-90, 270},
		{359.5, 359.5},
	}
	for _, tt := range tests {
		got := Normalize(tt.in)
		if math.Abs(got-tt.want) > 1e-9 || math.Signbit(got) {
			t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewTableValidation(t *testing.T) {
	tests := []struct {
		name    string
		sectors []Sector
		wantErr error
	}{
		{
			name:    "empty",
			sectors: nil,
			wantErr: ErrEmptyTable,
		},
		{
			name: "gap",
			sectors: []Sector{
				{Start: 0, End: 180, Prize: OneStar},
				{Start: 190, End: 360, Prize: NoPrize},
			},
			wantErr: ErrNotContiguous,
		},
		{
			name: "short",
			sectors: []Sector{
				{Start: 0, End: 180, Prize: OneStar},
				{Start: 180, End: 350, Prize: NoPrize},
			},
			wantErr: ErrNotFullCircle,
		},
		{
			name: "wrap not first",
			sectors: []Sector{
				{Start: 10, End: 350, Prize: OneStar},
				{Start: -10, End: 10, Prize: NoPrize},
			},
			wantErr: ErrInvalidSector,
		},
		{
			name: "bad prize",
			sectors: []Sector{
				{Start: 0, End: 360, Prize: Prize(9)},
			},
			wantErr: ErrInvalidSector,
		},
		{
			name: "reversed",
			sectors: []Sector{
				{Start: 360, End: 0, Prize: OneStar},
			},
			wantErr: ErrInvalidSector,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.sectors)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewTableHalves(t *testing.T) {
	table, err := NewTable([]Sector{
		{Center: 90, Start: 0, End: 180, Prize: OneStar},
		{Center: 270, Start: 180, End: 360, Prize: NoPrize},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := table.Resolve(359); got != NoPrize {
		t.Errorf("Resolve(359) = %s, want 0⭐", got)
	}
	if got := table.Resolve(0); got != OneStar {
		t.Errorf("Resolve(0) = %s, want 1⭐", got)
	}
}

func TestParsePrize(t *testing.T) {
	for _, p := range []Prize{NoPrize, OneStar, TwoStars, ThreeStars, FourStars} {
		got, err := ParsePrize(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePrize(%q) = %v, %v", p.String(), got, err)
		}
	}
	if _, err := ParsePrize("7⭐"); err == nil {
		t.Error("expected error for 7⭐")
	}
	if got, err := ParsePrize("3"); err != nil || got != ThreeStars {
		t.Errorf("ParsePrize(\"3\") = %v, %v", got, err)
	}
}
