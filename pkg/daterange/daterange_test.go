package daterange

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestDayStart(t *testing.T) {
	got := DayStart(date(2024, time.June, 10, 14, 35))
	want := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DayStart = %v, want %v", got, want)
	}
}

func TestDayEnd(t *testing.T) {
	got := DayEnd(date(2024, time.June, 10, 0, 1))
	want := time.Date(2024, time.June, 10, 23, 59, 59, 999000000, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DayEnd = %v, want %v", got, want)
	}
}

func TestDays(t *testing.T) {
	tests := []struct {
		name   string
		pickup time.Time
		ret    time.Time
		want   int
	}{
		{
			name:   "same day counts as one day",
			pickup: date(2024, time.June, 10, 9, 0),
			ret:    date(2024, time.June, 10, 18, 0),
			want:   1,
		},
		{
			name:   "five day rental",
			pickup: date(2024, time.June, 16, 0, 0),
			ret:    date(2024, time.June, 20, 0, 0),
			want:   5,
		},
		{
			name:   "time of day is ignored",
			pickup: date(2024, time.June, 10, 23, 59),
			ret:    date(2024, time.June, 11, 0, 1),
			want:   2,
		},
		{
			name:   "inverted range floors at one",
			pickup: date(2024, time.June, 20, 0, 0),
			ret:    date(2024, time.June, 10, 0, 0),
			want:   1,
		},
		{
			name:   "month boundary",
			pickup: date(2024, time.June, 29, 12, 0),
			ret:    date(2024, time.July, 2, 12, 0),
			want:   4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Days(tt.pickup, tt.ret); got != tt.want {
				t.Errorf("Days(%v, %v) = %d, want %d", tt.pickup, tt.ret, got, tt.want)
			}
		})
	}
}

func TestDaysSameDayProperty(t *testing.T) {
	// Days(d, d) == 1 must hold for any time of day.
	for hour := 0; hour < 24; hour++ {
		d := date(2024, time.March, 3, hour, 30)
		if got := Days(d, d); got != 1 {
			t.Fatalf("Days(%v, %v) = %d, want 1", d, d, got)
		}
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name          string
		aPickup, aRet time.Time
		bPickup, bRet time.Time
		want          bool
	}{
		{
			name:    "disjoint ranges",
			aPickup: date(2024, time.June, 10, 0, 0), aRet: date(2024, time.June, 15, 0, 0),
			bPickup: date(2024, time.June, 16, 0, 0), bRet: date(2024, time.June, 20, 0, 0),
			want: false,
		},
		{
			name:    "shared boundary day conflicts",
			aPickup: date(2024, time.June, 10, 0, 0), aRet: date(2024, time.June, 15, 0, 0),
			bPickup: date(2024, time.June, 15, 0, 0), bRet: date(2024, time.June, 20, 0, 0),
			want: true,
		},
		{
			name:    "shared boundary day conflicts regardless of time of day",
			aPickup: date(2024, time.June, 10, 9, 0), aRet: date(2024, time.June, 15, 8, 0),
			bPickup: date(2024, time.June, 15, 20, 0), bRet: date(2024, time.June, 20, 0, 0),
			want: true,
		},
		{
			name:    "fully contained",
			aPickup: date(2024, time.June, 12, 0, 0), aRet: date(2024, time.June, 13, 0, 0),
			bPickup: date(2024, time.June, 10, 0, 0), bRet: date(2024, time.June, 20, 0, 0),
			want: true,
		},
		{
			name:    "identical single day",
			aPickup: date(2024, time.June, 12, 0, 0), aRet: date(2024, time.June, 12, 0, 0),
			bPickup: date(2024, time.June, 12, 0, 0), bRet: date(2024, time.June, 12, 0, 0),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(tt.aPickup, tt.aRet, tt.bPickup, tt.bRet)
			if got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			// Overlap is symmetric.
			if rev := Overlaps(tt.bPickup, tt.bRet, tt.aPickup, tt.aRet); rev != got {
				t.Errorf("Overlaps not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

func TestEnumerateDays(t *testing.T) {
	days := EnumerateDays(date(2024, time.June, 10, 14, 0), date(2024, time.June, 12, 9, 0))
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	for i, d := range days {
		want := time.Date(2024, time.June, 10+i, 0, 0, 0, 0, time.UTC)
		if !d.Equal(want) {
			t.Errorf("day %d = %v, want %v", i, d, want)
		}
	}

	if got := EnumerateDays(date(2024, time.June, 12, 0, 0), date(2024, time.June, 10, 0, 0)); got != nil {
		t.Errorf("expected nil for inverted range, got %v", got)
	}

	single := EnumerateDays(date(2024, time.June, 10, 8, 0), date(2024, time.June, 10, 22, 0))
	if len(single) != 1 {
		t.Errorf("expected 1 day for same-day range, got %d", len(single))
	}
}
