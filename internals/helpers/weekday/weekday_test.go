package weekday

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBitFor(t *testing.T) {
	tests := []struct {
		name string
		day  time.Time
		want int
	}{
		{"monday", date(2025, time.June, 2), 1},
		{"tuesday", date(2025, time.June, 3), 2},
		{"wednesday", date(2025, time.June, 4), 4},
		{"friday", date(2025, time.June, 6), 16},
		{"saturday", date(2025, time.June, 7), 32},
		{"sunday", date(2025, time.June, 8), 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BitFor(tt.day); got != tt.want {
				t.Errorf("BitFor(%s) = %d, want %d", tt.day.Weekday(), got, tt.want)
			}
		})
	}
}

func TestFromBoolsRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		bools [7]bool
		want  int
	}{
		{"mon-fri", [7]bool{true, true, true, true, true, false, false}, MonFriMask},
		{"none", [7]bool{}, 0},
		{"weekend only", [7]bool{false, false, false, false, false, true, true}, 96},
		{"all", [7]bool{true, true, true, true, true, true, true}, 127},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mask := FromBools(tt.bools)
			if mask != tt.want {
				t.Fatalf("FromBools = %d, want %d", mask, tt.want)
			}
			if got := Bools(mask); got != tt.bools {
				t.Errorf("Bools(%d) = %v, want %v", mask, got, tt.bools)
			}
		})
	}
}

func TestHumanize(t *testing.T) {
	tests := []struct {
		name string
		mask int
		want string
	}{
		{"mon-fri", MonFriMask, "Seg, Ter, Qua, Qui, Sex"},
		{"empty", 0, "—"},
		{"tue+thu", 2 + 8, "Ter, Qui"},
		{"sunday only", 64, "Dom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Humanize(tt.mask); got != tt.want {
				t.Errorf("Humanize(%d) = %q, want %q", tt.mask, got, tt.want)
			}
		})
	}
}
