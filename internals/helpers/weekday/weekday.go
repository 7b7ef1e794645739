// file: internals/helpers/weekday/weekday.go
package weekday

import (
	"strings"
	"time"
)

// Bit positions: Mon=1, Tue=2, Wed=4, Thu=8, Fri=16, Sat=32, Sun=64.
var Bits = [7]int{1, 2, 4, 8, 16, 32, 64}

// MonFriMask = 0b11111 (31): padrão Seg–Sex.
const MonFriMask = 1 + 2 + 4 + 8 + 16

// LabelsPT are the short weekday labels used across the app (Mon..Sun).
var LabelsPT = [7]string{"Seg", "Ter", "Qua", "Qui", "Sex", "Sáb", "Dom"}

// indexFor maps time.Weekday (Sunday=0) to Mon=0..Sun=6.
func indexFor(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}

// BitFor returns the mask bit for the date's weekday.
func BitFor(d time.Time) int {
	return Bits[indexFor(d)]
}

// FromBools builds a mask from 7 booleans [Mon..Sun].
func FromBools(bools [7]bool) int {
	mask := 0
	for i, on := range bools {
		if on {
			mask |= Bits[i]
		}
	}
	return mask
}

// Bools expands a mask into 7 booleans [Mon..Sun].
func Bools(mask int) [7]bool {
	var out [7]bool
	for i := range Bits {
		out[i] = mask&Bits[i] != 0
	}
	return out
}

// Humanize renders a mask like 31 → "Seg, Ter, Qua, Qui, Sex", or "—" for 0.
func Humanize(mask int) string {
	if mask == 0 {
		return "—"
	}
	parts := make([]string, 0, 7)
	for i := range Bits {
		if mask&Bits[i] != 0 {
			parts = append(parts, LabelsPT[i])
		}
	}
	return strings.Join(parts, ", ")
}
