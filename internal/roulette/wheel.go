package roulette

import "github.com/lox/minicasino/internal/randutil"

// MaxPocket is the highest number on the single-zero wheel.
const MaxPocket = 36

// Pocket is a wheel number, 0-36.
type Pocket int

// Color is a pocket colour.
type Color int

const (
	ColorGreen Color = iota
	ColorRed
	ColorBlack
)

func (c Color) String() string {
	switch c {
	case ColorGreen:
		return "green"
	case ColorRed:
		return "red"
	case ColorBlack:
		return "black"
	default:
		return "unknown"
	}
}

var redPockets = map[Pocket]bool{
	1: true, 3: true, 5: true, 7: true, 9: true,
	12: true, 14: true, 16: true, 18: true, 19: true,
	21: true, 23: true, 25: true, 27: true, 30: true,
	32: true, 34: true, 36: true,
}

// Color returns green for zero, red for the eighteen red numbers and black otherwise.
func (p Pocket) Color() Color {
	switch {
	case p == 0:
		return ColorGreen
	case redPockets[p]:
		return ColorRed
	default:
		return ColorBlack
	}
}

// SpinWheel draws one of the 37 pockets uniformly.
func SpinWheel(rng randutil.Source) Pocket {
	return Pocket(rng.IntN(MaxPocket + 1))
}
