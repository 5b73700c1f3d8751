package roulette

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/minicasino/internal/wager"
)

// Selection is a roulette bet placement. The set of implementations is
// closed: only the types in this file satisfy it. Selections are comparable
// values, so two placements on the same numbered or indexed spot share an
// identity.
type Selection interface {
	// Name is the label shown on the table, e.g. "Number 17" or "2nd Dozen".
	Name() string
	// Validate rejects out-of-range numbers and indexes.
	Validate() error

	selection()
}

type (
	// StraightUp is a single number 0-36.
	StraightUp struct{ Number int }
	// Red covers the eighteen red numbers.
	Red struct{}
	// Black covers the eighteen black numbers.
	Black struct{}
	// Odd covers odd numbers other than zero.
	Odd struct{}
	// Even covers even numbers other than zero.
	Even struct{}
	// Low covers 1-18.
	Low struct{}
	// High covers 19-36.
	High struct{}
	// Dozen covers 1-12, 13-24 or 25-36 for Index 1, 2 or 3.
	Dozen struct{ Index int }
	// Column covers the numbers n with n % 3 == Index % 3, for Index 1, 2 or 3.
	Column struct{ Index int }
)

func (StraightUp) selection() {}
func (Red) selection()        {}
func (Black) selection()      {}
func (Odd) selection()        {}
func (Even) selection()       {}
func (Low) selection()        {}
func (High) selection()       {}
func (Dozen) selection()      {}
func (Column) selection()     {}

func (s StraightUp) Name() string { return fmt.Sprintf("Number %d", s.Number) }
func (Red) Name() string          { return "Red" }
func (Black) Name() string        { return "Black" }
func (Odd) Name() string          { return "Odd" }
func (Even) Name() string         { return "Even" }
func (Low) Name() string          { return "1-18" }
func (High) Name() string         { return "19-36" }
func (c Column) Name() string     { return fmt.Sprintf("Column %d", c.Index) }

func (d Dozen) Name() string {
	switch d.Index {
	case 1:
		return "1st Dozen"
	case 2:
		return "2nd Dozen"
	case 3:
		return "3rd Dozen"
	default:
		return "Unknown Dozen"
	}
}

func (s StraightUp) Validate() error {
	if s.Number < 0 || s.Number > MaxPocket {
		return fmt.Errorf("%w: number %d outside 0-%d", wager.ErrInvalidBet, s.Number, MaxPocket)
	}
	return nil
}

func (Red) Validate() error   { return nil }
func (Black) Validate() error { return nil }
func (Odd) Validate() error   { return nil }
func (Even) Validate() error  { return nil }
func (Low) Validate() error   { return nil }
func (High) Validate() error  { return nil }

func (d Dozen) Validate() error {
	if d.Index < 1 || d.Index > 3 {
		return fmt.Errorf("%w: dozen %d", wager.ErrInvalidBet, d.Index)
	}
	return nil
}

func (c Column) Validate() error {
	if c.Index < 1 || c.Index > 3 {
		return fmt.Errorf("%w: column %d", wager.ErrInvalidBet, c.Index)
	}
	return nil
}

// Multiplier returns the payout multiplier for sel against the drawn pocket
// and whether the bet won at all.
func Multiplier(sel Selection, result Pocket) (int64, bool) {
	n := int(result)
	switch s := sel.(type) {
	case StraightUp:
		return 35, n == s.Number
	case Red:
		return 1, result.Color() == ColorRed
	case Black:
		return 1, result.Color() == ColorBlack
	case Odd:
		return 1, n != 0 && n%2 == 1
	case Even:
		return 1, n != 0 && n%2 == 0
	case Low:
		return 1, n >= 1 && n <= 18
	case High:
		return 1, n >= 19 && n <= 36
	case Dozen:
		return 2, n != 0 && (n-1)/12+1 == s.Index
	case Column:
		return 2, n != 0 && n%3 == s.Index%3
	default:
		panic(fmt.Sprintf("roulette: unhandled selection %T", sel))
	}
}

// ParseSelection reads a table spot: a number ("17"), a colour or parity
// ("red", "odd"), a half ("low", "1-18"), or an indexed group ("dozen2",
// "column3").
func ParseSelection(s string) (Selection, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	var sel Selection
	switch s {
	case "red":
		sel = Red{}
	case "black":
		sel = Black{}
	case "odd":
		sel = Odd{}
	case "even":
		sel = Even{}
	case "low", "1-18":
		sel = Low{}
	case "high", "19-36":
		sel = High{}
	default:
		switch {
		case strings.HasPrefix(s, "dozen"):
			k, err := strconv.Atoi(strings.TrimPrefix(s, "dozen"))
			if err != nil {
				return nil, fmt.Errorf("%w: %q", wager.ErrInvalidBet, s)
			}
			sel = Dozen{Index: k}
		case strings.HasPrefix(s, "column"):
			k, err := strconv.Atoi(strings.TrimPrefix(s, "column"))
			if err != nil {
				return nil, fmt.Errorf("%w: %q", wager.ErrInvalidBet, s)
			}
			sel = Column{Index: k}
		default:
			n, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", wager.ErrInvalidBet, s)
			}
			sel = StraightUp{Number: n}
		}
	}

	if err := sel.Validate(); err != nil {
		return nil, err
	}
	return sel, nil
}
