package statistics

import (
	"fmt"
	"math"
	"sort"
)

// Summary accumulates the net chip results of many rounds of one game.
type Summary struct {
	Rounds  int
	Wins    int
	Pushes  int
	Staked  int64
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // Every net result, only collected when KeepValues is set

	// KeepValues retains each round's net in Values so Median and
	// Percentile work. Without it the summary uses constant memory.
	KeepValues bool

	BiggestWin  int64
	BiggestLoss int64
}

// Add incorporates one round's stake and net result.
func (s *Summary) Add(staked, net int64) {
	v := float64(net)
	s.Rounds++
	s.Staked += staked
	s.SumNet += v
	s.SumNet2 += v * v
	if s.KeepValues {
		s.Values = append(s.Values, v)
	}

	switch {
	case net > 0:
		s.Wins++
		s.BiggestWin = max(s.BiggestWin, net)
	case net == 0:
		s.Pushes++
	default:
		s.BiggestLoss = min(s.BiggestLoss, net)
	}
}

// Mean returns the average net chips per round
func (s *Summary) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of the net results
func (s *Summary) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation
func (s *Summary) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Summary) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Summary) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// ReturnToPlayer is total credited over total staked, 1.0 meaning break-even.
func (s *Summary) ReturnToPlayer() float64 {
	if s.Staked == 0 {
		return 0
	}
	return (float64(s.Staked) + s.SumNet) / float64(s.Staked)
}

// WinRate is the fraction of rounds that ended ahead.
func (s *Summary) WinRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Rounds)
}

// Median returns the median net result
func (s *Summary) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0).
// It is 0 unless values were kept.
func (s *Summary) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Merge folds other into s.
func (s *Summary) Merge(other *Summary) {
	s.Rounds += other.Rounds
	s.Wins += other.Wins
	s.Pushes += other.Pushes
	s.Staked += other.Staked
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	switch {
	case s.KeepValues && other.KeepValues:
		s.Values = append(s.Values, other.Values...)
	case s.KeepValues:
		// other never kept its values, so percentiles can no longer be exact.
		s.KeepValues = false
		s.Values = nil
	}
	s.BiggestWin = max(s.BiggestWin, other.BiggestWin)
	s.BiggestLoss = min(s.BiggestLoss, other.BiggestLoss)
}

// Validate checks that the counters agree with each other.
func (s *Summary) Validate() error {
	if s.Rounds < 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}
	if s.Wins+s.Pushes > s.Rounds {
		return fmt.Errorf("wins (%d) and pushes (%d) exceed total rounds (%d)", s.Wins, s.Pushes, s.Rounds)
	}
	if !s.KeepValues {
		if len(s.Values) != 0 {
			return fmt.Errorf("%d values kept without KeepValues", len(s.Values))
		}
		return nil
	}
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}
	var sum float64
	for _, v := range s.Values {
		sum += v
	}
	if math.Abs(sum-s.SumNet) > 1e-6 {
		return fmt.Errorf("ledger mismatch: values sum %.2f, net %.2f", sum, s.SumNet)
	}
	return nil
}
