package statistics

import (
	"fmt"
	"math"
	"sort"
)

// RoundResult represents the money outcome of a single round
type RoundResult struct {
	Money    float64        // Net winnings over every player hand
	Bet      float64        // Total wagered, doubled hands counted twice
	Hands    int            // Hands settled, including split hands
	Outcomes map[string]int // Settled hands per outcome label
}

// Statistics tracks simulation results across rounds
type Statistics struct {
	Rounds   int
	Hands    int
	TotalBet float64
	TotalWon float64
	SumWon2  float64   // Sum of squares for variance calculation
	Values   []float64 // Per-round winnings for median/percentile calculation

	Outcomes map[string]int

	BestRound  float64
	WorstRound float64
}

// Add incorporates a new round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	if s.Rounds == 0 || result.Money > s.BestRound {
		s.BestRound = result.Money
	}
	if s.Rounds == 0 || result.Money < s.WorstRound {
		s.WorstRound = result.Money
	}

	s.Rounds++
	s.Hands += result.Hands
	s.TotalBet += result.Bet
	s.TotalWon += result.Money
	s.SumWon2 += result.Money * result.Money
	s.Values = append(s.Values, result.Money)

	if len(result.Outcomes) > 0 && s.Outcomes == nil {
		s.Outcomes = make(map[string]int, len(result.Outcomes))
	}
	for outcome, n := range result.Outcomes {
		s.Outcomes[outcome] += n
	}
}

// Merge folds other into s. Values keep their order: s first, then other.
func (s *Statistics) Merge(other *Statistics) {
	if other == nil || other.Rounds == 0 {
		return
	}
	if s.Rounds == 0 || other.BestRound > s.BestRound {
		s.BestRound = other.BestRound
	}
	if s.Rounds == 0 || other.WorstRound < s.WorstRound {
		s.WorstRound = other.WorstRound
	}

	s.Rounds += other.Rounds
	s.Hands += other.Hands
	s.TotalBet += other.TotalBet
	s.TotalWon += other.TotalWon
	s.SumWon2 += other.SumWon2
	s.Values = append(s.Values, other.Values...)

	if len(other.Outcomes) > 0 && s.Outcomes == nil {
		s.Outcomes = make(map[string]int, len(other.Outcomes))
	}
	for outcome, n := range other.Outcomes {
		s.Outcomes[outcome] += n
	}
}

// HandsPerRound returns the average number of settled hands per round
func (s *Statistics) HandsPerRound() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Hands) / float64(s.Rounds)
}

// Edge returns the player's edge as a percentage of the total amount bet.
// A negative edge means the house wins.
func (s *Statistics) Edge() float64 {
	if s.TotalBet == 0 {
		return 0
	}
	return 100 * s.TotalWon / s.TotalBet
}

// Mean returns the average winnings per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.TotalWon / float64(s.Rounds)
}

// Variance returns the sample variance of per-round winnings
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.SumWon2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
	// rounding can leave a tiny negative for constant series
	return math.Max(v, 0)
}

// StdDev returns the sample standard deviation of per-round winnings
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median per-round winnings
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s *Statistics) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// IsLedgerBalanced checks that the stored per-round values add up to the
// running total.
func (s *Statistics) IsLedgerBalanced() bool {
	var sum float64
	for _, v := range s.Values {
		sum += v
	}
	return math.Abs(sum-s.TotalWon) <= 1e-6*math.Max(1, math.Abs(s.TotalWon))
}

// Validate performs consistency checks on the accumulated data
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}

	// every round settles at least one hand per seat
	if s.Hands < s.Rounds {
		return fmt.Errorf("hands count (%d) is below rounds count (%d)", s.Hands, s.Rounds)
	}

	if s.TotalBet <= 0 {
		return fmt.Errorf("invalid total bet: %.2f", s.TotalBet)
	}

	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: TotalWon=%.6f does not match per-round values", s.TotalWon)
	}

	if len(s.Outcomes) > 0 {
		total := 0
		for _, n := range s.Outcomes {
			total += n
		}
		if total != s.Hands {
			return fmt.Errorf("outcome total (%d) does not match hands count (%d)", total, s.Hands)
		}
	}

	return nil
}
