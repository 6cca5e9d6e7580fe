package deck

import (
	"fmt"
	"sort"
	"strings"
)

// CountSystem maps each rank to the running-count increment applied when a
// card of that rank is dealt.
type CountSystem map[Rank]int

// Built-in count systems
var (
	// DefaultCount is the unbalanced table the simulator was tuned with.
	DefaultCount = CountSystem{
		Ace: -2, Two: 1, Three: 1, Four: 1, Five: 2, Six: 1, Seven: 0, Eight: 0, Nine: 0,
		Ten: -1, Jack: -1, Queen: -1, King: -1,
	}

	HiLoCount = CountSystem{
		Ace: -1, Two: 1, Three: 1, Four: 1, Five: 1, Six: 1, Seven: 0, Eight: 0, Nine: 0,
		Ten: -1, Jack: -1, Queen: -1, King: -1,
	}

	Omega2Count = CountSystem{
		Ace: 0, Two: 1, Three: 1, Four: 2, Five: 2, Six: 2, Seven: 1, Eight: 0, Nine: -1,
		Ten: -2, Jack: -2, Queen: -2, King: -2,
	}
)

var countSystems = map[string]CountSystem{
	"default": DefaultCount,
	"hilo":    HiLoCount,
	"omega2":  Omega2Count,
}

// CountSystemNames returns the names accepted by LookupCountSystem
func CountSystemNames() []string {
	names := make([]string, 0, len(countSystems))
	for name := range countSystems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupCountSystem returns a copy of the named built-in count system
func LookupCountSystem(name string) (CountSystem, error) {
	cs, ok := countSystems[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown count system %q (want one of %s)", name, strings.Join(CountSystemNames(), ", "))
	}
	return cs.Clone(), nil
}

// Clone returns an independent copy
func (cs CountSystem) Clone() CountSystem {
	out := make(CountSystem, len(cs))
	for r, v := range cs {
		out[r] = v
	}
	return out
}

// Increment returns the count delta for a rank
func (cs CountSystem) Increment(r Rank) int {
	return cs[r]
}

// Validate checks that every rank has an increment
func (cs CountSystem) Validate() error {
	for _, r := range Ranks {
		if _, ok := cs[r]; !ok {
			return fmt.Errorf("count system has no increment for %s", r.Name())
		}
	}
	return nil
}
