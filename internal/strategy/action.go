package strategy

import (
	"fmt"
	"strings"
)

// Action is a playing decision from a strategy table
type Action int

const (
	Hit Action = iota
	Stand
	Double
	Split
	Surrender
)

// String returns the table code for the action (H, S, D, P, Sr)
func (a Action) String() string {
	switch a {
	case Hit:
		return "H"
	case Stand:
		return "S"
	case Double:
		return "D"
	case Split:
		return "P"
	case Surrender:
		return "Sr"
	default:
		return "?"
	}
}

// Name returns a human readable name for the action
func (a Action) Name() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Double:
		return "double"
	case Split:
		return "split"
	case Surrender:
		return "surrender"
	default:
		return "unknown"
	}
}

// ParseAction parses a table code. Codes are case-insensitive.
func ParseAction(s string) (Action, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "H":
		return Hit, nil
	case "S":
		return Stand, nil
	case "D":
		return Double, nil
	case "P":
		return Split, nil
	case "SR":
		return Surrender, nil
	default:
		return 0, fmt.Errorf("invalid action %q (want H, S, D, P or Sr)", s)
	}
}
