package strategy

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/bjsim/internal/deck"
)

//go:embed default.hcl
var defaultStrategy []byte

// DefaultColumns is the dealer up-card order used when a file does not
// declare its own columns. "T" stands for every ten-valued rank.
var DefaultColumns = []string{"2", "3", "4", "5", "6", "7", "8", "9", "T", "A"}

// hclFile is the HCL form of a strategy:
//
//	columns = ["2", "3", "4", "5", "6", "7", "8", "9", "T", "A"]
//	hard "16" { actions = ["S", "S", "S", "S", "S", "H", "H", "Sr", "Sr", "Sr"] }
//	soft "18" { actions = [...] }
//	pair "8"  { actions = [...] }
type hclFile struct {
	Columns []string `hcl:"columns,optional"`
	Hard    []hclRow `hcl:"hard,block"`
	Soft    []hclRow `hcl:"soft,block"`
	Pair    []hclRow `hcl:"pair,block"`
}

type hclRow struct {
	Key     string   `hcl:"key,label"`
	Actions []string `hcl:"actions"`
}

// tomlFile is the TOML form of a strategy:
//
//	columns = ["2", "3", "4", "5", "6", "7", "8", "9", "T", "A"]
//	[hard]
//	16 = ["S", "S", "S", "S", "S", "H", "H", "Sr", "Sr", "Sr"]
type tomlFile struct {
	Columns []string            `toml:"columns"`
	Hard    map[string][]string `toml:"hard"`
	Soft    map[string][]string `toml:"soft"`
	Pair    map[string][]string `toml:"pair"`
}

// rawStrategy is the format-independent result of decoding a file
type rawStrategy struct {
	columns []string
	rows    map[Kind]map[string][]string
}

// Default returns the built-in basic strategy
func Default() *Tables {
	t, err := ParseHCL(defaultStrategy, "default.hcl")
	if err != nil {
		panic(fmt.Sprintf("embedded strategy is invalid: %v", err))
	}
	return t
}

// LoadFile loads a strategy from an .hcl or .toml file
func LoadFile(filename string) (*Tables, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read strategy file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".hcl":
		return ParseHCL(data, filename)
	case ".toml":
		return ParseTOML(data, filename)
	default:
		return nil, fmt.Errorf("unsupported strategy file type %q (want .hcl or .toml)", filepath.Ext(filename))
	}
}

// ParseHCL decodes an HCL strategy and validates it
func ParseHCL(src []byte, filename string) (*Tables, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL strategy: %s", diags.Error())
	}

	var f hclFile
	diags = gohcl.DecodeBody(file.Body, nil, &f)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL strategy: %s", diags.Error())
	}

	raw := rawStrategy{columns: f.Columns, rows: map[Kind]map[string][]string{}}
	for kind, rows := range map[Kind][]hclRow{KindHard: f.Hard, KindSoft: f.Soft, KindPair: f.Pair} {
		m := make(map[string][]string, len(rows))
		for _, row := range rows {
			if _, dup := m[row.Key]; dup {
				return nil, fmt.Errorf("%s: duplicate %s row %q", filename, kind, row.Key)
			}
			m[row.Key] = row.Actions
		}
		raw.rows[kind] = m
	}
	return raw.build(filename)
}

// ParseTOML decodes a TOML strategy and validates it
func ParseTOML(src []byte, filename string) (*Tables, error) {
	var f tomlFile
	if _, err := toml.NewDecoder(bytes.NewReader(src)).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode TOML strategy: %w", err)
	}
	raw := rawStrategy{
		columns: f.Columns,
		rows: map[Kind]map[string][]string{
			KindHard: f.Hard,
			KindSoft: f.Soft,
			KindPair: f.Pair,
		},
	}
	return raw.build(filename)
}

func (r rawStrategy) build(filename string) (*Tables, error) {
	columns := r.columns
	if len(columns) == 0 {
		columns = DefaultColumns
	}
	colRanks, err := expandColumns(columns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	tables := make(map[Kind]Table, 3)
	for _, kind := range []Kind{KindHard, KindSoft, KindPair} {
		table := make(Table, len(r.rows[kind]))
		for keyStr, actions := range r.rows[kind] {
			key, err := strconv.Atoi(strings.TrimSpace(keyStr))
			if err != nil {
				return nil, fmt.Errorf("%s: %s row %q: key must be an integer", filename, kind, keyStr)
			}
			if len(actions) != len(colRanks) {
				return nil, fmt.Errorf("%s: %s row %d has %d actions, want %d", filename, kind, key, len(actions), len(colRanks))
			}
			row := make(map[deck.Rank]Action, len(deck.Ranks))
			for i, code := range actions {
				a, err := ParseAction(code)
				if err != nil {
					return nil, fmt.Errorf("%s: %s row %d column %s: %w", filename, kind, key, columns[i], err)
				}
				for _, rank := range colRanks[i] {
					row[rank] = a
				}
			}
			table[key] = row
		}
		tables[kind] = table
	}

	t := New(tables[KindHard], tables[KindSoft], tables[KindPair])
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("%s: incomplete strategy: %w", filename, err)
	}
	return t, nil
}

// expandColumns turns column headers into the ranks each one covers
func expandColumns(columns []string) ([][]deck.Rank, error) {
	out := make([][]deck.Rank, len(columns))
	seen := make(map[deck.Rank]bool)
	for i, col := range columns {
		rank, err := deck.ParseRank(col)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+1, err)
		}
		ranks := []deck.Rank{rank}
		if rank == deck.Ten && (strings.EqualFold(col, "T") || col == "10") {
			ranks = []deck.Rank{deck.Ten, deck.Jack, deck.Queen, deck.King}
		}
		for _, r := range ranks {
			if seen[r] {
				return nil, fmt.Errorf("column %q repeats dealer rank %s", col, r.Name())
			}
			seen[r] = true
		}
		out[i] = ranks
	}
	return out, nil
}
