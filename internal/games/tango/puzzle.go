package tango

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/arcade-portal/internal/config"
)

// Size is the board width and height.
const Size = 6

// ErrNoPuzzles is returned when no usable puzzle is available.
var ErrNoPuzzles = errors.New("tango: no puzzles")

//go:embed puzzles.yaml
var builtinPuzzles []byte

// Cell is the content of one square.
type Cell uint8

const (
	Blank Cell = iota
	Sun
	Moon
)

// Grid holds the board row by row.
type Grid [Size * Size]Cell

// Relation ties two neighbouring cells together.
type Relation struct {
	A, B int  // Cell indexes
	Same bool // "=" when true, "x" when false
}

// Puzzle is a starting grid with its relations.
type Puzzle struct {
	Name      string
	Givens    Grid
	Relations []Relation
	Solution  *Grid // Optional; enables hints
}

type puzzleFile struct {
	Puzzles []rawPuzzle `yaml:"puzzles"`
}

type rawPuzzle struct {
	Name        string          `yaml:"name"`
	Grid        []string        `yaml:"grid"`
	Constraints []rawConstraint `yaml:"constraints"`
	Solution    []string        `yaml:"solution"`
}

type rawConstraint struct {
	A   []int  `yaml:"a"`
	B   []int  `yaml:"b"`
	Rel string `yaml:"rel"`
}

func parseGrid(rows []string) (Grid, error) {
	var g Grid
	if len(rows) != Size {
		return g, fmt.Errorf("want %d rows, got %d", Size, len(rows))
	}
	for r, row := range rows {
		if len(row) != Size {
			return g, fmt.Errorf("row %d has %d cells", r, len(row))
		}
		for c, ch := range row {
			switch ch {
			case 'S':
				g[r*Size+c] = Sun
			case 'M':
				g[r*Size+c] = Moon
			case '.':
			default:
				return g, fmt.Errorf("row %d: unknown cell %q", r, ch)
			}
		}
	}
	return g, nil
}

func parseRelation(rc rawConstraint) (Relation, error) {
	if len(rc.A) != 2 || len(rc.B) != 2 {
		return Relation{}, errors.New("constraint needs [row, col] pairs")
	}
	for _, v := range append(rc.A, rc.B...) {
		if v < 0 || v >= Size {
			return Relation{}, fmt.Errorf("constraint cell %v out of range", v)
		}
	}
	dr, dc := rc.A[0]-rc.B[0], rc.A[1]-rc.B[1]
	if dr*dr+dc*dc != 1 {
		return Relation{}, fmt.Errorf("constraint cells %v and %v are not neighbours", rc.A, rc.B)
	}

	rel := Relation{A: rc.A[0]*Size + rc.A[1], B: rc.B[0]*Size + rc.B[1]}
	switch rc.Rel {
	case "=":
		rel.Same = true
	case "x":
	default:
		return Relation{}, fmt.Errorf("unknown relation %q", rc.Rel)
	}
	// Keep A as the top or left cell.
	if rel.A > rel.B {
		rel.A, rel.B = rel.B, rel.A
	}
	return rel, nil
}

func parsePuzzle(raw rawPuzzle) (Puzzle, error) {
	p := Puzzle{Name: raw.Name}
	var err error
	if p.Givens, err = parseGrid(raw.Grid); err != nil {
		return p, err
	}
	for _, rc := range raw.Constraints {
		rel, err := parseRelation(rc)
		if err != nil {
			return p, err
		}
		p.Relations = append(p.Relations, rel)
	}
	if len(Violations(&p.Givens, p.Relations)) > 0 {
		return p, errors.New("givens break the rules")
	}

	if len(raw.Solution) > 0 {
		sol, err := parseGrid(raw.Solution)
		if err != nil {
			return p, fmt.Errorf("solution: %w", err)
		}
		if !Solved(&sol, p.Relations) {
			return p, errors.New("solution breaks the rules")
		}
		for i, c := range p.Givens {
			if c != Blank && sol[i] != c {
				return p, errors.New("solution disagrees with the givens")
			}
		}
		p.Solution = &sol
	}
	return p, nil
}

// ParsePuzzles decodes a puzzle file, dropping malformed puzzles.
func ParsePuzzles(data []byte) ([]Puzzle, error) {
	var f puzzleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("tango: cannot parse puzzles: %w", err)
	}

	puzzles := make([]Puzzle, 0, len(f.Puzzles))
	for _, raw := range f.Puzzles {
		if p, err := parsePuzzle(raw); err == nil {
			puzzles = append(puzzles, p)
		}
	}
	if len(puzzles) == 0 {
		return nil, ErrNoPuzzles
	}
	return puzzles, nil
}

// LoadPuzzles reads puzzles from path, or the built-in set when path is
// empty.
func LoadPuzzles(path string) ([]Puzzle, error) {
	if path == "" {
		return ParsePuzzles(builtinPuzzles)
	}
	data, err := os.ReadFile(config.ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("tango: cannot read puzzles: %w", err)
	}
	return ParsePuzzles(data)
}

// Violations returns the cells that break a rule: three equal symbols in a
// row or column, more than half a line of one symbol, or a broken relation.
func Violations(g *Grid, rels []Relation) map[int]bool {
	bad := make(map[int]bool)

	for line := range Size {
		row := make([]int, Size)
		col := make([]int, Size)
		for k := range Size {
			row[k] = line*Size + k
			col[k] = k*Size + line
		}
		checkLine(g, row, bad)
		checkLine(g, col, bad)
	}

	for _, r := range rels {
		a, b := g[r.A], g[r.B]
		if a == Blank || b == Blank {
			continue
		}
		if (a == b) != r.Same {
			bad[r.A], bad[r.B] = true, true
		}
	}
	return bad
}

func checkLine(g *Grid, idx []int, bad map[int]bool) {
	counts := map[Cell][]int{}
	for k, i := range idx {
		c := g[i]
		if c == Blank {
			continue
		}
		counts[c] = append(counts[c], i)
		if k >= 2 && g[idx[k-1]] == c && g[idx[k-2]] == c {
			bad[i], bad[idx[k-1]], bad[idx[k-2]] = true, true, true
		}
	}
	for _, cells := range counts {
		if len(cells) > Size/2 {
			for _, i := range cells {
				bad[i] = true
			}
		}
	}
}

// Solved reports whether the grid is full and breaks no rule.
func Solved(g *Grid, rels []Relation) bool {
	for _, c := range g {
		if c == Blank {
			return false
		}
	}
	return len(Violations(g, rels)) == 0
}
