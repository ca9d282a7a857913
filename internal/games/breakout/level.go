// Package breakout implements a brick breaker: a paddle, one ball and
// levels of bricks with hit points.
package breakout

// BrickSpec is one brick of a parsed level.
type BrickSpec struct {
	Row, Col int
	HP       int  // Hits needed to destroy it
	Solid    bool // Indestructible
}

// Level is a playable brick layout.
type Level struct {
	ID     string
	Name   string
	Width  int // Columns
	Height int // Rows
	Bricks []BrickSpec
}

// Destructible returns the number of bricks that can be destroyed.
func (l *Level) Destructible() int {
	n := 0
	for _, b := range l.Bricks {
		if !b.Solid {
			n++
		}
	}
	return n
}

// ParseLevel creates a Level from an ASCII map.
// Characters:
//
//	'#' = brick with 1 HP
//	'1'-'9' = brick with that many HP
//	'H' = hard brick (2 HP)
//	'X' = indestructible brick
//	anything else = empty
func ParseLevel(id, name string, lines []string) *Level {
	level := &Level{ID: id, Name: name, Height: len(lines)}
	for _, line := range lines {
		level.Width = max(level.Width, len(line))
	}

	for row, line := range lines {
		for col := range len(line) {
			ch := line[col]
			switch {
			case ch == '#':
				level.Bricks = append(level.Bricks, BrickSpec{Row: row, Col: col, HP: 1})
			case ch >= '1' && ch <= '9':
				level.Bricks = append(level.Bricks, BrickSpec{Row: row, Col: col, HP: int(ch - '0')})
			case ch == 'H' || ch == 'h':
				level.Bricks = append(level.Bricks, BrickSpec{Row: row, Col: col, HP: 2})
			case ch == 'X' || ch == 'x':
				level.Bricks = append(level.Bricks, BrickSpec{Row: row, Col: col, HP: 1, Solid: true})
			}
		}
	}
	return level
}

var builtinLevels = []*Level{
	ParseLevel("classic", "Classic", []string{
		"####################",
		"####################",
		"####################",
		"####################",
	}),
	ParseLevel("pyramid", "Pyramid", []string{
		"........3333........",
		"......22222222......",
		"....############....",
		"..################..",
		"####################",
	}),
	ParseLevel("checker", "Checkerboard", []string{
		"#.#.#.#.#.#.#.#.#.#.",
		".H.H.H.H.H.H.H.H.H.H",
		"#.#.#.#.#.#.#.#.#.#.",
		".H.H.H.H.H.H.H.H.H.H",
		"#.#.#.#.#.#.#.#.#.#.",
	}),
	ParseLevel("fortress", "Fortress", []string{
		"HHHHHHHHHHHHHHHHHHHH",
		"H..................H",
		"H.######3333######.H",
		"H.################.H",
		"H..................H",
		"HHHHHHHHHHHHHHHHHHHH",
	}),
	ParseLevel("castle", "Castle", []string{
		"X..X....X..X....X..X",
		"XXXX....XXXX....XXXX",
		"....................",
		"22222222222222222222",
		"####################",
		"####################",
	}),
	ParseLevel("boss", "Final Boss", []string{
		"55555555555555555555",
		"H##################H",
		"H######XXXXXX######H",
		"H##################H",
		"HHHHHHHHHHHHHHHHHHHH",
	}),
}

// LevelCount returns the number of built-in levels.
func LevelCount() int {
	return len(builtinLevels)
}

// GetLevel returns a built-in level by index, wrapping around.
func GetLevel(index int) *Level {
	return builtinLevels[index%len(builtinLevels)]
}
