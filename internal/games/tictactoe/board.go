package tictactoe

import "math/rand"

// Mark is the content of a cell.
type Mark uint8

const (
	Empty Mark = iota
	X          // Player
	O          // CPU
)

func (m Mark) rune() rune {
	switch m {
	case X:
		return 'X'
	case O:
		return 'O'
	}
	return ' '
}

// Board is a 3x3 grid indexed row by row.
type Board [9]Mark

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Winner returns the mark holding a full line, or Empty.
func (b *Board) Winner() Mark {
	for _, l := range lines {
		if m := b[l[0]]; m != Empty && m == b[l[1]] && m == b[l[2]] {
			return m
		}
	}
	return Empty
}

// Full reports whether no empty cell is left.
func (b *Board) Full() bool {
	for _, m := range b {
		if m == Empty {
			return false
		}
	}
	return true
}

// free returns the empty cells.
func (b *Board) free() []int {
	out := make([]int, 0, 9)
	for i, m := range b {
		if m == Empty {
			out = append(out, i)
		}
	}
	return out
}

// completing returns a cell that gives m a full line, or -1.
func (b *Board) completing(m Mark) int {
	for _, l := range lines {
		count, empty := 0, -1
		for _, i := range l {
			switch b[i] {
			case m:
				count++
			case Empty:
				empty = i
			}
		}
		if count == 2 && empty >= 0 {
			return empty
		}
	}
	return -1
}

// BestMove picks a move for m: win, block, center, corner, then any side.
func (b *Board) BestMove(m Mark) int {
	other := X
	if m == X {
		other = O
	}
	if i := b.completing(m); i >= 0 {
		return i
	}
	if i := b.completing(other); i >= 0 {
		return i
	}
	for _, i := range []int{4, 0, 2, 6, 8, 1, 3, 5, 7} {
		if b[i] == Empty {
			return i
		}
	}
	return -1
}

// CPUMove plays the best move with probability skill, otherwise a random
// free cell.
func (b *Board) CPUMove(m Mark, skill float64, rng *rand.Rand) int {
	free := b.free()
	if len(free) == 0 {
		return -1
	}
	if rng.Float64() < skill {
		return b.BestMove(m)
	}
	return free[rng.Intn(len(free))]
}
