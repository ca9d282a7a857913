package render

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

// Box draws a bordered message box in the middle of the screen with one
// line of text per row, blanking whatever is underneath.
func Box(dst *core.Screen, lines ...string) {
	if len(lines) == 0 {
		return
	}

	width := 0
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l))
	}
	boxW := width + 4
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	rect := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(rect, ' ')
	dst.DrawBox(rect)

	for i, l := range lines {
		x := boxX + (boxW-utf8.RuneCountInString(l))/2
		dst.DrawText(x, boxY+1+i, l)
	}
}

// Messages is the text each phase shows over the playfield. Empty fields
// fall back to the defaults used by DefaultMessages.
type Messages struct {
	Title    string // Shown in the Ready box
	Start    string
	Paused   string
	Level    string // Shown on LevelComplete; %d is the finished level
	GameOver string
}

// DefaultMessages returns the standard phase messages.
func DefaultMessages(title string) Messages {
	return Messages{
		Title:    title,
		Start:    "Press SPACE to start",
		Paused:   "Press P to resume",
		Level:    "LEVEL %d COMPLETE",
		GameOver: "GAME OVER",
	}
}

// Overlay draws the message box for the current phase. Playing draws
// nothing.
func Overlay(dst *core.Screen, st core.GameState, msg Messages) {
	def := DefaultMessages(msg.Title)
	pick := func(v, fallback string) string {
		if v == "" {
			return fallback
		}
		return v
	}

	switch st.Phase {
	case core.PhaseReady:
		if msg.Title == "" {
			Box(dst, pick(msg.Start, def.Start))
			return
		}
		Box(dst, msg.Title, "", pick(msg.Start, def.Start))
	case core.PhasePaused:
		Box(dst, "PAUSED", pick(msg.Paused, def.Paused))
	case core.PhaseLevelComplete:
		Box(dst, fmt.Sprintf(pick(msg.Level, def.Level), st.Level), fmt.Sprintf("Score: %d", st.Score))
	case core.PhaseGameOver:
		lines := []string{pick(msg.GameOver, def.GameOver), fmt.Sprintf("Score: %d", st.Score)}
		if st.HighScore > 0 && st.Score >= st.HighScore {
			lines = append(lines, "New high score!")
		}
		lines = append(lines, "R restart  Q quit")
		Box(dst, lines...)
	}
}

// HUD draws the status line on row 0: score on the left, lives in the
// middle, level and high score on the right. Zero lives are omitted for
// games without lives; extra is appended after the score.
func HUD(dst *core.Screen, st core.GameState, extra string) {
	left := fmt.Sprintf("Score: %d", st.Score)
	if extra != "" {
		left += "  " + extra
	}
	dst.DrawText(1, 0, left)

	if st.Lives > 0 {
		dst.DrawTextCentered(0, fmt.Sprintf("Lives: %d", st.Lives))
	}

	right := fmt.Sprintf("Hi: %d", st.HighScore)
	if st.Level > 0 {
		right = fmt.Sprintf("Level: %d  %s", st.Level, right)
	}
	dst.DrawText(dst.Width()-utf8.RuneCountInString(right)-1, 0, right)
}

// TooSmall reports whether the screen is below the minimum size and, if so,
// fills it with a resize hint.
func TooSmall(dst *core.Screen, minW, minH int) bool {
	if dst.Width() >= minW && dst.Height() >= minH {
		return false
	}
	dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
	dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minW, minH))
	return true
}
