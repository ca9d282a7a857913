package core

// Action is a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionJump           // Space - primary action (jump, flap, launch)
	ActionDuck           // Down in runners
	ActionConfirm        // Enter - start, select, submit
	ActionBack           // B, Escape - leave the game
	ActionRestart        // R - new game after game over
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P, Escape while playing
	ActionHint           // ? - ask for a hint
	ActionErase          // Backspace
)

var actionNames = map[Action]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionJump:    "Jump",
	ActionDuck:    "Duck",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
	ActionHint:    "Hint",
	ActionErase:   "Erase",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// Point is a cell coordinate reported by a pointer device.
type Point struct {
	X, Y int
}

// InputFrame is everything the player did between two ticks.
// Multiple events between ticks coalesce: actions are OR-ed, typed runes
// accumulate in order and the latest pointer position and choice win.
type InputFrame struct {
	Actions map[Action]bool
	Runes   []rune // Typed characters, in order
	Choice  int    // Last digit pressed (1-9), 0 if none
	Pointer *Point // Last pointer click, nil if none
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Type appends a typed rune.
func (f *InputFrame) Type(r rune) {
	f.Runes = append(f.Runes, r)
}

// Click records a pointer click, replacing any earlier one.
func (f *InputFrame) Click(x, y int) {
	f.Pointer = &Point{X: x, Y: y}
}

// Horizontal returns -1 for left, +1 for right and 0 when neither or both
// are held.
func (f InputFrame) Horizontal() int {
	dir := 0
	if f.Has(ActionLeft) {
		dir--
	}
	if f.Has(ActionRight) {
		dir++
	}
	return dir
}

// Vertical returns -1 for up, +1 for down and 0 when neither or both are held.
func (f InputFrame) Vertical() int {
	dir := 0
	if f.Has(ActionUp) {
		dir--
	}
	if f.Has(ActionDown) {
		dir++
	}
	return dir
}

// Merge folds another frame into this one.
func (f *InputFrame) Merge(other InputFrame) {
	for a, on := range other.Actions {
		if on {
			f.Set(a)
		}
	}
	f.Runes = append(f.Runes, other.Runes...)
	if other.Choice != 0 {
		f.Choice = other.Choice
	}
	if other.Pointer != nil {
		p := *other.Pointer
		f.Pointer = &p
	}
}

// Empty reports whether nothing happened in this frame.
func (f InputFrame) Empty() bool {
	for _, on := range f.Actions {
		if on {
			return false
		}
	}
	return len(f.Runes) == 0 && f.Choice == 0 && f.Pointer == nil
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Runes = f.Runes[:0]
	f.Choice = 0
	f.Pointer = nil
}

// Clone creates a deep copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	clone.Merge(f)
	return clone
}
