// Package replay records the input of a game session and plays it back
// headlessly. Games are deterministic for a given seed and input sequence,
// so a replay reproduces the original run tick for tick.
package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

// Version is the current file format version.
const Version = 1

var (
	// ErrVersion is returned for files written by an incompatible version.
	ErrVersion = errors.New("replay: unsupported version")
	// ErrDiverged is returned when playback does not end where the recording did.
	ErrDiverged = errors.New("replay: playback diverged from recording")
)

// Frame is the input of one tick. Ticks without input are not stored.
type Frame struct {
	Tick    int           `msgpack:"t"`
	Actions []core.Action `msgpack:"a,omitempty"`
	Runes   string        `msgpack:"r,omitempty"`
	Choice  int           `msgpack:"c,omitempty"`
	Pointer *core.Point   `msgpack:"p,omitempty"`
}

// Input converts the frame back to an input frame.
func (f Frame) Input() core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range f.Actions {
		in.Set(a)
	}
	for _, r := range f.Runes {
		in.Type(r)
	}
	in.Choice = f.Choice
	if f.Pointer != nil {
		in.Click(f.Pointer.X, f.Pointer.Y)
	}
	return in
}

func frameOf(tick int, in core.InputFrame) Frame {
	f := Frame{Tick: tick, Runes: string(in.Runes), Choice: in.Choice}
	for a, on := range in.Actions {
		if on {
			f.Actions = append(f.Actions, a)
		}
	}
	sort.Slice(f.Actions, func(i, j int) bool { return f.Actions[i] < f.Actions[j] })
	if in.Pointer != nil {
		p := *in.Pointer
		f.Pointer = &p
	}
	return f
}

// Replay is a recorded session.
type Replay struct {
	Version    int       `msgpack:"version"`
	ID         string    `msgpack:"id"`
	GameID     string    `msgpack:"game"`
	Seed       int64     `msgpack:"seed"`
	ScreenW    int       `msgpack:"w"`
	ScreenH    int       `msgpack:"h"`
	TickRate   int       `msgpack:"rate"`
	Difficulty string    `msgpack:"difficulty,omitempty"`
	ConfigPath string    `msgpack:"config,omitempty"`
	Ticks      int       `msgpack:"ticks"`
	Score      int       `msgpack:"score"`
	Phase      string    `msgpack:"phase"`
	CreatedAt  time.Time `msgpack:"created"`
	Frames     []Frame   `msgpack:"frames"`
}

// Config returns the runtime configuration the recording was made with.
func (r *Replay) Config() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:    r.ScreenW,
		ScreenH:    r.ScreenH,
		TickRate:   r.TickRate,
		Seed:       r.Seed,
		ConfigPath: r.ConfigPath,
		Difficulty: r.Difficulty,
	}
}

// Recorder builds a Replay one tick at a time.
type Recorder struct {
	r Replay
}

// NewRecorder starts a recording. cfg.Seed must already be resolved.
func NewRecorder(gameID string, cfg core.RuntimeConfig) *Recorder {
	return &Recorder{r: Replay{
		Version:    Version,
		ID:         uuid.NewString(),
		GameID:     gameID,
		Seed:       cfg.Seed,
		ScreenW:    cfg.ScreenW,
		ScreenH:    cfg.ScreenH,
		TickRate:   cfg.TickRate,
		Difficulty: cfg.Difficulty,
		ConfigPath: cfg.ConfigPath,
		CreatedAt:  time.Now().UTC(),
	}}
}

// Record stores the input of the given tick. It matches the signature of
// loop.WithInputHook.
func (rec *Recorder) Record(tick int, in core.InputFrame) {
	rec.r.Ticks = max(rec.r.Ticks, tick+1)
	if in.Empty() {
		return
	}
	rec.r.Frames = append(rec.r.Frames, frameOf(tick, in))
}

// Finish stamps the final state and returns the replay.
func (rec *Recorder) Finish(final core.GameState) *Replay {
	rec.r.Score = final.Score
	rec.r.Phase = final.Phase.String()
	r := rec.r
	return &r
}

// Encode writes r to w.
func Encode(w io.Writer, r *Replay) error {
	if err := msgpack.NewEncoder(w).Encode(r); err != nil {
		return fmt.Errorf("replay: cannot encode: %w", err)
	}
	return nil
}

// Decode reads a replay from rd.
func Decode(rd io.Reader) (*Replay, error) {
	var r Replay
	if err := msgpack.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("replay: cannot decode: %w", err)
	}
	if r.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, r.Version)
	}
	return &r, nil
}

// Save writes r to path.
func Save(path string, r *Replay) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("replay: cannot create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := Encode(w, r); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("replay: cannot write %s: %w", path, err)
	}
	return f.Close()
}

// Load reads a replay from path.
func Load(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(bufio.NewReader(f))
}
