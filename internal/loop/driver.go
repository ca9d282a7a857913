// Package loop drives a game at a fixed tick rate without a terminal:
// read input, step, render, present. The interactive TUI schedules its own
// ticks through Bubble Tea but shares the same input coalescing.
package loop

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

// Stepper is what the driver runs; *session.Session implements it.
type Stepper interface {
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
}

// Presenter receives every rendered frame.
type Presenter interface {
	Present(frame *core.Screen, res core.StepResult)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(frame *core.Screen, res core.StepResult)

// Present implements Presenter.
func (f PresenterFunc) Present(frame *core.Screen, res core.StepResult) { f(frame, res) }

// Option configures a Driver.
type Option func(*Driver)

// WithPresenter sets where frames go. Without one frames are rendered and
// dropped.
func WithPresenter(p Presenter) Option {
	return func(d *Driver) { d.presenter = p }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// WithInput uses an existing input buffer.
func WithInput(b *InputBuffer) Option {
	return func(d *Driver) { d.input = b }
}

// WithScreen sets the frame size.
func WithScreen(w, h int) Option {
	return func(d *Driver) { d.screen = core.NewScreen(w, h) }
}

// WithInputHook is called with each tick's drained input before it is
// stepped, e.g. to record a replay.
func WithInputHook(fn func(tick int, in core.InputFrame)) Option {
	return func(d *Driver) { d.onInput = fn }
}

// StopOnGameOver ends Run once the game reaches GameOver.
func StopOnGameOver() Option {
	return func(d *Driver) { d.stopOnGameOver = true }
}

// Driver runs a Stepper at a fixed rate.
type Driver struct {
	stepper   Stepper
	tickRate  int
	input     *InputBuffer
	screen    *core.Screen
	presenter Presenter
	logger    *log.Logger
	onInput   func(int, core.InputFrame)

	stopOnGameOver bool

	ticks    int
	stop     chan struct{}
	stopOnce sync.Once
}

// NewDriver creates a driver ticking tickRate times per second.
func NewDriver(s Stepper, tickRate int, opts ...Option) *Driver {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	def := core.DefaultConfig()
	d := &Driver{
		stepper:  s,
		tickRate: tickRate,
		input:    NewInputBuffer(),
		screen:   core.NewScreen(def.ScreenW, def.ScreenH),
		logger:   log.Default(),
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Input returns the buffer producers write to.
func (d *Driver) Input() *InputBuffer { return d.input }

// Ticks returns the number of ticks run so far.
func (d *Driver) Ticks() int { return d.ticks }

// Screen returns the frame buffer.
func (d *Driver) Screen() *core.Screen { return d.screen }

// Tick runs one tick synchronously: drain input, step, render, present.
func (d *Driver) Tick() core.StepResult {
	in := d.input.Drain()
	if d.onInput != nil {
		d.onInput(d.ticks, in)
	}
	res := d.stepper.Step(in)
	d.ticks++

	d.screen.Clear()
	d.stepper.Render(d.screen)
	if d.presenter != nil {
		d.presenter.Present(d.screen, res)
	}
	return res
}

// Run ticks until ctx is cancelled, Stop is called, or (with
// StopOnGameOver) the game ends. The ticker is released before Run
// returns, so no tick happens afterwards. A panic inside a tick is
// returned as an error.
func (d *Driver) Run(ctx context.Context) (err error) {
	ticker := time.NewTicker(time.Second / time.Duration(d.tickRate))
	defer ticker.Stop()

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("loop: panic in tick", "tick", d.ticks, "panic", r)
			err = fmt.Errorf("loop: panic in tick %d: %v", d.ticks, r)
		}
	}()

	d.logger.Debug("loop started", "rate", d.tickRate)
	for {
		select {
		case <-ctx.Done():
			d.logger.Debug("loop cancelled", "ticks", d.ticks)
			return ctx.Err()
		case <-d.stop:
			d.logger.Debug("loop stopped", "ticks", d.ticks)
			return nil
		case <-ticker.C:
			res := d.Tick()
			if d.stopOnGameOver && res.State.GameOver() {
				return nil
			}
		}
	}
}

// Stop ends Run. It is safe to call more than once and from any goroutine.
func (d *Driver) Stop() {
	d.stopOnce.Do(func() { close(d.stop) })
}
