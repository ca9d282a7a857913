package replay

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/loop"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/session"
)

// Play runs the replay through a fresh session as fast as possible and
// returns the final result. Scores are never reported from a replay. The
// result is checked against the recorded final score and phase.
func Play(r *Replay, factory registry.Factory, logger *log.Logger, opts ...loop.Option) (core.StepResult, error) {
	if logger == nil {
		logger = log.Default()
	}
	sess := session.New(factory, session.Options{Config: r.Config(), Logger: logger})
	if sess.Game().ID() != r.GameID {
		return core.StepResult{}, fmt.Errorf("replay: recorded %q but factory builds %q", r.GameID, sess.Game().ID())
	}

	opts = append([]loop.Option{loop.WithScreen(r.ScreenW, r.ScreenH), loop.WithLogger(logger)}, opts...)
	d := loop.NewDriver(sess, r.TickRate, opts...)

	res := core.StepResult{State: sess.State()}
	next := 0
	for tick := range r.Ticks {
		for next < len(r.Frames) && r.Frames[next].Tick == tick {
			d.Input().Merge(r.Frames[next].Input())
			next++
		}
		res = d.Tick()
	}

	if res.State.Score != r.Score || res.State.Phase.String() != r.Phase {
		return res, fmt.Errorf("%w: recorded %s with %d, replayed %s with %d",
			ErrDiverged, r.Phase, r.Score, res.State.Phase, res.State.Score)
	}
	return res, nil
}
