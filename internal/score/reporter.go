package score

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultTimeout bounds a single background save.
const DefaultTimeout = 10 * time.Second

// Notification tells the UI how a background save went.
type Notification struct {
	Game  string
	Score int
	Err   error
}

// Reporter saves records in the background. Report never blocks the
// caller: saves run in their own goroutine, failures are logged and
// surfaced as a Notification, and nothing is retried.
type Reporter struct {
	rec     Recorder
	logger  *log.Logger
	timeout time.Duration
	notes   chan Notification
	wg      sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewReporter creates a reporter. A nil logger uses log.Default().
func NewReporter(rec Recorder, logger *log.Logger) *Reporter {
	if logger == nil {
		logger = log.Default()
	}
	return &Reporter{
		rec:     rec,
		logger:  logger,
		timeout: DefaultTimeout,
		notes:   make(chan Notification, 8),
	}
}

// SetTimeout changes the per-save timeout.
func (r *Reporter) SetTimeout(d time.Duration) {
	r.timeout = d
}

// Report starts saving rec and returns immediately. Records reported after
// Close are dropped.
func (r *Reporter) Report(rec Record) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		r.logger.Warn("score dropped after close", "game", rec.GameName, "user", rec.UserID, "score", rec.Score)
		return
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		err := r.rec.SaveRecord(ctx, rec)
		if err != nil {
			r.logger.Error("score save failed", "game", rec.GameName, "user", rec.UserID, "score", rec.Score, "err", err)
		} else {
			r.logger.Info("score saved", "game", rec.GameName, "user", rec.UserID, "score", rec.Score)
		}

		// Drop the notification rather than block when nobody is listening.
		select {
		case r.notes <- Notification{Game: rec.GameName, Score: rec.Score, Err: err}:
		default:
		}
	}()
}

// Notifications delivers the outcome of each save. The channel is closed
// by Close.
func (r *Reporter) Notifications() <-chan Notification {
	return r.notes
}

// Wait blocks until every started save has finished.
func (r *Reporter) Wait() {
	r.wg.Wait()
}

// Close waits for started saves and closes the notification channel so
// listeners can stop. It is safe to call more than once.
func (r *Reporter) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	r.wg.Wait()
	close(r.notes)
}
