package score

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

type fakeRecorder struct {
	mu      sync.Mutex
	records []Record
	err     error
	block   chan struct{}
}

func (f *fakeRecorder) SaveRecord(ctx context.Context, r Record) error {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, r)
	return f.err
}

func (f *fakeRecorder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestMemoryKV(t *testing.T) {
	kv := NewMemoryKV()

	if _, ok, err := kv.Get("flappy"); ok || err != nil {
		t.Fatalf("empty store returned ok=%v err=%v", ok, err)
	}
	if err := kv.Set("flappy", 12); err != nil {
		t.Fatal(err)
	}
	v, ok, _ := kv.Get("flappy")
	if !ok || v != 12 {
		t.Errorf("Get = %d, %v", v, ok)
	}
}

func TestMultiJoinsErrors(t *testing.T) {
	good := &fakeRecorder{}
	bad := &fakeRecorder{err: errors.New("boom")}

	err := Multi{bad, nil, good}.SaveRecord(context.Background(), Record{GameName: "dino"})
	if err == nil {
		t.Fatal("expected error")
	}
	if good.count() != 1 {
		t.Error("a failing recorder must not stop the others")
	}
}

func TestReporterDoesNotBlock(t *testing.T) {
	rec := &fakeRecorder{block: make(chan struct{})}
	r := NewReporter(rec, quietLogger())

	done := make(chan struct{})
	go func() {
		r.Report(Record{GameName: "breakout", Score: 40})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Report blocked on a slow recorder")
	}

	close(rec.block)
	r.Wait()
	if rec.count() != 1 {
		t.Errorf("saved %d records, expected 1", rec.count())
	}

	n := <-r.Notifications()
	if n.Err != nil || n.Score != 40 || n.Game != "breakout" {
		t.Errorf("unexpected notification %+v", n)
	}
}

func TestReporterSurfacesFailure(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("offline")}
	r := NewReporter(rec, quietLogger())

	r.Report(Record{GameName: "flappy", Score: 3})
	r.Wait()

	n := <-r.Notifications()
	if n.Err == nil {
		t.Error("expected the failure in the notification")
	}
	if rec.count() != 1 {
		t.Error("failed saves must not be retried")
	}
}

func TestReporterTimeout(t *testing.T) {
	rec := &fakeRecorder{block: make(chan struct{})}
	r := NewReporter(rec, quietLogger())
	r.SetTimeout(10 * time.Millisecond)

	r.Report(Record{GameName: "dino"})
	r.Wait()

	n := <-r.Notifications()
	if !errors.Is(n.Err, context.DeadlineExceeded) {
		t.Errorf("expected deadline error, got %v", n.Err)
	}
}

func TestReporterCloseEndsNotifications(t *testing.T) {
	rec := &fakeRecorder{}
	r := NewReporter(rec, quietLogger())

	r.Report(Record{GameName: "memory", Score: 12})
	r.Close()
	r.Close()

	var got []Notification
	for n := range r.Notifications() {
		got = append(got, n)
	}
	if len(got) != 1 || got[0].Score != 12 {
		t.Errorf("notifications = %+v, expected the one save before close", got)
	}

	r.Report(Record{GameName: "memory", Score: 30})
	if rec.count() != 1 {
		t.Errorf("saved %d records, expected reports after close to be dropped", rec.count())
	}
}
