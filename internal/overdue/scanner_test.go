package overdue

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"boardhook/internal/board"
	"boardhook/internal/events"
)

type fakeTasks struct {
	tasks []board.Task
	err   error
	calls atomic.Int64
}

func (f *fakeTasks) OverdueTasks(context.Context, time.Time) ([]board.Task, error) {
	f.calls.Add(1)
	return f.tasks, f.err
}

type recordedDispatch struct {
	project board.Project
	eventID events.ID
	payload board.Payload
}

type fakeDispatcher struct {
	dispatches []recordedDispatch
}

func (f *fakeDispatcher) NotifyProject(_ context.Context, project board.Project, eventID events.ID, payload board.Payload) {
	f.dispatches = append(f.dispatches, recordedDispatch{project: project, eventID: eventID, payload: payload})
}

func TestScanOnceGroupsTasksByProject(t *testing.T) {
	tasks := &fakeTasks{tasks: []board.Task{
		{ID: 1, ProjectID: 7, ProjectName: "Apollo", Title: "First"},
		{ID: 2, ProjectID: 9, ProjectName: "Gemini", Title: "Second"},
		{ID: 3, ProjectID: 7, ProjectName: "Apollo", Title: "Third"},
	}}
	dispatcher := &fakeDispatcher{}
	scanner := NewScanner(tasks, dispatcher, nil)

	if err := scanner.ScanOnce(context.Background()); err != nil {
		t.Fatalf("ScanOnce: %v", err)
	}

	if len(dispatcher.dispatches) != 2 {
		t.Fatalf("expected one dispatch per project, got %d", len(dispatcher.dispatches))
	}

	first := dispatcher.dispatches[0]
	if first.project.ID != 7 || first.project.Name != "Apollo" {
		t.Fatalf("unexpected first project: %+v", first.project)
	}
	if first.eventID != events.TaskOverdue {
		t.Fatalf("unexpected event: %q", first.eventID)
	}
	if len(first.payload.Tasks) != 2 || first.payload.Tasks[0].ID != 1 || first.payload.Tasks[1].ID != 3 {
		t.Fatalf("unexpected batch for project 7: %+v", first.payload.Tasks)
	}
	if first.payload.ProjectName != "Apollo" {
		t.Fatalf("payload should carry the project name, got %q", first.payload.ProjectName)
	}

	second := dispatcher.dispatches[1]
	if second.project.ID != 9 || len(second.payload.Tasks) != 1 {
		t.Fatalf("unexpected second dispatch: %+v", second)
	}
}

func TestScanOnceNoOverdueTasks(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	scanner := NewScanner(&fakeTasks{}, dispatcher, nil)

	if err := scanner.ScanOnce(context.Background()); err != nil {
		t.Fatalf("ScanOnce: %v", err)
	}
	if len(dispatcher.dispatches) != 0 {
		t.Fatalf("no tasks must mean no dispatches, got %d", len(dispatcher.dispatches))
	}
}

func TestScanOnceReportsSourceError(t *testing.T) {
	wantErr := errors.New("database is locked")
	dispatcher := &fakeDispatcher{}
	scanner := NewScanner(&fakeTasks{err: wantErr}, dispatcher, nil)

	err := scanner.ScanOnce(context.Background())
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
	if len(dispatcher.dispatches) != 0 {
		t.Fatal("a failed listing must not dispatch anything")
	}
}

func TestRunnerScansImmediatelyAndStopsOnCancel(t *testing.T) {
	tasks := &fakeTasks{}
	scanner := NewScanner(tasks, &fakeDispatcher{}, nil)
	runner := NewRunner(scanner, filepath.Join(t.TempDir(), "scan.lock"), time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runner.Run(ctx)
	}()

	deadline := time.After(2 * time.Second)
	for tasks.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("runner never performed the initial scan")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop after cancellation")
	}
}

func TestRunnerRefusesSecondInstance(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "scan.lock")
	scanner := NewScanner(&fakeTasks{}, &fakeDispatcher{}, nil)

	first := NewRunner(scanner, lockPath, time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(started)
		done <- first.Run(ctx)
	}()
	<-started
	time.Sleep(50 * time.Millisecond) // let the first runner take the lock

	second := NewRunner(scanner, lockPath, time.Hour, nil)
	quick, quickCancel := context.WithTimeout(context.Background(), time.Second)
	defer quickCancel()
	if err := second.Run(quick); err == nil || errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("second runner should refuse to start while the lock is held, got %v", err)
	}

	cancel()
	<-done
}
