package overdue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"

	"boardhook/internal/board"
	"boardhook/internal/events"
	"boardhook/internal/logging"
)

// TaskSource lists active tasks whose due date has passed.
type TaskSource interface {
	OverdueTasks(ctx context.Context, now time.Time) ([]board.Task, error)
}

// Dispatcher is the notification entry point the scanner raises events into.
type Dispatcher interface {
	NotifyProject(ctx context.Context, project board.Project, eventID events.ID, payload board.Payload)
}

// Scanner periodically raises the overdue batch event, one per project that
// has overdue tasks. The host application normally drives this from a cron
// job; the scanner replaces that when boardhook runs standalone.
type Scanner struct {
	tasks    TaskSource
	notifier Dispatcher
	logger   *slog.Logger
	now      func() time.Time
}

// NewScanner builds a Scanner over the given collaborators.
func NewScanner(tasks TaskSource, notifier Dispatcher, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Scanner{tasks: tasks, notifier: notifier, logger: logger, now: time.Now}
}

// ScanOnce fetches overdue tasks and dispatches one batch notification per
// owning project. Dispatch outcomes surface through the notifier's own
// logging; ScanOnce only fails when the task source does.
func (s *Scanner) ScanOnce(ctx context.Context) error {
	tasks, err := s.tasks.OverdueTasks(ctx, s.now())
	if err != nil {
		return fmt.Errorf("list overdue tasks: %w", err)
	}
	if len(tasks) == 0 {
		return nil
	}

	for _, group := range groupByProject(tasks) {
		project := board.Project{ID: group[0].ProjectID, Name: group[0].ProjectName}
		s.logger.Info("raising overdue notification",
			slog.Int64(logging.FieldProjectID, project.ID),
			slog.Int("tasks", len(group)))
		s.notifier.NotifyProject(ctx, project, events.TaskOverdue, board.Payload{
			ProjectName: project.Name,
			Tasks:       group,
		})
	}
	return nil
}

// groupByProject splits tasks into per-project batches, preserving the source
// order within and across groups.
func groupByProject(tasks []board.Task) [][]board.Task {
	index := make(map[int64]int)
	var groups [][]board.Task
	for _, task := range tasks {
		pos, ok := index[task.ProjectID]
		if !ok {
			pos = len(groups)
			index[task.ProjectID] = pos
			groups = append(groups, nil)
		}
		groups[pos] = append(groups[pos], task)
	}
	return groups
}

// Runner drives a Scanner on an interval and enforces single-instance
// execution with a lock file.
type Runner struct {
	scanner  *Scanner
	lock     *flock.Flock
	interval time.Duration
	logger   *slog.Logger
}

// NewRunner builds a Runner around scanner using the given lock file path.
func NewRunner(scanner *Scanner, lockPath string, interval time.Duration, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		scanner:  scanner,
		lock:     flock.New(lockPath),
		interval: interval,
		logger:   logger,
	}
}

// Run scans immediately and then on every interval tick until ctx is
// cancelled. It refuses to start when another instance holds the lock.
func (r *Runner) Run(ctx context.Context) error {
	locked, err := r.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire scanner lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("overdue scanner already running (lock %s held)", r.lock.Path())
	}
	defer func() {
		if err := r.lock.Unlock(); err != nil {
			r.logger.Warn("release scanner lock failed", slog.Any("error", err))
		}
	}()

	if err := r.scanner.ScanOnce(ctx); err != nil {
		r.logger.Error("overdue scan failed", slog.Any("error", err))
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.scanner.ScanOnce(ctx); err != nil {
				r.logger.Error("overdue scan failed", slog.Any("error", err))
			}
		}
	}
}
