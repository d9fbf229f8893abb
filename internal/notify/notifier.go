package notify

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"boardhook/internal/board"
	"boardhook/internal/events"
	"boardhook/internal/logging"
	"boardhook/internal/message"
	"boardhook/internal/subscription"
)

// webhookURLKey is the stored preference name holding a recipient's webhook
// target, with the usual global-setting fallback. Inherited from the host
// application.
const webhookURLKey = "discord_webhook_url"

// Sender delivers one rendered message to a webhook URL.
type Sender interface {
	Send(ctx context.Context, webhookURL string, msg message.Message) error
}

// ProjectLookup resolves a task's owning project record.
type ProjectLookup interface {
	ProjectByID(ctx context.Context, id int64) (board.Project, error)
}

// ActorSource reports the authenticated actor a dispatch is attributable to.
// A nil actor means the event was not raised inside a user session.
type ActorSource interface {
	CurrentActor(ctx context.Context) *message.Actor
}

// Notifier decides, per recipient, whether a raised event becomes an outbound
// message, renders it, and hands it to the delivery boundary. Every failure
// mode degrades to "this notification did not go out" and is logged; nothing
// escapes to the host event pipeline.
//
// A Notifier is stateless across calls, so concurrent dispatches need no
// coordination.
type Notifier struct {
	prefs    subscription.PreferenceStore
	resolver *subscription.Resolver
	projects ProjectLookup
	composer *message.Composer
	sender   Sender
	actors   ActorSource
	logger   *slog.Logger
}

// New wires a Notifier from its collaborators. actors may be nil when no
// session identity is available.
func New(
	prefs subscription.PreferenceStore,
	projects ProjectLookup,
	composer *message.Composer,
	sender Sender,
	actors ActorSource,
	logger *slog.Logger,
) *Notifier {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Notifier{
		prefs:    prefs,
		resolver: subscription.NewResolver(prefs),
		projects: projects,
		composer: composer,
		sender:   sender,
		actors:   actors,
		logger:   logger,
	}
}

// NotifyUser dispatches an event to a user recipient. No webhook configured
// or no matching subscription is a silent no-op.
func (n *Notifier) NotifyUser(ctx context.Context, user board.User, eventID events.ID, payload board.Payload) {
	ctx = logging.WithDispatchID(ctx, uuid.NewString())
	logger := logging.WithContext(ctx, n.logger).With(
		slog.String(logging.FieldEvent, string(eventID)),
		slog.String(logging.FieldRecipient, "user"),
	)

	webhook, err := n.prefs.GetUserMetadata(ctx, user.ID, webhookURLKey, "")
	if err != nil {
		logger.Error("webhook lookup failed", slog.Any("error", err))
		return
	}
	if strings.TrimSpace(webhook) == "" {
		return
	}
	if !n.resolver.ForUser(ctx, user.ID).Contains(eventID) {
		return
	}

	n.dispatch(ctx, logger, webhook, nil, eventID, payload)
}

// NotifyProject dispatches an event to a project recipient. No webhook
// configured or no matching subscription is a silent no-op.
func (n *Notifier) NotifyProject(ctx context.Context, project board.Project, eventID events.ID, payload board.Payload) {
	ctx = logging.WithDispatchID(ctx, uuid.NewString())
	logger := logging.WithContext(ctx, n.logger).With(
		slog.String(logging.FieldEvent, string(eventID)),
		slog.String(logging.FieldRecipient, "project"),
		slog.Int64(logging.FieldProjectID, project.ID),
	)

	webhook, err := n.prefs.GetProjectMetadata(ctx, project.ID, webhookURLKey, "")
	if err != nil {
		logger.Error("webhook lookup failed", slog.Any("error", err))
		return
	}
	if strings.TrimSpace(webhook) == "" {
		return
	}
	if !n.resolver.ForProject(ctx, project.ID).Contains(eventID) {
		return
	}

	n.dispatch(ctx, logger, webhook, &project, eventID, payload)
}

// dispatch fans a matched event out to the delivery boundary. The overdue
// batch event produces one message per carried task, each against the task's
// own project; a failed send must not stop the remaining tasks. fallback is
// the recipient's own project, used when the payload task cannot name one.
func (n *Notifier) dispatch(ctx context.Context, logger *slog.Logger, webhook string, fallback *board.Project, eventID events.ID, payload board.Payload) {
	if eventID == events.TaskOverdue && len(payload.Tasks) > 0 {
		for i := range payload.Tasks {
			task := payload.Tasks[i]
			single := payload
			single.Task = &task
			single.Tasks = nil
			project, ok := n.resolveProject(ctx, logger, &task, fallback)
			if !ok {
				continue
			}
			n.send(ctx, logger, webhook, project, eventID, single)
		}
		return
	}

	project, ok := n.resolveProject(ctx, logger, payload.Task, fallback)
	if !ok {
		return
	}
	n.send(ctx, logger, webhook, project, eventID, payload)
}

// resolveProject prefers the task's owning project record and falls back to
// the recipient project when lookup is impossible.
func (n *Notifier) resolveProject(ctx context.Context, logger *slog.Logger, task *board.Task, fallback *board.Project) (board.Project, bool) {
	if task != nil && task.ProjectID != 0 {
		project, err := n.projects.ProjectByID(ctx, task.ProjectID)
		if err == nil {
			return project, true
		}
		logger.Warn("project lookup failed",
			slog.Int64(logging.FieldTaskID, task.ID),
			slog.Int64(logging.FieldProjectID, task.ProjectID),
			slog.Any("error", err))
	}
	if fallback != nil {
		return *fallback, true
	}
	return board.Project{}, false
}

func (n *Notifier) send(ctx context.Context, logger *slog.Logger, webhook string, project board.Project, eventID events.ID, payload board.Payload) {
	var actor *message.Actor
	if n.actors != nil {
		actor = n.actors.CurrentActor(ctx)
	}

	msg := n.composer.Compose(project, eventID, payload, actor)
	if err := n.sender.Send(ctx, webhook, msg); err != nil {
		logger.Error("delivery failed",
			slog.Int64(logging.FieldProjectID, project.ID),
			slog.Any("error", err))
		return
	}
	logger.Debug("notification delivered", slog.Int64(logging.FieldProjectID, project.ID))
}
