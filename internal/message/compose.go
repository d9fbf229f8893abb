package message

import (
	"log/slog"
	"strings"
	"time"

	"boardhook/internal/board"
	"boardhook/internal/events"
	"boardhook/internal/files"
	"boardhook/internal/links"
	"boardhook/internal/logging"
)

// Marker and body glyphs inherited from the host application's message style.
const (
	titleMarker     = "📝 "
	subtaskIndent   = "\n  ↳ "
	descriptionMark = "\n✏️ "
	commentMark     = "\n💬 "

	subtaskDoneGlyph       = "❌ "
	subtaskInProgressGlyph = "🕘 "
)

// descriptionEvents are the task events whose rendering shows the task
// description.
var descriptionEvents = map[events.ID]struct{}{
	events.TaskCreate:      {},
	events.TaskUpdate:      {},
	events.TaskUserMention: {},
}

// Option customizes a Composer.
type Option func(*Composer)

// WithClock overrides the timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Composer) {
		c.now = now
	}
}

// Composer renders matched events into delivery-ready messages. Composition
// is a pure function of its inputs except for the thumbnail byte read and the
// embed timestamp.
type Composer struct {
	files  files.Store
	links  links.Builder
	logger *slog.Logger
	now    func() time.Time
}

// NewComposer builds a Composer over the given collaborators.
func NewComposer(fileStore files.Store, linkBuilder links.Builder, logger *slog.Logger, opts ...Option) *Composer {
	if logger == nil {
		logger = logging.NewNop()
	}
	c := &Composer{
		files:  fileStore,
		links:  linkBuilder,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose renders one message for the given event against the owning project.
// actor is the attributable authenticated user, or nil. Payload state is
// never mutated.
func (c *Composer) Compose(project board.Project, eventID events.ID, payload board.Payload, actor *Actor) Message {
	task := payload.Task
	if task == nil {
		task = &board.Task{}
	}

	var author string
	var attachments []Attachment
	if actor != nil {
		author = actor.Name
		if len(actor.Avatar) > 0 {
			attachments = append(attachments, Attachment{
				Name:     avatarFieldName,
				Filename: avatarFilename,
				MIME:     pngMIME,
				Data:     actor.Avatar,
			})
		}
	}

	title := titleFor(eventID, author)
	taskName := "**" + task.Title + "**"
	title = strings.Replace(title, "the task", taskName, 1)
	if author != "" {
		title = titleMarker + title
	}

	taskLink := "[" + taskName + "](" + c.links.TaskURL(task.ID, project.ID) + ")"
	body := strings.Replace(title, taskName, taskLink, 1)

	var thumbnail *EmbedThumbnail
	switch events.CategoryOf(eventID) {
	case events.CategorySubtask:
		if sub := payload.Subtask; sub != nil {
			body += subtaskIndent + subtaskGlyph(sub.Status) + sub.Title
		}
	case events.CategoryTask:
		if _, ok := descriptionEvents[eventID]; ok && task.Description != "" {
			body += descriptionMark + task.Description
		}
	case events.CategoryComment:
		if comment := payload.Comment; comment != nil {
			body += commentMark + comment.Comment
		}
	case events.CategoryFile:
		if att, ok := c.thumbnailFor(eventID, payload.File); ok {
			attachments = append(attachments, att)
			thumbnail = &EmbedThumbnail{URL: thumbnailAttachmentRef}
		}
	}

	projectName := payload.ProjectName
	if projectName == "" {
		projectName = task.ProjectName
	}

	embed := Embed{
		Title:       "**[" + projectName + "]** " + title,
		Type:        embedType,
		Description: body,
		Timestamp:   c.now().Format(time.RFC3339),
		Color:       embedColor,
		Thumbnail:   thumbnail,
	}
	if author != "" {
		embedAuthor := &EmbedAuthor{Name: author}
		if len(attachments) > 0 && attachments[0].Name == avatarFieldName {
			embedAuthor.IconURL = avatarAttachmentRef
		}
		embed.Author = embedAuthor
	}

	return Message{
		Username:    senderName,
		AvatarURL:   senderAvatarURL,
		Embeds:      []Embed{embed},
		Attachments: attachments,
	}
}

// thumbnailFor reads image bytes for a file-create event. Non-image files and
// unreadable paths produce no attachment; a failed read degrades to sending
// the message without the thumbnail.
func (c *Composer) thumbnailFor(eventID events.ID, file *board.File) (Attachment, bool) {
	if eventID != events.FileCreate || file == nil || !file.IsImage {
		return Attachment{}, false
	}
	data, err := c.files.ReadBytes(file.Path)
	if err != nil {
		c.logger.Warn("thumbnail read failed, sending without attachment",
			slog.String("path", file.Path),
			slog.Any("error", err))
		return Attachment{}, false
	}
	return Attachment{
		Name:     thumbnailFieldName,
		Filename: thumbnailFilename,
		MIME:     pngMIME,
		Data:     data,
	}, true
}

func subtaskGlyph(status board.SubtaskStatus) string {
	switch status {
	case board.SubtaskDone:
		return subtaskDoneGlyph
	case board.SubtaskInProgress:
		return subtaskInProgressGlyph
	default:
		return ""
	}
}
