package message

import (
	"fmt"

	"boardhook/internal/events"
)

// titleTemplate holds the two phrasings of an event headline. Both variants
// contain the literal phrase "the task" so the composer can substitute the
// bold task title and rewrite it into a link.
type titleTemplate struct {
	withAuthor    string
	withoutAuthor string
}

var titles = map[events.ID]titleTemplate{
	events.TaskCreate:         {"%s created the task", "the task was created"},
	events.TaskUpdate:         {"%s updated the task", "the task was updated"},
	events.TaskClose:          {"%s closed the task", "the task was closed"},
	events.TaskOpen:           {"%s reopened the task", "the task was reopened"},
	events.TaskMoveColumn:     {"%s moved the task to another column", "the task was moved to another column"},
	events.TaskMovePosition:   {"%s moved the task to another position", "the task was moved to another position"},
	events.TaskMoveSwimlane:   {"%s moved the task to another swimlane", "the task was moved to another swimlane"},
	events.TaskMoveProject:    {"%s moved the task to another project", "the task was moved to another project"},
	events.TaskAssigneeChange: {"%s changed the assignee of the task", "the assignee of the task changed"},
	events.TaskOverdue:        {"the task is overdue", "the task is overdue"},
	events.TaskUserMention:    {"%s mentioned you in the task", "you were mentioned in the task"},

	events.SubtaskCreate: {"%s created a subtask of the task", "a subtask of the task was created"},
	events.SubtaskUpdate: {"%s updated a subtask of the task", "a subtask of the task was updated"},
	events.SubtaskDelete: {"%s removed a subtask of the task", "a subtask of the task was removed"},

	events.CommentCreate:      {"%s commented on the task", "a new comment was posted on the task"},
	events.CommentUpdate:      {"%s updated a comment on the task", "a comment on the task was updated"},
	events.CommentDelete:      {"%s removed a comment on the task", "a comment on the task was removed"},
	events.CommentUserMention: {"%s mentioned you in a comment on the task", "you were mentioned in a comment on the task"},

	events.FileCreate: {"%s attached a file to the task", "a file was attached to the task"},
}

var defaultTitle = titleTemplate{"%s made a change to the task", "the task received an update"}

// titleFor renders the headline for an event, attributing it to author when
// one is present.
func titleFor(id events.ID, author string) string {
	tpl, ok := titles[id]
	if !ok {
		tpl = defaultTitle
	}
	if author == "" {
		return tpl.withoutAuthor
	}
	if tpl.withAuthor == tpl.withoutAuthor {
		return tpl.withoutAuthor
	}
	return fmt.Sprintf(tpl.withAuthor, author)
}
