package events

// ID names a domain event raised by the board application. Identifiers are
// opaque, stable tokens; category membership is the only structure derived
// from them.
type ID string

// Task lifecycle events.
const (
	TaskCreate         ID = "task.create"
	TaskUpdate         ID = "task.update"
	TaskClose          ID = "task.close"
	TaskOpen           ID = "task.open"
	TaskMoveColumn     ID = "task.move.column"
	TaskMovePosition   ID = "task.move.position"
	TaskMoveSwimlane   ID = "task.move.swimlane"
	TaskMoveProject    ID = "task.move.project"
	TaskAssigneeChange ID = "task.assignee_change"
	TaskOverdue        ID = "task.overdue"
	TaskUserMention    ID = "task.user.mention"
)

// Subtask lifecycle events.
const (
	SubtaskCreate ID = "subtask.create"
	SubtaskUpdate ID = "subtask.update"
	SubtaskDelete ID = "subtask.delete"
)

// Comment lifecycle events.
const (
	CommentCreate      ID = "comment.create"
	CommentUpdate      ID = "comment.update"
	CommentDelete      ID = "comment.delete"
	CommentUserMention ID = "comment.user.mention"
)

// File lifecycle events.
const (
	FileCreate ID = "task.file.create"
)

// Category groups event identifiers by the rendering rule that applies to them.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryTask
	CategorySubtask
	CategoryComment
	CategoryFile
)

func (c Category) String() string {
	switch c {
	case CategoryTask:
		return "task"
	case CategorySubtask:
		return "subtask"
	case CategoryComment:
		return "comment"
	case CategoryFile:
		return "file"
	default:
		return "unknown"
	}
}

var taskEvents = []ID{
	TaskCreate,
	TaskUpdate,
	TaskClose,
	TaskOpen,
	TaskMoveColumn,
	TaskMovePosition,
	TaskMoveSwimlane,
	TaskMoveProject,
	TaskAssigneeChange,
	TaskOverdue,
	TaskUserMention,
}

var subtaskEvents = []ID{
	SubtaskCreate,
	SubtaskUpdate,
	SubtaskDelete,
}

var commentEvents = []ID{
	CommentCreate,
	CommentUpdate,
	CommentDelete,
	CommentUserMention,
}

var fileEvents = []ID{
	FileCreate,
}

var categories = buildIndex()

func buildIndex() map[ID]Category {
	index := make(map[ID]Category)
	for _, id := range taskEvents {
		index[id] = CategoryTask
	}
	for _, id := range subtaskEvents {
		index[id] = CategorySubtask
	}
	for _, id := range commentEvents {
		index[id] = CategoryComment
	}
	for _, id := range fileEvents {
		index[id] = CategoryFile
	}
	return index
}

// CategoryOf classifies an event identifier. Identifiers outside the catalog
// report CategoryUnknown; callers treat those as "no special rendering rule".
func CategoryOf(id ID) Category {
	return categories[id]
}

// IsMemberOf reports whether id belongs to the given category.
func IsMemberOf(id ID, category Category) bool {
	return category != CategoryUnknown && categories[id] == category
}

// All returns every event identifier in the catalog, grouped by category in a
// stable order.
func All() []ID {
	all := make([]ID, 0, len(taskEvents)+len(subtaskEvents)+len(commentEvents)+len(fileEvents))
	all = append(all, taskEvents...)
	all = append(all, subtaskEvents...)
	all = append(all, commentEvents...)
	all = append(all, fileEvents...)
	return all
}

// ByCategory returns the identifiers belonging to one category, in catalog order.
func ByCategory(category Category) []ID {
	var src []ID
	switch category {
	case CategoryTask:
		src = taskEvents
	case CategorySubtask:
		src = subtaskEvents
	case CategoryComment:
		src = commentEvents
	case CategoryFile:
		src = fileEvents
	default:
		return nil
	}
	out := make([]ID, len(src))
	copy(out, src)
	return out
}
