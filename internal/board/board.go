package board

// SubtaskStatus mirrors the host application's subtask status values.
type SubtaskStatus int

const (
	SubtaskTodo       SubtaskStatus = 0
	SubtaskInProgress SubtaskStatus = 1
	SubtaskDone       SubtaskStatus = 2
)

// Project identifies a board project. Projects can own a webhook target and
// per-event subscription preferences.
type Project struct {
	ID   int64
	Name string
}

// User identifies a board user. AvatarPath is relative to the application's
// attachment root.
type User struct {
	ID         int64
	Name       string
	AvatarPath string
}

// Task is the record carried by task lifecycle events. ProjectName is the
// denormalized owning project name as the host ships it alongside the task.
type Task struct {
	ID          int64
	ProjectID   int64
	Title       string
	Description string
	ProjectName string
	DateDue     int64
}

// Subtask is the record carried by subtask lifecycle events.
type Subtask struct {
	ID     int64
	TaskID int64
	Title  string
	Status SubtaskStatus
}

// Comment is the record carried by comment lifecycle events.
type Comment struct {
	ID      int64
	TaskID  int64
	Comment string
}

// File is the record carried by file lifecycle events. Path is relative to the
// attachment root; IsImage controls thumbnail attachment.
type File struct {
	ID      int64
	TaskID  int64
	Name    string
	Path    string
	IsImage bool
}

// Payload is the event data accompanying a raised event. The fields required
// by an event's rendering category are always populated when that category's
// event fires; the rest stay zero. Tasks is populated only for the overdue
// batch event.
type Payload struct {
	ProjectName string
	Task        *Task
	Subtask     *Subtask
	Comment     *Comment
	File        *File
	Tasks       []Task
}
