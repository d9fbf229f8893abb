// Package board defines the host application records that ride along with
// raised events: tasks, subtasks, comments, file attachments, projects, and
// users. Payloads are immutable for the duration of a dispatch; nothing in
// this repository mutates them.
package board
