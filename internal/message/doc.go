// Package message renders matched board events into rich chat messages.
//
// The Composer selects a headline template by event, substitutes the linked
// task title, appends the category-specific body (subtask status line, task
// description, comment text, or image thumbnail), and assembles the embed
// plus its named binary attachments. Composing twice from identical inputs
// yields identical output apart from the timestamp.
package message
