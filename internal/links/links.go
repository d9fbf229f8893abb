// Package links builds canonical board URLs for rendered messages.
package links

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Builder produces absolute URLs pointing at the host application.
type Builder interface {
	TaskURL(taskID, projectID int64) string
}

// BaseURLBuilder builds task view URLs under a fixed application base URL,
// using the host's controller/action query layout.
type BaseURLBuilder struct {
	base string
}

// NewBuilder returns a Builder rooted at baseURL. A trailing slash on the base
// is tolerated.
func NewBuilder(baseURL string) *BaseURLBuilder {
	return &BaseURLBuilder{base: strings.TrimRight(strings.TrimSpace(baseURL), "/")}
}

// TaskURL returns the canonical task view URL for the given task and project.
func (b *BaseURLBuilder) TaskURL(taskID, projectID int64) string {
	query := url.Values{}
	query.Set("controller", "TaskViewController")
	query.Set("action", "show")
	query.Set("task_id", strconv.FormatInt(taskID, 10))
	query.Set("project_id", strconv.FormatInt(projectID, 10))
	return fmt.Sprintf("%s/?%s", b.base, query.Encode())
}
