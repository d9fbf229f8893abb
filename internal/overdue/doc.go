// Package overdue scans the store for tasks past their due date and raises
// the overdue batch event, one notification per owning project. A lock file
// keeps at most one scanner per data directory.
package overdue
