// Package store persists boardhook state in SQLite and mirrors the host
// application's configuration shape: a global settings table plus per-project
// and per-user metadata tables, alongside the project and task records the
// dispatcher and overdue scanner read.
//
// Metadata reads fall back to the global setting of the same name, so callers
// express the recipient-override-then-global rule with a single lookup.
// Schema changes bump the version in schema.go; the database is recreated by
// deleting the file.
package store
