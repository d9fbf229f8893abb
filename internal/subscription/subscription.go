package subscription

import (
	"context"
	"strings"

	"boardhook/internal/events"
)

// Enabled is the sentinel preference value marking an event as subscribed.
const Enabled = "1"

// projectKeyPrefix namespaces project-scoped subscription keys in the
// metadata store. User-scoped keys carry no prefix; both shapes are inherited
// from the host application and must not change, or existing installations
// lose their preferences.
const projectKeyPrefix = "Discord_"

// PreferenceStore reads recipient-scoped preference values with fallback to a
// global default for the same key.
type PreferenceStore interface {
	GetProjectMetadata(ctx context.Context, projectID int64, name, fallback string) (string, error)
	GetUserMetadata(ctx context.Context, userID int64, name, fallback string) (string, error)
}

// Set holds the event identifiers a recipient wants delivered.
type Set map[events.ID]struct{}

// Contains reports whether the set includes id.
func (s Set) Contains(id events.ID) bool {
	_, ok := s[id]
	return ok
}

// Resolver computes subscription sets from stored preferences. Resolution is
// total: lookup failures degrade to "not subscribed" and are never propagated.
type Resolver struct {
	prefs PreferenceStore
}

// NewResolver builds a Resolver over the given preference store.
func NewResolver(prefs PreferenceStore) *Resolver {
	return &Resolver{prefs: prefs}
}

// ProjectKey returns the stored preference key for a project-scoped event
// subscription.
func ProjectKey(id events.ID) string {
	return projectKeyPrefix + normalize(id)
}

// UserKey returns the stored preference key for a user-scoped event
// subscription.
func UserKey(id events.ID) string {
	return normalize(id)
}

func normalize(id events.ID) string {
	return strings.ReplaceAll(string(id), ".", "_")
}

// ForProject resolves the subscription set for a project across the whole
// event catalog.
func (r *Resolver) ForProject(ctx context.Context, projectID int64) Set {
	set := make(Set)
	for _, id := range events.All() {
		value, err := r.prefs.GetProjectMetadata(ctx, projectID, ProjectKey(id), "")
		if err != nil {
			continue
		}
		if value == Enabled {
			set[id] = struct{}{}
		}
	}
	return set
}

// ForUser resolves the subscription set for a user. User-level preferences
// only exist at task granularity, so only task lifecycle events are consulted.
func (r *Resolver) ForUser(ctx context.Context, userID int64) Set {
	set := make(Set)
	for _, id := range events.ByCategory(events.CategoryTask) {
		value, err := r.prefs.GetUserMetadata(ctx, userID, UserKey(id), "")
		if err != nil {
			continue
		}
		if value == Enabled {
			set[id] = struct{}{}
		}
	}
	return set
}
