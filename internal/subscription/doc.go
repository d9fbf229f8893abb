// Package subscription resolves which events a recipient wants delivered.
//
// Preferences are stored as per-recipient boolean flags keyed by a normalized
// event identifier (dots replaced with underscores; project keys additionally
// namespaced), falling back to a global default per key. Sets are computed
// fresh per dispatch and never persisted.
package subscription
