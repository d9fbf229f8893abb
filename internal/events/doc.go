// Package events enumerates the board event identifiers that can trigger
// notifications and groups them into the four rendering categories.
//
// The catalog is a fixed compile-time table. Category membership never changes
// at runtime, so classification cannot fail; unknown identifiers simply map to
// CategoryUnknown and render with the base title only.
package events
