// Package notify orchestrates the event-to-message pipeline: it resolves a
// recipient's webhook target and subscription set, renders matched events via
// the message composer, and hands finished payloads to the delivery boundary.
//
// Exactly one outbound call is made per matched (event, recipient) pair; the
// overdue batch event expands to one call per carried task. All collaborators
// are injected at construction so the pipeline is testable with fakes.
package notify
