// Package discord is the delivery boundary: it posts rendered messages and
// their binary attachments to Discord-compatible webhook URLs over HTTP.
//
// Retry, backoff, and rate limiting are deliberately out of scope; callers
// treat a failed send as "this notification did not go out".
package discord
