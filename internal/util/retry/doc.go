// Package retry retries operations that fail transiently, doubling the delay
// between attempts.
//
// [Do] is used by the registry client so that a flaky network connection
// does not abort a setup wizard while it loads choices.
package retry
