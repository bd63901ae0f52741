// Package lru provides a generic, size-aware least-recently-used cache.
//
// Key properties:
//
//   - Capacity is measured in weight units, not entries. Items weigh one
//     unit by default; Config.Weigher or AddWeight assign other weights.
//   - Exact LRU eviction: a map indexes entries and an intrusive doubly-linked
//     list orders them from least to most recently used.
//   - Replacing a key releases its old weight before the new one is checked.
//   - Add is all-or-nothing. ErrItemTooLarge and ErrCacheTooSmall leave the
//     cache as it was.
//   - Hit, miss and eviction counts are published to a go-metrics registry.
//
// # Configuration
//
// Config is a plain struct (no builder pattern). Set the fields you care about
// and pass it to New. Internally, New calls Config.Build() to validate and
// normalize fields.
//
// # Concurrency
//
// A Cache is meant to be owned by a single goroutine. Callers that share one
// must serialize access themselves, for example with a sync.Mutex around
// every call.
package lru
