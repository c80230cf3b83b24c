// Package logging provides concrete implementations of the pubfs.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to a writer
//   - NullLogger: Discards all messages (the CLI uses it under --quiet)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
