// Package async composes blocking steps into ordered or looping workflows and
// adapts multi-shot event sources into single-shot results.
//
//   - Sequence threads a value through steps strictly in order.
//   - While repeats a body until its condition turns false.
//   - Emitter, AwaitEvent and AwaitStream turn "first end/error event" into a
//     plain (value, error) return, detaching listeners afterwards.
//
// Retry with backoff lives in package retry.
package async
