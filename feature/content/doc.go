// Package content implements the content document collections (questions
// and puzzles) and the writer the bulk-import pipeline uses.
//
// # Writer
//
// The Writer creates exactly one document per non-duplicate item. Quiz
// questions are deduplicated against a run-scoped set of lowercased question
// texts preloaded from the store; the dedup scope is configurable (global or
// per-subtopic). Puzzles are never deduplicated. Every document stores both
// the taxonomy IDs and the display names captured at write time.
//
// # Deletion
//
// Deleting a question or puzzle triggers post-deletion reconciliation on the
// subtopic, topic, and category it referenced (see core/reconcile). Nodes
// that no longer exist are skipped.
package content
