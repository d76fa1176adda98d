// Package reconcile maintains the denormalized aggregates on taxonomy nodes:
// quiz/puzzle counts and the derived publish flag.
//
// # Why this exists
//
// Content rows carry both taxonomy foreign keys and denormalized display
// names, and taxonomy nodes carry denormalized content counts. The store
// offers no transactions spanning those writes, so the aggregates drift in
// production. This package is the single place that recomputes them from
// ground truth.
//
// # Modes
//
// 1. Post-import (Recount): invoked once per taxonomy node touched during a
// bulk import, writing quizCount and puzzleCount together.
//
// 2. Post-deletion (ReconcileAfterDelete): invoked per affected node after
// content deletion; additionally unpublishes nodes left with no content, and
// silently skips nodes that have themselves been deleted in the meantime.
//
// 3. Repair (BuildPlan/ApplyPlan): full-store scan producing a plan of
// fix_count, unpublish_empty, and sync_names actions, applied only with
// explicit confirmation. This is the scheduled/on-demand safety net for the
// drift the two online modes cannot prevent across concurrent runs.
//
// # Consistency
//
// Every operation is a read-then-write sequence that is individually atomic
// but not atomic as a group: counts are correct as of the query snapshot,
// i.e. eventually consistent. The repair plan cache (GetOrBuildPlan) uses a
// TTL plus singleflight to keep the admin report endpoint cheap.
package reconcile
