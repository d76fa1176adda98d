// Package taxonomy implements the four-level content taxonomy
// (Feature → Category → Topic → Subtopic) and its get-or-create resolver.
//
// # Resolver
//
// The Resolver is the heart of the bulk-import engine. It resolves or lazily
// creates taxonomy nodes with case-insensitive dedup against both name and
// label, scoped to the parent node. It operates against a ResolverContext
// snapshot owned by a single pipeline run, which is what makes repeated rows
// in one batch reuse freshly created nodes instead of duplicating them.
//
// # Consistency model
//
// There are no transactions and no locks. Within one run, correctness comes
// from processing rows sequentially and updating the snapshot synchronously
// after each write. Across concurrent runs nothing prevents two imports from
// independently creating the same node; that is an accepted limitation the
// core/reconcile repair tooling can detect after the fact.
//
// # Components
//
//   - Resolver / ResolverContext: per-run get-or-create lookups.
//   - Service: admin CRUD over the taxonomy collections.
//   - Handler: HTTP endpoints under /taxonomy.
package taxonomy
