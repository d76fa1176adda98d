// Package importer implements the bulk-import pipeline for quiz questions
// and puzzles.
//
// # Pipeline
//
// One run moves through Idle → LoadingHierarchy → ProcessingRows →
// ReconcilingCounts → Done:
//
//  1. LoadingHierarchy: bulk-fetch the full taxonomy and existing question
//     texts once; build the per-run caches. A failure here aborts the run.
//  2. ProcessingRows: rows are processed strictly sequentially through
//     RowNormalizer → TaxonomyResolver → ContentWriter. Any per-row error is
//     absorbed, counted as skipped, and processing continues.
//  3. ReconcilingCounts: recompute counts once per distinct touched
//     subtopic/topic.
//  4. Done: report {saved, skipped, total}.
//
// # Row source
//
// The pipeline consumes []Row (key→loosely-typed-cell maps); where the rows
// come from is not its concern. ReadRows adapts a CSV stream into that shape,
// and WriteTemplate produces the fixed-header template content editors
// download.
package importer
