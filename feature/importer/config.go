package importer

// Config holds configuration for the import pipeline.
type Config struct {
	// DedupScope controls question dedup: "global" (the same wording cannot
	// exist twice anywhere) or "subtopic" (reuse across subtopics allowed).
	DedupScope string `mapstructure:"dedup_scope" default:"global"`
}
