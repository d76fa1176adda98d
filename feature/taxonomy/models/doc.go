// Package models defines the GORM models for the four-level taxonomy:
// Feature → Category → Topic → Subtopic.
//
// Category, Topic and Subtopic carry denormalized quiz/puzzle counts and a
// publish flag. These are maintained by core/reconcile, never by triggers or
// transactions; see that package for the consistency model.
package models
