// Package models defines the GORM models for content documents (questions
// and puzzles) and the canonical Item a spreadsheet row normalizes into.
package models
