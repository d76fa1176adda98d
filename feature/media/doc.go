// Package media implements puzzle image uploads to object storage (S3/MinIO).
// The returned public URL goes into the puzzle's imageUrl field; serving the
// image is the CDN's business, not this service's.
package media
