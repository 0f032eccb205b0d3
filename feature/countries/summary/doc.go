// Package summary produces the summary image served at /countries/image.
//
// After every successful refresh the Trigger reads the total row count, the
// top N countries by estimated GDP (NULLs last) and the latest refresh time,
// hands them to a Renderer and stores the result through an ArtifactStore
// under one fixed object name, overwriting the previous image.
//
// The refresh has already committed when the Trigger runs, so Run never
// returns an error: failures are logged, counted in
// countries_summary_failures_total and dropped.
//
// Artifact stores:
//
//   - BucketStore: object storage through core/storage (MinIO, S3).
//   - MemoryStore: process memory, used when no storage endpoint is set.
package summary
