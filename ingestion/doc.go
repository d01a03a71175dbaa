// Package ingestion provides pipeline orchestration for loading grants
// into the catalog.
//
// The Pipeline type manages the ingestion workflow for grants, including:
//   - Validating and adding grants to storage
//   - Generating embeddings asynchronously
//
// Embedding is performed on a worker pool so large catalog loads do not
// block on the model. Errors during async processing are logged but do
// not fail the ingestion operation.
package ingestion
