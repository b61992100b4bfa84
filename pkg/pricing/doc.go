// Package pricing stages price updates in batches and publishes them
// atomically into a shared in-memory price table.
//
// A batch is created open, receives any number of concurrent uploads and is
// then either committed (merged into the global table) or discarded. Both
// outcomes retire the batch, after which its id reports ErrBatchNotFound.
// Conflicts on the same price id are settled by Resolve: the strictly later
// AsOf wins and ties keep the value already stored.
package pricing
