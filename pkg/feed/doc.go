// Package feed drives a price batch server from the producer side: it opens
// batches, uploads prices in chunks, and closes each batch with a commit or
// a discard. Plans come from YAML feed files or from the synthetic generator.
package feed
