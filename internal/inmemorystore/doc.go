// Package inmemorystore provides an ephemeral, thread-safe, in-memory store
// of fetched documents keyed by URI.
//
// # Purpose
//
// External model definitions often point at the same library document. The
// internalizer resolves each of them independently, so without a cache one
// run would download that document once per reference. A Store is created
// per run and discarded with it.
//
// # Concurrency Model
//
// The store uses sync.Map: keys are written once and read many times, which
// is the access pattern sync.Map is optimized for.
package inmemorystore
