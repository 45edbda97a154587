package comp

import (
	"context"

	"github.com/specialistvlad/compflat/internal/sbml"
	"github.com/viant/afs"
)

// Fetcher retrieves the raw bytes of an external document.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

// Decoder parses a fetched document. uri is where the bytes came from and
// is only used in error messages.
type Decoder interface {
	Decode(data []byte, uri string) (*sbml.Document, error)
}

// AFSFetcher fetches documents through an abstract file storage service, so
// any scheme registered with afs (file, mem, http, cloud storage) works.
type AFSFetcher struct {
	fs afs.Service
}

// NewAFSFetcher creates a fetcher backed by the default afs service.
func NewAFSFetcher() *AFSFetcher {
	return &AFSFetcher{fs: afs.New()}
}

func (a *AFSFetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	return a.fs.DownloadWithURL(ctx, uri)
}

// DocumentStore caches fetched documents by URI.
type DocumentStore interface {
	Get(ctx context.Context, uri string) ([]byte, bool)
	Put(ctx context.Context, uri string, data []byte)
}

// CachingFetcher serves repeated requests for a URI from a store. Failed
// fetches are not cached.
type CachingFetcher struct {
	next  Fetcher
	store DocumentStore
}

// NewCachingFetcher wraps next with store.
func NewCachingFetcher(next Fetcher, store DocumentStore) *CachingFetcher {
	return &CachingFetcher{next: next, store: store}
}

func (c *CachingFetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	if data, ok := c.store.Get(ctx, uri); ok {
		return data, nil
	}
	data, err := c.next.Fetch(ctx, uri)
	if err != nil {
		return nil, err
	}
	c.store.Put(ctx, uri, data)
	return data, nil
}
