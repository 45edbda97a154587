package inmemorystore

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutAndGet(t *testing.T) {
	s := New()
	ctx := context.Background()

	// Get a document that was never stored.
	data, ok := s.Get(ctx, "file:///a.hcl")
	assert.False(t, ok)
	assert.Nil(t, data)

	s.Put(ctx, "file:///a.hcl", []byte("first"))
	data, ok = s.Get(ctx, "file:///a.hcl")
	require.True(t, ok)
	assert.Equal(t, "first", string(data))

	// The first write wins.
	s.Put(ctx, "file:///a.hcl", []byte("second"))
	data, _ = s.Get(ctx, "file:///a.hcl")
	assert.Equal(t, "first", string(data))
	assert.Equal(t, 1, s.Len())
}

func TestGetReturnsCopies(t *testing.T) {
	s := New()
	ctx := context.Background()
	src := []byte("model")
	s.Put(ctx, "mem://m", src)
	src[0] = 'X'

	data, _ := s.Get(ctx, "mem://m")
	data[1] = 'X'

	again, _ := s.Get(ctx, "mem://m")
	assert.Equal(t, "model", string(again))
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	ctx := context.Background()
	var wg sync.WaitGroup
	numGoroutines := 50

	for i := range numGoroutines {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			uri := fmt.Sprintf("file:///doc-%d.hcl", i%10)
			s.Put(ctx, uri, []byte(uri))
			data, ok := s.Get(ctx, uri)
			assert.True(t, ok)
			assert.Equal(t, uri, string(data))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 10, s.Len())
}
