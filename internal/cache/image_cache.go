package cache

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
)

var _ Cache = (*ImageCache)(nil)

// ImageCache holds encoded images, bounded by their total size in bytes.
type ImageCache struct {
	mainCache *ristretto.Cache
}

func NewImageCache(maxBytes int64) (*ImageCache, error) {
	mainCache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,      // ~10x the number of images expected to be cached
		MaxCost:     maxBytes, // cost of an entry is its length
		BufferItems: 64,       // number of keys per Get buffer

		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %s", err)
	}

	return &ImageCache{
		mainCache: mainCache,
	}, nil
}

func (ic *ImageCache) Get(key string) ([]byte, bool) {
	val, ok := ic.mainCache.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := val.([]byte)
	return b, ok
}

// Set is asynchronous; the value may not be visible to Get right away.
func (ic *ImageCache) Set(key string, value []byte) bool {
	return ic.mainCache.Set(key, value, int64(len(value)))
}

// Wait blocks until pending writes are applied.
func (ic *ImageCache) Wait() {
	ic.mainCache.Wait()
}

func (ic *ImageCache) Clear() {
	ic.mainCache.Clear()
}

func (ic *ImageCache) Close() {
	ic.mainCache.Close()
}
