package cache

import "sync"

var _ Cache = (*MapCache)(nil)

// MapCache is an unbounded map backed cache for tests.
type MapCache struct {
	cache map[string][]byte
	mutex sync.Mutex
	sets  int
}

func NewMapCache() *MapCache {
	return &MapCache{
		cache: make(map[string][]byte),
	}
}

func (mc *MapCache) Get(key string) ([]byte, bool) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	val, ok := mc.cache[key]
	return val, ok
}

func (mc *MapCache) Set(key string, value []byte) bool {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	mc.sets++
	mc.cache[key] = value
	return true
}

// Sets returns how many times Set was called.
func (mc *MapCache) Sets() int {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	return mc.sets
}

func (mc *MapCache) Clear() {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	mc.cache = make(map[string][]byte)
}
