package parallel

import (
	"hash/fnv"
	"sort"
	"sync"
)

// ShardedMap is a concurrent map keyed by location ID and partitioned into
// independently locked shards.
//
// The key→shard assignment is a stable hash, so a given key always lives in
// the same shard across the life of the map. Apply exploits this: a batch
// of keys is grouped by owning shard and each group runs on a single
// worker, so no two workers ever contend on one shard and no global lock
// exists.
type ShardedMap struct {
	shards []mapShard
}

// mapShard pairs one lock with one slice of the key space.
type mapShard struct {
	mu    sync.RWMutex
	items map[string]interface{}
}

// NewShardedMap returns a map split into the given number of shards.
// Non-positive values select one shard per worker of a default Pool.
// Complexity: O(shards).
func NewShardedMap(shards int) *ShardedMap {
	if shards <= 0 {
		shards = NewPool(0).Workers()
	}
	m := &ShardedMap{shards: make([]mapShard, shards)}
	for i := range m.shards {
		m.shards[i].items = make(map[string]interface{})
	}

	return m
}

// Owner returns the index of the shard holding key. The assignment is
// stable across processes and runs (FNV-1a, unseeded).
func (m *ShardedMap) Owner(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))

	return int(h.Sum32() % uint32(len(m.shards)))
}

// Get returns the value stored under key and whether it was present.
func (m *ShardedMap) Get(key string) (interface{}, bool) {
	s := &m.shards[m.Owner(key)]
	s.mu.RLock()
	v, ok := s.items[key]
	s.mu.RUnlock()

	return v, ok
}

// Set stores value under key, replacing any previous value.
func (m *ShardedMap) Set(key string, value interface{}) {
	s := &m.shards[m.Owner(key)]
	s.mu.Lock()
	s.items[key] = value
	s.mu.Unlock()
}

// Delete removes key if present.
func (m *ShardedMap) Delete(key string) {
	s := &m.shards[m.Owner(key)]
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
}

// Len returns the total number of stored keys across all shards.
func (m *ShardedMap) Len() int {
	total := 0
	for i := range m.shards {
		m.shards[i].mu.RLock()
		total += len(m.shards[i].items)
		m.shards[i].mu.RUnlock()
	}

	return total
}

// Keys returns every stored key in sorted order, for deterministic sweeps.
func (m *ShardedMap) Keys() []string {
	keys := make([]string, 0, m.Len())
	for i := range m.shards {
		m.shards[i].mu.RLock()
		for k := range m.shards[i].items {
			keys = append(keys, k)
		}
		m.shards[i].mu.RUnlock()
	}
	sort.Strings(keys)

	return keys
}

// Apply invokes fn(key) once per key, grouping keys by owning shard and
// running each group as a unit on the pool. Within one call no shard is
// touched by more than one worker, so fn may freely Get and Set records
// for its own key without contending with sibling updates.
//
// A nil pool, or a batch that lands in a single shard, runs inline.
// Apply blocks until every fn has returned.
func (m *ShardedMap) Apply(p *Pool, keys []string, fn func(key string)) {
	if len(keys) == 0 {
		return
	}

	// 1) Route each key to its owning shard.
	groups := make([][]string, len(m.shards))
	for _, k := range keys {
		o := m.Owner(k)
		groups[o] = append(groups[o], k)
	}

	// 2) Keep only the shards that actually received keys.
	active := groups[:0]
	for _, grp := range groups {
		if len(grp) > 0 {
			active = append(active, grp)
		}
	}

	// 3) One group: no parallelism to win, run inline.
	if p == nil || len(active) == 1 {
		for _, grp := range active {
			for _, k := range grp {
				fn(k)
			}
		}

		return
	}

	// 4) One task per owning shard; the pool barrier publishes all updates.
	p.ForEach(len(active), func(i int) {
		for _, k := range active[i] {
			fn(k)
		}
	})
}
