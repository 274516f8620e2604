package motion

import (
	"math"
	"sync"

	"github.com/mitchellh/hashstructure/v2"
	"github.com/pkg/errors"

	"github.com/viam-labs/linkage/kinematics"
	"github.com/viam-labs/linkage/mechanism"
)

// Driving values are quantized to this many radians in cache keys, so
// angles recomputed with float noise still hit.
const keyQuantum = 1e-9

// Cache memoizes solved poses keyed by mechanism identity and driving
// value. The cache is owned by the caller and safe for concurrent use;
// solvers never consult one on their own.
type Cache struct {
	mu      sync.RWMutex
	entries map[uint64]*kinematics.State
}

// NewCache returns an empty pose cache.
func NewCache() *Cache {
	return &Cache{entries: map[uint64]*kinematics.State{}}
}

type cacheKey struct {
	Type    mechanism.Type
	Links   map[string]float64
	Driving int64
}

// Key derives the cache key for one pose from the mechanism's type, its
// link lengths, and the driving value.
func (c *Cache) Key(mech mechanism.Mechanism, drivingValue float64) (uint64, error) {
	links := map[string]float64{}
	for _, link := range mech.Links() {
		links[link.Name] = link.Length
	}
	key, err := hashstructure.Hash(cacheKey{
		Type:    mech.Type(),
		Links:   links,
		Driving: int64(math.Round(drivingValue / keyQuantum)),
	}, hashstructure.FormatV2, nil)
	if err != nil {
		return 0, errors.Wrap(err, "cannot hash cache key")
	}
	return key, nil
}

// Get returns the cached pose for the key, if any.
func (c *Cache) Get(key uint64) (*kinematics.State, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	st, ok := c.entries[key]
	return st, ok
}

// Put stores a pose under the key, replacing any existing entry.
func (c *Cache) Put(key uint64, st *kinematics.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = st
}

// Invalidate removes one entry.
func (c *Cache) Invalidate(key uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateAll empties the cache.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[uint64]*kinematics.State{}
}

// Len reports the number of cached poses.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
