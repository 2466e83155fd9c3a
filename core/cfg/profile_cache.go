package cfg

import (
	"github.com/ethereum/go-ethereum/common/lru"
)

// ProfileCache keeps a bounded number of function profile snapshots keyed
// by function name, least recently used first out. It lets an optimizer
// keep the profile of a function body it has discarded. It never seeds a
// live BranchProfile.
type ProfileCache struct {
	cache *lru.Cache[string, FunctionProfile]
}

// NewProfileCache creates a cache holding up to capacity profiles.
func NewProfileCache(capacity int) *ProfileCache {
	return &ProfileCache{cache: lru.NewCache[string, FunctionProfile](capacity)}
}

// Store snapshots fn and adds it to the cache.
func (c *ProfileCache) Store(fn *Function) FunctionProfile {
	fp := fn.Profile()
	c.Add(fp)
	return fp
}

// Add inserts or replaces a profile.
func (c *ProfileCache) Add(fp FunctionProfile) {
	c.cache.Add(fp.Name, fp)
}

// Load returns the profile stored for name.
func (c *ProfileCache) Load(name string) (FunctionProfile, bool) {
	return c.cache.Get(name)
}

// Remove drops the profile stored for name.
func (c *ProfileCache) Remove(name string) {
	c.cache.Remove(name)
}

// Len returns the number of cached profiles.
func (c *ProfileCache) Len() int {
	return c.cache.Len()
}
