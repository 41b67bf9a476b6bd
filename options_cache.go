package reactive

import (
	"strings"
	"sync"
)

// ProgramCache stores compiled guard programs. Keys combine the engine, the
// function set, the bound fields and the expression.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// WithProgramCache registers a program cache used when compiling guards.
func WithProgramCache(cache ProgramCache) Option {
	return func(cfg *moduleConfig) {
		cfg.programCache = cache
	}
}

// MapCache is an in-memory ProgramCache safe for concurrent use, so modules
// of the same class can share compiled guards.
type MapCache struct {
	mu       sync.RWMutex
	programs map[string]any
}

func NewMapCache() *MapCache {
	return &MapCache{programs: map[string]any{}}
}

func (c *MapCache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	program, ok := c.programs[key]
	return program, ok
}

func (c *MapCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.programs == nil {
		c.programs = map[string]any{}
	}
	c.programs[key] = value
}

func (c *MapCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.programs)
}

func programCacheKey(engine string, registry *FunctionRegistry, fields []string, expression string) string {
	return engine + ":" + registry.cacheKey() + ":" + strings.Join(fields, ",") + ":" + expression
}
