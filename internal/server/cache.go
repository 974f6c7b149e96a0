package server

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rgehrsitz/itrgo/internal/domain"
)

// ResultCache keeps recent comparison results keyed by TaxInput.Key
type ResultCache struct {
	cache *lru.Cache[string, domain.TaxResult]
}

// NewResultCache creates a cache holding at most size results
func NewResultCache(size int) (*ResultCache, error) {
	if size <= 0 {
		size = 1024
	}
	cache, err := lru.New[string, domain.TaxResult](size)
	if err != nil {
		return nil, err
	}
	return &ResultCache{cache: cache}, nil
}

// Get returns the cached result for input, ignoring its name
func (rc *ResultCache) Get(input domain.TaxInput) (domain.TaxResult, bool) {
	res, ok := rc.cache.Get(input.Key())
	if ok {
		res.Name = input.Name
	}
	return res, ok
}

// Add stores a result
func (rc *ResultCache) Add(input domain.TaxInput, result domain.TaxResult) {
	rc.cache.Add(input.Key(), result)
}

// Len returns the number of cached results
func (rc *ResultCache) Len() int {
	return rc.cache.Len()
}
