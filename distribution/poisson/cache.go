// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package poisson

//go:generate mockgen -source cache.go -destination cache_mock.go -package poisson
import (
	"math"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// TableCache serves probability tables for a mean.
type TableCache interface {
	// Get returns the table of lambda. The returned table is shared and
	// must not be modified.
	Get(lambda float64) (Table, error)
}

// NewTableCache creates a cache keeping the tables of the most recently
// used means. A non-positive capacity disables caching and every call
// builds a fresh table.
func NewTableCache(capacity int, params Params) TableCache {
	if capacity <= 0 {
		return &tableCache{params: params}
	}
	cache, err := lru.New[uint64, Table](capacity)
	if err != nil {
		return &tableCache{params: params}
	}
	return &tableCache{
		params: params,
		cache:  cache,
	}
}

type tableCache struct {
	params Params
	cache  *lru.Cache[uint64, Table]
	mutex  sync.Mutex
}

// Get returns the table of lambda. If the table is not cached, it is
// built and stored. This operation is thread-safe.
func (c *tableCache) Get(lambda float64) (Table, error) {
	if c.cache == nil {
		return c.params.Build(lambda)
	}
	k := math.Float64bits(lambda)
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if t, exists := c.cache.Get(k); exists {
		return t, nil
	}
	t, err := c.params.Build(lambda)
	if err != nil {
		return Table{}, err
	}
	c.cache.Add(k, t)
	return t, nil
}
