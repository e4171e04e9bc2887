package services

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"foodnav/entity"
	"foodnav/repository"
)

// ErrEmptyScope means a random pick found no candidates. Not a failure
// for the user, just an empty-result signal.
var ErrEmptyScope = errors.New("no items in scope")

// Picker draws one menu item uniformly at random within a scope. The
// candidate list is fetched fresh on every call, so a re-roll may land on
// the same item again with probability 1/N.
type Picker struct {
	Catalog *repository.CatalogRepository

	mu  sync.Mutex
	rng *rand.Rand
}

// NewPicker seeds the pseudo-random source once per process, keeping the
// selection logic testable independent of the storage engine.
func NewPicker(catalog *repository.CatalogRepository) *Picker {
	return &Picker{
		Catalog: catalog,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (p *Picker) Pick(scope repository.Scope) (*entity.MenuItem, error) {
	ids, err := p.Catalog.FindItemIDsInScope(scope)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrEmptyScope
	}

	p.mu.Lock()
	id := ids[p.rng.Intn(len(ids))]
	p.mu.Unlock()

	return p.Catalog.FindItem(id)
}
