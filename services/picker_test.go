package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"foodnav/repository"
	"foodnav/services"
)

func TestPickScopePriority(t *testing.T) {
	e := newEnv(t)
	s := seedCatalog(t, e.DB)

	// Category beats group beats restaurant.
	item, err := e.Picker.Pick(repository.Scope{
		RestaurantID: s.Rest.ID, GroupID: s.Food.ID, CategoryID: s.Grill.ID,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Shashlik", item.Name)

	item, err = e.Picker.Pick(repository.Scope{RestaurantID: s.Rest.ID, GroupID: s.Drink.ID})
	assert.NoError(t, err)
	assert.Equal(t, "Kvass", item.Name)
}

func TestPickLoadsAncestry(t *testing.T) {
	e := newEnv(t)
	s := seedCatalog(t, e.DB)

	item, err := e.Picker.Pick(repository.Scope{CategoryID: s.Soup.ID})
	assert.NoError(t, err)
	assert.Equal(t, s.Soup.ID, item.Category.ID)
	assert.Equal(t, s.Food.ID, item.Category.Group.ID)
	assert.Equal(t, s.Rest.ID, item.Category.Group.RestaurantID)
}

func TestPickEmptyScope(t *testing.T) {
	e := newEnv(t)
	seedCatalog(t, e.DB)

	_, err := e.Picker.Pick(repository.Scope{CategoryID: 9999})
	assert.ErrorIs(t, err, services.ErrEmptyScope)
}

// Unscoped selection draws from every active restaurant and nothing else.
func TestPickUnscopedHonorsActiveFlag(t *testing.T) {
	e := newEnv(t)
	s := seedCatalog(t, e.DB)

	_, err := e.Picker.Pick(repository.Scope{})
	assert.NoError(t, err)

	e.DB.Model(&s.Rest).Update("is_active", false)
	_, err = e.Picker.Pick(repository.Scope{})
	assert.ErrorIs(t, err, services.ErrEmptyScope)
}

// Uniformity smoke test: 10k draws over 4 items should hit each within a
// generous tolerance of the expected quarter share.
func TestPickIsRoughlyUniform(t *testing.T) {
	e := newEnv(t)
	s := seedCatalog(t, e.DB)

	const draws = 10000
	counts := map[uint]int{}
	for i := 0; i < draws; i++ {
		item, err := e.Picker.Pick(repository.Scope{RestaurantID: s.Rest.ID})
		if err != nil {
			t.Fatalf("draw %d failed: %v", i, err)
		}
		counts[item.ID]++
	}

	assert.Len(t, counts, len(s.Items), "every item should be drawn at least once")
	expected := draws / len(s.Items)
	for id, n := range counts {
		assert.InDelta(t, expected, n, float64(expected)/2, "item %d drawn %d times", id, n)
	}
}

// The candidate set is re-read on every call: items added after the
// picker was built are eligible, removed ones are not.
func TestPickReevaluatesCandidatesFreshly(t *testing.T) {
	e := newEnv(t)
	s := seedCatalog(t, e.DB)

	for _, it := range s.Items[:3] {
		e.DB.Delete(&it)
	}

	for i := 0; i < 20; i++ {
		item, err := e.Picker.Pick(repository.Scope{RestaurantID: s.Rest.ID})
		assert.NoError(t, err)
		assert.Equal(t, "Kvass", item.Name)
	}
}
