package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"foodnav/entity"
	"foodnav/services"
)

func TestPlaceSnapshotsPrice(t *testing.T) {
	e := newEnv(t)
	s := seedCatalog(t, e.DB)
	item := s.Items[0] // Borscht, 250

	who := services.Identity{ExternalID: 7, DisplayName: "nat"}
	order, err := e.Orders.Place(who, item.ID, 1)
	assert.NoError(t, err)
	assert.Equal(t, 250.0, order.FixedPrice)

	// Reprice the item; the recorded order must not move.
	err = e.DB.Model(&entity.MenuItem{}).Where("id = ?", item.ID).Update("price", 999).Error
	assert.NoError(t, err)

	var stored entity.Order
	assert.NoError(t, e.DB.First(&stored, order.ID).Error)
	assert.Equal(t, 250.0, stored.FixedPrice)
}

func TestPlaceIsNotIdempotent(t *testing.T) {
	e := newEnv(t)
	s := seedCatalog(t, e.DB)

	who := services.Identity{ExternalID: 7}
	_, err := e.Orders.Place(who, s.Items[0].ID, 1)
	assert.NoError(t, err)
	_, err = e.Orders.Place(who, s.Items[0].ID, 1)
	assert.NoError(t, err)

	var count int64
	e.DB.Model(&entity.Order{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestPlaceUnknownItem(t *testing.T) {
	e := newEnv(t)
	seedCatalog(t, e.DB)

	_, err := e.Orders.Place(services.Identity{ExternalID: 7}, 9999, 1)
	assert.ErrorIs(t, err, services.ErrItemNotFound)
}

func TestPlaceCreatesUserLazily(t *testing.T) {
	e := newEnv(t)
	s := seedCatalog(t, e.DB)

	_, err := e.Orders.Place(services.Identity{ExternalID: 555, DisplayName: "new one"}, s.Items[0].ID, 0)
	assert.NoError(t, err)

	var user entity.User
	assert.NoError(t, e.DB.Where("external_id = ?", 555).First(&user).Error)
	assert.Equal(t, "new one", user.DisplayName)

	// quantity below 1 defaults to 1
	var order entity.Order
	assert.NoError(t, e.DB.Where("user_id = ?", user.ID).First(&order).Error)
	assert.Equal(t, 1, order.Quantity)
}

func TestListDayScopesToCalendarDayNewestFirst(t *testing.T) {
	e := newEnv(t)
	s := seedCatalog(t, e.DB)
	who := services.Identity{ExternalID: 7}

	first, err := e.Orders.Place(who, s.Items[0].ID, 1)
	assert.NoError(t, err)
	second, err := e.Orders.Place(who, s.Items[1].ID, 1)
	assert.NoError(t, err)

	// Push one order out of today.
	yesterday := time.Now().Add(-26 * time.Hour)
	e.DB.Model(&entity.Order{}).Where("id = ?", first.ID).Update("created_at", yesterday)
	// Make the ordering unambiguous.
	e.DB.Model(&entity.Order{}).Where("id = ?", second.ID).Update("created_at", time.Now().Add(-time.Minute))

	third, err := e.Orders.Place(who, s.Items[2].ID, 1)
	assert.NoError(t, err)

	day, err := e.Orders.ListDay(who, time.Now())
	assert.NoError(t, err)
	if assert.Len(t, day.Lines, 2) {
		assert.Equal(t, third.ID, day.Lines[0].OrderID)
		assert.Equal(t, second.ID, day.Lines[1].OrderID)
	}
	assert.Equal(t, 300.0+550.0, day.TotalSpend)
	assert.Equal(t, 420.0+700.0, day.TotalCalories)
	assert.Equal(t, "o|del|", day.Lines[0].DeleteToken[:6])
}

func TestListDaySurvivesDeletedItem(t *testing.T) {
	e := newEnv(t)
	s := seedCatalog(t, e.DB)
	who := services.Identity{ExternalID: 7}

	order, err := e.Orders.Place(who, s.Items[0].ID, 1)
	assert.NoError(t, err)

	e.DB.Delete(&entity.MenuItem{}, s.Items[0].ID)

	day, err := e.Orders.ListDay(who, time.Now())
	assert.NoError(t, err)
	if assert.Len(t, day.Lines, 1) {
		assert.Equal(t, "unknown item", day.Lines[0].ItemName)
		assert.Equal(t, order.FixedPrice, day.Lines[0].Price)
		assert.Zero(t, day.Lines[0].Calories)
	}
}

func TestDeleteOrder(t *testing.T) {
	e := newEnv(t)
	s := seedCatalog(t, e.DB)
	who := services.Identity{ExternalID: 7}

	order, err := e.Orders.Place(who, s.Items[0].ID, 1)
	assert.NoError(t, err)

	assert.NoError(t, e.Orders.Delete(order.ID))

	day, err := e.Orders.ListDay(who, time.Now())
	assert.NoError(t, err)
	assert.Empty(t, day.Lines)
}
