// repository/order_repository.go
package repository

import (
	"errors"
	"time"

	"foodnav/entity"

	"gorm.io/gorm"
)

// OrderRepository is the per-user order ledger plus lazy user creation.
type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// FindOrCreateUser resolves the chat identity to a user row, creating it
// on first contact. A non-empty display name refreshes the stored one.
func (r *OrderRepository) FindOrCreateUser(externalID int64, displayName string) (*entity.User, error) {
	var user entity.User
	err := r.DB.Where("external_id = ?", externalID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = entity.User{ExternalID: externalID, DisplayName: displayName}
		if err := r.DB.Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err != nil {
		return nil, err
	}
	if displayName != "" && displayName != user.DisplayName {
		if err := r.DB.Model(&user).Update("display_name", displayName).Error; err != nil {
			return nil, err
		}
		user.DisplayName = displayName
	}
	return &user, nil
}

func (r *OrderRepository) InsertOrder(order *entity.Order) error {
	return r.DB.Create(order).Error
}

// FindOrdersByUserAndDate returns a user's orders created on the given
// calendar day, newest first.
func (r *OrderRepository) FindOrdersByUserAndDate(userID uint, day time.Time) ([]entity.Order, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var orders []entity.Order
	err := r.DB.
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, end).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// FindOrdersByUserSince returns a user's orders newest first; a nil since
// means all time.
func (r *OrderRepository) FindOrdersByUserSince(userID uint, since *time.Time) ([]entity.Order, error) {
	q := r.DB.Where("user_id = ?", userID)
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}

	var orders []entity.Order
	err := q.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// DeleteOrder removes an order by id. No ownership check at this layer;
// the caller only hands out delete tokens for the requesting user's own
// orders.
func (r *OrderRepository) DeleteOrder(orderID uint) error {
	return r.DB.Delete(&entity.Order{}, orderID).Error
}
