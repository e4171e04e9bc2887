// repository/catalog_repository.go
package repository

import (
	"foodnav/entity"

	"gorm.io/gorm"
)

// CatalogRepository is the read/replace surface over the restaurant →
// group → category → item hierarchy.
type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

// Scope bounds a random selection. The deepest non-zero identifier wins:
// category over group over restaurant; all zero means any active item.
type Scope struct {
	RestaurantID uint
	GroupID      uint
	CategoryID   uint
}

func (r *CatalogRepository) FindActiveRestaurants() ([]entity.Restaurant, error) {
	var rests []entity.Restaurant
	err := r.DB.Where("is_active = ?", true).Order("name").Find(&rests).Error
	return rests, err
}

func (r *CatalogRepository) FindRestaurantByName(name string) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.Where("name = ?", name).First(&rest).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *CatalogRepository) FindGroups(restaurantID uint) ([]entity.MenuGroup, error) {
	var groups []entity.MenuGroup
	err := r.DB.Where("restaurant_id = ?", restaurantID).Find(&groups).Error
	return groups, err
}

func (r *CatalogRepository) FindCategories(groupID uint) ([]entity.Category, error) {
	var cats []entity.Category
	err := r.DB.Where("group_id = ?", groupID).Find(&cats).Error
	return cats, err
}

func (r *CatalogRepository) FindItems(categoryID uint) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := r.DB.Where("category_id = ?", categoryID).Find(&items).Error
	return items, err
}

// FindItem loads one item together with its category, group and
// restaurant, so callers can rebuild the "back" target from the item's
// real ancestry.
func (r *CatalogRepository) FindItem(itemID uint) (*entity.MenuItem, error) {
	var item entity.MenuItem
	err := r.DB.
		Preload("Category.Group.Restaurant").
		Preload("Category.Group").
		Preload("Category").
		First(&item, itemID).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindItemIDsInScope returns the candidate ids for a random pick,
// re-evaluated freshly on every call. Items of inactive restaurants are
// excluded only for the unscoped case; a scoped pick already went through
// the active restaurant list.
func (r *CatalogRepository) FindItemIDsInScope(sc Scope) ([]uint, error) {
	var ids []uint
	q := r.DB.Model(&entity.MenuItem{}).
		Joins("JOIN categories ON categories.id = menu_items.category_id AND categories.deleted_at IS NULL").
		Joins("JOIN menu_groups ON menu_groups.id = categories.group_id AND menu_groups.deleted_at IS NULL")

	switch {
	case sc.CategoryID != 0:
		q = q.Where("menu_items.category_id = ?", sc.CategoryID)
	case sc.GroupID != 0:
		q = q.Where("categories.group_id = ?", sc.GroupID)
	case sc.RestaurantID != 0:
		q = q.Where("menu_groups.restaurant_id = ?", sc.RestaurantID)
	default:
		q = q.Joins("JOIN restaurants ON restaurants.id = menu_groups.restaurant_id").
			Where("restaurants.is_active = ?", true)
	}

	err := q.Pluck("menu_items.id", &ids).Error
	return ids, err
}

// ---------------- Bulk replace (operator) ----------------

func (r *CatalogRepository) CreateRestaurant(tx *gorm.DB, rest *entity.Restaurant) error {
	return tx.Create(rest).Error
}

func (r *CatalogRepository) UpdateRestaurantDescription(tx *gorm.DB, id uint, description string) error {
	return tx.Model(&entity.Restaurant{}).Where("id = ?", id).
		Update("description", description).Error
}

// DeleteMenuTree removes every group of a restaurant together with the
// categories and items hanging off them. Runs inside the caller's
// transaction; a partial delete must never become visible.
func (r *CatalogRepository) DeleteMenuTree(tx *gorm.DB, restaurantID uint) error {
	groupIDs := tx.Model(&entity.MenuGroup{}).Select("id").Where("restaurant_id = ?", restaurantID)
	catIDs := tx.Model(&entity.Category{}).Select("id").Where("group_id IN (?)", groupIDs)

	if err := tx.Where("category_id IN (?)", catIDs).Delete(&entity.MenuItem{}).Error; err != nil {
		return err
	}
	if err := tx.Where("group_id IN (?)", groupIDs).Delete(&entity.Category{}).Error; err != nil {
		return err
	}
	return tx.Where("restaurant_id = ?", restaurantID).Delete(&entity.MenuGroup{}).Error
}

func (r *CatalogRepository) CreateGroup(tx *gorm.DB, group *entity.MenuGroup) error {
	return tx.Create(group).Error
}

func (r *CatalogRepository) CreateCategory(tx *gorm.DB, cat *entity.Category) error {
	return tx.Create(cat).Error
}

func (r *CatalogRepository) CreateItem(tx *gorm.DB, item *entity.MenuItem) error {
	return tx.Create(item).Error
}

func (r *CatalogRepository) CountItems(restaurantID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.MenuItem{}).
		Joins("JOIN categories ON categories.id = menu_items.category_id AND categories.deleted_at IS NULL").
		Joins("JOIN menu_groups ON menu_groups.id = categories.group_id AND menu_groups.deleted_at IS NULL").
		Where("menu_groups.restaurant_id = ?", restaurantID).
		Count(&count).Error
	return count, err
}
