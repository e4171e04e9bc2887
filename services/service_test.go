package services_test

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"foodnav/entity"
	"foodnav/repository"
	"foodnav/services"
)

// env wires the service stack over a fresh in-memory database.
type env struct {
	DB      *gorm.DB
	Catalog *repository.CatalogRepository
	Ledger  *repository.OrderRepository

	Orders *services.OrderService
	Picker *services.Picker
	Nav    *services.NavigationService
	Stats  *services.StatsService
	Loader *services.CatalogService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}

	err = db.AutoMigrate(
		&entity.Restaurant{}, &entity.MenuGroup{}, &entity.Category{}, &entity.MenuItem{},
		&entity.User{}, &entity.Order{},
	)
	if err != nil {
		t.Fatalf("failed to auto-migrate: %v", err)
	}

	catalog := repository.NewCatalogRepository(db)
	ledger := repository.NewOrderRepository(db)
	orders := services.NewOrderService(ledger, catalog)
	picker := services.NewPicker(catalog)

	return &env{
		DB:      db,
		Catalog: catalog,
		Ledger:  ledger,
		Orders:  orders,
		Picker:  picker,
		Nav:     services.NewNavigationService(catalog, orders, picker),
		Stats:   services.NewStatsService(ledger, catalog),
		Loader:  services.NewCatalogService(db, catalog),
	}
}

// seedCatalog builds one restaurant with two groups, two categories under
// the first group and a handful of items. Returns the created rows for
// the tests to reference by id.
type seeded struct {
	Rest  entity.Restaurant
	Food  entity.MenuGroup
	Drink entity.MenuGroup
	Soup  entity.Category
	Grill entity.Category
	Cola  entity.Category
	Items []entity.MenuItem
}

func seedCatalog(t *testing.T, db *gorm.DB) seeded {
	t.Helper()

	s := seeded{Rest: entity.Restaurant{Name: "Borscht & Co", IsActive: true}}
	mustCreate(t, db, &s.Rest)

	s.Food = entity.MenuGroup{RestaurantID: s.Rest.ID, Name: "Food"}
	s.Drink = entity.MenuGroup{RestaurantID: s.Rest.ID, Name: "Drinks"}
	mustCreate(t, db, &s.Food)
	mustCreate(t, db, &s.Drink)

	s.Soup = entity.Category{GroupID: s.Food.ID, Name: "Soups"}
	s.Grill = entity.Category{GroupID: s.Food.ID, Name: "Grill"}
	s.Cola = entity.Category{GroupID: s.Drink.ID, Name: "Soda"}
	mustCreate(t, db, &s.Soup)
	mustCreate(t, db, &s.Grill)
	mustCreate(t, db, &s.Cola)

	s.Items = []entity.MenuItem{
		{CategoryID: s.Soup.ID, Name: "Borscht", Price: 250, Calories: 300},
		{CategoryID: s.Soup.ID, Name: "Solyanka", Price: 300, Calories: 420},
		{CategoryID: s.Grill.ID, Name: "Shashlik", Price: 550, Calories: 700},
		{CategoryID: s.Cola.ID, Name: "Kvass", Price: 100, Calories: 120},
	}
	for i := range s.Items {
		mustCreate(t, db, &s.Items[i])
	}
	return s
}

func mustCreate(t *testing.T, db *gorm.DB, value any) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("seed create failed: %v", err)
	}
}
