package services

import (
	"errors"
	"time"

	"foodnav/entity"
	"foodnav/pkg/navtoken"
	"foodnav/repository"

	"gorm.io/gorm"
)

var ErrItemNotFound = errors.New("item not found")

// Identity is the end user as reported by the chat transport with every
// request. The core keeps no session of its own.
type Identity struct {
	ExternalID  int64  `json:"externalId" binding:"required"`
	DisplayName string `json:"displayName"`
}

type OrderService struct {
	Repo    *repository.OrderRepository
	Catalog *repository.CatalogRepository
}

func NewOrderService(repo *repository.OrderRepository, catalog *repository.CatalogRepository) *OrderService {
	return &OrderService{Repo: repo, Catalog: catalog}
}

// Register resolves (or creates) the user record for a chat identity.
// Called on first contact before any navigation happens.
func (s *OrderService) Register(who Identity) (*entity.User, error) {
	return s.Repo.FindOrCreateUser(who.ExternalID, who.DisplayName)
}

// Place records one order line, snapshotting the item's current price
// into FixedPrice. Not idempotent on purpose: repeated taps mean repeated
// orders.
func (s *OrderService) Place(who Identity, itemID uint, quantity int) (*entity.Order, error) {
	if quantity < 1 {
		quantity = 1
	}

	item, err := s.Catalog.FindItem(itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}

	user, err := s.Repo.FindOrCreateUser(who.ExternalID, who.DisplayName)
	if err != nil {
		return nil, err
	}

	order := entity.Order{
		UserID:     user.ID,
		ItemID:     item.ID,
		Quantity:   quantity,
		FixedPrice: item.Price,
	}
	if err := s.Repo.InsertOrder(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

// OrderLine is one of today's orders, with the delete token the
// presentation layer attaches to the row.
type OrderLine struct {
	OrderID     uint    `json:"orderId"`
	ItemName    string  `json:"itemName"`
	Price       float64 `json:"price"`
	Calories    float64 `json:"calories"`
	CreatedAt   string  `json:"createdAt"`
	DeleteToken string  `json:"deleteToken"`
}

type DayOrders struct {
	Lines         []OrderLine `json:"lines"`
	TotalSpend    float64     `json:"totalSpend"`
	TotalCalories float64     `json:"totalCalories"`
}

// ListDay returns a user's orders for one calendar day, newest first,
// with day totals. An order whose item has since been removed still shows
// up via its fixed price.
func (s *OrderService) ListDay(who Identity, day time.Time) (*DayOrders, error) {
	user, err := s.Repo.FindOrCreateUser(who.ExternalID, who.DisplayName)
	if err != nil {
		return nil, err
	}

	orders, err := s.Repo.FindOrdersByUserAndDate(user.ID, day)
	if err != nil {
		return nil, err
	}

	out := &DayOrders{Lines: make([]OrderLine, 0, len(orders))}
	for _, o := range orders {
		line := OrderLine{
			OrderID:   o.ID,
			ItemName:  "unknown item",
			Price:     o.FixedPrice,
			CreatedAt: o.CreatedAt.Format("15:04"),
			DeleteToken: navtoken.EncodeOrder(navtoken.OrderAction{
				Op: navtoken.OrderOpDelete, OrderID: o.ID,
			}),
		}
		if item, err := s.Catalog.FindItem(o.ItemID); err == nil {
			line.ItemName = item.Name
			line.Calories = item.Calories
		}
		out.TotalSpend += line.Price
		out.TotalCalories += line.Calories
		out.Lines = append(out.Lines, line)
	}
	return out, nil
}

// Delete removes an order unconditionally. Ownership is not checked here:
// delete tokens are only ever issued for the requesting user's own rows.
func (s *OrderService) Delete(orderID uint) error {
	return s.Repo.DeleteOrder(orderID)
}
