package services

import (
	"errors"
	"fmt"
	"time"

	"foodnav/entity"
	"foodnav/pkg/navtoken"
	"foodnav/repository"
)

// ErrNoOrders means the requested window holds no orders; callers show
// "no data" instead of a report.
var ErrNoOrders = errors.New("no orders in period")

type StatsService struct {
	Orders  *repository.OrderRepository
	Catalog *repository.CatalogRepository
}

func NewStatsService(orders *repository.OrderRepository, catalog *repository.CatalogRepository) *StatsService {
	return &StatsService{Orders: orders, Catalog: catalog}
}

type Summary struct {
	OrderCount    int     `json:"orderCount"`
	TotalSpend    float64 `json:"totalSpend"`
	TotalCalories float64 `json:"totalCalories"`
	AverageSpend  int64   `json:"averageSpend"`
}

// Aggregate computes totals over a trailing window of windowDays, nil
// meaning all time. Spend is the sum of fixed prices; quantity does not
// factor in.
func (s *StatsService) Aggregate(who Identity, windowDays *int) (*Summary, error) {
	orders, err := s.ordersInWindow(who, windowDays)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrNoOrders
	}

	sum := &Summary{OrderCount: len(orders)}
	for _, o := range orders {
		sum.TotalSpend += o.FixedPrice
		if item, err := s.Catalog.FindItem(o.ItemID); err == nil {
			sum.TotalCalories += item.Calories
		}
	}
	sum.AverageSpend = int64(sum.TotalSpend) / int64(sum.OrderCount)
	return sum, nil
}

// ExportRow is one line of the tabular report, newest order first.
// Broken links (an item or ancestor removed since the order) degrade to
// placeholders instead of failing the export.
type ExportRow struct {
	Date          string  `json:"date"`
	Restaurant    string  `json:"restaurant"`
	Category      string  `json:"category"`
	Item          string  `json:"item"`
	Price         float64 `json:"price"`
	Calories      float64 `json:"calories"`
	Proteins      float64 `json:"proteins"`
	Fats          float64 `json:"fats"`
	Carbohydrates float64 `json:"carbohydrates"`
}

const missingLink = "-"

func (s *StatsService) ExportRows(who Identity, windowDays *int) ([]ExportRow, error) {
	orders, err := s.ordersInWindow(who, windowDays)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrNoOrders
	}

	rows := make([]ExportRow, 0, len(orders))
	for _, o := range orders {
		row := ExportRow{
			Date:       o.CreatedAt.Format("2006-01-02 15:04"),
			Restaurant: missingLink,
			Category:   missingLink,
			Item:       missingLink,
			Price:      o.FixedPrice,
		}
		if item, err := s.Catalog.FindItem(o.ItemID); err == nil {
			row.Item = item.Name
			row.Calories = item.Calories
			row.Proteins = item.Proteins
			row.Fats = item.Fats
			row.Carbohydrates = item.Carbohydrates
			if item.Category.ID != 0 {
				row.Category = item.Category.Name
			}
			if item.Category.Group.Restaurant.ID != 0 {
				row.Restaurant = item.Category.Group.Restaurant.Name
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ---------------- Views ----------------

var periodLabels = map[string]string{
	navtoken.PeriodWeek:  "the last week",
	navtoken.PeriodMonth: "the last month",
	navtoken.PeriodAll:   "all time",
}

// ChooserView is the period picker shown on /stats and on the "back"
// stats action.
func (s *StatsService) ChooserView() *View {
	return &View{
		Kind:   ViewList,
		Prompt: "Pick a report period:",
		Buttons: []Button{
			{Label: "📅 Week", Token: navtoken.EncodeStats(navtoken.StatsAction{Period: navtoken.PeriodWeek, Op: navtoken.StatsOpView})},
			{Label: "🗓 Month", Token: navtoken.EncodeStats(navtoken.StatsAction{Period: navtoken.PeriodMonth, Op: navtoken.StatsOpView})},
			{Label: "♾ All time", Token: navtoken.EncodeStats(navtoken.StatsAction{Period: navtoken.PeriodAll, Op: navtoken.StatsOpView})},
		},
	}
}

// ReportView renders the aggregate for one period, with the export and
// back affordances.
func (s *StatsService) ReportView(who Identity, period string) (*View, error) {
	sum, err := s.Aggregate(who, navtoken.WindowDays(period))
	if err == ErrNoOrders {
		return &View{Kind: ViewEmpty, Prompt: "No orders for this period"}, nil
	}
	if err != nil {
		return nil, err
	}
	return &View{
		Kind:   ViewStats,
		Prompt: fmt.Sprintf("Report for %s", periodLabels[period]),
		Stats:  sum,
		Buttons: []Button{
			{Label: "📥 Download report", Token: navtoken.EncodeStats(navtoken.StatsAction{Period: period, Op: navtoken.StatsOpExport})},
			{Label: "🔙 Back", Token: navtoken.EncodeStats(navtoken.StatsAction{Period: navtoken.PeriodBack, Op: navtoken.StatsOpView})},
		},
	}, nil
}

// ExportView hands the transport the path of the generated file.
func (s *StatsService) ExportView(who Identity, period string) *View {
	return &View{
		Kind:   ViewDocument,
		Prompt: fmt.Sprintf("Your report for %s", periodLabels[period]),
		Doc:    fmt.Sprintf("/stats/export?externalId=%d&period=%s", who.ExternalID, period),
	}
}

func (s *StatsService) ordersInWindow(who Identity, windowDays *int) ([]entity.Order, error) {
	user, err := s.Orders.FindOrCreateUser(who.ExternalID, who.DisplayName)
	if err != nil {
		return nil, err
	}

	var since *time.Time
	if windowDays != nil {
		t := time.Now().AddDate(0, 0, -*windowDays)
		since = &t
	}
	return s.Orders.FindOrdersByUserSince(user.ID, since)
}
