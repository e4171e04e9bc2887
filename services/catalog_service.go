package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"foodnav/entity"
	"foodnav/repository"

	"gorm.io/gorm"
)

// FlexFloat accepts a JSON number or a numeric string. Spreadsheet
// exports use comma decimal separators; unparseable values coerce to 0
// per the load policy.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*f = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		str = strings.TrimSpace(strings.ReplaceAll(str, ",", "."))
		v, err := strconv.ParseFloat(str, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

// MenuRow is one pre-parsed spreadsheet row from the ingestion side.
type MenuRow struct {
	Group         string    `json:"group"`
	Category      string    `json:"category"`
	ItemName      string    `json:"itemName"`
	Composition   string    `json:"composition"`
	Weight        string    `json:"weight"`
	Calories      FlexFloat `json:"calories"`
	Proteins      FlexFloat `json:"proteins"`
	Fats          FlexFloat `json:"fats"`
	Carbohydrates FlexFloat `json:"carbohydrates"`
	Price         FlexFloat `json:"price"`
}

// Fallback labels for rows that left the grouping columns blank.
const (
	DefaultGroup    = "Misc"
	DefaultCategory = "General"
)

type CatalogService struct {
	DB   *gorm.DB
	Repo *repository.CatalogRepository
}

func NewCatalogService(db *gorm.DB, repo *repository.CatalogRepository) *CatalogService {
	return &CatalogService{DB: db, Repo: repo}
}

// UpsertRestaurant creates the restaurant or, when the name is taken,
// refreshes its description. Restaurants are never hard-deleted.
func (s *CatalogService) UpsertRestaurant(name, description string) (*entity.Restaurant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("restaurant name is required")
	}

	rest, err := s.Repo.FindRestaurantByName(name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rest = &entity.Restaurant{Name: name, Description: description, IsActive: true}
		if err := s.Repo.CreateRestaurant(s.DB, rest); err != nil {
			return nil, err
		}
		return rest, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.Repo.UpdateRestaurantDescription(s.DB, rest.ID, description); err != nil {
		return nil, err
	}
	rest.Description = description
	return rest, nil
}

// ReplaceMenu swaps the restaurant's entire menu tree for the uploaded
// rows: full-catalog-replace semantics, not a merge. The delete and the
// rebuild run in one transaction so a failed load leaves the old menu in
// place. Concurrent reloads of the same restaurant are not coordinated
// here; the caller serializes them.
func (s *CatalogService) ReplaceMenu(restaurantID uint, rows []MenuRow) (int, error) {
	if len(rows) == 0 {
		return 0, errors.New("menu rows are required")
	}
	for i, row := range rows {
		if strings.TrimSpace(row.ItemName) == "" {
			return 0, fmt.Errorf("row %d: item name is required", i+1)
		}
		if row.Price < 0 || row.Calories < 0 || row.Proteins < 0 || row.Fats < 0 || row.Carbohydrates < 0 {
			return 0, fmt.Errorf("row %d: negative values are not allowed", i+1)
		}
	}

	inserted := 0
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.DeleteMenuTree(tx, restaurantID); err != nil {
			return err
		}

		type catKey struct {
			name    string
			groupID uint
		}
		groupIDs := map[string]uint{}
		catIDs := map[catKey]uint{}

		for _, row := range rows {
			gName := strings.TrimSpace(row.Group)
			if gName == "" {
				gName = DefaultGroup
			}
			cName := strings.TrimSpace(row.Category)
			if cName == "" {
				cName = DefaultCategory
			}

			gID, ok := groupIDs[gName]
			if !ok {
				group := entity.MenuGroup{RestaurantID: restaurantID, Name: gName}
				if err := s.Repo.CreateGroup(tx, &group); err != nil {
					return err
				}
				gID = group.ID
				groupIDs[gName] = gID
			}

			cKey := catKey{name: cName, groupID: gID}
			cID, ok := catIDs[cKey]
			if !ok {
				cat := entity.Category{GroupID: gID, Name: cName}
				if err := s.Repo.CreateCategory(tx, &cat); err != nil {
					return err
				}
				cID = cat.ID
				catIDs[cKey] = cID
			}

			item := entity.MenuItem{
				CategoryID:    cID,
				Name:          strings.TrimSpace(row.ItemName),
				Composition:   strings.TrimSpace(row.Composition),
				Weight:        strings.TrimSpace(row.Weight),
				Calories:      float64(row.Calories),
				Proteins:      float64(row.Proteins),
				Fats:          float64(row.Fats),
				Carbohydrates: float64(row.Carbohydrates),
				Price:         float64(row.Price),
			}
			if err := s.Repo.CreateItem(tx, &item); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
