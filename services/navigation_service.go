package services

import (
	"fmt"

	"foodnav/entity"
	"foodnav/pkg/navtoken"
	"foodnav/repository"
)

// NavigationService resolves a decoded navigation state into the next
// view. It is stateless: everything it needs arrives in the state, and
// every button it renders carries a freshly encoded state.
type NavigationService struct {
	Catalog *repository.CatalogRepository
	Orders  *OrderService
	Picker  *Picker
}

func NewNavigationService(catalog *repository.CatalogRepository, orders *OrderService, picker *Picker) *NavigationService {
	return &NavigationService{Catalog: catalog, Orders: orders, Picker: picker}
}

type Button struct {
	Label string `json:"label"`
	Token string `json:"token"`
}

// ItemCard is the terminal item view at level 4.
type ItemCard struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Composition   string  `json:"composition"`
	Weight        string  `json:"weight"`
	Calories      float64 `json:"calories"`
	Proteins      float64 `json:"proteins"`
	Fats          float64 `json:"fats"`
	Carbohydrates float64 `json:"carbohydrates"`
	Price         float64 `json:"price"`
	Random        bool    `json:"random"`
}

// View is what the presentation layer renders: a prompt, optional item
// card and buttons with callback tokens. Kind "empty" and "ordered" carry
// no buttons; the transport shows them as a popup and leaves the current
// view in place.
type View struct {
	Kind    string    `json:"kind"` // "list", "item", "ordered", "empty", ...
	Prompt  string    `json:"prompt"`
	Item    *ItemCard `json:"item,omitempty"`
	Stats   *Summary  `json:"stats,omitempty"`
	Doc     string    `json:"doc,omitempty"` // path the transport fetches for a file view
	Buttons []Button  `json:"buttons"`
}

const (
	ViewList     = "list"
	ViewItem     = "item"
	ViewOrdered  = "ordered"
	ViewEmpty    = "empty"
	ViewDeleted  = "deleted"
	ViewStats    = "stats"
	ViewDocument = "document"
)

// Root is the level 0 view: all active restaurants.
func (s *NavigationService) Root() (*View, error) {
	return s.Resolve(Identity{}, navtoken.State{Level: 0, Action: navtoken.ActionNone})
}

// Resolve runs one step of the navigation state machine.
func (s *NavigationService) Resolve(who Identity, st navtoken.State) (*View, error) {
	if err := st.Validate(); err != nil {
		return nil, err
	}

	switch st.Level {
	case 0:
		return s.restaurantList()
	case 1:
		return s.groupList(st)
	case 2:
		return s.categoryList(st)
	case 3:
		return s.itemList(st)
	case 4:
		return s.itemView(st)
	default:
		return s.placeOrder(who, st)
	}
}

func (s *NavigationService) restaurantList() (*View, error) {
	rests, err := s.Catalog.FindActiveRestaurants()
	if err != nil {
		return nil, err
	}

	v := &View{Kind: ViewList, Prompt: "Choose a restaurant:"}
	for _, r := range rests {
		v.Buttons = append(v.Buttons, Button{
			Label: r.Name,
			Token: navtoken.Encode(navtoken.State{
				Level: 1, RestaurantID: r.ID, Action: navtoken.ActionNone,
			}),
		})
	}
	return v, nil
}

func (s *NavigationService) groupList(st navtoken.State) (*View, error) {
	groups, err := s.Catalog.FindGroups(st.RestaurantID)
	if err != nil {
		return nil, err
	}

	v := &View{Kind: ViewList, Prompt: "Choose a section:"}
	v.Buttons = append(v.Buttons, Button{
		Label: "🎲 Random from this restaurant",
		Token: navtoken.Encode(navtoken.State{
			Level: 4, RestaurantID: st.RestaurantID, Action: navtoken.ActionRandom,
		}),
	})
	for _, g := range groups {
		v.Buttons = append(v.Buttons, Button{
			Label: g.Name,
			Token: navtoken.Encode(navtoken.State{
				Level: 2, RestaurantID: st.RestaurantID, GroupID: g.ID, Action: navtoken.ActionNone,
			}),
		})
	}
	v.Buttons = append(v.Buttons, backButton(navtoken.State{Level: 0, Action: navtoken.ActionNone}))
	return v, nil
}

func (s *NavigationService) categoryList(st navtoken.State) (*View, error) {
	cats, err := s.Catalog.FindCategories(st.GroupID)
	if err != nil {
		return nil, err
	}

	v := &View{Kind: ViewList, Prompt: "Choose a category:"}
	v.Buttons = append(v.Buttons, Button{
		Label: "🎲 Random from here",
		Token: navtoken.Encode(navtoken.State{
			Level: 4, RestaurantID: st.RestaurantID, GroupID: st.GroupID, Action: navtoken.ActionRandom,
		}),
	})
	for _, c := range cats {
		v.Buttons = append(v.Buttons, Button{
			Label: c.Name,
			Token: navtoken.Encode(navtoken.State{
				Level: 3, RestaurantID: st.RestaurantID, GroupID: st.GroupID, CategoryID: c.ID,
				Action: navtoken.ActionNone,
			}),
		})
	}
	v.Buttons = append(v.Buttons, backButton(navtoken.State{
		Level: 1, RestaurantID: st.RestaurantID, Action: navtoken.ActionNone,
	}))
	return v, nil
}

func (s *NavigationService) itemList(st navtoken.State) (*View, error) {
	items, err := s.Catalog.FindItems(st.CategoryID)
	if err != nil {
		return nil, err
	}

	v := &View{Kind: ViewList, Prompt: "Choose a dish:"}
	v.Buttons = append(v.Buttons, Button{
		Label: "🎲 Random from here",
		Token: navtoken.Encode(navtoken.State{
			Level: 4, RestaurantID: st.RestaurantID, GroupID: st.GroupID, CategoryID: st.CategoryID,
			Action: navtoken.ActionRandom,
		}),
	})
	for _, it := range items {
		v.Buttons = append(v.Buttons, Button{
			Label: fmt.Sprintf("%s · %.2f", it.Name, it.Price),
			Token: navtoken.Encode(navtoken.State{
				Level: 4, RestaurantID: st.RestaurantID, GroupID: st.GroupID, CategoryID: st.CategoryID,
				ItemID: it.ID, Action: navtoken.ActionNone,
			}),
		})
	}
	v.Buttons = append(v.Buttons, backButton(navtoken.State{
		Level: 2, RestaurantID: st.RestaurantID, GroupID: st.GroupID, Action: navtoken.ActionNone,
	}))
	return v, nil
}

// itemView handles level 4, both the direct and the random form. The
// "back" target is rebuilt from the item's true ancestry: a random pick
// may land on an item the user never navigated to.
func (s *NavigationService) itemView(st navtoken.State) (*View, error) {
	var (
		item     *entity.MenuItem
		err      error
		isRandom = st.Action == navtoken.ActionRandom
	)
	if isRandom {
		item, err = s.Picker.Pick(repository.Scope{
			RestaurantID: st.RestaurantID,
			GroupID:      st.GroupID,
			CategoryID:   st.CategoryID,
		})
		if err == ErrEmptyScope {
			// No state transition: the caller stays where it was.
			return &View{Kind: ViewEmpty, Prompt: "Nothing here yet 🤷"}, nil
		}
	} else {
		item, err = s.Catalog.FindItem(st.ItemID)
	}
	if err != nil {
		return nil, err
	}

	back := navtoken.State{
		Level:        3,
		RestaurantID: item.Category.Group.RestaurantID,
		GroupID:      item.Category.GroupID,
		CategoryID:   item.CategoryID,
		Action:       navtoken.ActionNone,
	}

	v := &View{
		Kind:   ViewItem,
		Prompt: item.Name,
		Item: &ItemCard{
			ID:            item.ID,
			Name:          item.Name,
			Composition:   item.Composition,
			Weight:        item.Weight,
			Calories:      item.Calories,
			Proteins:      item.Proteins,
			Fats:          item.Fats,
			Carbohydrates: item.Carbohydrates,
			Price:         item.Price,
			Random:        isRandom,
		},
	}
	v.Buttons = append(v.Buttons, Button{
		Label: "✅ I'll take it (1 pc)",
		Token: navtoken.Encode(navtoken.State{
			Level:        5,
			RestaurantID: back.RestaurantID,
			GroupID:      back.GroupID,
			CategoryID:   back.CategoryID,
			ItemID:       item.ID,
			Action:       navtoken.ActionOrder,
		}),
	})
	if isRandom {
		// Re-roll keeps the caller-supplied scope, not the picked
		// item's ancestry.
		v.Buttons = append(v.Buttons, Button{
			Label: "🔄 Suggest another",
			Token: navtoken.Encode(navtoken.State{
				Level: 4, RestaurantID: st.RestaurantID, GroupID: st.GroupID, CategoryID: st.CategoryID,
				Action: navtoken.ActionRandom,
			}),
		})
	}
	v.Buttons = append(v.Buttons, backButton(back))
	return v, nil
}

// placeOrder is level 5: record the order and confirm. The underlying
// view stays as it was.
func (s *NavigationService) placeOrder(who Identity, st navtoken.State) (*View, error) {
	order, err := s.Orders.Place(who, st.ItemID, 1)
	if err != nil {
		return nil, err
	}
	return &View{
		Kind:   ViewOrdered,
		Prompt: fmt.Sprintf("✅ Order recorded (%.2f)", order.FixedPrice),
	}, nil
}

func backButton(to navtoken.State) Button {
	return Button{Label: "🔙 Back", Token: navtoken.Encode(to)}
}
