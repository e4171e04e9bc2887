// Package navtoken encodes the navigation state carried by every chat
// button into a compact opaque token and back. Three token families share
// the callback channel, discriminated by prefix: "m" (menu navigation),
// "o" (order actions) and "s" (statistics actions). Tokens come back from
// an untrusted client, so Decode rejects anything it would not itself
// produce.
package navtoken

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrMalformed    = errors.New("navtoken: malformed token")
	ErrInvalidState = errors.New("navtoken: inconsistent navigation state")
)

// Transport-imposed ceiling for callback payloads.
const MaxTokenLen = 64

const (
	FamilyMenu  = "m"
	FamilyOrder = "o"
	FamilyStats = "s"
)

const sep = "|"

// ActionNone is the default action tag of a menu state.
const ActionNone = "none"

const (
	ActionRandom = "random"
	ActionOrder  = "order"
)

// State is the full navigation position. Level runs 0 (restaurant list)
// through 5 (order placement); identifier fields below the level are set,
// the rest stay zero.
type State struct {
	Level        int    `json:"level"`
	RestaurantID uint   `json:"restaurantId"`
	GroupID      uint   `json:"groupId"`
	CategoryID   uint   `json:"categoryId"`
	ItemID       uint   `json:"itemId"`
	Action       string `json:"action"`
}

// Family reports which token family a raw token belongs to, without
// decoding it. Unknown prefixes return "".
func Family(token string) string {
	head, _, _ := strings.Cut(token, sep)
	switch head {
	case FamilyMenu, FamilyOrder, FamilyStats:
		return head
	}
	return ""
}

// Encode packs a state into its token form. Trailing fields that equal
// their defaults are omitted to keep the payload short.
func Encode(st State) string {
	parts := []string{
		FamilyMenu,
		strconv.Itoa(st.Level),
		strconv.FormatUint(uint64(st.RestaurantID), 10),
		strconv.FormatUint(uint64(st.GroupID), 10),
		strconv.FormatUint(uint64(st.CategoryID), 10),
		strconv.FormatUint(uint64(st.ItemID), 10),
		st.Action,
	}
	if st.Action == "" {
		parts[6] = ActionNone
	}
	// trim trailing defaults
	last := len(parts) - 1
	if parts[last] == ActionNone {
		last--
		for last > 1 && parts[last] == "0" {
			last--
		}
	}
	return strings.Join(parts[:last+1], sep)
}

// Decode parses a menu token. It fails with ErrMalformed on an unknown
// prefix, an out-of-range numeric field, a field count beyond the
// contract, or an oversized token.
func Decode(token string) (State, error) {
	st := State{Action: ActionNone}
	if len(token) > MaxTokenLen {
		return st, ErrMalformed
	}
	parts := strings.Split(token, sep)
	if len(parts) < 2 || len(parts) > 7 || parts[0] != FamilyMenu {
		return st, ErrMalformed
	}

	level, err := strconv.Atoi(parts[1])
	if err != nil || level < 0 || level > 5 {
		return st, ErrMalformed
	}
	st.Level = level

	ids := [4]*uint{&st.RestaurantID, &st.GroupID, &st.CategoryID, &st.ItemID}
	for i, dst := range ids {
		if len(parts) <= 2+i {
			break
		}
		v, err := strconv.ParseUint(parts[2+i], 10, 32)
		if err != nil {
			return st, ErrMalformed
		}
		*dst = uint(v)
	}
	if len(parts) == 7 {
		if parts[6] == "" {
			return st, ErrMalformed
		}
		st.Action = parts[6]
	}
	return st, nil
}

// Validate checks the level invariant: identifiers below the current
// level must be set and the rest must be zero. Level 4 additionally
// allows the random form, where the item is unknown and the deepest set
// identifier bounds the selection scope.
func (st State) Validate() error {
	ok := false
	switch st.Level {
	case 0:
		ok = st.RestaurantID == 0 && st.GroupID == 0 && st.CategoryID == 0 && st.ItemID == 0
	case 1:
		ok = st.RestaurantID != 0 && st.GroupID == 0 && st.CategoryID == 0 && st.ItemID == 0
	case 2:
		ok = st.RestaurantID != 0 && st.GroupID != 0 && st.CategoryID == 0 && st.ItemID == 0
	case 3:
		ok = st.RestaurantID != 0 && st.GroupID != 0 && st.CategoryID != 0 && st.ItemID == 0
	case 4:
		if st.Action == ActionRandom {
			ok = st.ItemID == 0 && st.RestaurantID != 0
		} else {
			ok = st.RestaurantID != 0 && st.GroupID != 0 && st.CategoryID != 0 && st.ItemID != 0
		}
	case 5:
		ok = st.ItemID != 0
	}
	if !ok {
		return ErrInvalidState
	}
	return nil
}

// OrderAction is the "o" family: a single operation on one order row.
type OrderAction struct {
	Op      string `json:"op"` // "del"
	OrderID uint   `json:"orderId"`
}

const OrderOpDelete = "del"

func EncodeOrder(a OrderAction) string {
	return strings.Join([]string{FamilyOrder, a.Op, strconv.FormatUint(uint64(a.OrderID), 10)}, sep)
}

func DecodeOrder(token string) (OrderAction, error) {
	var a OrderAction
	if len(token) > MaxTokenLen {
		return a, ErrMalformed
	}
	parts := strings.Split(token, sep)
	if len(parts) != 3 || parts[0] != FamilyOrder {
		return a, ErrMalformed
	}
	if parts[1] != OrderOpDelete {
		return a, ErrMalformed
	}
	id, err := strconv.ParseUint(parts[2], 10, 32)
	if err != nil || id == 0 {
		return a, ErrMalformed
	}
	a.Op = parts[1]
	a.OrderID = uint(id)
	return a, nil
}

// StatsAction is the "s" family: report period plus what to do with it.
type StatsAction struct {
	Period string `json:"period"` // "week", "month", "all", "back"
	Op     string `json:"op"`     // "view", "export"
}

const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodAll   = "all"
	PeriodBack  = "back"

	StatsOpView   = "view"
	StatsOpExport = "export"
)

func EncodeStats(a StatsAction) string {
	return strings.Join([]string{FamilyStats, a.Period, a.Op}, sep)
}

func DecodeStats(token string) (StatsAction, error) {
	var a StatsAction
	if len(token) > MaxTokenLen {
		return a, ErrMalformed
	}
	parts := strings.Split(token, sep)
	if len(parts) != 3 || parts[0] != FamilyStats {
		return a, ErrMalformed
	}
	switch parts[1] {
	case PeriodWeek, PeriodMonth, PeriodAll, PeriodBack:
	default:
		return a, ErrMalformed
	}
	switch parts[2] {
	case StatsOpView, StatsOpExport:
	default:
		return a, ErrMalformed
	}
	a.Period = parts[1]
	a.Op = parts[2]
	return a, nil
}

// WindowDays maps a period name to its trailing window, nil meaning all
// time.
func WindowDays(period string) *int {
	var d int
	switch period {
	case PeriodWeek:
		d = 7
	case PeriodMonth:
		d = 30
	default:
		return nil
	}
	return &d
}
