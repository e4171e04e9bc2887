package controllers

import (
	"errors"

	"foodnav/pkg/navtoken"
	"foodnav/pkg/resp"
	"foodnav/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MenuController is the callback channel of the chat transport: every
// button tap lands on POST /callback with an opaque token.
type MenuController struct {
	Nav    *services.NavigationService
	Orders *services.OrderService
	Stats  *services.StatsService
}

func NewMenuController(nav *services.NavigationService, orders *services.OrderService, stats *services.StatsService) *MenuController {
	return &MenuController{Nav: nav, Orders: orders, Stats: stats}
}

type CallbackRequest struct {
	Token string `json:"token" binding:"required"`
	services.Identity
}

// POST /start → register the user, return the root menu
func (ctl *MenuController) Start(c *gin.Context) {
	var who services.Identity
	if err := c.ShouldBindJSON(&who); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if _, err := ctl.Orders.Register(who); err != nil {
		resp.ServerError(c, err)
		return
	}
	view, err := ctl.Nav.Root()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, view)
}

// POST /callback → dispatch on the token family
func (ctl *MenuController) Callback(c *gin.Context) {
	var req CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	var (
		view *services.View
		err  error
	)
	switch navtoken.Family(req.Token) {
	case navtoken.FamilyMenu:
		view, err = ctl.resolveMenu(req)
	case navtoken.FamilyOrder:
		view, err = ctl.resolveOrder(req)
	case navtoken.FamilyStats:
		view, err = ctl.resolveStats(req)
	default:
		err = navtoken.ErrMalformed
	}

	switch {
	case err == nil:
		resp.OK(c, view)
	case errors.Is(err, navtoken.ErrMalformed), errors.Is(err, navtoken.ErrInvalidState):
		resp.BadRequest(c, "stale or invalid action, please restart navigation")
	case errors.Is(err, services.ErrItemNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "no longer available")
	default:
		resp.ServerError(c, err)
	}
}

func (ctl *MenuController) resolveMenu(req CallbackRequest) (*services.View, error) {
	st, err := navtoken.Decode(req.Token)
	if err != nil {
		return nil, err
	}
	return ctl.Nav.Resolve(req.Identity, st)
}

func (ctl *MenuController) resolveOrder(req CallbackRequest) (*services.View, error) {
	action, err := navtoken.DecodeOrder(req.Token)
	if err != nil {
		return nil, err
	}
	if err := ctl.Orders.Delete(action.OrderID); err != nil {
		return nil, err
	}
	return &services.View{Kind: services.ViewDeleted, Prompt: "Order removed"}, nil
}

func (ctl *MenuController) resolveStats(req CallbackRequest) (*services.View, error) {
	action, err := navtoken.DecodeStats(req.Token)
	if err != nil {
		return nil, err
	}
	if action.Op == navtoken.StatsOpExport {
		return ctl.Stats.ExportView(req.Identity, action.Period), nil
	}
	if action.Period == navtoken.PeriodBack {
		return ctl.Stats.ChooserView(), nil
	}
	return ctl.Stats.ReportView(req.Identity, action.Period)
}
