package controllers

import (
	"strconv"
	"time"

	"foodnav/pkg/resp"
	"foodnav/services"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// GET /orders/today?externalId=
func (ctl *OrderController) ListToday(c *gin.Context) {
	externalID, err := strconv.ParseInt(c.Query("externalId"), 10, 64)
	if err != nil || externalID == 0 {
		resp.BadRequest(c, "externalId is required")
		return
	}

	day, err := ctl.Orders.ListDay(services.Identity{ExternalID: externalID}, time.Now())
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, day)
}
