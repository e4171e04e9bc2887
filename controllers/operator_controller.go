package controllers

import (
	"errors"

	"foodnav/pkg/resp"
	"foodnav/services"

	"github.com/gin-gonic/gin"
)

// OperatorController carries the catalog-load side: password login plus
// bulk menu upload.
type OperatorController struct {
	Operator *services.OperatorService
	Catalog  *services.CatalogService
}

func NewOperatorController(operator *services.OperatorService, catalog *services.CatalogService) *OperatorController {
	return &OperatorController{Operator: operator, Catalog: catalog}
}

// POST /operator/login
func (ctl *OperatorController) Login(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, err := ctl.Operator.Login(req.Password)
	if errors.Is(err, services.ErrBadPassword) {
		resp.Unauthorized(c, "invalid password")
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"token": token})
}

type LoadCatalogRequest struct {
	Name        string             `json:"name" binding:"required"`
	Description string             `json:"description"`
	Rows        []services.MenuRow `json:"rows" binding:"required"`
}

// POST /operator/restaurants → upsert the restaurant and replace its
// whole menu tree with the uploaded rows.
func (ctl *OperatorController) LoadCatalog(c *gin.Context) {
	var req LoadCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	rest, err := ctl.Catalog.UpsertRestaurant(req.Name, req.Description)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	count, err := ctl.Catalog.ReplaceMenu(rest.ID, req.Rows)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.Created(c, gin.H{"restaurantId": rest.ID, "itemCount": count})
}
