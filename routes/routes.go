package routes

import (
	"foodnav/configs"
	"foodnav/controllers"
	"foodnav/middlewares"
	"foodnav/repository"
	"foodnav/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	catalogRepo := repository.NewCatalogRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Services
	orderSvc := services.NewOrderService(orderRepo, catalogRepo)
	picker := services.NewPicker(catalogRepo)
	navSvc := services.NewNavigationService(catalogRepo, orderSvc, picker)
	statsSvc := services.NewStatsService(orderRepo, catalogRepo)
	catalogSvc := services.NewCatalogService(db, catalogRepo)
	operatorSvc := services.NewOperatorService(cfg.OperatorPassword, cfg.JWTSecret, cfg.JWTTTL)

	// Controllers
	menuCtrl := controllers.NewMenuController(navSvc, orderSvc, statsSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	statsCtrl := controllers.NewStatsController(statsSvc)
	operatorCtrl := controllers.NewOperatorController(operatorSvc, catalogSvc)

	// Transport adapter (public; it vouches for the chat identity)
	r.POST("/start", menuCtrl.Start)
	r.POST("/callback", menuCtrl.Callback)
	r.GET("/orders/today", orderCtrl.ListToday)
	r.GET("/stats", statsCtrl.Chooser)
	r.GET("/stats/export", statsCtrl.ExportCSV)

	// Operator (password-gated)
	op := r.Group("/operator")
	{
		op.POST("/login", operatorCtrl.Login)
		op.POST("/restaurants", middlewares.AuthMiddleware(cfg.JWTSecret, "operator"), operatorCtrl.LoadCatalog)
	}
}
