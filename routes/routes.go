package routes

import (
	"net/http"

	"Gin_memory_redis_rental_catalog/app"
	"Gin_memory_redis_rental_catalog/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	itemCtl := controllers.NewItemController(s)

	r.GET("/healthz", func(c *app.Ctx) { c.JSON(http.StatusOK, app.H{"ok": true}) })

	// ------------------------------
	// 物品：搜索/新增/租用/归还
	// ------------------------------
	items := r.Group("/api/items")
	{
		items.GET("", itemCtl.SearchItems) // ?name=&minPrice=&maxPrice=
		items.POST("", itemCtl.CreateItem)
		items.GET("/:id", itemCtl.GetItem)
		items.POST("/:id/rent", itemCtl.Rent)
		items.POST("/:id/return/:rentalId", itemCtl.Return)
	}
}
