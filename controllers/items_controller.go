// controllers/items_controller.go
package controllers

import (
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"Gin_memory_redis_rental_catalog/app"
	"Gin_memory_redis_rental_catalog/models"
	"Gin_memory_redis_rental_catalog/services"

	"github.com/gin-gonic/gin"
)

type ItemController struct{ *Srv }

func NewItemController(s *Srv) *ItemController { return &ItemController{Srv: s} }

// 空字符串表示不过滤；无法解析的值按 NaN 处理，不匹配任何物品
func parsePrice(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		v = math.NaN()
	}
	return &v
}

// GET /api/items?name=&minPrice=&maxPrice=
func (ic *ItemController) SearchItems(c *gin.Context) {
	items, err := ic.Items.SearchItems(c.Request.Context(), models.SearchFilter{
		Name:     c.Query("name"),
		MinPrice: parsePrice(c.Query("minPrice")),
		MaxPrice: parsePrice(c.Query("maxPrice")),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GET /api/items/:id
func (ic *ItemController) GetItem(c *gin.Context) {
	it, err := ic.Items.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

// POST /api/items
func (ic *ItemController) CreateItem(c *gin.Context) {
	var in struct {
		ID          string   `json:"id"`
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Price       *float64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid request body: " + err.Error()})
		return
	}
	it, err := ic.Items.AddItem(c.Request.Context(), services.AddItemInput{
		ID:          in.ID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"message": "Item added successfully!", "item": it})
}

// POST /api/items/:id/rent
func (ic *ItemController) Rent(c *gin.Context) {
	var in struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}
	// 空 body 交给 service 报缺少字段
	if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid request body: " + err.Error()})
		return
	}

	res, err := ic.Items.RentItem(c.Request.Context(), c.Param("id"), in.StartDate, in.EndDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "Item rented successfully", "item": res.Item, "id": res.RentalID})
}

// POST /api/items/:id/return/:rentalId
func (ic *ItemController) Return(c *gin.Context) {
	it, err := ic.Items.ReturnItem(c.Request.Context(), c.Param("id"), c.Param("rentalId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "Item returned successfully", "item": it})
}
