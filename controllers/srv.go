// controllers/srv.go
package controllers

import (
	"errors"
	"log"
	"net/http"

	"Gin_memory_redis_rental_catalog/app"
	"Gin_memory_redis_rental_catalog/apperr"
	"Gin_memory_redis_rental_catalog/services"

	"github.com/gin-gonic/gin"
)

type Srv struct {
	Items *services.ItemsService
	Cfg   app.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{Items: a.Items, Cfg: a.Config}
}

// --- helpers ---

// 统一错误输出：{error: message}；未分类错误只记日志，返回通用信息
func respondError(c *gin.Context, err error) {
	status := apperr.StatusOf(err)
	if status == http.StatusInternalServerError {
		log.Printf("[%s %s] unexpected error: %v", c.Request.Method, c.FullPath(), causeOf(err))
		c.JSON(status, app.H{"error": "internal server error"})
		return
	}
	c.JSON(status, app.H{"error": err.Error()})
}

func causeOf(err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Err != nil {
		return ae.Err
	}
	return err
}
