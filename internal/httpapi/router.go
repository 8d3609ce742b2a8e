package httpapi

import (
	"github.com/RR-LN/comercio-cart/internal/logger"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	CartHandler   *CartHandler
	HealthHandler *HealthHandler
	Logger        *logger.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(cfg.Logger))

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Live)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}

	api := r.Group("/api")
	{
		if cfg.CartHandler != nil {
			api.GET("/cart/:userId", cfg.CartHandler.GetCart)
			api.POST("/cart/add", cfg.CartHandler.AddItem)
			api.DELETE("/cart/:userId", cfg.CartHandler.ClearCart)
			api.POST("/cart/:userId/discount", cfg.CartHandler.ApplyDiscount)
			api.PUT("/cart/:userId/items/:itemId", cfg.CartHandler.UpdateQuantity)
			api.DELETE("/cart/:userId/items/:itemId", cfg.CartHandler.DeleteItem)
		}
	}

	return r
}
