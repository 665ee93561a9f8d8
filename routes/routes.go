package routes

import (
	"net/http"
	"time"

	"classroom-tools/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.Engine, h *controllers.Handler) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Format(time.RFC3339)})
	})

	api := router.Group("/api")
	{
		// Calculator routes
		api.POST("/algebra/inverse", h.Inverse)
		api.POST("/algebra/determinant", h.Determinant)
		api.POST("/algebra/multiply", h.Multiply)
		api.POST("/algebra/solve", h.Solve)

		api.POST("/math/factorial", h.Factorial)
		api.POST("/math/combinatorics", h.Count)
		api.POST("/math/gcd", h.GCD)
		api.POST("/math/sets", h.Sets)

		// Product routes
		api.POST("/products", h.CreateProduct)
		api.GET("/products", h.ListProducts)
		api.GET("/products/:code", h.GetProduct)
		api.PUT("/products/:code", h.UpdateProduct)
		api.DELETE("/products/:code", h.DeleteProduct)

		// Client routes
		api.POST("/clients", h.CreateClient)
		api.GET("/clients", h.ListClients)
		api.GET("/clients/:code", h.GetClient)
		api.PUT("/clients/:code", h.UpdateClient)
		api.DELETE("/clients/:code", h.DeleteClient)

		// Sale routes
		api.POST("/sales", h.CreateSale)
		api.GET("/sales", h.ListSales)
		api.GET("/sales/by-date", h.GetSalesByDate)
		api.GET("/sales/summary/monthly", h.GetMonthlySalesSummary)
		api.GET("/sales/:id", h.GetSale)
		api.PUT("/sales/:id", h.UpdateSale)
		api.POST("/sales/:id/void", h.VoidSale)
		api.DELETE("/sales/:id", h.DeleteSale)

		// Inventory and report routes
		api.GET("/inventory/low-stock", h.GetLowStockAlerts)
		api.GET("/dashboard", h.GetDashboard)
		api.GET("/reports/sales", h.SalesReport)
		api.POST("/reports/sales/email", h.EmailSalesReport)
	}
}
