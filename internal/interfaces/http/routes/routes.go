// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/techempire/storefront/internal/interfaces/http/handlers"
	"github.com/techempire/storefront/internal/interfaces/http/middleware"
)

// Handlers groups every HTTP handler mounted under /api/v1
type Handlers struct {
	Product *handlers.ProductHandler
	Cart    *handlers.CartHandler
	Build   *handlers.BuildHandler
	Contact *handlers.ContactHandler
	Auth    *handlers.AuthHandler
	Order   *handlers.OrderHandler
	Admin   *handlers.AdminHandler
}

// SetupRoutes registers all API routes
func SetupRoutes(rg *gin.RouterGroup, h *Handlers, tokens middleware.TokenValidator) {
	SetupCatalogRoutes(rg, h)
	SetupCartRoutes(rg, h)
	SetupBuildRoutes(rg, h, tokens)
	SetupContactRoutes(rg, h)
	SetupAuthRoutes(rg, h, tokens)
	SetupOrderRoutes(rg, h, tokens)
	SetupAdminRoutes(rg, h, tokens)
}

// SetupCatalogRoutes sets up public catalog routes
func SetupCatalogRoutes(rg *gin.RouterGroup, h *Handlers) {
	products := rg.Group("/products")
	{
		products.GET("", h.Product.GetProducts)
		products.GET("/:id", h.Product.GetProduct)
	}

	rg.GET("/categories", h.Product.GetCategories)
}

// SetupCartRoutes sets up guest cart routes
func SetupCartRoutes(rg *gin.RouterGroup, h *Handlers) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.Cart.GetCart)
		cart.DELETE("", h.Cart.ClearCart)
		cart.POST("/items", h.Cart.AddToCart)
		cart.PATCH("/items/:id", h.Cart.UpdateCartItem)
		cart.DELETE("/items/:id", h.Cart.RemoveFromCart)
	}
}

// SetupBuildRoutes sets up PC configurator routes
func SetupBuildRoutes(rg *gin.RouterGroup, h *Handlers, tokens middleware.TokenValidator) {
	builder := rg.Group("/pc-builder")
	{
		builder.GET("", h.Build.GetBuild)
		builder.DELETE("", h.Build.ClearBuild)
		builder.PUT("/slots/:category", h.Build.SelectComponent)
		builder.DELETE("/slots/:category", h.Build.RemoveComponent)
		builder.POST("/cart", h.Build.AddToCart)
		builder.GET("/sheet", h.Build.DownloadSheet)
		builder.GET("/:id", h.Build.GetSavedBuild)

		// Signed-in users get the build attached to their account
		builder.POST("", middleware.OptionalAuthMiddleware(tokens), h.Build.SaveBuild)
	}
}

// SetupContactRoutes sets up the contact form route
func SetupContactRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.POST("/contact", h.Contact.Submit)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, h *Handlers, tokens middleware.TokenValidator) {
	auth := rg.Group("/auth")
	{
		auth.POST("/code", h.Auth.RequestCode)
		auth.POST("/verify", h.Auth.VerifyCode)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(tokens))
		{
			protected.GET("/me", h.Auth.Me)
		}
	}
}

// SetupOrderRoutes sets up checkout and customer order routes
func SetupOrderRoutes(rg *gin.RouterGroup, h *Handlers, tokens middleware.TokenValidator) {
	authRequired := middleware.AuthMiddleware(tokens)

	rg.POST("/checkout", authRequired, h.Order.Checkout)

	orders := rg.Group("/orders")
	orders.Use(authRequired)
	{
		orders.GET("", h.Order.GetOrders)
		orders.GET("/:id", h.Order.GetOrder)
		orders.GET("/:id/invoice", h.Order.DownloadInvoice)
	}
}

// SetupAdminRoutes sets up admin routes
func SetupAdminRoutes(rg *gin.RouterGroup, h *Handlers, tokens middleware.TokenValidator) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(tokens))
	admin.Use(middleware.AdminMiddleware())
	{
		products := admin.Group("/products")
		{
			products.GET("", h.Admin.GetProducts)
			products.GET("/export", h.Admin.ExportProducts)
			products.GET("/:id", h.Admin.GetProduct)
			products.POST("", h.Admin.CreateProduct)
			products.PUT("/:id", h.Admin.UpdateProduct)
			products.DELETE("/:id", h.Admin.DeleteProduct)
		}

		orders := admin.Group("/orders")
		{
			orders.GET("", h.Admin.GetOrders)
			orders.GET("/:id", h.Admin.GetOrder)
			orders.PUT("/:id/status", h.Admin.UpdateOrderStatus)
		}

		admin.GET("/contacts", h.Admin.GetContacts)
	}
}
