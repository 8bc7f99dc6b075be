// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"patisserie/internal/delivery/http/middleware"
	"patisserie/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler       *handler.AccountHandler
	PaymentHandler       *handler.PaymentHandler
	ProductHandler       *handler.ProductHandler
	PasswordResetHandler *handler.PasswordResetHandler
	EmailHandler         *handler.EmailHandler
	AuthMiddleware       *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler       *handler.AccountHandler
	paymentHandler       *handler.PaymentHandler
	productHandler       *handler.ProductHandler
	passwordResetHandler *handler.PasswordResetHandler
	emailHandler         *handler.EmailHandler
	authMiddleware       *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler:       params.AccountHandler,
		paymentHandler:       params.PaymentHandler,
		productHandler:       params.ProductHandler,
		passwordResetHandler: params.PasswordResetHandler,
		emailHandler:         params.EmailHandler,
		authMiddleware:       params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.accountHandler.Register)
		authGroup.POST("/social-register", r.accountHandler.RegisterSocial)
		authGroup.POST("/login", r.accountHandler.Login)
		authGroup.POST("/validate-token", r.accountHandler.ValidateToken)
		authGroup.GET("/confirm-email", r.accountHandler.ConfirmEmail)
		authGroup.POST("/reset-password-request", r.passwordResetHandler.RequestReset)
		authGroup.POST("/reset-password", r.passwordResetHandler.ResetPassword)
	}

	// Authenticated account routes
	accountGroup := api.Group("/auth")
	accountGroup.Use(r.authMiddleware.Authenticate)
	{
		accountGroup.GET("/get-user", r.accountHandler.GetProfile)
		accountGroup.PUT("/update-user", r.accountHandler.UpdateProfile)
		accountGroup.DELETE("/delete-user", r.accountHandler.DeleteProfile)
		accountGroup.GET("/get-user-role", r.accountHandler.GetRoles)
	}

	// Admin-only account routes
	adminGroup := api.Group("/auth")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireAdmin)
	{
		adminGroup.POST("/verify-admin", r.accountHandler.VerifyAdmin)
		adminGroup.POST("/assign-role", r.accountHandler.AssignRole)
		adminGroup.POST("/revoke-role", r.accountHandler.RevokeRole)
		adminGroup.GET("/get-all-users", r.accountHandler.ListUsers)
	}

	// Payment routes
	paymentGroup := api.Group("/payment")
	{
		paymentGroup.POST("/process/mobile", r.paymentHandler.ProcessMobile)
		paymentGroup.POST("/process/card", r.paymentHandler.ProcessCard)
		paymentGroup.GET("/receipt/:receipt", r.paymentHandler.ByReceipt)
	}

	paymentAuthGroup := api.Group("/payment")
	paymentAuthGroup.Use(r.authMiddleware.Authenticate)
	{
		paymentAuthGroup.GET("/history/:customerId", r.paymentHandler.History)
	}

	paymentAdminGroup := api.Group("/payment")
	paymentAdminGroup.Use(r.authMiddleware.Authenticate)
	paymentAdminGroup.Use(r.authMiddleware.RequireAdmin)
	{
		paymentAdminGroup.GET("", r.paymentHandler.List)
	}

	// Catalog routes: reads are public, writes are admin only.
	productGroup := api.Group("/produits")
	{
		productGroup.GET("", r.productHandler.List)
		productGroup.GET("/:id", r.productHandler.Get)
		productGroup.GET("/search", r.productHandler.Search)
		productGroup.GET("/top", r.productHandler.Top)
	}

	productAdminGroup := api.Group("/produits")
	productAdminGroup.Use(r.authMiddleware.Authenticate)
	productAdminGroup.Use(r.authMiddleware.RequireAdmin)
	{
		productAdminGroup.POST("", r.productHandler.Create)
		productAdminGroup.PUT("/:id", r.productHandler.Update)
		productAdminGroup.DELETE("/:id", r.productHandler.Delete)
	}

	// Direct email sending, admin only.
	emailGroup := api.Group("/send-email")
	emailGroup.Use(r.authMiddleware.Authenticate)
	emailGroup.Use(r.authMiddleware.RequireAdmin)
	{
		emailGroup.POST("", r.emailHandler.Send)
	}
}
