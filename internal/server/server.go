package server

import (
	"context"

	"eco-electric-api/internal/handler"
	"eco-electric-api/internal/middleware"
	"eco-electric-api/internal/service"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo           *echo.Echo
	orderHandler   *handler.OrderHandler
	userHandler    *handler.UserHandler
	paymentHandler *handler.PaymentHandler
	catalogHandler *handler.CatalogHandler

	auth         echo.MiddlewareFunc
	requireAdmin echo.MiddlewareFunc
}

func NewServer(
	orderService service.OrderService,
	userService service.UserService,
	paymentService service.PaymentService,
	catalogService service.CatalogService,
	verifier middleware.Verifier,
	roles middleware.RoleStore,
) *Server {
	e := echo.New()

	e.Use(echomw.RequestLogger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	s := &Server{
		echo:           e,
		orderHandler:   handler.NewOrderHandler(orderService, userService),
		userHandler:    handler.NewUserHandler(userService),
		paymentHandler: handler.NewPaymentHandler(paymentService),
		catalogHandler: handler.NewCatalogHandler(catalogService),
		auth:           middleware.Auth(verifier),
		requireAdmin:   middleware.RequireAdmin(roles),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- orders --------
	api.POST("/orders", s.orderHandler.CreateOrder)
	// one path, two modes: ?email= is owner-scoped, bare is admin-only
	api.GET("/orders", s.orderHandler.ListOrders, s.auth)
	api.GET("/orders/:id", s.orderHandler.GetOrder)
	api.PUT("/orders/:id", s.orderHandler.ReplaceOrder)
	api.DELETE("/orders/:id", s.orderHandler.DeleteOrder)

	// -------- users --------
	api.PUT("/users/admin/:email", s.userHandler.PromoteAdmin, s.auth, s.requireAdmin)
	api.PUT("/users/:email", s.userHandler.UpsertUser)
	api.DELETE("/users/:id", s.userHandler.DeleteUser, s.auth, s.requireAdmin)
	api.GET("/admin/:email", s.userHandler.CheckAdmin)

	// -------- payments --------
	api.POST("/create-payment-intent", s.paymentHandler.CreatePaymentIntent)

	// -------- catalog --------
	api.GET("/tools", s.catalogHandler.ListTools)
	api.GET("/tools/:id", s.catalogHandler.GetTool)
	api.POST("/tools", s.catalogHandler.AddTool, s.auth, s.requireAdmin)
	api.DELETE("/tools/:id", s.catalogHandler.DeleteTool, s.auth, s.requireAdmin)
	api.PUT("/tools/:id/quantity", s.catalogHandler.DecrementToolQuantity)

	api.GET("/reviews", s.catalogHandler.ListReviews)
	api.POST("/reviews", s.catalogHandler.AddReview, s.auth)
}

func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
