package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"storefront-backend/internal/auth"
	"storefront-backend/internal/config"
	"storefront-backend/internal/handler"
	custommw "storefront-backend/internal/middleware"
	"storefront-backend/internal/repository"
	"storefront-backend/internal/service"
)

type Server struct {
	echo            *echo.Echo
	authCfg         config.Auth
	roleRepo        repository.RoleRepository
	checkoutHandler *handler.CheckoutHandler
	orderHandler    *handler.OrderHandler
	couponHandler   *handler.CouponHandler
	productHandler  *handler.ProductHandler
	userHandler     *handler.UserHandler
	roleHandler     *handler.RoleHandler
}

func NewServer(
	authCfg config.Auth,
	roleRepo repository.RoleRepository,
	checkoutService service.CheckoutService,
	orderService service.OrderService,
	couponService service.CouponService,
	productService service.ProductService,
	userService service.UserService,
	roleService service.RoleService,
) *Server {
	e := echo.New()

	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		authCfg:         authCfg,
		roleRepo:        roleRepo,
		checkoutHandler: handler.NewCheckoutHandler(checkoutService),
		orderHandler:    handler.NewOrderHandler(orderService),
		couponHandler:   handler.NewCouponHandler(couponService),
		productHandler:  handler.NewProductHandler(productService),
		userHandler:     handler.NewUserHandler(userService),
		roleHandler:     handler.NewRoleHandler(roleService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	requireAuth := custommw.RequireAuth(s.authCfg.JWTSecret)
	can := func(action string) echo.MiddlewareFunc {
		return custommw.RequirePermission(s.roleRepo, action)
	}

	// The webhook lives outside /api so the raw-body contract stays
	// obvious: nothing else may touch this route.
	s.echo.POST("/webhook", s.checkoutHandler.StripeWebhook)

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.POST("/create-checkout-session", s.checkoutHandler.CreateCheckoutSession)

	// -------- orders / payments --------
	orders := api.Group("/orders")
	orders.GET("", s.orderHandler.ListOrders)
	orders.GET("/:id", s.orderHandler.GetOrder)
	orders.DELETE("/:id", s.orderHandler.DeleteOrder, requireAuth, can(auth.ActionManageOrders))
	api.GET("/payments/:id", s.orderHandler.GetPayment)

	// -------- coupons --------
	coupons := api.Group("/coupons")
	coupons.POST("/validate", s.couponHandler.Validate)
	coupons.POST("/apply", s.couponHandler.Apply)
	coupons.GET("", s.couponHandler.List, requireAuth, can(auth.ActionManageCoupons))
	coupons.POST("", s.couponHandler.Create, requireAuth, can(auth.ActionManageCoupons))
	coupons.DELETE("/:code", s.couponHandler.Delete, requireAuth, can(auth.ActionManageCoupons))

	// -------- catalog --------
	products := api.Group("/products")
	products.GET("", s.productHandler.List)
	products.GET("/:id", s.productHandler.Get)
	products.POST("", s.productHandler.Create, requireAuth, can(auth.ActionManageProducts))
	products.PUT("/:id", s.productHandler.Update, requireAuth, can(auth.ActionManageProducts))
	products.DELETE("/:id", s.productHandler.Delete, requireAuth, can(auth.ActionManageProducts))

	// -------- users --------
	users := api.Group("/users")
	users.POST("/signup", s.userHandler.Signup)
	users.POST("/login", s.userHandler.Login)
	users.GET("", s.userHandler.List, requireAuth, can(auth.ActionManageUsers))
	users.PUT("/:id", s.userHandler.Update, requireAuth, can(auth.ActionManageUsers))
	users.DELETE("/:id", s.userHandler.Delete, requireAuth, can(auth.ActionManageUsers))

	// -------- sub-admins / roles --------
	admin := api.Group("/admin", requireAuth, can(auth.ActionManageUsers))
	admin.POST("/subadmins", s.userHandler.CreateSubAdmin)
	admin.GET("/subadmins", s.userHandler.ListSubAdmins)

	roles := api.Group("/roles", requireAuth, can(auth.ActionManageRoles))
	roles.POST("", s.roleHandler.Create)
	roles.GET("", s.roleHandler.List)
	roles.GET("/:id", s.roleHandler.Get)
	roles.PUT("/:id", s.roleHandler.Update)
	roles.DELETE("/:id", s.roleHandler.Delete)
}

func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
