package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/mykinyozi/kinyozi-api/internal/api/handler"
	"github.com/mykinyozi/kinyozi-api/internal/api/middleware"
	"github.com/mykinyozi/kinyozi-api/internal/core/ports"
	"github.com/mykinyozi/kinyozi-api/internal/infrastructure/http/handlers"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	Sessions      ports.SessionResolver
	Shops         ports.ShopService
	Employees     ports.EmployeeService
	Dashboard     ports.DashboardService
	Bookings      ports.BookingService
	Catalog       ports.CatalogService
	Expenses      ports.ExpenseService
	Inventory     ports.InventoryService
	Equipment     ports.EquipmentService
	Notifications ports.NotificationService
}

// RouterConfig carries the non-service inputs of the router.
type RouterConfig struct {
	APIKey string
	Checks []handlers.DependencyCheck
	Log    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Every /API route passes the API key gate first; owner and employee routes
// then pass their session gate.
func NewRouter(cfg RouterConfig, svc Services) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(cfg.Log))
	e.Use(echoprometheus.NewMiddleware("kinyozi"))

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewHealthDependenciesHandler(cfg.Checks...).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	var (
		shops         = handler.NewShopHandler(svc.Shops)
		employees     = handler.NewEmployeeHandler(svc.Employees)
		dashboard     = handler.NewDashboardHandler(svc.Dashboard, svc.Bookings)
		catalog       = handler.NewCatalogHandler(svc.Catalog)
		expenses      = handler.NewExpenseHandler(svc.Expenses)
		inventory     = handler.NewInventoryHandler(svc.Inventory, svc.Equipment)
		notifications = handler.NewNotificationHandler(svc.Notifications)
	)

	// API key only.
	public := e.Group("/API", middleware.APIKey(cfg.APIKey))
	public.POST("/create/shop", shops.Register)
	public.POST("/login/shop", shops.Login)
	public.GET("/shops/all", shops.Search)
	public.POST("/token/verify", shops.VerifyToken)
	public.POST("/shop/password/request-reset", shops.RequestPasswordReset)
	public.POST("/shop/password/reset/:token", shops.ResetPassword)
	public.GET("/services/all/:public_id", catalog.ListServices)
	public.POST("/notifications/create", notifications.Create)
	public.POST("/employees/login", employees.Login)
	public.POST("/employees/setup/:token", employees.SetupPassword)

	// Shop owner session.
	owner := e.Group("/API", middleware.APIKey(cfg.APIKey), middleware.ShopSession(svc.Sessions))

	owner.GET("/shop/:public_id", dashboard.Get)
	owner.GET("/shop/:public_id/bookings", dashboard.Bookings)
	owner.POST("/shop/update/:public_id", shops.Update)
	owner.DELETE("/shop/:public_id", shops.Delete)
	owner.POST("/shop/password/change/:public_id", shops.ChangePassword)

	owner.POST("/employees/create/:public_id", employees.Create)
	owner.GET("/employees/fetch/all/:public_id", employees.List)
	owner.DELETE("/employees/delete/:employee_id", employees.Delete)
	owner.POST("/employees/invite/:employee_id", employees.ResendInvite)

	owner.POST("/services/:public_id/create-services", catalog.CreateServices)
	owner.PUT("/service/update/:service_id", catalog.UpdateService)
	owner.DELETE("/service/delete/:service_id", catalog.DeleteService)

	owner.POST("/sales/create/:public_id", catalog.RecordSale)
	owner.GET("/sales/fetch/:public_id/:month/:year", catalog.FetchSales)
	owner.DELETE("/sales/delete/:sale_id", catalog.DeleteSale)

	owner.POST("/expense-account/create/:public_id", expenses.CreateAccount)
	owner.GET("/expense-accounts/fetch/:public_id", expenses.ListAccounts)
	owner.PUT("/expense-accounts/update/:account_id", expenses.UpdateAccount)
	owner.DELETE("/expense-accounts/delete/:account_id", expenses.DeleteAccount)
	owner.GET("/expenses/fetch/:public_id/:month/:year", expenses.FetchExpenses)
	owner.POST("/expense/create/:public_id", expenses.CreateExpense)
	owner.PUT("/expense/update/:expense_id", expenses.UpdateExpense)
	owner.DELETE("/expense/delete/:expense_id", expenses.DeleteExpense)

	owner.POST("/inventory/create/:public_id", inventory.Create)
	owner.GET("/inventory/fetch/:public_id", inventory.List)
	owner.PUT("/inventory/update/:inventory_id", inventory.UpdateLevel)
	owner.DELETE("/inventory/delete/:inventory_id", inventory.Delete)

	owner.POST("/equipments/create/:public_id", inventory.CreateEquipment)
	owner.GET("/equipments/fetch/all/:public_id", inventory.ListEquipment)
	owner.PUT("/equipments/faulty/:equipment_id", inventory.MarkFaulty)
	owner.DELETE("/equipments/remove/:equipment_id", inventory.RemoveEquipment)

	owner.PUT("/notifications/read/:notification_id", notifications.MarkRead)
	owner.GET("/notifications/fetch/all/:public_id", notifications.List)
	owner.GET("/notifications/fetch/:notification_id", notifications.Get)
	owner.DELETE("/notifications/delete/:notification_id", notifications.Delete)

	// Employee session.
	staff := e.Group("/API", middleware.APIKey(cfg.APIKey), middleware.EmployeeSession(svc.Sessions))
	staff.POST("/employees/password/change", employees.ChangePassword)
	staff.POST("/sales/employee/create/:public_id", catalog.RecordSale)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
