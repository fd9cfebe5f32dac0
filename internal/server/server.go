package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/Bessima/food-dispatch/internal/config/db"
	"github.com/Bessima/food-dispatch/internal/handlers"
	authmw "github.com/Bessima/food-dispatch/internal/middlewares"
	"github.com/Bessima/food-dispatch/internal/middlewares/logger"
	"github.com/Bessima/food-dispatch/internal/repository"
	"github.com/Bessima/food-dispatch/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type ServerService struct {
	Server    *http.Server
	db        *db.DB
	publisher service.ActionPublisherI
	clock     service.Clock
}

func NewServerService(rootContext context.Context, address string, db *db.DB, publisher service.ActionPublisherI, clock service.Clock) ServerService {
	server := &http.Server{
		Addr:              address,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return rootContext
		},
	}
	return ServerService{Server: server, db: db, publisher: publisher, clock: clock}
}

func (serverService *ServerService) SetRouter(jwtConfig *handlers.JWTConfig) {
	serverService.Server.Handler = serverService.getRouter(jwtConfig)
}

func (serverService *ServerService) getRouter(jwtConfig *handlers.JWTConfig) chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logger.RequestLogger)
	router.Use(middleware.Recoverer)

	adminRepository := repository.NewAdminRepository(serverService.db)
	customerRepository := repository.NewCustomerRepository(serverService.db)
	orderRepository := repository.NewOrderRepository(serverService.db)
	actionLogRepository := repository.NewActionLogRepository(serverService.db)

	recorder := service.NewActionRecorder(actionLogRepository, serverService.publisher)
	scope := service.NewScopeResolver(adminRepository, orderRepository, customerRepository)
	machine := service.NewOrderStateMachine(orderRepository, recorder)
	lifecycle := service.NewLifecycleStore(orderRepository, customerRepository, recorder, serverService.clock)
	dispatch := service.NewDispatchScheduler(scope, orderRepository, customerRepository, recorder, serverService.clock)
	gateway := service.NewBulkMutationGateway(scope, machine, lifecycle, dispatch, orderRepository, recorder, serverService.clock)

	authHandler := handlers.NewAuthHandler(jwtConfig, adminRepository)
	adminHandler := handlers.NewAdminHandler(service.NewAdminService(adminRepository, recorder), scope)
	customersHandler := handlers.NewCustomersHandler(service.NewCustomerService(customerRepository, scope, recorder), dispatch)
	orderHandler := handlers.NewOrderHandler(service.NewOrderService(orderRepository, scope, machine, recorder, serverService.clock))
	bulkHandler := handlers.NewBulkHandler(gateway)
	dispatchHandler := handlers.NewDispatchHandler(dispatch)

	router.Post("/api/auth/login", authHandler.LoginHandler)

	router.Group(func(r chi.Router) {
		r.Use(authmw.AuthMiddleware(authHandler))

		r.Post("/api/auth/logout", authHandler.LogoutHandler)
		r.Post("/api/admins", adminHandler.Create)
		r.Get("/api/scope", adminHandler.Scope)

		r.Post("/api/customers", customersHandler.Create)
		r.Get("/api/customers", customersHandler.List)
		r.Put("/api/customers/{id}/plan", customersHandler.SetPlan)
		r.Post("/api/customers/bulk/{action}", bulkHandler.Customers)

		r.Post("/api/orders", orderHandler.Add)
		r.Get("/api/orders", orderHandler.GetOrders)
		r.Post("/api/orders/bulk/{action}", bulkHandler.Orders)

		r.Post("/api/dispatch/start-day", dispatchHandler.StartDay)
		r.Post("/api/dispatch/normalize-drafts", dispatchHandler.NormalizeDrafts)

		r.Get("/api/courier/route", orderHandler.CourierRoute)
		r.Post("/api/courier/orders/{id}/status", orderHandler.CourierStatus)
	})

	return router
}

func (serverService *ServerService) RunServer(serverErr chan<- error) {
	if err := serverService.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		serverErr <- err
	} else {
		serverErr <- nil
	}
}

func (serverService *ServerService) Shutdown() error {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	return serverService.Server.Shutdown(shutdownCtx)
}
