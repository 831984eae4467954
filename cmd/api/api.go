package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SilasJCSP/delivery-tech-fat/docs"
	"github.com/SilasJCSP/delivery-tech-fat/internal/queue"
	"github.com/SilasJCSP/delivery-tech-fat/internal/ratelimiter"
	"github.com/SilasJCSP/delivery-tech-fat/internal/service"
	"github.com/SilasJCSP/delivery-tech-fat/internal/store/mongo"
	"github.com/SilasJCSP/delivery-tech-fat/internal/worker"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config            config
	logger            *zap.SugaredLogger
	rateLimiter       ratelimiter.Limiter
	storage           *mongo.Storage
	broker            queue.Broker
	customerService   *service.CustomerService
	restaurantService *service.RestaurantService
	catalogService    *service.CatalogService
	orderService      *service.OrderService
	authService       *service.AuthService
	auditService      *service.AuditService
	auditWorker       *worker.StatusAuditWorker
}

type config struct {
	addr        string
	env         string
	apiURL      string
	sessionTTL  time.Duration
	rateLimiter ratelimiter.Config
	mongo       mongoConfig
	rabbitMQ    rabbitMQConfig
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Route("/customers", func(r chi.Router) {
			r.Post("/", app.registerCustomerHandler)
			r.Get("/", app.listCustomersHandler)
			r.Get("/search", app.searchCustomersHandler)
			r.Get("/by-email/{email}", app.getCustomerByEmailHandler)
			r.Get("/{customer_id}", app.getCustomerHandler)
			r.Put("/{customer_id}", app.updateCustomerHandler)
			r.Delete("/{customer_id}", app.deactivateCustomerHandler)
			r.Patch("/{customer_id}/status", app.toggleCustomerStatusHandler)
		})

		r.Route("/restaurants", func(r chi.Router) {
			r.Post("/", app.createRestaurantHandler)
			r.Get("/", app.listRestaurantsHandler)
			r.Get("/{restaurant_id}", app.getRestaurantHandler)
			r.Put("/{restaurant_id}", app.updateRestaurantHandler)
			r.Patch("/{restaurant_id}/status", app.toggleRestaurantStatusHandler)
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", app.createProductHandler)
			r.Get("/", app.listProductsHandler)
			r.Get("/search", app.searchProductsHandler)
			r.Get("/by-restaurant/{restaurant_id}", app.listProductsByRestaurantHandler)
			r.Get("/by-category/{category}", app.listProductsByCategoryHandler)
			r.Get("/{product_id}", app.getProductHandler)
			r.Put("/{product_id}", app.updateProductHandler)
			r.Patch("/{product_id}/availability", app.setProductAvailabilityHandler)
			r.Delete("/{product_id}", app.deleteProductHandler)
			r.Delete("/{product_id}/deactivate", app.deactivateProductHandler)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", app.createOrderHandler)
			r.Get("/by-customer/{customer_id}", app.listOrdersByCustomerHandler)
			r.Get("/{order_id}", app.getOrderHandler)
			r.Post("/{order_id}/items", app.addOrderItemHandler)
			r.Patch("/{order_id}/status", app.updateOrderStatusHandler)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", app.registerUserHandler)
			r.Post("/login", app.loginHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware)
				r.Get("/me", app.currentUserHandler)
				r.Post("/logout", app.logoutHandler)
			})
		})

		r.Get("/audit/{entity_id}", app.listAuditHandler)

		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// docs
	docs.SwaggerInfo.Title = "Delivery Tech"
	docs.SwaggerInfo.Description = "Food delivery API"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api/v1"

	// workers
	if app.auditWorker != nil {
		if err := app.auditWorker.Start(); err != nil {
			return fmt.Errorf("failed to start audit worker: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if app.auditWorker != nil {
			app.auditWorker.Stop()
		}

		if app.storage != nil {
			if err := app.storage.Close(ctx); err != nil {
				app.logger.Errorw("error closing MongoDB", "error", err)
			} else {
				app.logger.Info("MongoDB connection closed gracefully")
			}
		}

		if app.broker != nil {
			if err := app.broker.Close(); err != nil {
				app.logger.Errorw("error closing RabbitMQ", "error", err)
			} else {
				app.logger.Info("RabbitMQ connection closed gracefully")
			}
		}

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server have started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
