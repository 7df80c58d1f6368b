package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cartservice "github.com/campuscart/campuscart/internal/cart/service"
	cartstore "github.com/campuscart/campuscart/internal/cart/store"
	catalogrepo "github.com/campuscart/campuscart/internal/catalog/repository"
	checkoutrepo "github.com/campuscart/campuscart/internal/checkout/repository"
	checkoutservice "github.com/campuscart/campuscart/internal/checkout/service"
	"github.com/campuscart/campuscart/internal/config"
	"github.com/campuscart/campuscart/internal/db"
	"github.com/campuscart/campuscart/internal/httpapi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer conn.Close()

	if err := db.RunMigrations(conn, cfg.MigrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Printf("Connected to SQLite at %s", cfg.DBPath)

	productRepo := catalogrepo.NewSQLiteRepository(conn)
	orderRepo := checkoutrepo.NewSQLiteRepository(conn)

	// Cart persistence is probed, not assumed: without Redis the server
	// still runs, carts just do not survive a restart.
	var kv cartstore.Store
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable, cart persistence disabled: %v", err)
		redisClient.Close()
	} else {
		defer redisClient.Close()
		kv = cartstore.NewRedisStore(redisClient)
		log.Printf("Connected to Redis at %s", cfg.RedisAddr)
	}

	carts := cartservice.NewManager(kv)
	checkout := checkoutservice.NewCheckoutService(carts, orderRepo)

	productHandler := httpapi.NewProductHandler(productRepo, cfg.RequestTimeout)
	cartHandler := httpapi.NewCartHandler(carts, productRepo, cfg.RequestTimeout)
	checkoutHandler := httpapi.NewCheckoutHandler(checkout, cfg.RequestTimeout)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(httpapi.SessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/featured", productHandler.ListFeatured)
			r.Get("/{id}", productHandler.Get)
			r.Post("/", productHandler.Create)
			r.Put("/{id}", productHandler.Update)
			r.Delete("/{id}", productHandler.Delete)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})

		r.Post("/checkout", checkoutHandler.Checkout)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", checkoutHandler.ListOrders)
			r.Get("/{id}", checkoutHandler.GetOrder)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "campuscart"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("CampusCart API starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
