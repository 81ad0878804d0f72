package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kridana/kridana-api/internal/http/health"
	"github.com/kridana/kridana-api/internal/http/v1/routes"
	"github.com/kridana/kridana-api/internal/platform/auth"
	"github.com/kridana/kridana-api/internal/platform/firebase"
	"github.com/kridana/kridana-api/internal/platform/localstore"
	applog "github.com/kridana/kridana-api/internal/platform/logging"
	appmiddleware "github.com/kridana/kridana-api/internal/platform/middleware"
	"github.com/kridana/kridana-api/internal/platform/respond"
	catalogsvc "github.com/kridana/kridana-api/internal/service/catalog"
	ordersvc "github.com/kridana/kridana-api/internal/service/order"
	paymentsvc "github.com/kridana/kridana-api/internal/service/payment"
	profilesvc "github.com/kridana/kridana-api/internal/service/profile"
	reelsvc "github.com/kridana/kridana-api/internal/service/reels"
	cartstore "github.com/kridana/kridana-api/internal/store/cart"
	wishliststore "github.com/kridana/kridana-api/internal/store/wishlist"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	// Missing .env is fine; real deployments configure through the environment.
	_ = godotenv.Load()

	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	ctx := context.Background()

	clients, err := firebase.InitializeClients(ctx, firebase.Config{
		ProjectID:                    os.Getenv("GOOGLE_CLOUD_PROJECT"),
		GoogleApplicationCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
	})
	if err != nil {
		applog.LogFatal(ctx, "firebase init failed", err)
	}
	defer func() {
		if err := clients.Close(); err != nil {
			applog.LogError(context.Background(), "firestore close error", err)
		}
	}()

	local, err := localstore.OpenSQLite(localStorePath())
	if err != nil {
		applog.LogFatal(ctx, "local store init failed", err)
	}
	defer func() {
		if err := local.Close(); err != nil {
			applog.LogError(context.Background(), "local store close error", err)
		}
	}()

	carts := cartstore.NewManager(local, cartstore.NewFirestoreMirror(clients.Firestore))
	wishlists := wishliststore.NewManager(local)

	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security("/api-docs"),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP extracts client IP from X-Real-IP or X-Forwarded-For headers.
		// SECURITY: Only use behind a trusted reverse proxy (e.g., Cloud Run, nginx).
		// Without a trusted proxy, clients can spoof their IP address.
		chimiddleware.RealIP,
		// RequestSize limits request body size to prevent memory exhaustion from large payloads.
		chimiddleware.RequestSize(1<<20), // 1 MB limit
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler)

	cfg := huma.DefaultConfig("Kridana API", Version)
	cfg.DocsPath = "/api-docs"
	cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearerAuth": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	api := humachi.New(router, cfg)

	// Add CBOR content type to OpenAPI requests and responses
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			if op.RequestBody != nil && op.RequestBody.Content != nil {
				if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
					op.RequestBody.Content["application/cbor"] = jsonContent
				}
			}
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if jsonContent, ok := resp.Content["application/json"]; ok {
					resp.Content["application/cbor"] = jsonContent
				}
			}
		},
	)

	routes.Register(api, routes.Deps{
		Verifier:  auth.NewFirebaseVerifier(clients.Auth),
		Profiles:  profilesvc.NewFirestoreStore(clients.Firestore),
		Catalog:   catalogsvc.NewFirestoreStore(clients.Firestore),
		Reels:     reelsvc.NewFirestoreStore(clients.Firestore),
		Orders:    ordersvc.NewFirestoreStore(clients.Firestore),
		Payments:  paymentService(ctx),
		Carts:     carts,
		Wishlists: wishlists,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(context.Background(), "server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		applog.LogError(context.Background(), "listen failed", err, zap.String("addr", srv.Addr))
		os.Exit(1)
	case <-stop:
		applog.LogInfo(context.Background(), "shutdown signal received")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		applog.LogError(shutdownCtx, "server shutdown error", err)
	}
	// Let in-flight cart mirror writes finish before the Firestore client closes.
	carts.Flush()
	applog.LogInfo(context.Background(), "server exited")
}

func localStorePath() string {
	if path := os.Getenv("LOCAL_STORE_PATH"); path != "" {
		return path
	}
	return "kridana.db"
}

// paymentService builds the gateway client from the environment. An
// unconfigured gateway yields a service that refuses checkout instead of a
// startup failure, so the rest of the API stays usable in development.
func paymentService(ctx context.Context) paymentsvc.Service {
	baseURL := os.Getenv("PAYMENT_GATEWAY_URL")
	accessCode := os.Getenv("PAYMENT_ACCESS_CODE")
	workingKey := os.Getenv("PAYMENT_WORKING_KEY")
	if baseURL == "" || accessCode == "" || workingKey == "" {
		applog.LogWarn(ctx, "payment gateway not configured, checkout disabled")
		return paymentsvc.Disabled{}
	}

	client, err := paymentsvc.NewClient(
		&http.Client{Timeout: 15 * time.Second},
		baseURL,
		accessCode,
		[]byte(workingKey),
	)
	if err != nil {
		applog.LogFatal(ctx, "payment gateway init failed", err)
	}
	return client
}
