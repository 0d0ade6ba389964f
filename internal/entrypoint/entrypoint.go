package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booktracker/internal/auth"
	"github.com/mrlokans/booktracker/internal/config"
	"github.com/mrlokans/booktracker/internal/database"
	"github.com/mrlokans/booktracker/internal/database/books"
	"github.com/mrlokans/booktracker/internal/database/tokens"
	"github.com/mrlokans/booktracker/internal/database/users"
	http_controllers "github.com/mrlokans/booktracker/internal/http"
	"github.com/mrlokans/booktracker/internal/scheduler"
	"github.com/mrlokans/booktracker/internal/services"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	// Wait for interrupt signal to gracefully shutdown the server with
	// a configurable timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the pruning scheduler)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// tokenSecret decodes the configured signing secret, generating one when
// unset. A generated secret invalidates outstanding tokens on restart.
func tokenSecret(cfg config.Auth) ([]byte, error) {
	if cfg.TokenSecret != "" {
		secret, err := hex.DecodeString(cfg.TokenSecret)
		if err != nil {
			// Not hex, use as raw bytes
			return []byte(cfg.TokenSecret), nil
		}
		return secret, nil
	}

	generated, err := auth.GenerateTokenSecret()
	if err != nil {
		return nil, err
	}
	log.Printf("Generated token secret (set AUTH_TOKEN_SECRET to persist)")
	secret, _ := hex.DecodeString(generated)
	return secret, nil
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting BookTracker v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Repositories
	booksRepo := books.NewRepository(db.DB)
	usersRepo := users.NewRepository(db.DB)
	tokensRepo := tokens.NewRepository(db.DB)

	// Book service
	bookService := services.NewBookManager(booksRepo)

	// Identity and token issuer
	secret, err := tokenSecret(cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to prepare token secret: %v", err)
	}
	issuer := auth.NewIssuer(secret, cfg.Auth.TokenIssuer, cfg.Auth.TokenExpiry)
	authService := auth.NewService(usersRepo, tokensRepo, issuer, cfg.Auth)
	authMiddleware := auth.NewMiddleware(authService)

	// Expired-token pruning, if enabled
	var pruner *scheduler.TokenPruneScheduler
	if cfg.Auth.PruneEnabled {
		pruner = scheduler.NewTokenPruneScheduler(tokensRepo, cfg.Auth.PruneSchedule)
		if err := pruner.Start(); err != nil {
			log.Fatalf("Failed to start token pruning: %v", err)
		}
	}

	// Build router configuration with all dependencies
	routerCfg := http_controllers.RouterConfig{
		BookService:    bookService,
		Database:       db,
		AuthService:    authService,
		AuthMiddleware: authMiddleware,
		Metrics:        http_controllers.NewCollector(),
		Version:        version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if pruner != nil {
			pruner.Stop()
		}
	}

	Serve(router, cfg, onShutdown)
}
