package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kitchenharmony-backend-go/internal/api"
	"kitchenharmony-backend-go/internal/config"
	"kitchenharmony-backend-go/internal/core"
	"kitchenharmony-backend-go/internal/db"
	"kitchenharmony-backend-go/internal/middleware"
)

func main() {
	// --- 1. Logger ---
	zapLogger, err := newLogger(os.Getenv("GIN_MODE"))
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck

	// --- 2. Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to load application configuration", zap.Error(err))
	}
	zapLogger.Info("Application configuration loaded successfully.", zap.String("authProvider", appConfig.AuthProvider))

	// --- 3. Firebase Admin SDK (Firestore, and Auth for Firebase tokens) ---
	initCtx, cancelInit := context.WithTimeout(context.Background(), 15*time.Second)
	clients, err := db.InitFirestore(initCtx, appConfig, zapLogger)
	cancelInit()
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firestore and Firebase Admin SDK", zap.Error(err))
	}
	defer clients.Close()

	// --- 4. Repositories ---
	mealPlanRepo := db.NewFirestoreMealPlanRepository(clients.Firestore)
	userRepo := db.NewFirestoreUserRepository(clients.Firestore)
	counterRepo := db.NewFirestoreCounterRepository(clients.Firestore)
	recipeRepo := db.NewFirestoreRecipeRepository(clients.Firestore)
	inventoryRepo := db.NewFirestoreInventoryRepository(clients.Firestore)
	shoppingListRepo := db.NewFirestoreShoppingListRepository(clients.Firestore)

	// --- 5. Services ---
	services := api.Services{
		MealPlans:     core.NewMealPlanService(mealPlanRepo, zapLogger),
		Users:         core.NewUserService(userRepo, counterRepo, zapLogger),
		Recipes:       core.NewRecipeService(recipeRepo),
		Inventories:   core.NewInventoryService(inventoryRepo),
		ShoppingLists: core.NewShoppingListService(shoppingListRepo),
	}
	zapLogger.Info("Core services initialized successfully.")

	// --- 6. Identity ---
	authenticate, err := newAuthenticator(appConfig, clients, zapLogger)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize authentication", zap.Error(err))
	}

	// --- 7. Gin engine and global middleware ---
	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.CORSMiddleware(appConfig, zapLogger))

	api.SetupRoutes(router, authenticate, zapLogger, services)

	// --- 8. HTTP server ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- 9. Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	zapLogger.Info("Server exiting gracefully.")
}

func newLogger(ginMode string) (*zap.Logger, error) {
	if strings.ToLower(ginMode) == "release" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// newAuthenticator returns the middleware that resolves the caller for AUTH_PROVIDER.
func newAuthenticator(appConfig *config.Config, clients *db.Clients, logger *zap.Logger) (gin.HandlerFunc, error) {
	switch appConfig.AuthProvider {
	case config.AuthProviderFirebase:
		if clients.Auth == nil {
			return nil, errors.New("firebase auth client is not initialized")
		}
		return middleware.NewAuthMiddleware(middleware.NewFirebaseVerifier(clients.Auth), logger).VerifyToken(), nil
	case config.AuthProviderAuth0:
		verifier, err := middleware.NewAuth0Verifier(appConfig.Auth0JWKSURL(), appConfig.Auth0IssuerURL(), appConfig.Auth0Audience)
		if err != nil {
			return nil, err
		}
		logger.Info("Verifying Auth0 access tokens", zap.String("issuer", appConfig.Auth0IssuerURL()))
		return middleware.NewAuthMiddleware(verifier, logger).VerifyToken(), nil
	case config.AuthProviderHeader:
		logger.Warn("Trusting caller identity from request header; run behind an authenticating proxy", zap.String("header", appConfig.IdentityHeader))
		return middleware.HeaderIdentity(appConfig.IdentityHeader), nil
	default:
		return nil, fmt.Errorf("unsupported auth provider %q", appConfig.AuthProvider)
	}
}
