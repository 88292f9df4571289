package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/financialos/FinancialOS/internal/auth"
	database "github.com/financialos/FinancialOS/internal/db"
	"github.com/financialos/FinancialOS/internal/ledger/application"
	"github.com/financialos/FinancialOS/internal/ledger/interfaces"
	"github.com/financialos/FinancialOS/internal/marketdata"
	"github.com/financialos/FinancialOS/internal/storage"
	"github.com/financialos/FinancialOS/internal/syncdata"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

type Server struct {
	router             *http.ServeMux
	authHandler        *auth.Handler
	authService        auth.Service
	transactionHandler *interfaces.TransactionHandler
	assetHandler       *interfaces.AssetHandler
	liabilityHandler   *interfaces.LiabilityHandler
	goalHandler        *interfaces.GoalHandler
	categoryHandler    *interfaces.CategoryHandler
	nicheHandler       *interfaces.NicheHandler
	sideFundHandler    *interfaces.SideFundHandler
	settingsHandler    *interfaces.SettingsHandler
	dashboardHandler   *interfaces.DashboardHandler
	syncHandler        *interfaces.SyncHandler
	mirrorHandler      *syncdata.MirrorHandler
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET Provided")
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ready",
	})
}

func (s *Server) RegisterRoutes() {
	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("POST /api/register", http.HandlerFunc(s.authHandler.HandleRegister))
	publicRoutes.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	publicRoutes.Handle("POST /api/auth/logout", http.HandlerFunc(s.authHandler.HandleLogout))
	publicRoutes.Handle("GET /api/auth/session", http.HandlerFunc(s.authHandler.HandleSession))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Device-to-device mirror. Devices authenticate with nothing but the
	// user id, matching the original staging-area behavior.
	publicRoutes.Handle("POST /api/sync", http.HandlerFunc(s.mirrorHandler.Push))
	publicRoutes.Handle("GET /api/sync", http.HandlerFunc(s.mirrorHandler.Pull))

	// Protected routes (using JWT Access Token Middleware)
	protected := s.authService.JWTAccessTokenMiddleware()
	protectedRoutes := http.NewServeMux()

	protectedRoutes.Handle("POST /api/protected/change-password",
		protected(http.HandlerFunc(s.authHandler.HandleChangePassword)))

	// TRANSACTIONS API
	protectedRoutes.Handle("GET /api/protected/transactions",
		protected(http.HandlerFunc(s.transactionHandler.GetTransactions)))
	protectedRoutes.Handle("POST /api/protected/transactions",
		protected(http.HandlerFunc(s.transactionHandler.CreateTransaction)))
	protectedRoutes.Handle("GET /api/protected/transactions/summary",
		protected(http.HandlerFunc(s.transactionHandler.GetTransactionSummary)))
	protectedRoutes.Handle("PUT /api/protected/transactions/{id}",
		protected(http.HandlerFunc(s.transactionHandler.UpdateTransaction)))
	protectedRoutes.Handle("DELETE /api/protected/transactions/{id}",
		protected(http.HandlerFunc(s.transactionHandler.DeleteTransaction)))

	// ASSETS API
	protectedRoutes.Handle("GET /api/protected/assets",
		protected(http.HandlerFunc(s.assetHandler.GetAssets)))
	protectedRoutes.Handle("POST /api/protected/assets",
		protected(http.HandlerFunc(s.assetHandler.CreateAsset)))
	protectedRoutes.Handle("POST /api/protected/assets/revalue",
		protected(http.HandlerFunc(s.assetHandler.RevalueCryptoAssets)))
	protectedRoutes.Handle("PUT /api/protected/assets/{id}",
		protected(http.HandlerFunc(s.assetHandler.UpdateAsset)))
	protectedRoutes.Handle("DELETE /api/protected/assets/{id}",
		protected(http.HandlerFunc(s.assetHandler.DeleteAsset)))

	// LIABILITIES API
	protectedRoutes.Handle("GET /api/protected/liabilities",
		protected(http.HandlerFunc(s.liabilityHandler.GetLiabilities)))
	protectedRoutes.Handle("POST /api/protected/liabilities",
		protected(http.HandlerFunc(s.liabilityHandler.CreateLiability)))
	protectedRoutes.Handle("PUT /api/protected/liabilities/{id}",
		protected(http.HandlerFunc(s.liabilityHandler.UpdateLiability)))
	protectedRoutes.Handle("DELETE /api/protected/liabilities/{id}",
		protected(http.HandlerFunc(s.liabilityHandler.DeleteLiability)))
	protectedRoutes.Handle("POST /api/protected/liabilities/{id}/payments",
		protected(http.HandlerFunc(s.liabilityHandler.ApplyPayment)))

	// GOALS API
	protectedRoutes.Handle("GET /api/protected/goals",
		protected(http.HandlerFunc(s.goalHandler.GetGoals)))
	protectedRoutes.Handle("POST /api/protected/goals",
		protected(http.HandlerFunc(s.goalHandler.CreateGoal)))
	protectedRoutes.Handle("PUT /api/protected/goals/{id}",
		protected(http.HandlerFunc(s.goalHandler.UpdateGoal)))
	protectedRoutes.Handle("DELETE /api/protected/goals/{id}",
		protected(http.HandlerFunc(s.goalHandler.DeleteGoal)))
	protectedRoutes.Handle("POST /api/protected/goals/{id}/complete",
		protected(http.HandlerFunc(s.goalHandler.CompleteGoal)))
	protectedRoutes.Handle("GET /api/protected/goals/{id}/progress",
		protected(http.HandlerFunc(s.goalHandler.GetGoalProgress)))

	// CATEGORIES API
	protectedRoutes.Handle("GET /api/protected/categories",
		protected(http.HandlerFunc(s.categoryHandler.GetCategories)))
	protectedRoutes.Handle("POST /api/protected/categories",
		protected(http.HandlerFunc(s.categoryHandler.CreateCategory)))
	protectedRoutes.Handle("PUT /api/protected/categories/{id}",
		protected(http.HandlerFunc(s.categoryHandler.UpdateCategory)))
	protectedRoutes.Handle("DELETE /api/protected/categories/{id}",
		protected(http.HandlerFunc(s.categoryHandler.DeleteCategory)))

	// NICHES API
	protectedRoutes.Handle("GET /api/protected/niches",
		protected(http.HandlerFunc(s.nicheHandler.GetNiches)))
	protectedRoutes.Handle("PUT /api/protected/niches",
		protected(http.HandlerFunc(s.nicheHandler.UpsertNiche)))
	protectedRoutes.Handle("DELETE /api/protected/niches/{id}",
		protected(http.HandlerFunc(s.nicheHandler.DeleteNiche)))

	// SIDE FUND API
	protectedRoutes.Handle("GET /api/protected/sidefund",
		protected(http.HandlerFunc(s.sideFundHandler.GetSideFund)))
	protectedRoutes.Handle("PUT /api/protected/sidefund/target",
		protected(http.HandlerFunc(s.sideFundHandler.SetTarget)))

	// SETTINGS API
	protectedRoutes.Handle("GET /api/protected/settings",
		protected(http.HandlerFunc(s.settingsHandler.GetSettings)))
	protectedRoutes.Handle("PUT /api/protected/settings/{name}",
		protected(http.HandlerFunc(s.settingsHandler.SetSetting)))
	protectedRoutes.Handle("DELETE /api/protected/settings/{name}",
		protected(http.HandlerFunc(s.settingsHandler.DeleteSetting)))

	// DASHBOARD API
	protectedRoutes.Handle("GET /api/protected/dashboard",
		protected(http.HandlerFunc(s.dashboardHandler.GetDashboard)))

	// EXPORT / IMPORT API
	protectedRoutes.Handle("GET /api/protected/export",
		protected(http.HandlerFunc(s.syncHandler.Export)))
	protectedRoutes.Handle("POST /api/protected/import",
		protected(http.HandlerFunc(s.syncHandler.Import)))
	protectedRoutes.Handle("GET /api/protected/sync-code",
		protected(http.HandlerFunc(s.syncHandler.GenerateSyncCode)))
	protectedRoutes.Handle("POST /api/protected/sync-code",
		protected(http.HandlerFunc(s.syncHandler.ImportSyncCode)))

	// Main router
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func newBackend() (storage.Backend, error) {
	kind := os.Getenv("STORAGE_BACKEND")
	path := os.Getenv("STORAGE_PATH")

	switch kind {
	case "", "sqlite":
		if path == "" {
			path = "financialos.db"
		}
		return storage.NewSQLiteBackend(path)
	case "jsonfile":
		if path == "" {
			path = "financialos.json"
		}
		return storage.NewJSONFileBackend(path)
	case "memory":
		return storage.NewMemoryBackend(), nil
	default:
		return nil, errors.New("unknown STORAGE_BACKEND: " + kind)
	}
}

func newMirrorStore() (syncdata.MirrorStore, func(), error) {
	if os.Getenv("SYNC_MIRROR_BACKEND") == "postgres" {
		dbService, err := database.NewDBService()
		if err != nil {
			return nil, nil, err
		}
		return syncdata.NewPostgresMirrorStore(dbService.DB), func() { dbService.Close() }, nil
	}
	store := syncdata.NewMemoryMirrorStore(5 * time.Minute)
	return store, func() { store.Close() }, nil
}

func main() {
	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration, update to start server")
	}

	backend, err := newBackend()
	if err != nil {
		log.Fatalf("Could not open storage backend: %v", err)
	}

	store, err := storage.NewStore(backend)
	if err != nil {
		log.Fatalf("Could not load record store: %v", err)
	}
	defer store.Close()

	mirrorStore, closeMirror, err := newMirrorStore()
	if err != nil {
		log.Fatalf("Could not initialize sync mirror store: %v", err)
	}
	defer closeMirror()

	rates := marketdata.NewService(marketdata.NewMonobankClient(), marketdata.NewCoinGeckoClient())

	transactionService := application.NewLedgerService(store, store, store, store)
	assetService := application.NewAssetService(store, rates)
	liabilityService := application.NewLiabilityService(store)
	goalService := application.NewGoalService(store)
	categoryService := application.NewCategoryService(store)
	nicheService := application.NewNicheService(store)
	sideFundService := application.NewSideFundService(store)

	jwtManager := auth.NewJWTManager()
	authService := auth.NewService(store, jwtManager)
	authHandler := auth.NewHandler(authService)

	codec := syncdata.NewCodec(store)

	server := &Server{
		authHandler:        authHandler,
		authService:        authService,
		transactionHandler: interfaces.NewTransactionHandler(transactionService, respondJSON, respondError),
		assetHandler:       interfaces.NewAssetHandler(assetService, respondJSON, respondError),
		liabilityHandler:   interfaces.NewLiabilityHandler(liabilityService, respondJSON, respondError),
		goalHandler:        interfaces.NewGoalHandler(goalService, respondJSON, respondError),
		categoryHandler:    interfaces.NewCategoryHandler(categoryService, respondJSON, respondError),
		nicheHandler:       interfaces.NewNicheHandler(nicheService, respondJSON, respondError),
		sideFundHandler:    interfaces.NewSideFundHandler(sideFundService, respondJSON, respondError),
		settingsHandler:    interfaces.NewSettingsHandler(store, respondJSON, respondError),
		dashboardHandler: interfaces.NewDashboardHandler(
			transactionService, assetService, liabilityService, goalService, sideFundService, respondJSON,
		),
		syncHandler:   interfaces.NewSyncHandler(codec, respondJSON, respondError),
		mirrorHandler: syncdata.NewMirrorHandler(mirrorStore, respondJSON, respondError),
	}
	server.RegisterRoutes()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := StartPriceScheduler(ctx, rates, assetService); err != nil {
		log.Fatalf("Scheduler didn't start, stoping the app ...")
	}
	if err := StartSyncScheduler(ctx, store, backend); err != nil {
		log.Fatalf("Scheduler didn't start, stoping the app ...")
	}

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	httpServer := &http.Server{
		Addr:    addr,
		Handler: loggingMiddleware(server.router),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Server starting on %s...", addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// StartPriceScheduler revalues crypto positions every 30 seconds and forces
// a full rate refresh hourly. The service's own TTLs keep the revaluation
// ticks from hammering the FX feed in between.
func StartPriceScheduler(ctx context.Context, rates *marketdata.Service, assetService *application.AssetService) error {
	c := cron.New()
	_, err := c.AddFunc("@every 30s", func() {
		updated, err := assetService.RevalueCryptoAssets(ctx)
		if err != nil {
			log.Printf("Error revaluing crypto assets: %v", err)
		} else if updated > 0 {
			log.Printf("Revalued %d crypto assets.", updated)
		}
	})
	if err != nil {
		return err
	}
	_, err = c.AddFunc("@every 1h", func() {
		rates.Refresh(ctx)
		log.Println("Market data refreshed.")
	})
	if err != nil {
		return err
	}
	c.Start()
	go func() {
		<-ctx.Done()
		c.Stop()
	}()
	return nil
}

// StartSyncScheduler polls the configured cloud mirror every 5 seconds.
// Without SYNC_MIRROR_URL the syncer still runs against the local staging
// area so a later-configured mirror picks up from a consistent state.
func StartSyncScheduler(ctx context.Context, store *storage.Store, backend storage.Backend) error {
	userID := os.Getenv("SYNC_USER_ID")
	if userID == "" {
		userID = "local"
	}

	var remote syncdata.Mirror
	if url := os.Getenv("SYNC_MIRROR_URL"); url != "" {
		remote = syncdata.NewHTTPMirror(url)
	}
	local := syncdata.NewLocalMirror(backend)
	syncer := syncdata.NewAutoSyncer(store, local, remote, userID)

	c := cron.New()
	_, err := c.AddFunc("@every 5s", func() {
		if err := syncer.SyncOnce(ctx); err != nil {
			log.Printf("Sync cycle failed: %v", err)
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	go func() {
		<-ctx.Done()
		c.Stop()
	}()
	return nil
}
