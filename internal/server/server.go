// Package server provides the HTTP REST API for the onboarding service.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/averyk/creator-onboard/internal/config"
	"github.com/averyk/creator-onboard/internal/docparse"
	"github.com/averyk/creator-onboard/internal/profiledb"
	"github.com/averyk/creator-onboard/internal/server/middleware"
	"github.com/averyk/creator-onboard/internal/server/ratelimit"
	"github.com/averyk/creator-onboard/internal/smartsearch"
	"github.com/averyk/creator-onboard/internal/snapshot"
	"github.com/averyk/creator-onboard/internal/wizard"
)

// Server represents the HTTP server.
type Server struct {
	httpServer  *http.Server
	db          *profiledb.DB
	sessions    *SessionRegistry
	snapshots   snapshot.Store
	parser      wizard.DocumentParser
	search      wizard.ProfileSearch
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
}

// New creates a new server instance from the loaded configuration.
func New(cfg *config.Config) (*Server, error) {
	database, err := profiledb.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db: database,
	}

	// Snapshot persistence: file-backed when a directory is configured,
	// in-memory otherwise.
	if cfg.SnapshotDir != "" {
		store, err := snapshot.NewFileStore(cfg.SnapshotDir)
		if err != nil {
			return nil, fmt.Errorf("failed to create snapshot store: %w", err)
		}
		s.snapshots = store
	} else {
		s.snapshots = snapshot.NewMemoryStore()
	}

	// Document extraction works without a key (heuristics only).
	s.parser = docparse.NewParser(cfg.GeminiAPIKey)

	// Profile search is optional; without credentials the endpoint reports
	// the feature as unavailable.
	if cfg.SearchAPIKey != "" && cfg.SearchCX != "" {
		searcher, err := smartsearch.NewSearcher(context.Background(), cfg.SearchAPIKey, cfg.SearchCX)
		if err != nil {
			return nil, fmt.Errorf("failed to create searcher: %w", err)
		}
		s.search = searcher
	}

	s.sessions = NewSessionRegistry()
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	mux := http.NewServeMux()

	// Auth endpoints
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	// Onboarding session endpoints
	requireAuth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	mux.Handle("POST /sessions", requireAuth(http.HandlerFunc(s.handleCreateSession)))
	mux.Handle("GET /sessions/{id}", requireAuth(http.HandlerFunc(s.handleGetSession)))
	mux.Handle("PATCH /sessions/{id}/fields", requireAuth(http.HandlerFunc(s.handleSetFields)))
	mux.Handle("POST /sessions/{id}/advance", requireAuth(http.HandlerFunc(s.handleAdvance)))
	mux.Handle("POST /sessions/{id}/retreat", requireAuth(http.HandlerFunc(s.handleRetreat)))
	mux.Handle("POST /sessions/{id}/jump", requireAuth(http.HandlerFunc(s.handleJump)))
	mux.Handle("POST /sessions/{id}/import", requireAuth(http.HandlerFunc(s.handleImport)))
	mux.Handle("POST /sessions/{id}/search", requireAuth(http.HandlerFunc(s.handleSearch)))
	mux.Handle("POST /sessions/{id}/submit", requireAuth(http.HandlerFunc(s.handleSubmit)))
	mux.Handle("POST /sessions/{id}/reset", requireAuth(http.HandlerFunc(s.handleReset)))
	mux.Handle("DELETE /sessions/{id}", requireAuth(http.HandlerFunc(s.handleDeleteSession)))

	mux.HandleFunc("GET /health", s.handleHealth)

	port := cfg.Port
	if port == 0 {
		port = 8080
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // import and search call external services
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers for the dashboard frontend.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// Uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
