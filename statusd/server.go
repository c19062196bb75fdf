// Package statusd serves a small local HTTP status surface for monitoring
// the bot process.
package statusd

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	logger "github.com/Dopachen/wisk-bot/log"
	"github.com/Dopachen/wisk-bot/system"
	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
)

// Metrics are process counters maintained by the interaction layer.
type Metrics struct {
	VerificationsAttempted atomic.Uint64
	VerificationsSucceeded atomic.Uint64
	TierGrants             atomic.Uint64
	QueueUpdates           atomic.Uint64
}

// Server exposes /health and /status.
type Server struct {
	Addr    string
	Version string
	Metrics *Metrics
	Session *discordgo.Session
	Redis   *redis.Client

	startTime time.Time
}

func New(addr, version string, metrics *Metrics, s *discordgo.Session, rdb *redis.Client) *Server {
	return &Server{
		Addr:      addr,
		Version:   version,
		Metrics:   metrics,
		Session:   s,
		Redis:     rdb,
		startTime: time.Now(),
	}
}

// Start serves until the context is cancelled.
func (s *Server) Start(ctx context.Context) {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))
	r.Get("/health", s.handleHealth)
	r.Get("/status", s.handleStatus)

	srv := &http.Server{Addr: s.Addr, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("status server listening on http://" + s.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("status server", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	discordOK := s.Session != nil && s.Session.State != nil && s.Session.State.User != nil

	redisOK := false
	if s.Redis != nil {
		pingCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		redisOK = s.Redis.Ping(pingCtx).Err() == nil
	}

	status := http.StatusOK
	if !discordOK || !redisOK {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"healthy": discordOK && redisOK,
		"discord": discordOK,
		"redis":   redisOK,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	cpuUsage, _ := system.CPUUsage()
	memUsage, _ := system.MemoryUsage()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	writeJSON(w, http.StatusOK, map[string]any{
		"service":   "wisk-bot",
		"version":   s.Version,
		"uptime":    time.Since(s.startTime).String(),
		"timestamp": time.Now().Format(time.RFC3339),
		"metrics": map[string]any{
			"verifications_attempted": s.Metrics.VerificationsAttempted.Load(),
			"verifications_succeeded": s.Metrics.VerificationsSucceeded.Load(),
			"tier_grants":             s.Metrics.TierGrants.Load(),
			"queue_updates":           s.Metrics.QueueUpdates.Load(),
			"goroutines":              runtime.NumGoroutine(),
			"cpu_percent":             cpuUsage,
			"memory_percent":          memUsage,
			"memory_alloc_mb":         float64(m.Alloc) / 1024 / 1024,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
