package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/domain/repository"
)

const probeTimeout = 5 * time.Second

// Component states reported by /health
const (
	ComponentOK            = "ok"
	ComponentNotConfigured = "not configured"
	ComponentNotTrained    = "not trained"
)

var errNotTrained = errors.New(ComponentNotTrained)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	probes []probe
}

type probe struct {
	name string
	// critical probes fail /health; the database is also required by /ready
	critical bool
	check    func(ctx context.Context) error
}

// NewHealthHandler creates a new health handler. Any dependency may be nil.
func NewHealthHandler(db *gorm.DB, redis *redis.Client, models repository.ModelRepository) *HealthHandler {
	h := &HealthHandler{}
	h.probes = append(h.probes, probe{name: "database", critical: true, check: pingDB(db)})

	var redisCheck func(context.Context) error
	if redis != nil {
		redisCheck = func(ctx context.Context) error { return redis.Ping(ctx).Err() }
	}
	h.probes = append(h.probes, probe{name: "redis", critical: true, check: redisCheck})

	var modelCheck func(context.Context) error
	if models != nil {
		modelCheck = func(ctx context.Context) error {
			if !models.Exists(ctx) {
				return errNotTrained
			}
			return nil
		}
	}
	h.probes = append(h.probes, probe{name: "model", check: modelCheck})

	return h
}

func pingDB(db *gorm.DB) func(context.Context) error {
	if db == nil {
		return nil
	}
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// Health handles GET /health. A missing model is reported but keeps the
// service healthy.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), probeTimeout)
	defer cancel()

	components := make(map[string]string, len(h.probes))
	healthy := true

	for _, p := range h.probes {
		switch err := runProbe(ctx, p); {
		case p.check == nil:
			components[p.name] = ComponentNotConfigured
		case errors.Is(err, errNotTrained):
			components[p.name] = ComponentNotTrained
		case err != nil:
			components[p.name] = "error: " + err.Error()
			healthy = healthy && !p.critical
		default:
			components[p.name] = ComponentOK
		}
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if !healthy {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, HealthStatus{
		Status:     status,
		Components: components,
	})
}

// Ready handles GET /ready. Only the feedback log store gates readiness.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), probeTimeout)
	defer cancel()

	for _, p := range h.probes {
		if p.name != "database" {
			continue
		}
		if err := runProbe(ctx, p); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "database unreachable"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func runProbe(ctx context.Context, p probe) error {
	if p.check == nil {
		return nil
	}
	return p.check(ctx)
}
