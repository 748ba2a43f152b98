package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const pingTimeout = 2 * time.Second

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Storage   string `json:"storage"`
	LLM       string `json:"llm"`
}

// HandleHealth returns the health status of the service.
// Always 200; a failing dependency only degrades the status.
func (h *Handler) HandleHealth(c *gin.Context) {
	storageStatus := "ready"
	if err := h.ping(c.Request.Context()); err != nil {
		storageStatus = "unavailable"
	}
	llmStatus := "ready"
	if !h.search.LLMConfigured() {
		llmStatus = "unconfigured"
	}

	status := "healthy"
	if storageStatus != "ready" || llmStatus != "ready" {
		status = "degraded"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Storage:   storageStatus,
		LLM:       llmStatus,
	})
}

// HandleReadiness returns whether the service is ready to accept traffic.
// Stricter than health: storage must answer a ping.
func (h *Handler) HandleReadiness(c *gin.Context) {
	if err := h.ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"reason": "storage_unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (h *Handler) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return h.books.Ping(ctx)
}
