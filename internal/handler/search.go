package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"ai-book/backend/internal/model"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/unicode/norm"
)

// MaxSearchTextLength is the maximum allowed search text length in characters
const MaxSearchTextLength = 500

// NoResultsMessage is returned alongside an empty result
const NoResultsMessage = "No books found matching your criteria. Try adjusting your search terms."

// NoResultsSuggestions are fixed hints for rephrasing a search
var NoResultsSuggestions = []string{
	"Try a different genre",
	"Search by a different author",
	"Use more general terms",
	"Check the spelling of author names or book titles",
}

type SearchRequest struct {
	Text string `json:"text" binding:"max=500"`
}

type SearchResponse struct {
	Books       []model.Book `json:"books"`
	Message     string       `json:"message,omitempty"`
	Suggestions []string     `json:"suggestions,omitempty"`
}

func (h *Handler) HandleSearch(c *gin.Context) {
	startTime := time.Now()

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if strings.Contains(err.Error(), "max") {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Search text is too long (max 500 characters)",
				"code":  "TEXT_TOO_LONG",
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: text is required",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	// Normalize Unicode to NFC so composed and decomposed input match the same books
	text := strings.TrimSpace(norm.NFC.String(req.Text))
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: text is required",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	if !h.search.LLMConfigured() {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    "API configuration error",
			"details":  "No LLM API key is configured on the server.",
			"solution": "Set GROQ_API_KEY (or GEMINI_API_KEY with LLM_PROVIDER=gemini) and restart the server.",
			"code":     "LLM_NOT_CONFIGURED",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.searchTimeout)
	defer cancel()

	result, err := h.search.Search(ctx, text)
	if err != nil {
		log.Printf("[PERF] Search failed after %v", time.Since(startTime))
		log.Printf("Search error: %v", err)

		if errors.Is(err, context.DeadlineExceeded) {
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timed out. Please try again.",
				"code":  "TIMEOUT",
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    "Failed to search books",
			"details":  "The book storage could not be queried.",
			"solution": "Please try again later.",
			"code":     "STORAGE_ERROR",
		})
		return
	}

	if len(result.Books) == 0 {
		c.JSON(http.StatusOK, SearchResponse{
			Books:       result.Books,
			Message:     NoResultsMessage,
			Suggestions: NoResultsSuggestions,
		})
		return
	}

	c.JSON(http.StatusOK, SearchResponse{Books: result.Books})
}
