package handler

import (
	"errors"
	"log"
	"net/http"

	"ai-book/backend/internal/model"
	"ai-book/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

func (h *Handler) HandleGetBooks(c *gin.Context) {
	books, err := h.books.List(c.Request.Context())
	if err != nil {
		log.Printf("[STORAGE] List books failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch books", "code": "STORAGE_ERROR"})
		return
	}
	if books == nil {
		books = []model.Book{}
	}
	c.JSON(http.StatusOK, books)
}

func (h *Handler) HandleGetBook(c *gin.Context) {
	book, err := h.books.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}
	if err != nil {
		log.Printf("[STORAGE] Get book failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch book", "code": "STORAGE_ERROR"})
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *Handler) HandleCreateBook(c *gin.Context) {
	var req model.NewBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: name, author and genre are required",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	book := req.ToBook(h.now())
	if err := h.books.Create(c.Request.Context(), &book); err != nil {
		log.Printf("[STORAGE] Create book failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create book", "code": "STORAGE_ERROR"})
		return
	}
	c.JSON(http.StatusCreated, book)
}
