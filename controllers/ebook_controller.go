package controllers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eduqg/eduqg-backend/config"
	"github.com/eduqg/eduqg-backend/models"
	"github.com/eduqg/eduqg-backend/services"
)

// extractedTextLimit caps how much extracted text is stored per e-book.
const extractedTextLimit = 50000

func UploadEBook(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	cfg := c.MustGet("config").(*config.Config)

	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file attached"})
		return
	}

	ext := strings.TrimPrefix(filepath.Ext(file.Filename), ".")
	fileType, err := services.ParseFileType(ext)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File type not supported. Allowed: pdf, docx, txt, epub"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read file: " + err.Error()})
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read file: " + err.Error()})
		return
	}

	text, err := services.ExtractText(data, fileType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to extract text: " + err.Error()})
		return
	}
	wordCount := len(strings.Fields(text))

	ebookID := uuid.New()
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not store file: " + err.Error()})
		return
	}
	storedPath := filepath.Join(cfg.UploadDir, ebookID.String()+"_"+filepath.Base(file.Filename))
	if err := os.WriteFile(storedPath, data, 0o644); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not store file: " + err.Error()})
		return
	}

	ebook := models.EBook{
		ID:            ebookID,
		UserID:        userID,
		Title:         file.Filename,
		FileType:      string(fileType),
		FilePath:      storedPath,
		ExtractedText: truncateText(text, extractedTextLimit),
		WordCount:     wordCount,
	}
	if err := db.Create(&ebook).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save e-book: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, ebook)
}

func GetEBooks(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.GetString("user_id")

	var ebooks []models.EBook
	err := db.Model(&models.EBook{}).
		Select("id", "user_id", "title", "file_type", "file_path", "word_count", "uploaded_at").
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Limit(100).
		Find(&ebooks).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list e-books"})
		return
	}

	c.JSON(http.StatusOK, ebooks)
}

func truncateText(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
