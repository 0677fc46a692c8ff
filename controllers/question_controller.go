package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eduqg/eduqg-backend/models"
	"github.com/eduqg/eduqg-backend/services"
)

type GenerateQuestionsInput struct {
	EBookID string `json:"ebook_id" binding:"required"`
	// An empty type list is valid; the generator falls back to "Short Answer".
	QuestionTypes []string `json:"question_types"`
	Difficulty    string   `json:"difficulty" binding:"required"`
	NumQuestions  int      `json:"num_questions" binding:"required,min=1"`
}

func GenerateQuestions(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	qg := c.MustGet("qgen").(*services.QuestionGenerator)

	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var input GenerateQuestionsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var ebook models.EBook
	if err := db.First(&ebook, "id = ? AND user_id = ?", input.EBookID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "E-book not found"})
		return
	}

	items, err := qg.Generate(c.Request.Context(), ebook.ExtractedText, input.QuestionTypes, input.Difficulty, input.NumQuestions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate questions: " + err.Error()})
		return
	}

	questions := make([]models.GeneratedQuestion, 0, len(items))
	for _, item := range items {
		questions = append(questions, models.GeneratedQuestion{
			ID:           uuid.New(),
			UserID:       userID,
			EBookID:      ebook.ID,
			QuestionType: item.Type,
			Difficulty:   input.Difficulty,
			Question:     item.Question,
			Answer:       item.Answer,
		})
	}
	if len(questions) > 0 {
		if err := db.Create(&questions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save questions: " + err.Error()})
			return
		}
	}

	c.JSON(http.StatusCreated, questions)
}

func GetQuestions(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.GetString("user_id")

	query := db.Where("user_id = ?", userID)
	if ebookID := c.Query("ebook_id"); ebookID != "" {
		// a malformed id matches nothing rather than erroring the uuid cast
		id, err := uuid.Parse(ebookID)
		if err != nil {
			c.JSON(http.StatusOK, []models.GeneratedQuestion{})
			return
		}
		query = query.Where("e_book_id = ?", id)
	}

	var questions []models.GeneratedQuestion
	if err := query.Limit(1000).Find(&questions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list questions"})
		return
	}

	c.JSON(http.StatusOK, questions)
}
