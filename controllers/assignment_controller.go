package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eduqg/eduqg-backend/models"
	"github.com/eduqg/eduqg-backend/services"
)

type GenerateAssignmentInput struct {
	// An empty list is allowed here; it falls through to the NotFound path.
	QuestionIDs      []string `json:"question_ids"`
	StudentName      string   `json:"student_name" binding:"required"`
	RollNumber       string   `json:"roll_number" binding:"required"`
	Subject          string   `json:"subject" binding:"required"`
	HandwritingStyle string   `json:"handwriting_style" binding:"required"`
	PenColor         string   `json:"pen_color" binding:"required"`
}

// GenerateAssignment renders the caller's selected questions into a PDF and
// streams it as an attachment. Ids that do not resolve to a question owned by
// the caller are skipped.
func GenerateAssignment(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var input GenerateAssignmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var questions []models.GeneratedQuestion
	for _, qid := range input.QuestionIDs {
		id, err := uuid.Parse(qid)
		if err != nil {
			continue
		}
		var question models.GeneratedQuestion
		if err := db.First(&question, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			continue
		}
		questions = append(questions, question)
	}

	if len(questions) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No questions found"})
		return
	}

	pdfBytes, err := services.RenderAssignmentPDF(questions, services.AssignmentInfo{
		StudentName:      input.StudentName,
		RollNumber:       input.RollNumber,
		Subject:          input.Subject,
		HandwritingStyle: input.HandwritingStyle,
		PenColor:         input.PenColor,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF: " + err.Error()})
		return
	}

	filename := fmt.Sprintf("assignment_%s.pdf", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
