package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/jung-kurt/gofpdf"

	"github.com/eduqg/eduqg-backend/models"
)

// AssignmentInfo is the student metadata printed on the title page.
type AssignmentInfo struct {
	StudentName      string
	RollNumber       string
	Subject          string
	HandwritingStyle string
	PenColor         string
}

// RenderAssignmentPDF lays out a title page followed by the numbered
// questions and answers, preserving input order, and returns the finished
// document.
func RenderAssignmentPDF(questions []models.GeneratedQuestion, info AssignmentInfo) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(15, 19, 15)
	doc.SetAutoPageBreak(true, 19)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	// Title page
	doc.AddPage()
	doc.SetFont("Helvetica", "B", 24)
	doc.CellFormat(0, 12, tr(info.Subject), "", 1, "C", false, 0, "")
	doc.Ln(8)
	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, "Assignment", "", 1, "C", false, 0, "")
	doc.Ln(12)

	doc.SetFont("Helvetica", "", 12)
	details := []string{
		"Student Name: " + info.StudentName,
		"Roll Number: " + info.RollNumber,
		"Date: " + time.Now().Format("January 2, 2006"),
		"Handwriting Style: " + info.HandwritingStyle,
		"Pen Color: " + capitalize(info.PenColor),
	}
	for _, detail := range details {
		doc.CellFormat(0, 7, tr(detail), "", 1, "C", false, 0, "")
		doc.Ln(2)
	}

	// Questions and answers
	doc.AddPage()
	for i, q := range questions {
		doc.SetFont("Helvetica", "B", 13)
		doc.MultiCell(0, 7, tr(fmt.Sprintf("Q%d. [%s] %s", i+1, q.QuestionType, q.Question)), "", "L", false)
		doc.Ln(3)

		doc.SetFont("Helvetica", "B", 11)
		doc.Write(6, "Answer: ")
		doc.SetFont("Helvetica", "", 11)
		doc.Write(6, tr(q.Answer))
		doc.Ln(12)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render assignment pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
