package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

const (
	maxPromptChars         = 8000
	maxFallbackAnswerChars = 500
	defaultQuestionType    = "Short Answer"
)

// TextGenerator is the single-turn LLM call behind question generation.
// Production uses GeminiGenerator; tests substitute a stub.
type TextGenerator interface {
	GenerateText(ctx context.Context, system, prompt string) (string, error)
}

// GeneratedItem is one question/answer pair as returned by the model.
type GeneratedItem struct {
	Type     string `json:"type"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type QuestionGenerator struct {
	llm TextGenerator
}

func NewQuestionGenerator(llm TextGenerator) *QuestionGenerator {
	return &QuestionGenerator{llm: llm}
}

// Generate asks the model for up to count questions over text. Fewer results
// than requested are acceptable. A response that is not valid JSON degrades
// to a single fallback question instead of failing; transport errors
// propagate.
func (g *QuestionGenerator) Generate(ctx context.Context, text string, questionTypes []string, difficulty string, count int) ([]GeneratedItem, error) {
	if truncated := truncateRunes(text, maxPromptChars); len(truncated) < len(text) {
		text = truncated + "..."
	}

	system := buildSystemMessage(questionTypes, difficulty, count)
	prompt := fmt.Sprintf("Text Content:\n%s\n\nGenerate %d questions with answers based on this content.", text, count)

	// One session per request, never reused.
	sessionID := "qgen_" + randomHex(8)
	log.Printf("question generation session %s: %d questions, difficulty %q", sessionID, count, difficulty)

	raw, err := g.llm.GenerateText(ctx, system, prompt)
	if err != nil {
		return nil, fmt.Errorf("llm request: %w", err)
	}

	return parseQuestions(raw, questionTypes, count), nil
}

func buildSystemMessage(questionTypes []string, difficulty string, count int) string {
	return fmt.Sprintf(`You are an expert educational assessment designer. Generate %d high-quality academic questions from the provided text.

Difficulty Level: %s
Question Types Needed: %s

For each question:
1. Create a clear, well-structured question
2. Provide a comprehensive answer
3. Ensure questions test understanding, not just memorization
4. Make questions exam-worthy and academically rigorous

Return ONLY a valid JSON array with this exact format:
[
  {
    "type": "MCQ" or "Short Answer" or "Long Answer" or "Case Study",
    "question": "The question text here",
    "answer": "The detailed answer here"
  }
]

IMPORTANT: Return ONLY the JSON array, no other text.`, count, difficulty, strings.Join(questionTypes, ", "))
}

// parseQuestions validates the model output. Items missing a question or an
// answer are dropped; a missing type defaults to the first requested type.
// Malformed JSON yields exactly one fallback item carrying the raw response.
func parseQuestions(raw string, questionTypes []string, count int) []GeneratedItem {
	clean := stripCodeFences(raw)

	var items []GeneratedItem
	if err := json.Unmarshal([]byte(clean), &items); err != nil {
		return []GeneratedItem{{
			Type:     firstType(questionTypes),
			Question: "Generated question based on content",
			Answer:   truncateRunes(raw, maxFallbackAnswerChars),
		}}
	}

	valid := make([]GeneratedItem, 0, len(items))
	for _, item := range items {
		if item.Question == "" || item.Answer == "" {
			continue
		}
		if item.Type == "" {
			item.Type = firstType(questionTypes)
		}
		valid = append(valid, item)
	}

	if len(valid) > count {
		valid = valid[:count]
	}
	return valid
}

// stripCodeFences removes a surrounding ```json / ``` wrapper if present.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func firstType(questionTypes []string) string {
	if len(questionTypes) > 0 {
		return questionTypes[0]
	}
	return defaultQuestionType
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func randomHex(n int) string {
	b := make([]byte, n)
	rand.Read(b)
	return hex.EncodeToString(b)
}
