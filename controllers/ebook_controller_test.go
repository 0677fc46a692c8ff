package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fourParagraphs = "The sun rose over the hills.\n\nBirds sang in the trees nearby.\n\nA river wound through the valley floor.\n\nEvening brought a quiet calm."

func TestUploadTXT(t *testing.T) {
	r, _ := newTestServer(t, &stubLLM{})
	token := registerUser(t, r, "alice@example.com")

	w := uploadFile(t, r, token, "story.txt", []byte(fourParagraphs))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var ebook struct {
		ID            string `json:"id"`
		Title         string `json:"title"`
		FileType      string `json:"file_type"`
		ExtractedText string `json:"extracted_text"`
		WordCount     int    `json:"word_count"`
	}
	decodeBody(t, w, &ebook)
	assert.NotEmpty(t, ebook.ID)
	assert.Equal(t, "story.txt", ebook.Title)
	assert.Equal(t, "txt", ebook.FileType)
	// the created record still carries the extracted text
	assert.Equal(t, fourParagraphs, ebook.ExtractedText)
	assert.Equal(t, 24, ebook.WordCount)
}

func TestUploadUnsupportedExtension(t *testing.T) {
	r, _ := newTestServer(t, &stubLLM{})
	token := registerUser(t, r, "alice@example.com")

	w := uploadFile(t, r, token, "malware.exe", []byte("nope"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadExtensionCaseInsensitive(t *testing.T) {
	r, _ := newTestServer(t, &stubLLM{})
	token := registerUser(t, r, "alice@example.com")

	w := uploadFile(t, r, token, "NOTES.TXT", []byte("Some notes here"))
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestUploadCorruptPDFFails(t *testing.T) {
	r, _ := newTestServer(t, &stubLLM{})
	token := registerUser(t, r, "alice@example.com")

	w := uploadFile(t, r, token, "broken.pdf", []byte("this is not a pdf"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to extract text")
}

func TestUploadMissingFile(t *testing.T) {
	r, _ := newTestServer(t, &stubLLM{})
	token := registerUser(t, r, "alice@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/ebooks/upload", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetEBooksExcludesExtractedText(t *testing.T) {
	r, _ := newTestServer(t, &stubLLM{})
	token := registerUser(t, r, "alice@example.com")
	uploadTXT(t, r, token, "story.txt", fourParagraphs)

	w := doJSON(t, r, http.MethodGet, "/api/ebooks", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var ebooks []map[string]any
	decodeBody(t, w, &ebooks)
	require.Len(t, ebooks, 1)
	assert.Equal(t, "story.txt", ebooks[0]["title"])
	assert.Equal(t, float64(24), ebooks[0]["word_count"])
	assert.NotContains(t, ebooks[0], "extracted_text")
}

func TestGetEBooksOwnershipIsolation(t *testing.T) {
	r, _ := newTestServer(t, &stubLLM{})
	tokenA := registerUser(t, r, "alice@example.com")
	tokenB := registerUser(t, r, "bob@example.com")
	uploadTXT(t, r, tokenA, "alice.txt", "Alice owns this book")

	w := doJSON(t, r, http.MethodGet, "/api/ebooks", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var ebooks []map[string]any
	decodeBody(t, w, &ebooks)
	assert.Empty(t, ebooks)
}
