package sheets_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakob/vocabdrill/internal/models"
	"github.com/jakob/vocabdrill/internal/sheets"
)

func TestFetchTerms(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spreadsheets/d/sheet-123/export", r.URL.Path)
		assert.Equal(t, "csv", r.URL.Query().Get("format"))
		assert.Equal(t, "42", r.URL.Query().Get("gid"))
		fmt.Fprint(w, sampleCSV)
	}))
	defer srv.Close()

	client := sheets.New(srv.URL, "sheet-123")

	terms, err := client.FetchTerms(context.Background(), "42", models.LanguageLatin)
	require.NoError(t, err)
	require.Len(t, terms, 4)
	assert.Equal(t, "Salvē", terms[0].Term)
}

func TestFetchTerms_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such sheet", http.StatusNotFound)
	}))
	defer srv.Close()

	client := sheets.New(srv.URL, "sheet-123")

	_, err := client.FetchTerms(context.Background(), "42", models.LanguageLatin)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestFetchTerms_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleCSV)
	}))
	defer srv.Close()

	client := sheets.New(srv.URL, "sheet-123")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchTerms(ctx, "42", models.LanguageLatin)
	assert.Error(t, err)
}
