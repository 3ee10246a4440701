// Package sheets fetches vocabulary from the published Google Sheet via
// its CSV export endpoint. No API credentials are needed for reading.
package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jakob/vocabdrill/internal/logger"
	"github.com/jakob/vocabdrill/internal/models"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	sheetID    string
	log        *logger.Logger
}

func New(baseURL, sheetID string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		sheetID:    sheetID,
		log:        logger.Default().WithPrefix("sheets"),
	}
}

func (c *Client) exportURL(gid string) string {
	return fmt.Sprintf("%s/spreadsheets/d/%s/export?format=csv&gid=%s", c.baseURL, c.sheetID, gid)
}

// FetchTerms downloads one sheet tab as CSV and parses it into terms
// tagged with the given language.
func (c *Client) FetchTerms(ctx context.Context, gid, language string) ([]models.Term, error) {
	log := logger.FromContext(ctx).WithPrefix("sheets").WithField("language", language)
	url := c.exportURL(gid)

	log.Debug("fetching sheet tab: gid=%s", gid)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch sheet: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("sheet response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("sheet request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("sheet export status %d: %s", resp.StatusCode, string(body))
	}

	terms, err := ParseTerms(resp.Body, language)
	if err != nil {
		log.Error("failed to parse sheet CSV: %v", err)
		return nil, err
	}

	log.Info("fetched %d terms for %s", len(terms), language)
	return terms, nil
}
