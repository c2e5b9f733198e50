// Package source reads the static directory document, once, from a local
// file or an http(s) URL.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/nikbrunner/linkdir/internal/model"
)

// maxBodySize caps how much of a remote document is read.
const maxBodySize = 5 << 20

// ErrUnsupportedScheme is returned for URLs that are neither http nor https.
var ErrUnsupportedScheme = errors.New("unsupported scheme")

// Fetcher reads directory documents.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher. A nil client gets a 30s timeout.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Fetcher{client: client}
}

// Fetch returns the raw bytes at location, a file path or an http(s) URL.
func (f *Fetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	if !isURL(location) {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", location, err)
		}
		return data, nil
	}

	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "linkdir/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: HTTP %d", location, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// Load fetches location and parses it as a categories document.
func (f *Fetcher) Load(ctx context.Context, location string) (*model.Store, error) {
	data, err := f.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	store, err := model.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", location, err)
	}
	return store, nil
}

// isURL reports whether location has a scheme other than a Windows drive letter.
func isURL(location string) bool {
	i := strings.Index(location, "://")
	return i > 1
}
