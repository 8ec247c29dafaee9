package sheet

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2/google"

	"github.com/adamspd/StudyNotes/utils"
)

const maxExportBytes = 32 << 20

var readOnlyScopes = []string{
	"https://www.googleapis.com/auth/spreadsheets.readonly",
	"https://www.googleapis.com/auth/drive.readonly",
}

// Fetcher returns the raw bytes of a sheet export.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
	Source() string
}

// ExportURL builds the Google Sheets export link for one tab.
func ExportURL(spreadsheetID, gid, format string) string {
	if format == "" {
		format = FormatCSV
	}
	q := url.Values{}
	q.Set("format", format)
	if gid != "" {
		q.Set("gid", gid)
	}
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?%s", url.PathEscape(spreadsheetID), q.Encode())
}

// Client downloads an export over HTTP.
type Client struct {
	httpClient *http.Client
	url        string
}

// NewClient returns an anonymous client, or a service-account client when
// credentialsFile is set.
func NewClient(ctx context.Context, exportURL, credentialsFile string, timeout time.Duration) (*Client, error) {
	httpClient := &http.Client{Timeout: timeout}

	if credentialsFile != "" {
		data, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials: %w", err)
		}
		conf, err := google.JWTConfigFromJSON(data, readOnlyScopes...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
		}
		httpClient = conf.Client(ctx)
		httpClient.Timeout = timeout
		utils.LogSheet("Using service account %s", conf.Email)
	}

	return &Client{httpClient: httpClient, url: exportURL}, nil
}

// NewClientWithHTTP wraps an existing http.Client.
func NewClientWithHTTP(httpClient *http.Client, exportURL string) *Client {
	return &Client{httpClient: httpClient, url: exportURL}
}

func (c *Client) Source() string {
	return c.url
}

func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxExportBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read export body: %w", err)
	}

	utils.LogSheet("Fetched %d bytes in %v", len(data), time.Since(start))
	return data, nil
}

// FileFetcher reads an export saved on disk.
type FileFetcher struct {
	Path string
}

func (f FileFetcher) Source() string {
	return f.Path
}

func (f FileFetcher) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(f.Path)
}

// FormatFromPath guesses the export format from a file name.
func FormatFromPath(path string) string {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}
