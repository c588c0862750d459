// Package gotenberg rasterizes HTML pages through a Gotenberg server's
// Chromium screenshot route.
package gotenberg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/mockuments/internal/render"
)

const screenshotPath = "/forms/chromium/screenshot/html"

// Client wraps interactions with the Gotenberg API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a client. A zero timeout waits indefinitely.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Ping checks if the remote Gotenberg service is available.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("gotenberg returned status %d", resp.StatusCode)
	}

	return nil
}

// Rasterize screenshots page at opts.Scale. The viewport is enlarged by the
// scale and the document zoomed to match, so the bitmap keeps the layout.
func (c *Client) Rasterize(ctx context.Context, page render.Page, opts render.RasterOptions) ([]byte, error) {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	bg := opts.Background
	if bg == "" {
		bg = "#ffffff"
	}

	html := injectStyle(page.HTML, fmt.Sprintf("html { zoom: %s; background: %s; }",
		strconv.FormatFloat(scale, 'f', -1, 64), bg))

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, err
	}

	if _, err := io.WriteString(part, html); err != nil {
		return nil, err
	}

	fields := map[string]string{
		"width":  strconv.Itoa(int(math.Round(float64(page.Width) * scale))),
		"height": strconv.Itoa(int(math.Round(float64(page.Height) * scale))),
		"format": "png",
		"clip":   "true",
	}

	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+screenshotPath, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("screenshot failed with status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func injectStyle(html, css string) string {
	tag := "<style>" + css + "</style>"

	if i := strings.Index(html, "</head>"); i >= 0 {
		return html[:i] + tag + html[i:]
	}

	return tag + html
}
