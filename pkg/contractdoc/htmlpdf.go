package contractdoc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPRenderer calls a headless-chromium render service over HTTP. The
// request carries the HTML and page margins, the response body is the PDF.
type HTTPRenderer struct {
	url    string
	client *http.Client
}

func NewHTTPRenderer(url string, timeout time.Duration) *HTTPRenderer {
	return &HTTPRenderer{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type renderRequest struct {
	HTML string      `json:"html"`
	Page PageOptions `json:"page"`
}

func (r *HTTPRenderer) RenderHTMLToPdf(ctx context.Context, html string, opts PageOptions) ([]byte, error) {
	body, err := json.Marshal(renderRequest{HTML: html, Page: opts})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/pdf")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("render service returned status %d", resp.StatusCode)
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read rendered PDF: %w", err)
	}

	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		return nil, fmt.Errorf("render service returned a non-PDF payload")
	}

	return pdf, nil
}
