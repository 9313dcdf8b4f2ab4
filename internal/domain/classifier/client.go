package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/dermai/dermai/internal/platform/apperr"
)

// HTTPModelClient posts images to an HTTP inference endpoint as multipart
// form data and decodes the prediction list from its JSON response.
type HTTPModelClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPModelClient creates a client for the inference endpoint at baseURL.
// An empty baseURL produces a client whose Predict always reports the
// upstream as unavailable, which keeps an unconfigured development setup
// failing loudly instead of guessing.
func NewHTTPModelClient(baseURL string, timeout time.Duration) *HTTPModelClient {
	return &HTTPModelClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type predictResponse struct {
	Predictions []Prediction `json:"predictions"`
}

func (c *HTTPModelClient) Predict(ctx context.Context, image []byte) ([]Prediction, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: model endpoint not configured", apperr.ErrUpstreamUnavailable)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", "image")
	if err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", &body)
	if err != nil {
		return nil, fmt.Errorf("building model request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: model returned status %d", apperr.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decoding model response: %v", apperr.ErrUpstreamUnavailable, err)
	}
	return out.Predictions, nil
}
