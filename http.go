package quizpdf

import (
	"context"
	"fmt"
	"net/http"
)

// FetchRequest configures FetchQuiz.
type FetchRequest struct {
	URL    string
	Client *http.Client
}

// FetchQuiz downloads a quiz document over HTTP(S) and decodes it.
func FetchQuiz(ctx context.Context, req FetchRequest) (Quiz, error) {
	if req.URL == "" {
		return Quiz{}, fmt.Errorf("fetch quiz: URL is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	client := req.Client
	if client == nil {
		client = http.DefaultClient
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return Quiz{}, fmt.Errorf("fetch quiz: build request: %w", err)
	}
	if httpReq.URL.Scheme != "http" && httpReq.URL.Scheme != "https" {
		return Quiz{}, fmt.Errorf("fetch quiz: unsupported scheme %q", httpReq.URL.Scheme)
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return Quiz{}, fmt.Errorf("fetch quiz: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Quiz{}, fmt.Errorf("fetch quiz: status %s", resp.Status)
	}
	return LoadQuiz(resp.Body)
}
