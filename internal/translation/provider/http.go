// Package provider adapts external translation services to the ports.Provider
// interface. The HTTP client speaks a LibreTranslate-compatible JSON API.
package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"registrar/internal/platform/config"
)

// HTTPProvider talks to a LibreTranslate-style endpoint. All failures are
// returned to the caller, which is expected to absorb them.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	http    *resty.Client
}

// NewHTTP builds an HTTP provider from configuration.
func NewHTTP(cfg config.ProviderConfig) *HTTPProvider {
	client := resty.New().SetTimeout(cfg.Timeout)
	return &HTTPProvider{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    client,
	}
}

type detectResult struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// DetectLanguage asks the provider for the language of text and returns the
// raw code; normalization is the detector's job.
func (p *HTTPProvider) DetectLanguage(ctx context.Context, text string) (string, error) {
	var results []detectResult
	resp, err := p.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"q": text, "api_key": p.apiKey}).
		SetResult(&results).
		Post(p.baseURL + "/detect")
	if err != nil {
		return "", fmt.Errorf("detect language: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("detect language: %s", resp.Status())
	}
	if len(results) == 0 {
		return "", fmt.Errorf("detect language: empty response")
	}
	return results[0].Language, nil
}

type translateResult struct {
	TranslatedText string `json:"translatedText"`
}

// Translate converts text from one language to another.
func (p *HTTPProvider) Translate(ctx context.Context, text, from, to string) (string, error) {
	var result translateResult
	resp, err := p.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"q":       text,
			"source":  from,
			"target":  to,
			"format":  "text",
			"api_key": p.apiKey,
		}).
		SetResult(&result).
		Post(p.baseURL + "/translate")
	if err != nil {
		return "", fmt.Errorf("translate %s->%s: %w", from, to, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("translate %s->%s: %s", from, to, resp.Status())
	}
	if result.TranslatedText == "" {
		return "", fmt.Errorf("translate %s->%s: empty response", from, to)
	}
	return result.TranslatedText, nil
}
