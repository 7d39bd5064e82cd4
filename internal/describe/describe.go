// Package describe asks Gemini for a short description of a study resource.
package describe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("description generator disabled")

var errNoContent = errors.New("gemini response had no content")

type Client struct {
	apiKey string
	model  string
	genai  *genai.Client
}

type Options struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini endpoint. Empty uses the SDK default.
	BaseURL    string
	HTTPClient *http.Client
}

// New builds a client. Without an API key the client is returned disabled.
func New(ctx context.Context, options Options) (*Client, error) {
	if options.Model == "" {
		options.Model = DefaultModel
	}
	client := &Client{apiKey: options.APIKey, model: options.Model}
	if options.APIKey == "" {
		return client, nil
	}
	if options.HTTPClient == nil {
		options.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}

	sdk, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      options.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  options.HTTPClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: options.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", client.redact(err))
	}
	client.genai = sdk
	return client, nil
}

func (c *Client) Enabled() bool {
	return c != nil && c.genai != nil
}

// Prompt builds the instruction sent for one resource.
func Prompt(name, resourceURL string) string {
	return fmt.Sprintf(
		"Generate a brief, helpful description for a study resource.\nSite Name: %s\nURL: %s\nFocus on its utility for learning, research, or productivity. Max 30 words.",
		name,
		resourceURL,
	)
}

func (c *Client) Describe(ctx context.Context, name, resourceURL string) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(Prompt(name, resourceURL)), nil)
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", c.redact(err))
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errNoContent
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 || candidate.Content.Parts[0] == nil {
		return "", errNoContent
	}

	text := strings.TrimSpace(candidate.Content.Parts[0].Text)
	if text == "" {
		return "", errNoContent
	}
	return text, nil
}

// redact strips the API key from err's message so it never reaches the logs.
func (c *Client) redact(err error) error {
	if c.apiKey == "" || !strings.Contains(err.Error(), c.apiKey) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), c.apiKey, "[redacted]"))
}
