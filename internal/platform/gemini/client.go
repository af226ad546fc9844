// Package gemini is the alternate model provider, calling Google's API
// through the official SDK instead of OpenRouter. The SDK owns the transport,
// so scan responses arrive buffered rather than streamed; the extraction
// layer is identical either way.
package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is a client for the Gemini API.
type Client struct {
	model *genai.GenerativeModel
}

// NewClient creates a new Gemini client.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Client{model: client.GenerativeModel("gemini-1.5-flash")}, nil
}

// ScanImage sends the scan instruction plus image and returns the raw
// response text for the extraction engine. The model argument is ignored;
// the SDK client is bound to one model at construction.
func (c *Client) ScanImage(ctx context.Context, model, instruction, imageDataURI string) (string, error) {
	format, imageData, err := decodeDataURI(imageDataURI)
	if err != nil {
		return "", err
	}

	resp, err := c.model.GenerateContent(ctx,
		genai.ImageData(format, imageData),
		genai.Text(instruction),
	)
	if err != nil {
		return "", err
	}
	return firstText(resp)
}

// Complete sends a text-only prompt and returns the response text.
func (c *Client) Complete(ctx context.Context, model, promptText string, maxTokens int) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(promptText))
	if err != nil {
		return "", err
	}
	return firstText(resp)
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response format from Gemini")
	}
	return string(text), nil
}

// decodeDataURI splits a data:image/...;base64 URI into the SDK's format
// name and raw bytes.
func decodeDataURI(uri string) (format string, data []byte, err error) {
	rest, found := strings.CutPrefix(uri, "data:image/")
	if !found {
		return "", nil, fmt.Errorf("not an image data URI")
	}
	format, encoded, found := strings.Cut(rest, ";base64,")
	if !found {
		return "", nil, fmt.Errorf("image data URI is not base64 encoded")
	}
	data, err = base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode image data: %w", err)
	}
	return format, data, nil
}
