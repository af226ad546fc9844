// Package openrouter is a client for the OpenRouter chat-completions API.
// Scan calls stream the response body; recipe calls read it buffered.
package openrouter

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

const defaultBaseURL = "https://openrouter.ai/api/v1"

// appTitle identifies the app to the OpenRouter dashboard.
const appTitle = "Recipee"

// Client calls the OpenRouter chat-completions endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a new OpenRouter client. baseURL may be empty to use the
// public endpoint.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// chatRequest is the chat-completions request body.
type chatRequest struct {
	Model     string        `json:"model"`
	Stream    bool          `json:"stream,omitempty"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

// chatMessage holds either a plain string or multi-part content.
type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// contentPart is one element of a multi-part message.
type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

// chatResponse is the buffered response body.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ScanImage sends the instruction plus image data URI as a single streamed
// request and returns the accumulated response text.
func (c *Client) ScanImage(ctx context.Context, model, instruction, imageDataURI string) (string, error) {
	reqBody := chatRequest{
		Model:     model,
		Stream:    true,
		MaxTokens: 1000,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: instruction},
				{Type: "image_url", ImageURL: &imageURL{URL: imageDataURI}},
			},
		}},
	}

	resp, err := c.post(ctx, reqBody)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	return accumulate(resp.Body)
}

// Complete sends a text-only prompt and returns the buffered response
// content.
func (c *Client) Complete(ctx context.Context, model, promptText string, maxTokens int) (string, error) {
	reqBody := chatRequest{
		Model:     model,
		MaxTokens: maxTokens,
		Messages:  []chatMessage{{Role: "user", Content: promptText}},
	}

	resp, err := c.post(ctx, reqBody)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}
	if len(body.Choices) == 0 {
		return "", fmt.Errorf("no content found in response")
	}
	return body.Choices[0].Message.Content, nil
}

func (c *Client) post(ctx context.Context, reqBody chatRequest) (*http.Response, error) {
	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(reqBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Title", appTitle)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		// The upstream error body is diagnostics only; it never reaches the
		// client.
		slog.Error("openrouter error response", "status", resp.StatusCode, "body", string(errBody))
		return nil, fmt.Errorf("received non-OK status code: %d", resp.StatusCode)
	}
	return resp, nil
}

// streamChunk is one SSE payload of an incremental response.
type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// accumulate folds a server-sent-event stream into the complete response
// text: lines prefixed with "data: " carry JSON payloads whose incremental
// content fragments are concatenated. The "[DONE]" sentinel and malformed
// chunks are skipped without aborting the stream.
func accumulate(r io.Reader) (string, error) {
	var fullText strings.Builder
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := line[len("data: "):]
		if data == "[DONE]" {
			continue
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}
		if len(chunk.Choices) > 0 {
			fullText.WriteString(chunk.Choices[0].Delta.Content)
		}
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read stream: %w", err)
	}
	return fullText.String(), nil
}
