package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Dishankaswal/CodeArena/internal/common"
)

const formatterPrompt = `You are a competitive programming problem formatter. Convert the following problem statement into clean, well-formatted HTML. Use proper HTML tags for structure:
- Use <h3> for main sections like "Problem", "Input", "Output", "Constraints", "Examples"
- Use <p> for paragraphs
- Use <ul> and <li> for lists
- Use <pre> and <code> for code examples and sample inputs/outputs
- Use <strong> for emphasis
- Use <br> for line breaks where needed
- Make it visually clear and easy to read
- Do NOT include <!DOCTYPE>, <html>, <head>, or <body> tags - only the content HTML
- Use inline styles sparingly, prefer semantic HTML

Problem Statement:
%s

Return ONLY the HTML content, no explanations or markdown.`

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Client formats raw problem statements into HTML via the remote generative
// endpoint. The API key is held server-side only; clients never see it.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}
}

// Generate returns the HTML rendition of rawText, with any fenced code-block
// markers the model wrapped around it stripped.
func (c *Client) Generate(ctx context.Context, rawText string) (string, error) {
	if strings.TrimSpace(rawText) == "" {
		return "", fmt.Errorf("problem statement is empty: %w", common.ErrValidation)
	}
	if c.apiKey == "" {
		return "", fmt.Errorf("generative API key is not configured: %w", common.ErrServiceUnavailable)
	}

	payload := generateRequest{
		Contents: []content{{Parts: []part{{Text: fmt.Sprintf(formatterPrompt, rawText)}}}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("genai.Generate marshal: %w", err)
	}

	url := c.baseURL + "?key=" + c.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("genai.Generate build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach generative endpoint: %v: %w", err, common.ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("invalid response from generative endpoint: %v: %w", err, common.ErrServiceUnavailable)
	}
	if decoded.Error != nil {
		return "", fmt.Errorf("generation failed: %s: %w", decoded.Error.Message, common.ErrServiceUnavailable)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("invalid response shape from generative endpoint: %w", common.ErrServiceUnavailable)
	}

	return StripCodeFences(decoded.Candidates[0].Content.Parts[0].Text), nil
}

// StripCodeFences removes markdown code-block markers the model may have
// wrapped the HTML in.
func StripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```html\n", "")
	s = strings.ReplaceAll(s, "```html", "")
	s = strings.ReplaceAll(s, "```\n", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
