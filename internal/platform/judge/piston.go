package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Dishankaswal/CodeArena/internal/common"
)

// Language pins the interpreter/compiler version and canonical source
// filename the execution endpoint expects for each supported language.
type Language struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Version  string `json:"version"`
	FileName string `json:"file_name"`
}

var Languages = []Language{
	{ID: "javascript", Name: "JavaScript", Version: "18.15.0", FileName: "solution.js"},
	{ID: "python", Name: "Python", Version: "3.10.0", FileName: "solution.py"},
	{ID: "java", Name: "Java", Version: "15.0.2", FileName: "Main.java"},
	{ID: "cpp", Name: "C++", Version: "10.2.0", FileName: "solution.cpp"},
	{ID: "c", Name: "C", Version: "10.2.0", FileName: "solution.c"},
	{ID: "go", Name: "Go", Version: "1.16.2", FileName: "solution.go"},
	{ID: "rust", Name: "Rust", Version: "1.68.2", FileName: "solution.rs"},
	{ID: "typescript", Name: "TypeScript", Version: "5.0.3", FileName: "solution.ts"},
}

func LanguageByID(id string) (Language, bool) {
	for _, lang := range Languages {
		if lang.ID == id {
			return lang, true
		}
	}
	return Language{}, false
}

// Result is the normalized outcome of one execution.
type Result struct {
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exit_code"`
}

type executeRequest struct {
	Language string        `json:"language"`
	Version  string        `json:"version"`
	Files    []requestFile `json:"files"`
	Stdin    string        `json:"stdin"`
}

type requestFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type executeResponse struct {
	Run *struct {
		Stdout string `json:"stdout"`
		Stderr string `json:"stderr"`
		Code   int    `json:"code"`
	} `json:"run"`
	Message string `json:"message"`
}

// Client calls the remote execution endpoint. It does no sandboxing of its
// own and applies no retry: a transport failure is terminal for the attempt.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

// Execute submits source code with stdin and returns the normalized result.
// No timeout is enforced beyond the caller's context and whatever the remote
// endpoint imposes.
func (c *Client) Execute(ctx context.Context, languageID, sourceCode, stdin string) (*Result, error) {
	lang, ok := LanguageByID(languageID)
	if !ok {
		return nil, fmt.Errorf("unsupported language %q: %w", languageID, common.ErrBadRequest)
	}

	payload := executeRequest{
		Language: lang.ID,
		Version:  lang.Version,
		Files:    []requestFile{{Name: lang.FileName, Content: sourceCode}},
		Stdin:    stdin,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("judge.Execute marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("judge.Execute build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to code execution service: %v: %w", err, common.ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	var decoded executeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("invalid response from code execution service: %v: %w", err, common.ErrServiceUnavailable)
	}
	if decoded.Run == nil {
		msg := decoded.Message
		if msg == "" {
			msg = "unable to execute code"
		}
		return nil, fmt.Errorf("%s: %w", msg, common.ErrServiceUnavailable)
	}

	return &Result{
		Stdout:   decoded.Run.Stdout,
		Stderr:   decoded.Run.Stderr,
		ExitCode: decoded.Run.Code,
	}, nil
}
