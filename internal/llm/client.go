package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// LLMClient define la interfaz para generar texto con un LLM externo.
// IsAvailable debe consultarse antes de invocar; un cliente sin credenciales
// responde false y Generate devuelve ErrUnavailable sin tocar la red.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
	IsAvailable() bool
}

// Embedder es opcional: clientes que ademas producen embeddings de texto.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type logger interface {
	Printf(format string, v ...interface{})
}

// HTTPClient implementa LLMClient contra una API OpenAI-compatible.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	model      string
	embedModel string
	client     *http.Client
	logger     logger
}

// NewHTTPClient construye un cliente HTTP apuntando a la API de chat completions.
// Una apiKey vacia deja el cliente en modo no-disponible.
func NewHTTPClient(baseURL, apiKey, model, embedModel string, log any) *HTTPClient {
	l, _ := log.(logger)
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		embedModel: embedModel,
		client:     &http.Client{Timeout: 60 * time.Second},
		logger:     l,
	}
}

// IsAvailable reporta si el cliente tiene credenciales configuradas.
func (c *HTTPClient) IsAvailable() bool {
	return strings.TrimSpace(c.apiKey) != ""
}

func (c *HTTPClient) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.IsAvailable() {
		return "", ErrUnavailable
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: do request: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrTransport, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ErrRateLimited
	}
	if resp.StatusCode >= 400 {
		if c.logger != nil {
			c.logger.Printf("llm error status %d: %s", resp.StatusCode, string(respBody))
		}
		return "", fmt.Errorf("%w: status=%d", ErrTransport, resp.StatusCode)
	}

	var cr chatResponse
	if err := json.Unmarshal(respBody, &cr); err != nil {
		return "", fmt.Errorf("%w: unmarshal response: %v", ErrTransport, err)
	}

	if cr.Error != nil {
		return "", fmt.Errorf("%w: api error: %s", ErrTransport, cr.Error.Message)
	}

	if len(cr.Choices) == 0 || cr.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty response", ErrTransport)
	}

	return cr.Choices[0].Message.Content, nil
}

// Embed devuelve el embedding del texto usando el endpoint de embeddings.
func (c *HTTPClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if !c.IsAvailable() {
		return nil, ErrUnavailable
	}

	reqBody := embedRequest{Model: c.embedModel, Input: text}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embeddings", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: do request: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrTransport, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: status=%d", ErrTransport, resp.StatusCode)
	}

	var er embedResponse
	if err := json.Unmarshal(respBody, &er); err != nil {
		return nil, fmt.Errorf("%w: unmarshal response: %v", ErrTransport, err)
	}
	if len(er.Data) == 0 || len(er.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("%w: empty embedding", ErrTransport)
	}

	return er.Data[0].Embedding, nil
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type embedRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embedResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}
