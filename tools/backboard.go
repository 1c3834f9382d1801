package tools

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

// BackboardClient fala com a API de assistants do Backboard.
// Todas as falhas (rede, timeout, status >= 300, resposta vazia) voltam como
// erro opaco; quem decide o que fazer é a camada de cima.
type BackboardClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewBackboardClient(baseURL, apiKey string, timeout time.Duration) *BackboardClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "https://app.backboard.io/api"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &BackboardClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// backboardResponse cobre as variações de campo que a API devolve.
// O Backboard ora responde "assistant_id"/"thread_id", ora só "id";
// o texto da resposta pode vir em content, message, response ou text.
type backboardResponse struct {
	AssistantID string `json:"assistant_id"`
	ThreadID    string `json:"thread_id"`
	ID          string `json:"id"`
	Content     string `json:"content"`
	Message     string `json:"message"`
	Response    string `json:"response"`
	Text        string `json:"text"`
}

// CreateAssistant cria um assistant com o nome e system prompt da seção.
func (b *BackboardClient) CreateAssistant(ctx context.Context, name, systemPrompt string) (string, error) {
	parsed, err := b.postJSON(ctx, "/assistants", map[string]any{
		"name":          name,
		"system_prompt": systemPrompt,
	})
	if err != nil {
		return "", err
	}

	id := strings.TrimSpace(parsed.AssistantID)
	if id == "" {
		id = strings.TrimSpace(parsed.ID)
	}
	if id == "" {
		return "", fmt.Errorf("backboard: create assistant returned no id")
	}
	return id, nil
}

// CreateThread cria uma thread de conversa sob um assistant existente.
func (b *BackboardClient) CreateThread(ctx context.Context, assistantID string) (string, error) {
	parsed, err := b.postJSON(ctx, "/assistants/"+assistantID+"/threads", map[string]any{})
	if err != nil {
		return "", err
	}

	id := strings.TrimSpace(parsed.ThreadID)
	if id == "" {
		id = strings.TrimSpace(parsed.ID)
	}
	if id == "" {
		return "", fmt.Errorf("backboard: create thread returned no id")
	}
	return id, nil
}

// SendMessage envia uma mensagem para a thread e devolve o texto da resposta.
func (b *BackboardClient) SendMessage(ctx context.Context, assistantID, threadID, content string) (string, error) {
	_ = assistantID // a rota de mensagens é endereçada só pela thread

	parsed, err := b.postJSON(ctx, "/threads/"+threadID+"/messages", map[string]any{
		"content": content,
		"stream":  false,
	})
	if err != nil {
		return "", err
	}

	for _, candidate := range []string{parsed.Content, parsed.Message, parsed.Response, parsed.Text} {
		if out := strings.TrimSpace(candidate); out != "" {
			return out, nil
		}
	}
	return "", fmt.Errorf("backboard: empty reply from assistant")
}

func (b *BackboardClient) postJSON(ctx context.Context, path string, payload map[string]any) (backboardResponse, error) {
	var parsed backboardResponse

	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return parsed, err
	}
	req.Header.Set("X-API-Key", b.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.HTTP.Do(req)
	if err != nil {
		return parsed, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return parsed, fmt.Errorf("backboard error %d: %s", resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return parsed, err
	}
	return parsed, nil
}
