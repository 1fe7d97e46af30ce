package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"

// ErrUnparseable 模型返回了内容但不是合法的发现列表
var ErrUnparseable = errors.New("vision: unparseable model response")

// Finding 视觉模型返回的单条发现
type Finding struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    int    `json:"severity"`
	Type        string `json:"type"`
	Element     string `json:"element"`
	Suggestion  string `json:"suggestion"`
}

// Client Gemini generateContent REST 客户端
type Client struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

func NewClient(apiKey, model, endpoint string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("vision: api key is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("vision: model is required")
	}
	if strings.TrimSpace(endpoint) == "" {
		endpoint = defaultEndpoint
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:   apiKey,
		model:    model,
		endpoint: strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"response_mime_type,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// AnalyzeImage 将提示词与 PNG 图片一起提交给模型，解析返回的发现列表。
// 模型给出无法解析的内容时返回 ErrUnparseable，调用方自行降级。
func (c *Client) AnalyzeImage(ctx context.Context, prompt string, png []byte) ([]Finding, error) {
	reqBody := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: prompt},
				{InlineData: &inlineData{
					MimeType: "image/png",
					Data:     base64.StdEncoding.EncodeToString(png),
				}},
			},
		}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	apiURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.endpoint, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("vision: response parse: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("vision: api error %d: %s", parsed.Error.Code, parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("vision: response missing candidates")
	}

	text := stripJSONFences(parsed.Candidates[0].Content.Parts[0].Text)
	var findings []Finding
	if err := json.Unmarshal([]byte(text), &findings); err != nil {
		return nil, ErrUnparseable
	}
	return findings, nil
}

// stripJSONFences 去掉模型偶尔包裹的 markdown 代码块
func stripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
