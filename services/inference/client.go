package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"careflow/utils"

	"go.uber.org/zap"
)

// Generation defaults tuned for short conversational replies.
const (
	defaultMaxNewTokens = 256
	defaultTemperature  = 0.7
	defaultTopP         = 0.9
	defaultTopK         = 50
)

// LocalClient talks to a self-hosted model API over HTTP. Response time varies
// widely with the hardware the model runs on, so the request timeout is picked
// from the configured device speed class.
type LocalClient struct {
	url    string
	client *http.Client
}

// NewLocalClient builds a client for the model API message endpoint at url.
// speedClass is one of "fast", "mid" or "slow"; unknown values get the slow
// timeout.
func NewLocalClient(url, speedClass string) *LocalClient {
	var timeout time.Duration
	switch speedClass {
	case "fast":
		timeout = 120 * time.Second
	case "mid":
		timeout = 300 * time.Second
	default:
		timeout = 600 * time.Second
	}

	return &LocalClient{
		url:    strings.TrimRight(url, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Prompt         string  `json:"prompt"`
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	TopP           float64 `json:"top_p"`
	TopK           int     `json:"top_k"`
	DoSample       bool    `json:"do_sample"`
	ReturnFullText bool    `json:"return_full_text"`
}

type generateResponse struct {
	GeneratedText string `json:"generated_text"`
}

// GenerateContent sends the prompt to the model API and returns the cleaned
// reply text.
func (c *LocalClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Prompt:         prompt,
		MaxNewTokens:   defaultMaxNewTokens,
		Temperature:    defaultTemperature,
		TopP:           defaultTopP,
		TopK:           defaultTopK,
		DoSample:       true,
		ReturnFullText: false,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("model api request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read model api response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		utils.GetLogger().Error("Model API returned non-200",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return "", fmt.Errorf("model api returned status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode model api response: %w", err)
	}

	return CleanReply(parsed.GeneratedText, prompt), nil
}

var thinkBlockRe = regexp.MustCompile(`(?s)<think>.*?</think>`)

// CleanReply strips model artifacts from raw generated text: an echoed prompt
// prefix, chain-of-thought blocks, chat template markers, and hallucinated
// follow-on turns. Long rambling output is cut at a sentence boundary.
func CleanReply(text, prompt string) string {
	reply := text

	if strings.HasPrefix(reply, prompt) {
		reply = reply[len(prompt):]
	}
	reply = thinkBlockRe.ReplaceAllString(reply, "")
	reply = strings.ReplaceAll(reply, "<|im_end|>", "")

	// The model sometimes continues the conversation on its own. Keep only
	// the first turn.
	for _, marker := range []string{"\nUser:", "\nAssistant:", "\nPatient:"} {
		if idx := strings.Index(reply, marker); idx >= 0 {
			reply = reply[:idx]
		}
	}

	reply = strings.TrimSpace(reply)

	if len(reply) > 500 {
		cut := reply[:500]
		if idx := strings.LastIndexAny(cut, ".!?"); idx > 0 {
			cut = cut[:idx+1]
		}
		reply = cut
	}

	return reply
}
