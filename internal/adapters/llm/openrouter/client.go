package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bhackerb/Leafs-Injury-Timetable-Roulette/internal/domain"
	"github.com/bhackerb/Leafs-Injury-Timetable-Roulette/internal/ports"
)

// Client implements ports.Reporter via the OpenRouter API.
type Client struct {
	httpClient     *http.Client
	apiKey         string
	baseURL        string
	model          string
	fallbackModels []string
	logger         *slog.Logger
}

func NewClient(httpClient *http.Client, apiKey, baseURL, model string, fallbackModels []string, logger *slog.Logger) *Client {
	return &Client{
		httpClient:     httpClient,
		apiKey:         apiKey,
		baseURL:        strings.TrimRight(baseURL, "/"),
		model:          model,
		fallbackModels: fallbackModels,
		logger:         logger,
	}
}

// chatRequest / chatResponse mirror the OpenAI-compatible API shapes.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) Generate(ctx context.Context, in ports.ReportInput) (ports.ReportOutput, error) {
	models := make([]string, 0, 1+len(c.fallbackModels))
	models = append(models, c.model)
	models = append(models, c.fallbackModels...)

	var lastErr error
	for _, model := range models {
		out, err := c.generateWithModel(ctx, in, model)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if len(models) > 1 {
			c.logger.WarnContext(ctx, "model failed, trying next", "model", model, "error", err)
		}
	}

	return ports.ReportOutput{}, lastErr
}

func (c *Client) generateWithModel(ctx context.Context, in ports.ReportInput, model string) (ports.ReportOutput, error) {
	systemPrompt := buildSystemPrompt()
	userPrompt := buildUserPrompt(in)

	content, err := c.callLLM(ctx, model, systemPrompt, userPrompt)
	if err != nil {
		return ports.ReportOutput{}, fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, err)
	}

	out, parseErr := parseReport(content)
	if parseErr != nil {
		c.logger.WarnContext(ctx, "LLM returned invalid report, retrying", "model", model, "error", parseErr)
		content, err = c.callLLM(ctx, model, systemPrompt, retryPrompt(content))
		if err != nil {
			return ports.ReportOutput{}, fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, err)
		}
		out, parseErr = parseReport(content)
		if parseErr != nil {
			return ports.ReportOutput{}, fmt.Errorf("%w: %w", domain.ErrInvalidLLMJSON, parseErr)
		}
	}

	out.Model = model
	return out, nil
}

// parseReport decodes the model's JSON and rejects any payload with a
// missing field, so a partial record never reaches the caller.
func parseReport(content string) (ports.ReportOutput, error) {
	var out ports.ReportOutput
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return ports.ReportOutput{}, fmt.Errorf("decode report: %w", err)
	}
	for field, v := range map[string]string{
		"player":     out.Player,
		"diagnosis":  out.Diagnosis,
		"timeline":   out.Timeline,
		"quote":      out.Quote,
		"cap_impact": out.CapImpact,
	} {
		if strings.TrimSpace(v) == "" {
			return ports.ReportOutput{}, fmt.Errorf("missing field %q", field)
		}
	}
	return out, nil
}

func (c *Client) callLLM(ctx context.Context, model, system, user string) (string, error) {
	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream status %d: %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

const reportSchema = `{
  "player": "<player name or alias>",
  "diagnosis": "<what happened and the resulting ailment>",
  "timeline": "<expected absence>",
  "quote": "<one deadpan quote from player, coach, or GM>",
  "cap_impact": "<salary cap consequence>"
}`

func buildSystemPrompt() string {
	return fmt.Sprintf(`You are the beat reporter for a satirical Toronto Maple Leafs injury wheel.

Rules:
- Stay affectionate toward the team; mock the situation, never real people's health.
- Keep it hockey-plausible: practice mishaps, maintenance days, vague team-speak.
- Use dry press-release tone with one absurd detail.
- Keep every field to one or two sentences.

Respond with ONLY a JSON object (no markdown, no code fences, no extra text) matching this exact schema:
%s`, reportSchema)
}

func buildUserPrompt(in ports.ReportInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The wheel landed on: %s\n", in.Category)
	fmt.Fprintf(&b, "Suggested subject: %s\n", in.Subject)
	b.WriteString("\nWrite the injury report as a single JSON object.")
	return b.String()
}

func retryPrompt(badJSON string) string {
	return fmt.Sprintf(`Your previous response was not a valid report. Here is what you returned:
%s

Return ONLY the corrected JSON object matching this schema, with every field non-empty (no markdown, no code fences):
%s`, badJSON, reportSchema)
}
