// Package llm is the single boundary to language models. Callers describe
// a completion with plain data (instructions, prompt, optional image) and
// receive the raw JSON the model produced; prompt construction and response
// schemas stay in the calling packages.
package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// ErrModel wraps any failure talking to the model backend.
var ErrModel = errors.New("model request failed")

const (
	defaultWorkerModel = "gpt-4o-mini"
	defaultVisionModel = "gpt-4o"

	envWorkerModel = "DASHGEN_MODEL"
	envVisionModel = "DASHGEN_VLM_MODEL"
)

// Request is one completion call. When ImagePNG is set the image travels
// inline as a data URI, so the chosen model must accept vision input.
type Request struct {
	Model        string
	Instructions string
	Prompt       string
	ImagePNG     []byte
	Temperature  float32
}

// Client executes completion requests. Responses are always requested in
// JSON mode; callers unmarshal into their own types.
type Client interface {
	Complete(ctx context.Context, req Request) (json.RawMessage, error)
}

// WorkerModel resolves the text model id: explicit override, environment,
// then the default.
func WorkerModel(override string) string {
	if override != "" {
		return override
	}
	if m := os.Getenv(envWorkerModel); m != "" {
		return m
	}
	return defaultWorkerModel
}

// VisionModel resolves the vision model id used for render evaluation.
func VisionModel(override string) string {
	if override != "" {
		return override
	}
	if m := os.Getenv(envVisionModel); m != "" {
		return m
	}
	return defaultVisionModel
}

type openAIClient struct {
	api *openai.Client
}

// New builds a Client over the OpenAI-compatible API. The key comes from
// OPENAI_API_KEY; OPENAI_BASE_URL points it at a compatible gateway.
func New() Client {
	cfg := openai.DefaultConfig(os.Getenv("OPENAI_API_KEY"))
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		cfg.BaseURL = base
	}
	return &openAIClient{api: openai.NewClientWithConfig(cfg)}
}

func (c *openAIClient) Complete(ctx context.Context, req Request) (json.RawMessage, error) {
	messages := []openai.ChatCompletionMessage{}
	if req.Instructions != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.Instructions,
		})
	}

	user := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if len(req.ImagePNG) > 0 {
		uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(req.ImagePNG)
		user.MultiContent = []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: req.Prompt},
			{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: uri}},
		}
	} else {
		user.Content = req.Prompt
	}
	messages = append(messages, user)

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModel, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrModel)
	}

	content := resp.Choices[0].Message.Content
	if !json.Valid([]byte(content)) {
		return nil, fmt.Errorf("%w: response is not valid JSON", ErrModel)
	}
	return json.RawMessage(content), nil
}
