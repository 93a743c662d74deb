package summarizer

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/pkg/errors"
)

const systemPrompt = `You summarize web content for readers in a hurry.
Cover the main points and key takeaways, important details and context,
and the conclusion or final thoughts. Answer with the summary only.`

// textGenerator is the remote model call behind the retry loop.
type textGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// openAIGenerator calls the OpenAI chat completions API.
type openAIGenerator struct {
	client openai.Client
	model  string
}

func newOpenAIGenerator(apiKey, model string) *openAIGenerator {
	return &openAIGenerator{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (g *openAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "chat completion")
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// isTransient reports whether a failed attempt is worth retrying.
// Rate limiting, request timeouts, and server-side errors are transient;
// other API rejections (auth, bad request) are not.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *openai.Error
	if stderrors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 429:
			return true
		case apiErr.StatusCode == 408:
			return true
		case apiErr.StatusCode >= 500:
			return true
		}
		return false
	}

	// Network-level failures (connection refused, resets, DNS) surface as
	// plain errors rather than API errors.
	return true
}
