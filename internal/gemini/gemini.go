package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/propabilia/argus/internal/providers"
	"google.golang.org/api/option"
)

// maxOutputTokens bounds the transcription of a single photograph
const maxOutputTokens = 2048

var ErrMissingAPIKey = errors.New("GEMINI_API_KEY environment variable not set")

// Gemini transcribes images with a Google Gemini model
type Gemini struct {
	apiKey string
}

// New returns a Gemini provider keyed from GEMINI_API_KEY, or GOOGLE_API_KEY when that is unset
func New() *Gemini {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		key = os.Getenv("GOOGLE_API_KEY")
	}
	return &Gemini{apiKey: key}
}

// ExtractText sends the prompt and image to Gemini and returns the concatenated text parts
func (g *Gemini) ExtractText(ctx context.Context, config providers.Config) (string, error) {
	if g.apiKey == "" {
		return "", ErrMissingAPIKey
	}
	if config.Image == nil {
		return "", fmt.Errorf("gemini: no image to transcribe")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(config.Model)
	model.SetTemperature(float32(config.Temperature))
	model.SetMaxOutputTokens(maxOutputTokens)

	resp, err := model.GenerateContent(ctx,
		genai.Text(config.Prompt),
		genai.ImageData(config.Image.Format(), config.Image.Data),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from Gemini")
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("gemini blocked the response for safety")
	}
	if candidate.Content == nil {
		return "", nil
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}

	// a photo with no text is a valid answer
	return strings.TrimSpace(text.String()), nil
}
