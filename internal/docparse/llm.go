package docparse

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/averyk/creator-onboard/internal/types"
)

// extractionModel is the Gemini model used for document extraction. Documents
// are short, so the lite tier is enough.
const extractionModel = "gemini-1.5-flash"

// maxExtractionChars caps how much document text goes into the prompt.
const maxExtractionChars = 8000

// llmExtraction is the JSON shape the model is asked to return.
type llmExtraction struct {
	CreatorName string            `json:"creator_name"`
	Bio         string            `json:"bio"`
	Location    string            `json:"location"`
	Niches      []string          `json:"niches"`
	Platforms   []string          `json:"platforms"`
	Languages   []string          `json:"languages"`
	AgeMin      int               `json:"age_min"`
	AgeMax      int               `json:"age_max"`
	Tone        map[string]string `json:"tone"`
}

// extractWithLLM runs a structured Gemini extraction over the document text.
func extractWithLLM(ctx context.Context, apiKey, text string) (types.Partial, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return types.Partial{}, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer func() { _ = client.Close() }()

	model := client.GenerativeModel(extractionModel)
	resp, err := model.GenerateContent(ctx, genai.Text(buildExtractionPrompt(text)))
	if err != nil {
		return types.Partial{}, fmt.Errorf("LLM generation failed: %w", err)
	}

	raw := responseText(resp)
	if raw == "" {
		return types.Partial{}, fmt.Errorf("empty LLM response")
	}

	var extracted llmExtraction
	if err := json.Unmarshal([]byte(cleanJSONBlock(raw)), &extracted); err != nil {
		return types.Partial{}, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	partial := types.Partial{
		CreatorName: extracted.CreatorName,
		Bio:         extracted.Bio,
		Location:    extracted.Location,
		Industries:  extracted.Niches,
		Platforms:   extracted.Platforms,
		Languages:   extracted.Languages,
		Tone:        extracted.Tone,
	}
	if extracted.AgeMin > 0 && extracted.AgeMax >= extracted.AgeMin {
		partial.AgeRanges = []types.AgeRange{{Min: extracted.AgeMin, Max: extracted.AgeMax}}
	}
	return partial, nil
}

func buildExtractionPrompt(text string) string {
	if len(text) > maxExtractionChars {
		text = text[:maxExtractionChars] + "..."
	}

	var sb strings.Builder
	sb.WriteString("You are parsing a content creator's media kit or bio document. ")
	sb.WriteString("Extract information directly from the text; do not invent or summarize.\n\n")
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n")
	sb.WriteString(`{
  "creator_name": string,
  "bio": string,
  "location": string,
  "niches": []string, // content niches or industries mentioned
  "platforms": []string, // social platforms mentioned
  "languages": []string,
  "age_min": int, // audience age range if stated, else 0
  "age_max": int,
  "tone": map[string]string // platform -> voice/tone, only if stated
}`)
	sb.WriteString("\n\nReturn ONLY the JSON object, no markdown, no explanation.\n\n")
	sb.WriteString("Document text:\n\"\"\"\n")
	sb.WriteString(text)
	sb.WriteString("\n\"\"\"\n")
	return sb.String()
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}

// cleanJSONBlock strips markdown code fences that models wrap around JSON
// even when told not to.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
