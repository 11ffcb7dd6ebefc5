// Package docparse turns uploaded creator documents (media kits, bios,
// audience reports) into sparse draft field maps.
package docparse

import (
	"context"
	"log"

	"github.com/averyk/creator-onboard/internal/types"
)

// Parser extracts draft fields from uploaded documents. Plain text, markdown,
// and HTML are parsed heuristically; when an API key is configured, an LLM
// pass fills fields the heuristics missed.
type Parser struct {
	apiKey string
}

// NewParser creates a parser. An empty apiKey disables the LLM pass.
func NewParser(apiKey string) *Parser {
	return &Parser{apiKey: apiKey}
}

// Parse extracts a partial field map from a document. It fails with a
// ParseError on unsupported formats or unreadable content; it never fails
// just because nothing useful was found.
func (p *Parser) Parse(ctx context.Context, data []byte, filename string) (types.Partial, error) {
	if len(data) == 0 {
		return types.Partial{}, &ParseError{Filename: filename, Message: "document is empty"}
	}
	if looksBinary(data) {
		return types.Partial{}, &ParseError{Filename: filename, Message: "unsupported format: expected text, markdown, or HTML"}
	}

	var text string
	if looksHTML(data, filename) {
		extracted, err := ExtractHTMLText(data)
		if err != nil {
			return types.Partial{}, &ParseError{Filename: filename, Message: "unreadable HTML", Cause: err}
		}
		text = extracted
	} else {
		text = CleanText(string(data))
	}
	if text == "" {
		return types.Partial{}, &ParseError{Filename: filename, Message: "no readable text content"}
	}

	partial := ExtractFields(text)

	if p.apiKey != "" {
		llmPartial, err := extractWithLLM(ctx, p.apiKey, text)
		if err != nil {
			// Heuristic results are still usable without the LLM pass.
			log.Printf("LLM extraction failed for %s: %v", filename, err)
		} else {
			partial = overlay(partial, llmPartial)
		}
	}

	return partial, nil
}

// overlay fills gaps in base from extra. Heuristic results win on conflicts;
// sequences are concatenated and deduplicated downstream by the merge rules.
func overlay(base, extra types.Partial) types.Partial {
	setIfEmpty(&base.CreatorName, extra.CreatorName)
	setIfEmpty(&base.PrimaryNiche, extra.PrimaryNiche)
	setIfEmpty(&base.Bio, extra.Bio)
	setIfEmpty(&base.Location, extra.Location)
	base.Industries = append(base.Industries, extra.Industries...)
	base.Platforms = append(base.Platforms, extra.Platforms...)
	base.ContentTypes = append(base.ContentTypes, extra.ContentTypes...)
	base.Languages = append(base.Languages, extra.Languages...)
	base.AgeRanges = append(base.AgeRanges, extra.AgeRanges...)
	if len(base.Tone) == 0 {
		base.Tone = extra.Tone
	}
	return base
}
