// Package models holds the static catalog of Bedrock models CodeFind can
// drive, plus lookup helpers for the model names users type.
package models

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultModelID is the model selected when AWS credentials are present and
// the user has not chosen one.
const DefaultModelID = "bedrock/us.anthropic.claude-3-7-sonnet-20250109-v1:0"

// Model describes one catalog entry.
type Model struct {
	ID                string `json:"id"`     // Bedrock model or inference profile ID
	Name              string `json:"name"`   // display name
	Family            string `json:"family"` // anthropic, amazon, meta
	ContextLength     int    `json:"context_length"`
	MaxOutputTokens   int    `json:"max_output_tokens"`
	SupportsVision    bool   `json:"supports_vision,omitempty"`
	SupportsReasoning bool   `json:"supports_reasoning,omitempty"`
}

// Cross-region inference profile prefixes AWS uses in model IDs.
var regionPrefixes = []string{"us", "eu", "ap", "ca", "sa", "af", "me"}

var catalog = []Model{
	{
		ID:                "us.anthropic.claude-3-7-sonnet-20250109-v1:0",
		Name:              "Claude 3.7 Sonnet",
		Family:            "anthropic",
		ContextLength:     200000,
		MaxOutputTokens:   8192,
		SupportsVision:    true,
		SupportsReasoning: true,
	},
	{
		ID:              "us.anthropic.claude-3-5-sonnet-20241022-v2:0",
		Name:            "Claude 3.5 Sonnet v2",
		Family:          "anthropic",
		ContextLength:   200000,
		MaxOutputTokens: 8192,
		SupportsVision:  true,
	},
	{
		ID:              "us.anthropic.claude-3-5-sonnet-20240620-v1:0",
		Name:            "Claude 3.5 Sonnet",
		Family:          "anthropic",
		ContextLength:   200000,
		MaxOutputTokens: 4096,
		SupportsVision:  true,
	},
	{
		ID:              "us.anthropic.claude-3-5-haiku-20241022-v1:0",
		Name:            "Claude 3.5 Haiku",
		Family:          "anthropic",
		ContextLength:   200000,
		MaxOutputTokens: 8192,
	},
	{
		ID:              "us.anthropic.claude-3-opus-20240229-v1:0",
		Name:            "Claude 3 Opus",
		Family:          "anthropic",
		ContextLength:   200000,
		MaxOutputTokens: 4096,
		SupportsVision:  true,
	},
	{
		ID:              "us.anthropic.claude-3-haiku-20240307-v1:0",
		Name:            "Claude 3 Haiku",
		Family:          "anthropic",
		ContextLength:   200000,
		MaxOutputTokens: 4096,
		SupportsVision:  true,
	},
	{
		ID:              "amazon.titan-text-premier-v1:0",
		Name:            "Titan Text Premier",
		Family:          "amazon",
		ContextLength:   32000,
		MaxOutputTokens: 3072,
	},
	{
		ID:              "amazon.titan-text-express-v1",
		Name:            "Titan Text Express",
		Family:          "amazon",
		ContextLength:   8000,
		MaxOutputTokens: 8192,
	},
	{
		ID:              "us.meta.llama3-3-70b-instruct-v1:0",
		Name:            "Llama 3.3 70B Instruct",
		Family:          "meta",
		ContextLength:   128000,
		MaxOutputTokens: 4096,
	},
	{
		ID:              "us.meta.llama3-1-70b-instruct-v1:0",
		Name:            "Llama 3.1 70B Instruct",
		Family:          "meta",
		ContextLength:   128000,
		MaxOutputTokens: 4096,
	},
	{
		ID:              "us.meta.llama3-1-8b-instruct-v1:0",
		Name:            "Llama 3.1 8B Instruct",
		Family:          "meta",
		ContextLength:   128000,
		MaxOutputTokens: 4096,
	},
}

// Catalog returns all known models sorted by priority.
func Catalog() []Model {
	out := make([]Model, len(catalog))
	copy(out, catalog)

	sort.Slice(out, func(i, j int) bool {
		pi, pj := modelPriority(out[i].ID), modelPriority(out[j].ID)
		if pi != pj {
			return pi > pj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Normalize strips the bedrock/ route prefix so catalog lookups work on the
// bare Bedrock ID.
func Normalize(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), "bedrock/")
}

// IsBedrockModel reports whether name looks like a Bedrock model or
// cross-region inference profile.
func IsBedrockModel(name string) bool {
	if strings.HasPrefix(name, "bedrock/") {
		return true
	}
	for _, region := range regionPrefixes {
		if strings.HasPrefix(name, region+".") {
			return true
		}
	}
	return false
}

// Resolve finds the catalog entry for name. The bedrock/ prefix is optional,
// and a bare model ID matches its cross-region inference profile, so both
// "anthropic.claude-3-haiku-20240307-v1:0" and the us.-prefixed form resolve
// to the same entry.
func Resolve(name string) (*Model, error) {
	id := Normalize(name)
	if id == "" {
		return nil, fmt.Errorf("empty model name")
	}

	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i], nil
		}
	}
	for i := range catalog {
		if baseID(catalog[i].ID) == id {
			return &catalog[i], nil
		}
	}
	return nil, fmt.Errorf("unknown model: %s", name)
}

// baseID removes a cross-region prefix, e.g.
// us.anthropic.claude-3-haiku-20240307-v1:0 -> anthropic.claude-3-haiku-20240307-v1:0.
func baseID(id string) string {
	for _, region := range regionPrefixes {
		if rest, ok := strings.CutPrefix(id, region+"."); ok {
			return rest
		}
	}
	return id
}

// modelPriority returns sorting priority for models.
func modelPriority(modelID string) int {
	switch {
	case strings.Contains(modelID, "claude-3-7-sonnet"):
		return 95
	case strings.Contains(modelID, "claude-3-5-sonnet"):
		return 90
	case strings.Contains(modelID, "claude-3-opus"):
		return 85
	case strings.Contains(modelID, "claude-3-5-haiku"):
		return 75
	case strings.Contains(modelID, "claude-3-haiku"):
		return 70
	case strings.Contains(modelID, "llama3-3"):
		return 65
	case strings.Contains(modelID, "llama3-1-70b"):
		return 60
	case strings.Contains(modelID, "titan-text-premier"):
		return 55
	default:
		return 50
	}
}
