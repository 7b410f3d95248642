package sentiment

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// providerResult is one provider's parsed verdict before aggregation
type providerResult struct {
	Sentiment      string
	SentimentScore float64
	Themes         []string
	Impact         string
	Confidence     float64
	Summary        string
}

// rawResponse matches the JSON the prompt asks for. sentiment_score may
// come back as a string from weaker models.
type rawResponse struct {
	Sentiment      string          `json:"sentiment"`
	SentimentScore json.RawMessage `json:"sentiment_score"`
	Themes         []string        `json:"themes"`
	Impact         string          `json:"impact"`
	Confidence     float64         `json:"confidence"`
	Summary        string          `json:"summary"`
}

// parseResponse extracts the verdict JSON from raw model output.
// Models report sentiment_score as intensity in the direction of the
// sentiment label, so negative responses are inverted onto the
// 0=bearish..1=bullish scale.
func parseResponse(text string) (*providerResult, error) {
	jsonText := extractJSON(text)
	if jsonText == "" {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var raw rawResponse
	if err := json.Unmarshal([]byte(jsonText), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	score := parseFlexScore(raw.SentimentScore)

	sentiment := raw.Sentiment
	if sentiment == "" {
		sentiment = "neutral"
	}
	if sentiment == "negative" {
		score = 1.0 - score
	}

	impact := raw.Impact
	if impact == "" {
		impact = "neutral"
	}

	confidence := raw.Confidence
	if confidence == 0 {
		confidence = 0.7
	}

	return &providerResult{
		Sentiment:      sentiment,
		SentimentScore: clamp01(score),
		Themes:         raw.Themes,
		Impact:         impact,
		Confidence:     clamp01(confidence),
		Summary:        raw.Summary,
	}, nil
}

// extractJSON pulls the first balanced JSON object out of text,
// stripping markdown code fences if present.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")

	start := strings.Index(text, "{")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = inString
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1]
				}
			}
		}
	}

	return ""
}

// parseFlexScore reads a score given as either a number or a string,
// defaulting to neutral.
func parseFlexScore(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0.5
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if num, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return num
		}
	}

	return 0.5
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
