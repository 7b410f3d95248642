// Package sentiment turns news articles into a sentiment verdict using
// a chain of LLM providers with a keyword fallback.
package sentiment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jwhittle/stockscout/internal/models"
)

const (
	maxPromptArticles = 100
	maxSummaryChars   = 200
)

// BuildPrompt renders articles into the analysis prompt. Articles are
// taken newest first and capped to keep within model token limits.
func BuildPrompt(articles []*models.NewsArticle) string {
	sorted := make([]*models.NewsArticle, len(articles))
	copy(sorted, articles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt.After(sorted[j].PublishedAt)
	})

	if len(sorted) > maxPromptArticles {
		sorted = sorted[:maxPromptArticles]
	}

	blocks := make([]string, 0, len(sorted))
	for _, article := range sorted {
		dateStr := ""
		if !article.PublishedAt.IsZero() {
			dateStr = article.PublishedAt.Format("2006-01-02")
		}
		summary := article.Summary
		if len(summary) > maxSummaryChars {
			summary = summary[:maxSummaryChars]
		}
		blocks = append(blocks, fmt.Sprintf("Date: %s\nTitle: %s\nSummary: %s", dateStr, article.Title, summary))
	}

	combined := strings.Join(blocks, "\n\n---\n\n")

	return fmt.Sprintf(`Analyze the following news articles about a stock and provide:
1. Overall sentiment (positive, negative, or neutral) - consider the time range and trends
2. Key themes and topics - note any patterns over time
3. Potential impact on stock price (bullish, bearish, or neutral) - consider recent vs older news
4. Confidence level (0.0 to 1.0) - higher confidence if multiple recent articles show consistent sentiment

News Articles (with dates):
%s

Important: Consider the dates of articles. Recent news may have more impact than older news.
Look for trends and patterns over time. If sentiment changed recently, note this in your analysis.

Provide your analysis in the following JSON format:
{
    "sentiment": "positive|negative|neutral",
    "sentiment_score": 0.0-1.0,
    "themes": ["theme1", "theme2", ...],
    "impact": "bullish|bearish|neutral",
    "confidence": 0.0-1.0,
    "summary": "Brief summary of key points, including any time-based trends"
}
Respond with only the JSON object, no other text.`, combined)
}
