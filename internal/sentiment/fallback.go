package sentiment

import (
	"fmt"
	"strings"
	"time"

	"github.com/jwhittle/stockscout/internal/models"
)

// sentimentMultiplier is how much one keyword class must outnumber the
// other before the verdict leaves neutral.
const sentimentMultiplier = 1.5

var positiveKeywords = []string{
	"beat", "beats", "surge", "soar", "rally", "record", "growth",
	"profit", "upgrade", "outperform", "strong", "gain", "rise", "bullish",
	"buyback", "dividend increase", "expansion", "breakthrough", "exceed",
}

var negativeKeywords = []string{
	"miss", "misses", "plunge", "fall", "drop", "decline", "loss",
	"downgrade", "underperform", "weak", "lawsuit", "recall", "bearish",
	"layoff", "bankruptcy", "investigation", "cut", "warning", "fraud",
}

// keywordFallback scores articles with a sentiment lexicon. Each
// article counts at most once per keyword class.
func keywordFallback(symbol string, articles []*models.NewsArticle) *models.SentimentResult {
	if len(articles) == 0 {
		return &models.SentimentResult{
			Symbol:         symbol,
			Sentiment:      models.SentimentNeutral,
			SentimentScore: 0.5,
			Confidence:     0.3,
			Impact:         models.ImpactNeutral,
			Summary:        "No articles to analyze",
			Method:         "keyword",
			ArticleCount:   0,
			AnalyzedAt:     time.Now(),
		}
	}

	var positiveCount, negativeCount int
	for _, article := range articles {
		text := strings.ToLower(article.Title + " " + article.Summary)
		for _, keyword := range positiveKeywords {
			if strings.Contains(text, keyword) {
				positiveCount++
				break
			}
		}
		for _, keyword := range negativeKeywords {
			if strings.Contains(text, keyword) {
				negativeCount++
				break
			}
		}
	}

	total := float64(len(articles))
	positiveRatio := float64(positiveCount) / total
	negativeRatio := float64(negativeCount) / total

	sentiment := models.SentimentNeutral
	score := 0.5
	impact := models.ImpactNeutral

	switch {
	case float64(positiveCount) > float64(negativeCount)*sentimentMultiplier:
		sentiment = models.SentimentPositive
		score = 0.5 + positiveRatio*0.3
		impact = models.ImpactBullish
	case float64(negativeCount) > float64(positiveCount)*sentimentMultiplier:
		sentiment = models.SentimentNegative
		score = 0.5 - negativeRatio*0.3
		impact = models.ImpactBearish
	}

	minCount := positiveCount
	if negativeCount < minCount {
		minCount = negativeCount
	}

	return &models.SentimentResult{
		Symbol:         symbol,
		Sentiment:      sentiment,
		SentimentScore: clamp01(score),
		Confidence:     clamp01(0.5 + float64(minCount)/total*0.2),
		Impact:         impact,
		Summary:        fmt.Sprintf("Keyword analysis: %d positive, %d negative articles", positiveCount, negativeCount),
		Method:         "keyword",
		ArticleCount:   len(articles),
		AnalyzedAt:     time.Now(),
	}
}
