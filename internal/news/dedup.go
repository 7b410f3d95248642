package news

import (
	"strings"
	"unicode"

	"github.com/jwhittle/stockscout/internal/models"
)

// similarityThreshold is the word-set overlap above which two titles
// are treated as the same story.
const similarityThreshold = 0.8

// NormalizeTitle lowercases a title and strips punctuation, collapsing
// whitespace runs.
func NormalizeTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// TitleSimilarity returns the Jaccard similarity of the word sets of
// two normalized titles, in [0,1].
func TitleSimilarity(a, b string) float64 {
	wordsA := wordSet(NormalizeTitle(a))
	wordsB := wordSet(NormalizeTitle(b))
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	intersection := 0
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection

	return float64(intersection) / float64(union)
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}

// Dedupe removes near-duplicate articles, keeping the first occurrence
// of each story. Articles with no title are kept as-is.
func Dedupe(articles []*models.NewsArticle) []*models.NewsArticle {
	var kept []*models.NewsArticle

	for _, article := range articles {
		duplicate := false
		if article.Title != "" {
			for _, existing := range kept {
				if TitleSimilarity(article.Title, existing.Title) > similarityThreshold {
					duplicate = true
					break
				}
			}
		}
		if !duplicate {
			kept = append(kept, article)
		}
	}

	return kept
}
