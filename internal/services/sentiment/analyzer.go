// Package sentiment classifies short social-media texts into
// positive/negative/neutral using lexicon scoring.
package sentiment

import (
	"regexp"
	"strings"

	"SentiCast/internal/domain/models"
)

// maxTextLen caps input length before scoring. Longer posts are
// truncated to match the storage limit of the ingestion pipeline.
const maxTextLen = 512

// negationWindow is how many following tokens a negator inverts.
const negationWindow = 3

// neutralConfidence is reported when the text is non-empty but carries
// no lexicon hits.
const neutralConfidence = 0.5

// maxConfidence bounds reported confidence for lexicon scoring.
const maxConfidence = 0.98

var (
	reURL        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	reMention    = regexp.MustCompile(`@\w+`)
	reHashtag    = regexp.MustCompile(`#(\w+)`)
	reNonText    = regexp.MustCompile(`[^\w\s.,!?-]`)
	reWhitespace = regexp.MustCompile(`\s+`)
)

var positiveWords = wordSet(
	"good", "great", "love", "loved", "loving", "awesome", "amazing",
	"excellent", "fantastic", "wonderful", "perfect", "best", "happy",
	"glad", "pleased", "impressive", "impressed", "brilliant", "superb",
	"delightful", "enjoy", "enjoyed", "like", "liked", "helpful",
	"recommend", "recommended", "solid", "smooth", "fast", "reliable",
	"beautiful", "win", "winning", "works", "easy", "thanks", "thank",
	"appreciate", "appreciated", "satisfied", "nice", "stellar",
	"flawless", "intuitive", "responsive",
)

var negativeWords = wordSet(
	"bad", "worse", "worst", "terrible", "awful", "horrible", "hate",
	"hated", "disappointing", "disappointed", "disappointment", "poor",
	"broken", "bug", "buggy", "bugs", "slow", "useless", "unusable",
	"crash", "crashed", "crashes", "fail", "failed", "fails", "failure",
	"annoying", "annoyed", "frustrating", "frustrated", "garbage",
	"trash", "refund", "scam", "angry", "sad", "unhappy", "problem",
	"problems", "issue", "issues", "lag", "laggy", "overpriced",
	"dreadful", "mediocre", "unreliable",
)

var negators = wordSet(
	"not", "no", "never", "nothing", "hardly", "barely", "cant",
	"cannot", "dont", "wont", "isnt", "arent", "wasnt", "werent",
	"doesnt", "didnt", "couldnt", "shouldnt", "wouldnt",
)

var intensifiers = map[string]float64{
	"very":       1.5,
	"really":     1.5,
	"so":         1.3,
	"super":      1.5,
	"extremely":  2.0,
	"absolutely": 2.0,
	"incredibly": 2.0,
	"totally":    1.5,
	"completely": 1.8,
	"utterly":    1.8,
}

func wordSet(words ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Analyzer scores free text against the built-in lexicons. The zero
// value is ready to use and safe for concurrent use.
type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Preprocess strips URLs and @mentions, unwraps hashtags into plain
// words, removes markup except basic punctuation, collapses whitespace
// and truncates to the scoring limit.
func Preprocess(text string) string {
	clean := reURL.ReplaceAllString(text, " ")
	clean = reMention.ReplaceAllString(clean, " ")
	clean = reHashtag.ReplaceAllString(clean, "$1")
	clean = reNonText.ReplaceAllString(clean, "")
	clean = reWhitespace.ReplaceAllString(clean, " ")
	clean = strings.TrimSpace(clean)
	if len(clean) > maxTextLen {
		clean = strings.TrimSpace(clean[:maxTextLen])
	}
	return clean
}

// Analyze scores a single text. Empty or all-noise input is neutral
// with zero confidence. Matching is case-insensitive; a negator
// inverts the next sentiment-bearing token within its window, and an
// intensifier scales it.
func (a *Analyzer) Analyze(text string) models.SentimentScore {
	clean := Preprocess(text)
	if clean == "" {
		return models.SentimentScore{Label: models.ChannelNeutral, Score: 0, Confidence: 0}
	}

	total, hits := scoreTokens(strings.Fields(strings.ToLower(clean)))
	if hits == 0 {
		return models.SentimentScore{Label: models.ChannelNeutral, Score: 0, Confidence: neutralConfidence}
	}

	score := total / float64(hits)
	if score > 1 {
		score = 1
	} else if score < -1 {
		score = -1
	}

	label := models.ChannelNeutral
	switch {
	case score > 0:
		label = models.ChannelPositive
	case score < 0:
		label = models.ChannelNegative
	}

	conf := 0.5 + 0.5*abs(score)
	if conf > maxConfidence {
		conf = maxConfidence
	}
	return models.SentimentScore{Label: label, Score: score, Confidence: conf}
}

// AnalyzeBatch scores texts in order, one result per input.
func (a *Analyzer) AnalyzeBatch(texts []string) []models.SentimentScore {
	out := make([]models.SentimentScore, len(texts))
	for i, text := range texts {
		out[i] = a.Analyze(text)
	}
	return out
}

// scoreTokens walks lowercased tokens and accumulates signed lexicon
// hits. Negation applies to the first sentiment token inside its
// window; intensifier boost applies to the immediately following run
// of tokens until a sentiment token consumes it.
func scoreTokens(tokens []string) (total float64, hits int) {
	boost := 1.0
	negate := 0

	for _, raw := range tokens {
		inWindow := negate > 0
		if inWindow {
			negate--
		}

		tok := strings.Trim(raw, ".,!?-")
		if tok == "" {
			continue
		}
		if _, ok := negators[tok]; ok {
			negate = negationWindow
			boost = 1.0
			continue
		}
		if b, ok := intensifiers[tok]; ok {
			boost *= b
			continue
		}

		v := 0.0
		if _, ok := positiveWords[tok]; ok {
			v = 1
		} else if _, ok := negativeWords[tok]; ok {
			v = -1
		}
		if v == 0 {
			boost = 1.0
			continue
		}
		if inWindow {
			v = -v
			negate = 0
		}
		total += v * boost
		hits++
		boost = 1.0
	}
	return total, hits
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
