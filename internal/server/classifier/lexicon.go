package classifier

import (
	"context"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/postguard/internal/server/models"
)

var irrelevantKeywords = []string{"spam", "advertisement", "irrelevant"}

var positiveWords = []string{
	"good", "great", "awesome", "amazing", "love", "loved", "like", "happy", "glad",
	"nice", "excellent", "wonderful", "fantastic", "best", "beautiful", "fun",
	"enjoy", "enjoyed", "thanks", "thank", "cool", "perfect", "brilliant", "win",
	"proud", "excited", "kind", "helpful", "yay",
}

var negativeWords = []string{
	"bad", "awful", "terrible", "horrible", "hate", "hated", "sad", "angry", "worst",
	"ugly", "stupid", "boring", "annoying", "disgusting", "poor", "fail", "failed",
	"broken", "sucks", "lame", "hurt", "pathetic", "useless", "worse", "mad",
	"upset", "cry", "idiot", "trash",
}

var negations = []string{"not", "no", "never", "dont", "don't", "isnt", "isn't", "wasnt", "wasn't", "cant", "can't"}

// Lexicon is the built-in deterministic classifier.
//
// Relevance: a text containing any irrelevant keyword (case-insensitive
// substring) is Irrelevant. Sentiment: positive and negative lexicon hits are
// counted, a negation flips the next hit, and a negative balance is Negative.
// Ties, including texts with no hits, are Positive.
type Lexicon struct {
	positive   map[string]struct{}
	negative   map[string]struct{}
	negations  map[string]struct{}
	irrelevant []string
}

func NewLexicon() *Lexicon {
	return &Lexicon{
		positive:   toSet(positiveWords),
		negative:   toSet(negativeWords),
		negations:  toSet(negations),
		irrelevant: irrelevantKeywords,
	}
}

func toSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

func (l *Lexicon) Classify(_ context.Context, text string) (Result, error) {
	lower := strings.ToLower(text)
	return Result{Sentiment: l.sentiment(lower), Relevance: l.relevance(lower)}, nil
}

func (l *Lexicon) relevance(lower string) models.Relevance {
	for _, kw := range l.irrelevant {
		if strings.Contains(lower, kw) {
			return models.RelevanceIrrelevant
		}
	}
	return models.RelevanceRelevant
}

func (l *Lexicon) sentiment(lower string) models.Sentiment {
	tokens := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})

	score := 0
	negate := false
	for _, tok := range tokens {
		if _, ok := l.negations[tok]; ok {
			negate = true
			continue
		}
		delta := 0
		if _, ok := l.positive[tok]; ok {
			delta = 1
		} else if _, ok := l.negative[tok]; ok {
			delta = -1
		}
		if delta == 0 {
			continue
		}
		if negate {
			delta = -delta
			negate = false
		}
		score += delta
	}

	if score < 0 {
		return models.SentimentNegative
	}
	return models.SentimentPositive
}
