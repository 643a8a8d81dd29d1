package classifier

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/postguard/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexicon_Classify(t *testing.T) {
	l := NewLexicon()

	tests := []struct {
		text      string
		sentiment models.Sentiment
		relevance models.Relevance
	}{
		{"great day", models.SentimentPositive, models.RelevanceRelevant},
		{"bad spam", models.SentimentNegative, models.RelevanceIrrelevant},
		{"This movie was awful and boring", models.SentimentNegative, models.RelevanceRelevant},
		{"not bad at all", models.SentimentPositive, models.RelevanceRelevant},
		{"I don't like mondays", models.SentimentNegative, models.RelevanceRelevant},
		{"buy now, ADVERTISEMENT inside", models.SentimentPositive, models.RelevanceIrrelevant},
		{"the bus leaves at nine", models.SentimentPositive, models.RelevanceRelevant},
		{"", models.SentimentPositive, models.RelevanceRelevant},
		{"good but terrible, awful", models.SentimentNegative, models.RelevanceRelevant},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := l.Classify(context.Background(), tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.sentiment, got.Sentiment)
			assert.Equal(t, tt.relevance, got.Relevance)
		})
	}
}

func TestLexicon_Deterministic(t *testing.T) {
	l := NewLexicon()
	a, _ := l.Classify(context.Background(), "I hate irrelevant spam")
	b, _ := l.Classify(context.Background(), "I hate irrelevant spam")
	assert.Equal(t, a, b)
}
