package models

import "time"

// Sentiment channel names shared by labels, aggregates and anomalies.
const (
	ChannelPositive = "positive"
	ChannelNegative = "negative"
	ChannelNeutral  = "neutral"
)

// Mention is a single social post or news item referencing the tracked brand.
type Mention struct {
	ID        string
	Source    string // "twitter", "reddit", "news", "forums"
	Author    string
	Text      string
	Timestamp time.Time

	// Filled by the sentiment analyzer.
	Label      string
	Score      float64 // [-1, 1]
	Confidence float64 // [0, 1]
}

// SentimentScore is the analyzer output for a single text.
type SentimentScore struct {
	Label      string
	Score      float64 // [-1, 1], negative values lean negative
	Confidence float64 // [0, 1]
}

// DailyAggregate is one day of sentiment history: percentage shares per
// channel plus mention volume. Shares sum to roughly 100.
type DailyAggregate struct {
	Date     time.Time
	Positive float64
	Negative float64
	Neutral  float64
	Volume   int64
}

// Channels returns the share triple in positive, negative, neutral order.
func (d DailyAggregate) Channels() [3]float64 {
	return [3]float64{d.Positive, d.Negative, d.Neutral}
}
