package entity

import (
	"time"
)

// Known sentiment labels. Labels are an open set; these are the ones the
// aggregate report breaks out.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Feedback is one append-only prediction log entry
type Feedback struct {
	ID         uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Text       string    `json:"text" gorm:"type:text;not null"`
	Sentiment  string    `json:"sentiment" gorm:"type:varchar(50);not null;index"`
	Confidence float64   `json:"confidence" gorm:"not null"`
	Timestamp  time.Time `json:"timestamp" gorm:"autoCreateTime;index"`
}

// TableName returns the table name for GORM
func (Feedback) TableName() string {
	return "feedback"
}

// NewFeedback creates a log entry stamped with the current time
func NewFeedback(text, sentiment string, confidence float64) *Feedback {
	return &Feedback{
		Text:       text,
		Sentiment:  sentiment,
		Confidence: confidence,
		Timestamp:  time.Now().UTC(),
	}
}

// Emoji returns the display glyph for a sentiment label
func Emoji(sentiment string) string {
	switch sentiment {
	case SentimentPositive:
		return "😊"
	case SentimentNegative:
		return "😡"
	default:
		return "😐"
	}
}
