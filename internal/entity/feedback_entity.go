package entity

import "strings"

// Feedback is the per-message quality classification. A message's persisted
// feedback field is either a single token or a comma-joined list of
// negative-detail tokens; multiple tokens always aggregate to Negative.
type Feedback string

const (
	FeedbackNeutral  Feedback = "neutral"
	FeedbackPositive Feedback = "positive"
	FeedbackNegative Feedback = "negative"

	// "Why wasn't this response helpful" detail tokens.
	FeedbackMissingCitation        Feedback = "missing_citation"
	FeedbackWrongCitation          Feedback = "wrong_citation"
	FeedbackOutOfScope             Feedback = "out_of_scope"
	FeedbackInaccurateOrIrrelevant Feedback = "inaccurate_or_irrelevant"
	FeedbackOtherUnhelpful         Feedback = "other_unhelpful"

	// "The content is inappropriate" detail tokens.
	FeedbackHateSpeech   Feedback = "hate_speech"
	FeedbackViolent      Feedback = "violent"
	FeedbackSexual       Feedback = "sexual"
	FeedbackManipulative Feedback = "manipulative"
	FeedbackOtherHarmful Feedback = "other_harmful"
)

var knownFeedback = map[Feedback]struct{}{
	FeedbackNeutral:                {},
	FeedbackPositive:               {},
	FeedbackNegative:               {},
	FeedbackMissingCitation:        {},
	FeedbackWrongCitation:          {},
	FeedbackOutOfScope:             {},
	FeedbackInaccurateOrIrrelevant: {},
	FeedbackOtherUnhelpful:         {},
	FeedbackHateSpeech:             {},
	FeedbackViolent:                {},
	FeedbackSexual:                 {},
	FeedbackManipulative:           {},
	FeedbackOtherHarmful:           {},
}

func (f Feedback) Known() bool {
	_, ok := knownFeedback[f]
	return ok
}

// ParseFeedback derives the aggregate state from a persisted feedback field.
// The empty string means no feedback was ever recorded.
func ParseFeedback(raw string) Feedback {
	if raw == "" {
		return ""
	}
	if len(strings.Split(raw, ",")) > 1 {
		return FeedbackNegative
	}
	if f := Feedback(raw); f.Known() {
		return f
	}
	return FeedbackNeutral
}
