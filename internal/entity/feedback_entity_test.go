package entity

import "testing"

func TestParseFeedback(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Feedback
	}{
		{"empty means never recorded", "", ""},
		{"positive", "positive", FeedbackPositive},
		{"negative", "negative", FeedbackNegative},
		{"neutral", "neutral", FeedbackNeutral},
		{"single detail token", "wrong_citation", FeedbackWrongCitation},
		{"comma list aggregates to negative", "missing_citation,out_of_scope", FeedbackNegative},
		{"mixed unknown list still negative", "missing_citation,made_up", FeedbackNegative},
		{"unknown single token is neutral", "banana", FeedbackNeutral},
		{"inappropriate token", "hate_speech", FeedbackHateSpeech},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseFeedback(tt.raw); got != tt.want {
				t.Errorf("ParseFeedback(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFeedbackKnown(t *testing.T) {
	for _, f := range []Feedback{
		FeedbackNeutral, FeedbackPositive, FeedbackNegative,
		FeedbackMissingCitation, FeedbackWrongCitation, FeedbackOutOfScope,
		FeedbackInaccurateOrIrrelevant, FeedbackOtherUnhelpful,
		FeedbackHateSpeech, FeedbackViolent, FeedbackSexual,
		FeedbackManipulative, FeedbackOtherHarmful,
	} {
		if !f.Known() {
			t.Errorf("%q should be known", f)
		}
	}
	if Feedback("other_harmlful").Known() {
		t.Error("misspelled token should not be known")
	}
}
