package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boatchat-client/internal/dto"
	"boatchat-client/internal/entity"
)

type submittedFeedback struct {
	messageId string
	value     string
}

func newFeedbackFixture(t *testing.T) (IFeedbackService, *[]submittedFeedback) {
	t.Helper()
	submissions := &[]submittedFeedback{}
	client := &fakeClient{
		feedbackFn: func(ctx context.Context, messageId, feedback string) (*dto.HistoryResult, error) {
			*submissions = append(*submissions, submittedFeedback{messageId, feedback})
			return okResult(), nil
		},
	}
	store := newTestStore(t)
	return NewFeedbackService(store, client, testLogger()), submissions
}

func TestFeedbackInitializeFromPersistedValue(t *testing.T) {
	store := newTestStore(t)
	fs := NewFeedbackService(store, &fakeClient{}, testLogger())

	fs.Initialize(&entity.AskResponse{MessageId: "m1", Feedback: "missing_citation,out_of_scope"})

	assert.Equal(t, entity.FeedbackNegative, store.State().FeedbackState["m1"])
}

func TestFeedbackInitializeKeepsExistingLedgerEntry(t *testing.T) {
	store := newTestStore(t)
	fs := NewFeedbackService(store, &fakeClient{}, testLogger())

	fs.Like(context.Background(), "m1")
	fs.Initialize(&entity.AskResponse{MessageId: "m1", Feedback: "negative"})

	assert.Equal(t, entity.FeedbackPositive, store.State().FeedbackState["m1"])
}

func TestFeedbackInitializeWithoutMessageId(t *testing.T) {
	store := newTestStore(t)
	fs := NewFeedbackService(store, &fakeClient{}, testLogger())

	fs.Initialize(&entity.AskResponse{Feedback: "positive"})

	assert.Empty(t, store.State().FeedbackState)
}

func TestFeedbackLikeTogglesAndSubmits(t *testing.T) {
	fs, submissions := newFeedbackFixture(t)
	ctx := context.Background()

	fs.Like(ctx, "m1")
	fs.Like(ctx, "m1")

	require.Len(t, *submissions, 2)
	assert.Equal(t, submittedFeedback{"m1", "positive"}, (*submissions)[0])
	assert.Equal(t, submittedFeedback{"m1", "neutral"}, (*submissions)[1])
}

func TestFeedbackDislikeOpensDialogWithoutSubmitting(t *testing.T) {
	fs, submissions := newFeedbackFixture(t)

	fs.Dislike(context.Background(), "m1")

	dialog := fs.Dialog()
	assert.True(t, dialog.Open)
	assert.Equal(t, "m1", dialog.MessageId)
	assert.False(t, dialog.InappropriatePane)
	assert.Empty(t, dialog.Selection)
	// Negative is not terminal until the detail dialog resolves.
	assert.Empty(t, *submissions)
}

func TestFeedbackSecondDislikeResetsToNeutral(t *testing.T) {
	fs, submissions := newFeedbackFixture(t)
	ctx := context.Background()

	fs.Dislike(ctx, "m1")
	fs.Dismiss()
	// Ledger is back to Neutral, so the next dislike opens the dialog again.
	fs.Dislike(ctx, "m1")
	require.True(t, fs.Dialog().Open)
	fs.ToggleReason(entity.FeedbackOutOfScope)
	require.NoError(t, fs.Submit(ctx))

	// Now the ledger holds a negative detail state; dislike toggles it off.
	fs.Dislike(ctx, "m1")

	require.NotEmpty(t, *submissions)
	last := (*submissions)[len(*submissions)-1]
	assert.Equal(t, submittedFeedback{"m1", "neutral"}, last)
	assert.False(t, fs.Dialog().Open)
}

func TestFeedbackSubmitRequiresSelection(t *testing.T) {
	fs, submissions := newFeedbackFixture(t)
	ctx := context.Background()

	fs.Dislike(ctx, "m1")
	err := fs.Submit(ctx)

	assert.ErrorIs(t, err, ErrEmptySelection)
	assert.True(t, fs.Dialog().Open)
	assert.Empty(t, *submissions)
}

func TestFeedbackSubmitJoinsSelection(t *testing.T) {
	fs, submissions := newFeedbackFixture(t)
	ctx := context.Background()

	fs.Dislike(ctx, "m1")
	fs.ToggleReason(entity.FeedbackMissingCitation)
	fs.ToggleReason(entity.FeedbackOutOfScope)
	require.NoError(t, fs.Submit(ctx))

	require.Len(t, *submissions, 1)
	assert.Equal(t, submittedFeedback{"m1", "missing_citation,out_of_scope"}, (*submissions)[0])

	dialog := fs.Dialog()
	assert.False(t, dialog.Open)
	assert.Empty(t, dialog.Selection)
	assert.False(t, dialog.InappropriatePane)
}

func TestFeedbackToggleReasonUnchecks(t *testing.T) {
	fs, _ := newFeedbackFixture(t)

	fs.Dislike(context.Background(), "m1")
	fs.ToggleReason(entity.FeedbackOutOfScope)
	fs.ToggleReason(entity.FeedbackWrongCitation)
	fs.ToggleReason(entity.FeedbackOutOfScope)

	assert.Equal(t, []entity.Feedback{entity.FeedbackWrongCitation}, fs.Dialog().Selection)
}

func TestFeedbackInappropriatePaneSelection(t *testing.T) {
	fs, submissions := newFeedbackFixture(t)
	ctx := context.Background()

	fs.Dislike(ctx, "m1")
	fs.ShowInappropriatePane()
	assert.True(t, fs.Dialog().InappropriatePane)

	fs.ToggleReason(entity.FeedbackHateSpeech)
	fs.ToggleReason(entity.FeedbackViolent)
	require.NoError(t, fs.Submit(ctx))

	require.Len(t, *submissions, 1)
	assert.Equal(t, "hate_speech,violent", (*submissions)[0].value)
}

func TestFeedbackDismissResetsToNeutral(t *testing.T) {
	store := newTestStore(t)
	fs := NewFeedbackService(store, &fakeClient{}, testLogger())

	fs.Dislike(context.Background(), "m1")
	fs.ToggleReason(entity.FeedbackSexual)
	fs.Dismiss()

	assert.Equal(t, entity.FeedbackNeutral, store.State().FeedbackState["m1"])
	assert.False(t, fs.Dialog().Open)
}

func TestFeedbackRemoteFailureKeepsLocalState(t *testing.T) {
	store := newTestStore(t)
	client := &fakeClient{
		feedbackFn: func(ctx context.Context, messageId, feedback string) (*dto.HistoryResult, error) {
			return &dto.HistoryResult{Ok: false, Status: 500, Error: "boom"}, nil
		},
	}
	fs := NewFeedbackService(store, client, testLogger())

	fs.Like(context.Background(), "m1")

	// The optimistic state stands even though the submission was rejected.
	assert.Equal(t, entity.FeedbackPositive, store.State().FeedbackState["m1"])
}
