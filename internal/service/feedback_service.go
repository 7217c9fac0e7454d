package service

import (
	"context"
	"errors"
	"strings"

	"boatchat-client/internal/api"
	"boatchat-client/internal/entity"
	"boatchat-client/internal/pkg/logger"
	"boatchat-client/internal/state"
)

// ErrEmptySelection rejects a negative-feedback submission with nothing
// checked; the submit control is disabled until a reason is selected.
var ErrEmptySelection = errors.New("no feedback reasons selected")

// DialogState is the negative-feedback dialog: which message it collects
// for, which pane is showing, and the selected reason tokens.
type DialogState struct {
	Open              bool
	MessageId         string
	InappropriatePane bool
	Selection         []entity.Feedback
}

// IFeedbackService is the per-message feedback state machine. The aggregate
// state lives in the store's feedback ledger; this service owns only the
// transient dialog. Every transition that lands on a terminal state updates
// the ledger first and then fires the remote submission, whose failure is
// logged and never surfaced, retried or rolled back.
type IFeedbackService interface {
	Initialize(answer *entity.AskResponse)
	Like(ctx context.Context, messageId string)
	Dislike(ctx context.Context, messageId string)
	ToggleReason(reason entity.Feedback)
	ShowInappropriatePane()
	Submit(ctx context.Context) error
	Dismiss()
	Dialog() DialogState
}

type feedbackService struct {
	store  *state.Store
	client api.IClient
	log    logger.ILogger
	dialog DialogState
}

func NewFeedbackService(store *state.Store, client api.IClient, log logger.ILogger) IFeedbackService {
	return &feedbackService{store: store, client: client, log: log}
}

// Initialize seeds the ledger from a message's persisted feedback field the
// first time the message appears. An already-ledgered message is left alone;
// a message without an id carries no feedback at all.
func (fs *feedbackService) Initialize(answer *entity.AskResponse) {
	if answer == nil || answer.MessageId == "" {
		return
	}
	if _, exists := fs.store.State().FeedbackState[answer.MessageId]; exists {
		return
	}
	initial := entity.ParseFeedback(answer.Feedback)
	if initial == "" {
		return
	}
	fs.setState(answer.MessageId, initial)
}

func (fs *feedbackService) Like(ctx context.Context, messageId string) {
	if messageId == "" {
		return
	}
	next := entity.FeedbackPositive
	if fs.current(messageId) == entity.FeedbackPositive {
		next = entity.FeedbackNeutral
	}
	fs.setState(messageId, next)
	fs.submitRemote(ctx, messageId, string(next))
}

// Dislike opens the detail dialog on the way to Negative; a second dislike
// resets to Neutral and submits immediately without reopening the dialog.
func (fs *feedbackService) Dislike(ctx context.Context, messageId string) {
	if messageId == "" {
		return
	}
	if isNegative(fs.current(messageId)) {
		fs.setState(messageId, entity.FeedbackNeutral)
		fs.submitRemote(ctx, messageId, string(entity.FeedbackNeutral))
		return
	}
	fs.setState(messageId, entity.FeedbackNegative)
	fs.dialog = DialogState{Open: true, MessageId: messageId, Selection: []entity.Feedback{}}
}

// ToggleReason checks or unchecks a reason. The selection is a set: checking
// an already-checked reason is a no-op, and checking order does not affect
// the submitted value beyond first-seen position.
func (fs *feedbackService) ToggleReason(reason entity.Feedback) {
	if !fs.dialog.Open {
		return
	}
	for i, existing := range fs.dialog.Selection {
		if existing == reason {
			fs.dialog.Selection = append(fs.dialog.Selection[:i], fs.dialog.Selection[i+1:]...)
			return
		}
	}
	fs.dialog.Selection = append(fs.dialog.Selection, reason)
}

func (fs *feedbackService) ShowInappropriatePane() {
	if fs.dialog.Open {
		fs.dialog.InappropriatePane = true
	}
}

// Submit sends the comma-joined selection as the message's feedback payload
// and resets the dialog to closed/empty/first-pane regardless of the remote
// outcome.
func (fs *feedbackService) Submit(ctx context.Context) error {
	if !fs.dialog.Open {
		return errors.New("feedback dialog is not open")
	}
	if len(fs.dialog.Selection) == 0 {
		return ErrEmptySelection
	}

	tokens := make([]string, 0, len(fs.dialog.Selection))
	for _, reason := range fs.dialog.Selection {
		tokens = append(tokens, string(reason))
	}
	messageId := fs.dialog.MessageId
	fs.resetDialog()

	fs.submitRemote(ctx, messageId, strings.Join(tokens, ","))
	return nil
}

// Dismiss closes the dialog without submitting and settles the message back
// to Neutral locally.
func (fs *feedbackService) Dismiss() {
	if !fs.dialog.Open {
		return
	}
	messageId := fs.dialog.MessageId
	fs.resetDialog()
	fs.setState(messageId, entity.FeedbackNeutral)
}

func (fs *feedbackService) Dialog() DialogState {
	out := fs.dialog
	out.Selection = append([]entity.Feedback{}, fs.dialog.Selection...)
	return out
}

func (fs *feedbackService) resetDialog() {
	fs.dialog = DialogState{}
}

func (fs *feedbackService) current(messageId string) entity.Feedback {
	return fs.store.State().FeedbackState[messageId]
}

func (fs *feedbackService) setState(messageId string, fb entity.Feedback) {
	if err := fs.store.Dispatch(state.SetFeedbackState{AnswerId: messageId, Feedback: fb}); err != nil {
		fs.log.Error("feedback", "failed to dispatch feedback state", map[string]interface{}{
			"message_id": messageId,
			"error":      err.Error(),
		})
	}
}

func (fs *feedbackService) submitRemote(ctx context.Context, messageId, value string) {
	res, err := fs.client.HistoryMessageFeedback(ctx, messageId, value)
	if err != nil {
		fs.log.Error("feedback", "message feedback submission failed", map[string]interface{}{
			"message_id": messageId,
			"error":      err.Error(),
		})
		return
	}
	if !res.Ok {
		fs.log.Error("feedback", "message feedback submission rejected", map[string]interface{}{
			"message_id": messageId,
			"status":     res.Status,
			"backend":    res.Error,
		})
	}
}

// isNegative treats both the aggregate Negative and any detail token as a
// negative state.
func isNegative(fb entity.Feedback) bool {
	return fb != "" && fb != entity.FeedbackNeutral && fb != entity.FeedbackPositive
}
