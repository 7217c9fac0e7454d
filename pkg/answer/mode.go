package answer

import "boatchat-client/internal/entity"

// RenderMode names the mutually exclusive rendering shapes an assistant turn
// can take.
type RenderMode int

const (
	ModeAnswer RenderMode = iota
	ModeValuePropositions
	ModeWalkaround
	ModeBoatSuggestions
	ModeError
)

func (m RenderMode) String() string {
	switch m {
	case ModeValuePropositions:
		return "value_propositions"
	case ModeWalkaround:
		return "walkaround"
	case ModeBoatSuggestions:
		return "boat_suggestions"
	case ModeError:
		return "error"
	default:
		return "answer"
	}
}

// ResolveMode picks the active rendering mode for a turn. A response that
// incorrectly carries more than one payload is disambiguated by fixed
// precedence: value propositions, walkaround, suggestions, error, then the
// default answer.
func ResolveMode(a *entity.AskResponse) RenderMode {
	switch {
	case a == nil:
		return ModeAnswer
	case len(a.ValuePropositions) > 0:
		return ModeValuePropositions
	case len(a.WalkaroundScript) > 0:
		return ModeWalkaround
	case len(a.BoatSuggestions) > 0:
		return ModeBoatSuggestions
	case a.Error != "":
		return ModeError
	default:
		return ModeAnswer
	}
}
