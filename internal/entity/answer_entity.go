package entity

import "encoding/json"

// Citation is one source document reference attached to an assistant turn.
// Identity is positional within the answer: ReindexId holds the 1-based
// display index assigned in first-seen order, Id the original doc index.
type Citation struct {
	Id        string `json:"id"`
	Filepath  string `json:"filepath,omitempty"`
	PartIndex *int   `json:"part_index,omitempty"`
	ChunkId   string `json:"chunk_id,omitempty"`
	ReindexId string `json:"reindex_id,omitempty"`
	Title     string `json:"title,omitempty"`
	Content   string `json:"content"`
	Url       string `json:"url,omitempty"`
}

// ExecResult is one generated-code execution record returned with a turn.
type ExecResult struct {
	Intent         string          `json:"intent,omitempty"`
	CodeGenerated  string          `json:"code_generated,omitempty"`
	CodeExecResult json.RawMessage `json:"code_exec_result,omitempty"`
}

type ValueProposition struct {
	Proposition string `json:"proposition"`
	Details     string `json:"details"`
}

type WalkaroundStep struct {
	Heading string `json:"heading"`
	Details string `json:"details"`
}

type BoatSuggestion struct {
	Product string `json:"product"`
	Model   string `json:"model"`
	Summary string `json:"summary"`
}

// AskResponse is one assistant turn as delivered by the conversation
// endpoint. At most one of ValuePropositions, WalkaroundScript,
// BoatSuggestions, Error or the plain Answer is the active rendering mode.
type AskResponse struct {
	MessageId         string             `json:"message_id,omitempty"`
	Answer            string             `json:"answer"`
	Citations         []Citation         `json:"citations"`
	Feedback          string             `json:"feedback,omitempty"`
	ExecResults       []ExecResult       `json:"exec_results,omitempty"`
	ValuePropositions []ValueProposition `json:"value_propositions,omitempty"`
	WalkaroundScript  []WalkaroundStep   `json:"walkaround_script,omitempty"`
	BoatSuggestions   []BoatSuggestion   `json:"boat_suggestions,omitempty"`
	Error             string             `json:"error,omitempty"`
}

// PlotData is the structured plot spec a code execution result may embed.
type PlotData struct {
	Data   []map[string]interface{} `json:"data"`
	Layout map[string]interface{}   `json:"layout,omitempty"`
}
