package answer

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"time"

	"boatchat-client/internal/entity"

	"github.com/patrickmn/go-cache"
)

// ParsedAnswer is the render-ready form of an assistant turn: normalized
// markdown, citations in first-reference order, and the optional plot spec.
// It is derived and read-only; callers must not mutate it.
type ParsedAnswer struct {
	MarkdownFormatText string            `json:"markdownFormatText"`
	Citations          []entity.Citation `json:"citations"`
	PlotlyData         *entity.PlotData  `json:"plotly_data"`
}

// Parser turns raw AskResponse records into ParsedAnswer values, memoized by
// answer identity so re-renders of the same turn see identical indices.
type Parser struct {
	memo *cache.Cache
}

func NewParser() *Parser {
	return &Parser{memo: cache.New(30*time.Minute, 10*time.Minute)}
}

// Parse never fails: malformed marker syntax or plot payloads degrade to the
// raw text with no citations and a nil plot. The input is not mutated.
func (p *Parser) Parse(answer *entity.AskResponse) ParsedAnswer {
	if answer == nil {
		return ParsedAnswer{Citations: []entity.Citation{}}
	}

	key := memoKey(answer)
	if hit, ok := p.memo.Get(key); ok {
		return hit.(ParsedAnswer)
	}

	text, citations := Extract(answer.Answer, answer.Citations)
	parsed := ParsedAnswer{
		MarkdownFormatText: text,
		Citations:          citations,
		PlotlyData:         parsePlot(answer.ExecResults),
	}
	p.memo.Set(key, parsed, cache.DefaultExpiration)
	return parsed
}

func memoKey(answer *entity.AskResponse) string {
	if answer.MessageId != "" {
		return answer.MessageId
	}
	sum := md5.Sum([]byte(answer.Answer))
	return hex.EncodeToString(sum[:])
}

// parsePlot pulls the plot spec out of the last code execution result that
// carries one. Payloads that do not decode into a data/layout object are
// ignored rather than reported.
func parsePlot(results []entity.ExecResult) *entity.PlotData {
	for i := len(results) - 1; i >= 0; i-- {
		raw := results[i].CodeExecResult
		if len(raw) == 0 {
			continue
		}
		if plot := decodePlot(raw); plot != nil {
			return plot
		}
	}
	return nil
}

func decodePlot(raw json.RawMessage) *entity.PlotData {
	var plot entity.PlotData
	if err := json.Unmarshal(raw, &plot); err == nil && len(plot.Data) > 0 {
		return &plot
	}
	// Some backends double-encode the spec as a JSON string.
	var nested string
	if err := json.Unmarshal(raw, &nested); err != nil {
		return nil
	}
	if err := json.Unmarshal([]byte(nested), &plot); err == nil && len(plot.Data) > 0 {
		return &plot
	}
	return nil
}
