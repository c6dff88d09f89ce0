package harness

import "github.com/roach88/itemstore/internal/record"

// TraceEvent records one executed step.
type TraceEvent struct {
	Step    int            `json:"step"` // 1-based
	Op      string         `json:"op"`
	Input   map[string]any `json:"input"`
	Outcome string         `json:"outcome"`
	Result  any            `json:"result,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Trace contains one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expect/assertion failure messages.
	Errors []string `json:"errors,omitempty"`

	// Final is the store content after the last step, in insertion order.
	Final []record.Record `json:"final"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
		Final:  []record.Record{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a step event.
func (r *Result) AddTrace(ev TraceEvent) {
	r.Trace = append(r.Trace, ev)
}

// recordValue converts a record to the plain map used in traces.
func recordValue(rec record.Record) map[string]any {
	return map[string]any{
		"id":       rec.ID,
		"name":     rec.Name,
		"category": rec.Category,
		"seq":      rec.Seq,
	}
}

func recordsValue(recs []record.Record) []any {
	out := make([]any, len(recs))
	for i, rec := range recs {
		out[i] = recordValue(rec)
	}
	return out
}
