package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/roach88/itemstore/internal/record"
)

// Harness executes scenarios against a record store.
type Harness struct {
	store  *record.Store
	logger *slog.Logger
}

// Option configures a run.
type Option func(*Harness)

// WithLogger sets the logger used for step-level debug output.
// By default logs are discarded.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) {
		if l != nil {
			h.logger = l
		}
	}
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh store. The returned error is reserved
// for scenarios that cannot be executed at all (an invalid seed); expect and
// assertion failures are reported through Result.Errors.
//
// Execution flow:
//  1. Create a store with sequential IDs and the scenario's seed
//  2. Execute steps, recording a trace event and checking expect clauses
//  3. Evaluate assertions against the final store state
func Run(ctx context.Context, scenario *Scenario, opts ...Option) (*Result, error) {
	prefix := scenario.IDPrefix
	if prefix == "" {
		prefix = DefaultIDPrefix
	}

	seed := make([]record.Record, len(scenario.Seed))
	for i, s := range scenario.Seed {
		seed[i] = record.Record{ID: s.ID, Name: s.Name, Category: s.Category}
	}

	st, err := record.New(
		record.WithIDGenerator(record.NewSequenceGenerator(prefix)),
		record.WithSeed(seed...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to seed store: %w", err)
	}

	h := &Harness{
		store:  st,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		ev := h.executeStep(ctx, i+1, step)
		result.AddTrace(ev)
		h.logger.Debug("step executed",
			"scenario", scenario.Name,
			"step", ev.Step,
			"op", ev.Op,
			"outcome", ev.Outcome,
		)
		if step.Expect != nil {
			for _, msg := range checkExpect(ev, step.Expect) {
				result.AddError(fmt.Sprintf("step %d (%s): %s", ev.Step, ev.Op, msg))
			}
		}
	}

	final, err := st.List(ctx, record.AnyCategory())
	if err != nil {
		return nil, fmt.Errorf("failed to read final state: %w", err)
	}
	result.Final = final

	for _, msg := range EvaluateAssertions(ctx, st, scenario.Assertions) {
		result.AddError(msg)
	}

	h.logger.Info("scenario finished",
		"scenario", scenario.Name,
		"pass", result.Pass,
		"steps", len(scenario.Steps),
		"records", len(final),
	)

	return result, nil
}

// executeStep runs one step and returns its trace event.
func (h *Harness) executeStep(ctx context.Context, n int, step Step) TraceEvent {
	input := map[string]any{}
	if step.Cancelled {
		input["cancelled"] = true
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		ctx = cctx
	}

	ev := TraceEvent{Step: n, Op: step.Op, Input: input}

	switch step.Op {
	case OpCreate:
		input["name"] = step.Name
		input["category"] = step.Category
		rec, err := h.store.Create(ctx, record.CreateRequest{Name: step.Name, Category: step.Category})
		if err != nil {
			ev.Outcome, ev.Result = classify(err)
			return ev
		}
		ev.Outcome = OutcomeOK
		ev.Result = recordValue(rec)

	case OpGet:
		input["id"] = step.ID
		rec, ok, err := h.store.Get(ctx, step.ID)
		switch {
		case err != nil:
			ev.Outcome, ev.Result = classify(err)
		case !ok:
			ev.Outcome = OutcomeNotFound
		default:
			ev.Outcome = OutcomeOK
			ev.Result = recordValue(rec)
		}

	case OpList:
		filter := record.AnyCategory()
		if step.Filter != nil {
			input["filter"] = *step.Filter
			filter = record.CategoryContains(*step.Filter)
		}
		recs, err := h.store.List(ctx, filter)
		if err != nil {
			ev.Outcome, ev.Result = classify(err)
			return ev
		}
		ev.Outcome = OutcomeOK
		ev.Result = recordsValue(recs)
	}

	return ev
}

// classify maps a store error to an outcome and trace result.
func classify(err error) (string, any) {
	var ve *record.ValidationError
	switch {
	case errors.As(err, &ve):
		return OutcomeValidationError, map[string]any{"field": ve.Field}
	case record.IsCancelled(err):
		return OutcomeCancelled, nil
	default:
		return OutcomeError, map[string]any{"message": err.Error()}
	}
}

// checkExpect compares a trace event against an expect clause.
func checkExpect(ev TraceEvent, exp *Expect) []string {
	var errs []string
	if ev.Outcome != exp.Outcome {
		return []string{fmt.Sprintf("expected outcome %q, got %q", exp.Outcome, ev.Outcome)}
	}

	switch ev.Outcome {
	case OutcomeValidationError:
		m, _ := ev.Result.(map[string]any)
		field, _ := m["field"].(string)
		if field != exp.Field {
			errs = append(errs, fmt.Sprintf("expected invalid field %q, got %q", exp.Field, field))
		}

	case OutcomeOK:
		if rec, ok := ev.Result.(map[string]any); ok {
			errs = append(errs, compareField("id", exp.ID, rec["id"])...)
			errs = append(errs, compareField("name", exp.Name, rec["name"])...)
			errs = append(errs, compareField("category", exp.Category, rec["category"])...)
		}
		if recs, ok := ev.Result.([]any); ok {
			if exp.Count != nil && len(recs) != *exp.Count {
				errs = append(errs, fmt.Sprintf("expected %d records, got %d", *exp.Count, len(recs)))
			}
			if exp.Names != nil {
				got := make([]string, len(recs))
				for i, r := range recs {
					m, _ := r.(map[string]any)
					got[i], _ = m["name"].(string)
				}
				if !slices.Equal(got, exp.Names) {
					errs = append(errs, fmt.Sprintf("expected names %q, got %q", exp.Names, got))
				}
			}
		}
	}

	return errs
}

func compareField(name, want string, got any) []string {
	if want == "" {
		return nil
	}
	if s, _ := got.(string); s != want {
		return []string{fmt.Sprintf("expected %s %q, got %q", name, want, s)}
	}
	return nil
}
