package harness

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/itemstore/internal/record"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// EvaluateAssertions checks every assertion against the store and returns
// the failure messages.
func EvaluateAssertions(ctx context.Context, st record.Service, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluateAssertion(ctx, st, a); err != nil {
			errs = append(errs, fmt.Sprintf("assertion %d: %v", i, err))
		}
	}
	return errs
}

func evaluateAssertion(ctx context.Context, st record.Service, a Assertion) error {
	switch a.Type {
	case AssertCount:
		return assertCount(ctx, st, a)
	case AssertOrder:
		return assertOrder(ctx, st, a)
	case AssertDistinctIDs:
		return assertDistinctIDs(ctx, st)
	default:
		return fmt.Errorf("unknown assertion type: %s", a.Type)
	}
}

// assertCount checks the number of records, optionally under a filter.
func assertCount(ctx context.Context, st record.Service, a Assertion) error {
	filter := record.AnyCategory()
	if a.Filter != nil {
		filter = record.CategoryContains(*a.Filter)
	}
	recs, err := st.List(ctx, filter)
	if err != nil {
		return err
	}
	if len(recs) != a.Count {
		return &AssertionError{
			Type:     AssertCount,
			Expected: fmt.Sprintf("%d records (filter %s)", a.Count, filter),
			Actual:   fmt.Sprintf("%d records", len(recs)),
		}
	}
	return nil
}

// assertOrder checks that listing everything yields exactly these names in order.
func assertOrder(ctx context.Context, st record.Service, a Assertion) error {
	recs, err := st.List(ctx, record.AnyCategory())
	if err != nil {
		return err
	}
	names := make([]string, len(recs))
	for i, r := range recs {
		names[i] = r.Name
	}
	if !slices.Equal(names, a.Names) {
		return &AssertionError{
			Type:     AssertOrder,
			Expected: fmt.Sprintf("%q", a.Names),
			Actual:   fmt.Sprintf("%q", names),
		}
	}
	return nil
}

// assertDistinctIDs checks that no two records share an ID.
func assertDistinctIDs(ctx context.Context, st record.Service) error {
	recs, err := st.List(ctx, record.AnyCategory())
	if err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(recs))
	for _, r := range recs {
		if _, dup := seen[r.ID]; dup {
			return &AssertionError{
				Type:     AssertDistinctIDs,
				Expected: "all ids distinct",
				Actual:   fmt.Sprintf("id %q appears more than once", r.ID),
			}
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}
