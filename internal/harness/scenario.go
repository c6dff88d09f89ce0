package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultIDPrefix is used when a scenario does not set id_prefix.
const DefaultIDPrefix = "item-"

// Scenario defines a record store scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. Also the golden file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// IDPrefix prefixes generated record IDs.
	IDPrefix string `yaml:"id_prefix,omitempty"`

	// Seed is the store's initial record collection.
	Seed []SeedRecord `yaml:"seed,omitempty"`

	// Steps run in order against the store.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final store state.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// SeedRecord is one initial record. An empty ID is generated by the store.
type SeedRecord struct {
	ID       string `yaml:"id,omitempty"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
}

// Step is one store operation.
type Step struct {
	// Op is "create", "get" or "list".
	Op string `yaml:"op"`

	// Name and Category are the create request.
	Name     string `yaml:"name,omitempty"`
	Category string `yaml:"category,omitempty"`

	// ID is the get argument.
	ID string `yaml:"id,omitempty"`

	// Filter is the list category filter. nil means no filter.
	Filter *string `yaml:"filter,omitempty"`

	// Cancelled runs the step with an already-cancelled context.
	Cancelled bool `yaml:"cancelled,omitempty"`

	// Expect, if set, is checked against the step's outcome.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect describes the expected outcome of a step. Fields left empty are
// not checked.
type Expect struct {
	Outcome string `yaml:"outcome"`

	// Field is the offending field for validation_error.
	Field string `yaml:"field,omitempty"`

	// ID, Name, Category are checked against the record returned by create/get.
	ID       string `yaml:"id,omitempty"`
	Name     string `yaml:"name,omitempty"`
	Category string `yaml:"category,omitempty"`

	// Count is the number of records list must return.
	Count *int `yaml:"count,omitempty"`

	// Names are the record names list must return, in order.
	Names []string `yaml:"names,omitempty"`
}

// Assertion validates the final store state.
type Assertion struct {
	// Type is one of AssertCount, AssertOrder, AssertDistinctIDs.
	Type string `yaml:"type"`

	// Count is the expected number of records (count).
	Count int `yaml:"count,omitempty"`

	// Filter optionally restricts count to matching records.
	Filter *string `yaml:"filter,omitempty"`

	// Names is the expected full name order (order).
	Names []string `yaml:"names,omitempty"`
}

// Step operations.
const (
	OpCreate = "create"
	OpGet    = "get"
	OpList   = "list"
)

// Step outcomes.
const (
	OutcomeOK              = "ok"
	OutcomeValidationError = "validation_error"
	OutcomeNotFound        = "not_found"
	OutcomeCancelled       = "cancelled"
	OutcomeError           = "error"
)

// Assertion types.
const (
	AssertCount       = "count"
	AssertOrder       = "order"
	AssertDistinctIDs = "distinct_ids"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field checking.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // catches "assertion:" vs "assertions:"
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		switch step.Op {
		case OpCreate:
		case OpGet:
			if step.ID == "" {
				return fmt.Errorf("steps[%d]: get requires id", i)
			}
		case OpList:
		case "":
			return fmt.Errorf("steps[%d]: op is required", i)
		default:
			return fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
		}
		if step.Expect != nil {
			if err := validateExpect(i, step.Expect); err != nil {
				return err
			}
		}
	}

	for i, a := range s.Assertions {
		switch a.Type {
		case AssertCount, AssertDistinctIDs:
		case AssertOrder:
			if a.Names == nil {
				return fmt.Errorf("assertions[%d]: order requires names", i)
			}
		case "":
			return fmt.Errorf("assertions[%d]: type is required", i)
		default:
			return fmt.Errorf("assertions[%d]: unknown type %q", i, a.Type)
		}
	}

	return nil
}

func validateExpect(i int, e *Expect) error {
	switch e.Outcome {
	case OutcomeOK, OutcomeNotFound, OutcomeCancelled:
	case OutcomeValidationError:
		if e.Field == "" {
			return fmt.Errorf("steps[%d].expect: validation_error requires field", i)
		}
	case "":
		return fmt.Errorf("steps[%d].expect: outcome is required", i)
	default:
		return fmt.Errorf("steps[%d].expect: unknown outcome %q", i, e.Outcome)
	}
	return nil
}
