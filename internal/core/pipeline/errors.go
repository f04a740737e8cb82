package pipeline

import "fmt"

// ExtractionError means no JSON object could be recovered from the model
// text after all tiers. It is unrecoverable at this layer; retrying the
// generation call is up to the caller.
type ExtractionError struct {
	Preview string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("could not extract valid JSON from response: %s...", e.Preview)
}

// SchemaError means the payload is structurally invalid (wrong types,
// missing required keys) or violates a numeric invariant. Under the strict
// policy it also covers unmatched categorical values and ingredients.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid recipe payload: %s", e.Reason)
	}
	return fmt.Sprintf("invalid recipe payload: field %q: %s", e.Field, e.Reason)
}

// ConsistencyError means a canonical ingredient name had no backing pantry
// identifier at binding time. This signals a resolver/index desync, not a
// user input problem, and is always fatal.
type ConsistencyError struct {
	Name string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("canonical ingredient %q has no pantry identifier", e.Name)
}
