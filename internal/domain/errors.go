package domain

// ValidationKind classifies why an add-item submission was rejected
type ValidationKind string

const (
	MissingField ValidationKind = "MissingField"
	InvalidPrice ValidationKind = "InvalidPrice"
)

// Domain errors
var (
	ErrMissingField = &ValidationError{Kind: MissingField, Message: "fill in name and price"}
	ErrInvalidPrice = &ValidationError{Kind: InvalidPrice, Message: "enter a valid price"}
)

// ValidationError represents a rejected add-item submission. The catalog is never modified when one is returned.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches any ValidationError of the same kind
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}
