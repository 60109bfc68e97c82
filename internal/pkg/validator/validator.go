package validator

// Validator validates request and domain structs using struct tags.
type Validator interface {
	// Validate returns nil when data is valid, otherwise a field error map.
	Validate(data any) error
}
