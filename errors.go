package domloc

import "fmt"

// DictionaryError indicates a dictionary could not be loaded or decoded.
type DictionaryError struct {
	Source string // Where the dictionary came from (path, URL)
	Cause  error
}

func (e *DictionaryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("dictionary error (%s): %v", e.Source, e.Cause)
	}
	return fmt.Sprintf("dictionary error (%s)", e.Source)
}

func (e *DictionaryError) Unwrap() error {
	return e.Cause
}

// InitError indicates the engine could not be attached to a document
// (nil document, missing body).
type InitError struct {
	Message string
	Cause   error
}

func (e *InitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("init error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("init error: %s", e.Message)
}

func (e *InitError) Unwrap() error {
	return e.Cause
}

// ProviderError indicates a translation backend failure (API error, rate
// limit, etc.).
type ProviderError struct {
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// CountMismatchError indicates a backend returned a different number of
// translations than requested.
type CountMismatchError struct {
	Expected int
	Got      int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("translation count mismatch: expected %d, got %d", e.Expected, e.Got)
}
