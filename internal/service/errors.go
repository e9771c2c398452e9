package service

import (
	"errors"
	"strings"

	"github.com/blog-engagement-api/internal/validation"
)

var (
	// ErrInvalidArticleID is returned before any storage access when the
	// article id is empty, multi-segment or too long
	ErrInvalidArticleID = errors.New("invalid article id")

	// ErrValidation is returned when a comment lacks an author or content
	ErrValidation = errors.New("author and content required")

	// ErrStorage marks any failure of the backing store
	ErrStorage = errors.New("storage failure")
)

// StorageError carries a store failure. Its message is the store's own.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// InputError reports rejected input together with the offending fields
type InputError struct {
	Kind   error
	Fields []validation.ValidationError
}

func (e *InputError) Error() string {
	if len(e.Fields) == 0 {
		return e.Kind.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Error())
	}
	return e.Kind.Error() + ": " + strings.Join(parts, "; ")
}

func (e *InputError) Unwrap() error { return e.Kind }

func checkArticleID(id string) error {
	if verr := validation.ValidateArticleID(id); verr != nil {
		return &InputError{Kind: ErrInvalidArticleID, Fields: []validation.ValidationError{*verr}}
	}
	return nil
}
