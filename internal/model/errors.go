package model

import (
	"errors"
	"fmt"
	"time"
)

// Kind names the entity an error refers to.
type Kind string

const (
	KindLexicon  Kind = "lexicon"
	KindWeb      Kind = "web"
	KindLexeme   Kind = "lexeme"
	KindRelation Kind = "relation"
)

// ErrorCode categorizes model errors.
type ErrorCode string

const (
	// ErrCodeDuplicateName indicates (owner, name) is taken for the collection kind.
	ErrCodeDuplicateName ErrorCode = "DUPLICATE_NAME"

	// ErrCodeDuplicateText indicates the lexicon already has a lexeme with this text.
	ErrCodeDuplicateText ErrorCode = "DUPLICATE_TEXT"

	// ErrCodeDuplicateRelation indicates (web, name, source, sink) already exists.
	ErrCodeDuplicateRelation ErrorCode = "DUPLICATE_RELATION"

	// ErrCodeNotFound indicates the target is not a member of the stated parent
	// or no longer exists.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeCausalityViolation indicates date_created > last_modified was attempted.
	ErrCodeCausalityViolation ErrorCode = "CAUSALITY_VIOLATION"

	// ErrCodeInvalidArgument indicates input failed validation before reaching storage.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
)

// Error is a recoverable model error. The caller decides whether to retry
// with different input or surface it to the end user.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Kind is the entity the error refers to.
	Kind Kind

	// Message is a human-readable description.
	Message string

	// Key is the natural key involved, when there is one.
	Key string

	// Err is the underlying cause (usually a storage error).
	Err error
}

func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s: %s (%s=%q)", e.Code, e.Message, e.Kind, e.Key)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewDuplicateNameError reports an (owner, name) collision for a collection kind.
func NewDuplicateNameError(kind Kind, owner Owner, name string, cause error) *Error {
	return &Error{
		Code:    ErrCodeDuplicateName,
		Kind:    kind,
		Message: fmt.Sprintf("%s name already used by owner %q", kind, owner),
		Key:     name,
		Err:     cause,
	}
}

// NewDuplicateTextError reports a lexeme text collision within a lexicon.
func NewDuplicateTextError(text string, cause error) *Error {
	return &Error{
		Code:    ErrCodeDuplicateText,
		Kind:    KindLexeme,
		Message: "lexeme text already present in lexicon",
		Key:     text,
		Err:     cause,
	}
}

// NewDuplicateRelationError reports an edge tuple collision within a web.
func NewDuplicateRelationError(key RelationKey, cause error) *Error {
	return &Error{
		Code:    ErrCodeDuplicateRelation,
		Kind:    KindRelation,
		Message: "relation already present in web",
		Key:     key.String(),
		Err:     cause,
	}
}

// NewNotFoundError reports a missing entity or a non-member of a parent.
func NewNotFoundError(kind Kind, key string) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Kind:    kind,
		Message: fmt.Sprintf("%s not found", kind),
		Key:     key,
	}
}

// NewCausalityError reports an attempt to store created > modified.
func NewCausalityError(created, modified time.Time) *Error {
	return &Error{
		Code: ErrCodeCausalityViolation,
		Message: fmt.Sprintf("date created %s is after last modified %s",
			created.Format(time.RFC3339Nano), modified.Format(time.RFC3339Nano)),
	}
}

// NewInvalidArgumentError reports input rejected before reaching storage.
func NewInvalidArgumentError(kind Kind, message string, cause error) *Error {
	return &Error{
		Code:    ErrCodeInvalidArgument,
		Kind:    kind,
		Message: message,
		Err:     cause,
	}
}

// CodeOf returns the model error code carried by err, or "" when err is not
// a model error. Uses errors.As to handle wrapped errors.
func CodeOf(err error) ErrorCode {
	var me *Error
	if errors.As(err, &me) {
		return me.Code
	}
	return ""
}

// IsDuplicateName returns true if err is a DUPLICATE_NAME error.
func IsDuplicateName(err error) bool { return CodeOf(err) == ErrCodeDuplicateName }

// IsDuplicateText returns true if err is a DUPLICATE_TEXT error.
func IsDuplicateText(err error) bool { return CodeOf(err) == ErrCodeDuplicateText }

// IsDuplicateRelation returns true if err is a DUPLICATE_RELATION error.
func IsDuplicateRelation(err error) bool { return CodeOf(err) == ErrCodeDuplicateRelation }

// IsNotFound returns true if err is a NOT_FOUND error.
func IsNotFound(err error) bool { return CodeOf(err) == ErrCodeNotFound }

// IsCausalityViolation returns true if err is a CAUSALITY_VIOLATION error.
func IsCausalityViolation(err error) bool { return CodeOf(err) == ErrCodeCausalityViolation }

// IsInvalidArgument returns true if err is an INVALID_ARGUMENT error.
func IsInvalidArgument(err error) bool { return CodeOf(err) == ErrCodeInvalidArgument }
