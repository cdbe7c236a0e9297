package pipeline

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField = errors.New("missing required field")
	ErrMalformedUID = errors.New("malformed uid")
)

// FieldError reports a required field absent from one record.
type FieldError struct {
	UID    string
	Tag    string
	Column string
	Err    error
}

func (e *FieldError) Error() string {
	uid := e.UID
	if uid == "" {
		uid = "?"
	}
	return fmt.Sprintf("record %s: %s (tag %s, column %s)", uid, e.Err, e.Tag, e.Column)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func missing(uid, tag, column string) error {
	return &FieldError{UID: uid, Tag: tag, Column: column, Err: ErrMissingField}
}
