package model

import "fmt"

// MalformedDataError reports a source document that does not have the
// expected categories shape.
type MalformedDataError struct {
	Path   string // location inside the document, e.g. categories["Browsers"][2]
	Reason string
	Err    error // underlying decode error, if any
}

func (e *MalformedDataError) Error() string {
	msg := "malformed data"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *MalformedDataError) Unwrap() error {
	return e.Err
}

func malformed(path, reason string, err error) *MalformedDataError {
	return &MalformedDataError{Path: path, Reason: reason, Err: err}
}
