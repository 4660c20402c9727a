package bulkimport

import (
	"errors"
	"net/http"
)

// ErrMalformedWorkbook marks the only parser-level hard failure: a workbook
// that cannot be read or that is missing a required sheet or header column.
var ErrMalformedWorkbook = errors.New("malformed workbook")

// CommitError rejects a whole commit with a caller-facing detail message.
// Nothing is persisted when it is returned.
type CommitError struct {
	Status int
	Detail string
}

func (e *CommitError) Error() string {
	return e.Detail
}

func badRequest(detail string) *CommitError {
	return &CommitError{Status: http.StatusBadRequest, Detail: detail}
}

func conflict(detail string) *CommitError {
	return &CommitError{Status: http.StatusConflict, Detail: detail}
}
