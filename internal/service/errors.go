package service

import (
	"context"
	"errors"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/moneymate/internal/editor"
	"github.com/mmynk/moneymate/internal/extract"
	"github.com/mmynk/moneymate/internal/splitter"
	"github.com/mmynk/moneymate/internal/storage"
)

var (
	ErrMissingSessionID = errors.New("session_id is required")
	ErrItemsFinalized   = errors.New("items are finalized, reopen them to make changes")
	ErrItemsNotFinal    = errors.New("finalize the items before splitting them")
	ErrNotSessionOwner  = errors.New("session belongs to another user")
	ErrSignInRequired   = errors.New("sign in to list saved sessions")
)

// invalidItemsHeader carries the IDs that failed finalize validation.
const invalidItemsHeader = "Invalid-Item-Ids"

// toConnectError maps domain errors to Connect codes. Errors that already
// carry a code pass through unchanged.
func toConnectError(err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return err
	}

	var code connect.Code
	switch {
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, editor.ErrItemNotFound),
		errors.Is(err, splitter.ErrItemNotFound),
		errors.Is(err, splitter.ErrParticipantNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, ErrItemsFinalized),
		errors.Is(err, ErrItemsNotFinal),
		errors.Is(err, splitter.ErrFixedAssignment),
		errors.Is(err, splitter.ErrLastParticipant):
		code = connect.CodeFailedPrecondition
	case errors.Is(err, ErrMissingSessionID),
		errors.Is(err, editor.ErrNoItems),
		errors.Is(err, editor.ErrInvalidItems),
		errors.Is(err, editor.ErrNegativeAmount),
		errors.Is(err, extract.ErrNoImage):
		code = connect.CodeInvalidArgument
	case errors.Is(err, ErrNotSessionOwner):
		code = connect.CodePermissionDenied
	case errors.Is(err, ErrSignInRequired):
		code = connect.CodeUnauthenticated
	case errors.Is(err, extract.ErrServiceUnavailable):
		code = connect.CodeUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		code = connect.CodeDeadlineExceeded
	case errors.Is(err, context.Canceled):
		code = connect.CodeCanceled
	default:
		code = connect.CodeInternal
	}

	connectErr = connect.NewError(code, err)
	var validationErr *editor.ValidationError
	if errors.As(err, &validationErr) {
		connectErr.Meta().Set(invalidItemsHeader, strings.Join(validationErr.ItemIDs, ","))
	}
	return connectErr
}
