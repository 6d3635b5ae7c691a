package errors

import "errors"

// Domain errors
var (
	// Label errors
	ErrLabelNotCreated      = errors.New("service did not confirm label creation")
	ErrUnexpectedLabelCount = errors.New("unexpected number of labels")
	ErrMissingLabelField    = errors.New("label is missing a required field")
	ErrInvalidLabelSize     = errors.New("label size is not an integer")
	ErrLabelHashMismatch    = errors.New("label hash does not match")
	ErrLabelTextMismatch    = errors.New("label text does not match flag")
	ErrLabelListNotArray    = errors.New("label list is not a json array")

	// Flag identifier errors
	ErrMalformedFlagID = errors.New("malformed flag identifier")

	// Transport errors
	ErrHTTPStatus        = errors.New("unexpected http status")
	ErrBadHandshake      = errors.New("command channel handshake rejected")
	ErrInvalidEncoding   = errors.New("response is not valid utf-8")
	ErrUnexpectedMessage = errors.New("unexpected message type on command channel")

	// Invocation errors
	ErrUnsupportedVuln = errors.New("unsupported vuln id")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrInvalidInput    = errors.New("invalid input")
)
