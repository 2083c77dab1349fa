// pkg/escp/errors.go
package escp

import (
	"errors"

	"escp-service/pkg/escp/charset"
)

// Errors reported by the command builder. Match them with errors.Is.
var (
	ErrInvalidParameter     = errors.New("invalid parameter")
	ErrUnsupportedVariant   = errors.New("unsupported printer variant")
	ErrUnsupportedDirective = errors.New("directive not supported by printer variant")
	ErrUnsupportedSpacing   = errors.New("unsupported line spacing")

	// ErrProtocolTable marks a command table missing an opcode the builder
	// needs. It is a construction defect, never a data error.
	ErrProtocolTable = errors.New("incomplete protocol table")

	ErrInvalidEncoding = charset.ErrInvalidEncoding
	ErrEncodingRange   = charset.ErrEncodingRange
)
