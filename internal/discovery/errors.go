// internal/discovery/errors.go
package discovery

import "errors"

// ErrUnknownScanner is returned for a scanner type that is not registered
var ErrUnknownScanner = errors.New("unknown scanner type")
