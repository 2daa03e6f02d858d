package persistence

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/cajachica/backend/internal/domain/shared"
)

// isConnectionError reports whether err is a connection-level failure
// rather than a query error. Dropped connections, dial failures and
// exceeded deadlines are retriable; constraint violations and malformed
// SQL are not.
func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// wrapDBError wraps a database error with context. Connection-level
// failures are tagged with shared.ErrTransientIO so callers can tell
// retriable I/O apart from real query failures.
func wrapDBError(msg string, err error) error {
	if isConnectionError(err) {
		return fmt.Errorf("%w: %s: %v", shared.ErrTransientIO, msg, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
