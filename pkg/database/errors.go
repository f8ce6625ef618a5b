package database

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/genneg/SwingRadar-sub000/pkg/errors"
)

// SQLSTATE classes that indicate the store cannot currently serve queries.
var unavailableCodes = map[string]struct{}{
	"53300": {}, // too_many_connections
	"53400": {}, // configuration_limit_exceeded
	"57P01": {}, // admin_shutdown
	"57P02": {}, // crash_shutdown
	"57P03": {}, // cannot_connect_now
	"08000": {}, // connection_exception
	"08001": {}, // sqlclient_unable_to_establish_sqlconnection
	"08003": {}, // connection_does_not_exist
	"08004": {}, // sqlserver_rejected_establishment_of_sqlconnection
	"08006": {}, // connection_failure
}

// queryCanceled is raised when statement_timeout fires or a query is
// explicitly canceled.
const queryCanceledCode = "57014"

// ClassifyError maps a store-layer error onto the application error
// taxonomy: query timeouts become 408, connection failures and pool
// exhaustion become 503, everything else becomes a generic 500. Errors that
// already carry an AppError pass through unchanged.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == queryCanceledCode {
			return apperrors.QueryTimeout(err)
		}
		if _, ok := unavailableCodes[pgErr.Code]; ok {
			return apperrors.Unavailable(err)
		}
		return apperrors.Internal(err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.QueryTimeout(err)
	}

	if isConnectionError(err) {
		return apperrors.Unavailable(err)
	}

	return apperrors.Internal(err)
}

// isConnectionError returns true if the error looks like a transient
// connection or pool problem rather than a SQL error. Matching on message
// text is a last resort for errors that don't surface a SQLSTATE.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	connPatterns := []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"no such host",
		"i/o timeout",
		"connect: connection",
		"dial tcp",
		"EOF",
		"connection timed out",
		"server closed the connection unexpectedly",
		"could not connect",
		"failed to acquire",
		"pool exhausted",
		"closed pool",
		"too many clients",
	}
	for _, p := range connPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
