package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maxRetries = 3
	retryDelay = 10 * time.Millisecond
)

// isRetryableError checks if an error is safe to retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Check if pgx thinks it's safe to retry (connection errors before sending data)
	if pgconn.SafeToRetry(err) {
		return true
	}

	// Check for specific PostgreSQL error codes
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001": // serialization_failure
			return true
		case "40P01": // deadlock_detected
			return true
		case "08000", "08003", "08006": // connection errors
			return true
		}
	}

	return false
}

// Query runs fn against the default pool.
// Automatically retries on transient errors.
func Query(ctx context.Context, fn func(p *pgxpool.Pool) error) error {
	var lastErr error

	for attempt := range maxRetries {
		if attempt > 0 {
			delay := retryDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := fn(defaultPool)
		if err == nil {
			return nil
		}

		lastErr = err
		if !isRetryableError(err) {
			return err
		}
	}

	return fmt.Errorf("query failed after %d attempts: %w", maxRetries, lastErr)
}

// Query1 runs fn and returns a single result.
// Automatically retries on transient errors.
func Query1[T any](ctx context.Context, fn func(p *pgxpool.Pool) (T, error)) (T, error) {
	var result T
	var lastErr error

	for attempt := range maxRetries {
		if attempt > 0 {
			delay := retryDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(delay):
			}
		}

		var err error
		result, err = fn(defaultPool)
		if err == nil {
			return result, nil
		}

		lastErr = err
		if !isRetryableError(err) {
			return result, err
		}
	}

	return result, fmt.Errorf("query failed after %d attempts: %w", maxRetries, lastErr)
}
