package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"syscall"
	"time"

	"github.com/go-sql-driver/mysql"
)

// RetryPolicy retries transient failures with a linearly growing delay:
// Delay, 2*Delay, 3*Delay...
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// DefaultRetryPolicy allows two retries after the first attempt.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, Delay: time.Second}

func (p RetryPolicy) attempts() int {
	if p.Attempts < 1 {
		return 1
	}
	return p.Attempts
}

type transientError struct{ err error }

func (e transientError) Error() string { return e.err.Error() }
func (e transientError) Unwrap() error { return e.err }

// Transient marks err as retryable regardless of its type.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return transientError{err: err}
}

var lostConnectionMessages = []string{
	"connection lost",
	"server closed the connection",
	"connection reset",
	"broken pipe",
	"bad connection",
}

// IsTransient reports whether err looks like a dropped connection.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var te transientError
	if errors.As(err, &te) {
		return true
	}
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, mysql.ErrInvalidConn) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, m := range lostConnectionMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// Retry runs fn until it succeeds, returns a non-transient error, the attempts
// are used up, or ctx is done.
func Retry(ctx context.Context, policy RetryPolicy, fn func(ctx context.Context) error) error {
	var err error
	attempts := policy.attempts()
	for i := 0; i < attempts; i++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if !IsTransient(err) || i == attempts-1 {
			break
		}

		wait := time.Duration(i+1) * policy.Delay
		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(wait):
		}
	}

	var te transientError
	if errors.As(err, &te) {
		return te.err
	}
	return err
}
