package errors

// KV-specific helpers for mapping redis errors to project ErrorCode and retry semantics

import (
	"context"
	stderrs "errors"
	"net"

	"github.com/redis/go-redis/v9"
)

// IsKVMissing reports whether the root cause is a missing key or field
func IsKVMissing(err error) bool {
	return stderrs.Is(Root(err), redis.Nil)
}

// FromKV converts a raw KV error into a project *Error with a sensible code.
// nil stays nil; project errors pass through unchanged.
func FromKV(err error, msg string) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}
	switch {
	case IsKVMissing(err):
		return Wrap(err, ErrorCodeNotFound, msg)
	case isTransient(err):
		return Wrap(err, ErrorCodeUnavailable, msg)
	default:
		return Wrap(err, ErrorCodeKV, msg)
	}
}

// IsRetryable reports whether a retry of the operation may succeed
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if IsCode(err, ErrorCodeUnavailable) {
		return true
	}
	return isTransient(err)
}

func isTransient(err error) bool {
	root := Root(err)
	if stderrs.Is(root, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	if stderrs.As(root, &nerr) && nerr.Timeout() {
		return true
	}
	return false
}
