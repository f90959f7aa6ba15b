package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bokfora/ledger_backend/config"
	"github.com/bsm/redislock"
	"github.com/shopspring/decimal"
)

func NewTrue() *bool {
	b := true
	return &b
}

func NewFalse() *bool {
	b := false
	return &b
}

// returns slice removing duplicate elements
func UniqueSlice[T comparable](slice []T) []T {
	inResult := make(map[T]bool)
	var result []T
	for _, elm := range slice {
		if _, ok := inResult[elm]; !ok {
			inResult[elm] = true
			result = append(result, elm)
		}
	}
	return result
}

// safely dereference pointer of type T, nil pointer return zero value or optional default
func DereferencePtr[T any](ptr *T, defaults ...T) T {
	var defaultValue T
	if len(defaults) > 0 {
		defaultValue = defaults[0]
	}
	if ptr == nil {
		return defaultValue
	}
	return *ptr
}

// TruncateToDate drops the time-of-day component; period bounds and entry
// dates compare at day precision.
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDecimal converts a string to a decimal.Decimal value.
func ParseDecimal(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, errors.New("empty decimal string")
	}

	dec, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, err
	}

	return dec, nil
}

// WorkspaceLock obtains a short-lived distributed lock for the workspace and
// returns a release func. Single-writer sections (period locking) go through
// here so two app instances cannot interleave.
func WorkspaceLock(ctx context.Context, workspaceId string, lockType string, moduleName string, functionName string) (func(), error) {
	logger := config.GetLogger()
	locker := config.GetRedisLock()
	if locker == nil {
		// Redis is optional in dev; the DB transaction still guards correctness.
		return func() {}, nil
	}
	lockKey := fmt.Sprintf("%s:%s", lockType, workspaceId)
	lock, err := locker.Obtain(ctx, lockKey, 30*time.Second, nil)
	if err == redislock.ErrNotObtained {
		config.LogError(logger, moduleName, functionName, "Could not obtain lock for workspaceId", workspaceId, err)
		return nil, errors.New("could not obtain lock for workspaceId")
	} else if err != nil {
		config.LogError(logger, moduleName, functionName, "Error obtaining lock for workspaceId", workspaceId, err)
		return nil, err
	}
	return func() { _ = lock.Release(ctx) }, nil
}
