package types

import (
	"fmt"
	"math"
	"time"

	errorsmod "cosmossdk.io/errors"
	tmtime "github.com/cometbft/cometbft/types/time"
)

// MaxUnixTimestampNanos is the maximum Unix timestamp (in nanoseconds)
// representable by Time. It matches the range of the host time.Time
// nanosecond representation.
const MaxUnixTimestampNanos = uint64(math.MaxInt64)

// Time is a Unix timestamp with nanosecond precision.
//
// All arithmetic is checked: operations that would exceed
// MaxUnixTimestampNanos return ErrTimestampOverflow instead of wrapping.
// The zero value is the Unix epoch.
type Time struct {
	nanos uint64
}

// Now returns the current canonical UTC time.
func Now() Time {
	return Time{nanos: uint64(tmtime.Now().UnixNano())}
}

// FromUnixTimestampNanos constructs a Time from a Unix timestamp in
// nanoseconds, rejecting values outside the representable range.
func FromUnixTimestampNanos(nanos uint64) (Time, error) {
	if nanos > MaxUnixTimestampNanos {
		return Time{}, errorsmod.Wrapf(ErrTimestampOverflow, "unix timestamp %d exceeds maximum %d", nanos, MaxUnixTimestampNanos)
	}
	return Time{nanos: nanos}, nil
}

// FromTime converts a time.Time into a Time. Times before the Unix epoch are
// rejected.
func FromTime(t time.Time) (Time, error) {
	ns := t.UnixNano()
	if ns < 0 {
		return Time{}, errorsmod.Wrapf(ErrTimestampOverflow, "time %s precedes the unix epoch", t)
	}
	return Time{nanos: uint64(ns)}, nil
}

// UnixTimestampNanos returns the timestamp as nanoseconds since the Unix
// epoch.
func (t Time) UnixTimestampNanos() uint64 {
	return t.nanos
}

// Add returns t advanced by d. It fails if d is negative or if the result
// exceeds the representable range.
func (t Time) Add(d time.Duration) (Time, error) {
	if d < 0 {
		return Time{}, errorsmod.Wrapf(ErrInvalidDuration, "cannot add negative duration %s", d)
	}
	dn := uint64(d)
	if dn > MaxUnixTimestampNanos-t.nanos {
		return Time{}, errorsmod.Wrapf(ErrTimestampOverflow, "%s + %s exceeds maximum timestamp", t, d)
	}
	return Time{nanos: t.nanos + dn}, nil
}

// After reports whether t is strictly after u.
func (t Time) After(u Time) bool {
	return t.nanos > u.nanos
}

// Before reports whether t is strictly before u.
func (t Time) Before(u Time) bool {
	return t.nanos < u.nanos
}

// Equal reports whether t and u are the same instant.
func (t Time) Equal(u Time) bool {
	return t.nanos == u.nanos
}

// AsTime returns the timestamp as a time.Time in UTC.
func (t Time) AsTime() time.Time {
	return time.Unix(0, int64(t.nanos)).UTC()
}

func (t Time) String() string {
	return fmt.Sprintf("%d", t.nanos)
}

// NanosToDuration converts a nanosecond count into a time.Duration,
// rejecting values that do not fit.
func NanosToDuration(nanos uint64) (time.Duration, error) {
	if nanos > uint64(math.MaxInt64) {
		return 0, errorsmod.Wrapf(ErrTimestampOverflow, "duration %d ns exceeds maximum", nanos)
	}
	return time.Duration(nanos), nil
}

// DurationNanos returns d as a nanosecond count, rejecting negative
// durations.
func DurationNanos(d time.Duration) (uint64, error) {
	if d < 0 {
		return 0, errorsmod.Wrapf(ErrInvalidDuration, "duration %s is negative", d)
	}
	return uint64(d), nil
}
