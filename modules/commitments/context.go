package commitments

import (
	"encoding/binary"
	"fmt"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/teebridge/teelc/modules/types"
)

const (
	// ContextTypeEmpty identifies a commitment context carrying no temporal
	// constraint.
	ContextTypeEmpty uint16 = 0

	// ContextTypeTrustingPeriod identifies a trusting-period context.
	ContextTypeTrustingPeriod uint16 = 1

	// ContextHeaderSize is the size of the fixed context header word.
	ContextHeaderSize = 32
)

// CommitmentContext describes under what temporal/trust conditions a
// commitment is valid. The set of context types is closed: each variant maps
// to exactly one 16-bit wire discriminant, and decoders fail closed on
// discriminants they do not know.
type CommitmentContext interface {
	// ContextType returns the wire discriminant of the context.
	ContextType() uint16

	// Validate checks the context against the caller-supplied current time.
	Validate(currentTimestamp types.Time) error

	// ABIEncode serializes the context, including its header word.
	ABIEncode() ([]byte, error)
}

var (
	_ CommitmentContext = EmptyContext{}
	_ CommitmentContext = TrustingPeriodContext{}
)

// EmptyContext carries no temporal constraint. It is used for commitments
// that need no trust window, e.g. a client's genesis commitment.
type EmptyContext struct{}

// ContextType implements CommitmentContext.
func (EmptyContext) ContextType() uint16 {
	return ContextTypeEmpty
}

// Validate always succeeds.
func (EmptyContext) Validate(types.Time) error {
	return nil
}

// ABIEncode implements CommitmentContext. The body of an empty context is
// always empty.
func (EmptyContext) ABIEncode() ([]byte, error) {
	return encodeContextEnvelope(abiCommitmentContext{
		Header: contextHeader(ContextTypeEmpty),
	})
}

func (EmptyContext) String() string {
	return "Empty"
}

// TrustingPeriodContext bounds the temporal trust placed in a previously
// verified state and a newly presented header. All fields are immutable
// once constructed.
type TrustingPeriodContext struct {
	// TrustingPeriod is how long the trusted state may be relied upon. It
	// must be shorter than the counterparty chain's unbonding period; that
	// policy is enforced by the caller.
	TrustingPeriod time.Duration

	// ClockDrift is the maximum amount the local clock may lag behind a
	// legitimately produced future header.
	ClockDrift time.Duration

	// UntrustedHeaderTimestamp is the timestamp of the header being verified.
	UntrustedHeaderTimestamp types.Time

	// TrustedStateTimestamp is the timestamp of the previously verified
	// state.
	TrustedStateTimestamp types.Time
}

// NewTrustingPeriodContext creates a new TrustingPeriodContext instance.
func NewTrustingPeriodContext(
	trustingPeriod, clockDrift time.Duration,
	untrustedHeaderTimestamp, trustedStateTimestamp types.Time,
) TrustingPeriodContext {
	return TrustingPeriodContext{
		TrustingPeriod:           trustingPeriod,
		ClockDrift:               clockDrift,
		UntrustedHeaderTimestamp: untrustedHeaderTimestamp,
		TrustedStateTimestamp:    trustedStateTimestamp,
	}
}

// ContextType implements CommitmentContext.
func (TrustingPeriodContext) ContextType() uint16 {
	return ContextTypeTrustingPeriod
}

// Validate runs both temporal trust checks. Each check requires strict
// inequality: boundary equality is a failure.
func (c TrustingPeriodContext) Validate(currentTimestamp types.Time) error {
	if err := c.ensureWithinTrustPeriod(currentTimestamp); err != nil {
		return err
	}
	return c.ensureHeaderFromPast(currentTimestamp)
}

// ensureWithinTrustPeriod checks that the trusted state's timestamp has not
// passed the trusting period.
func (c TrustingPeriodContext) ensureWithinTrustPeriod(now types.Time) error {
	trustingPeriodEnd, err := c.TrustedStateTimestamp.Add(c.TrustingPeriod)
	if err != nil {
		return err
	}
	if trustingPeriodEnd.After(now) {
		return nil
	}
	return errorsmod.Wrapf(ErrOutOfTrustingPeriod, "current_timestamp=%s trusting_period_end=%s", now, trustingPeriodEnd)
}

// ensureHeaderFromPast checks that the untrusted header is not from a future
// time beyond the clock drift bound.
func (c TrustingPeriodContext) ensureHeaderFromPast(now types.Time) error {
	driftedCurrent, err := now.Add(c.ClockDrift)
	if err != nil {
		return err
	}
	if driftedCurrent.After(c.UntrustedHeaderTimestamp) {
		return nil
	}
	return errorsmod.Wrapf(ErrHeaderFromFuture, "current_timestamp=%s untrusted_header_timestamp=%s", now, c.UntrustedHeaderTimestamp)
}

// ABIEncode implements CommitmentContext. The body is two 32-byte words:
//
//	timestamps (MSB first):
//	  0-15:  untrusted_header_timestamp as nanoseconds, big-endian 128-bit
//	  16-31: trusted_state_timestamp, same format
//	params (MSB first):
//	  0-15:  trusting_period as nanoseconds, big-endian 128-bit
//	  16-31: clock_drift, same format
func (c TrustingPeriodContext) ABIEncode() ([]byte, error) {
	trustingPeriod, err := types.DurationNanos(c.TrustingPeriod)
	if err != nil {
		return nil, err
	}
	clockDrift, err := types.DurationNanos(c.ClockDrift)
	if err != nil {
		return nil, err
	}

	var timestamps, params [32]byte
	putUint128(timestamps[0:16], c.UntrustedHeaderTimestamp.UnixTimestampNanos())
	putUint128(timestamps[16:32], c.TrustedStateTimestamp.UnixTimestampNanos())
	putUint128(params[0:16], trustingPeriod)
	putUint128(params[16:32], clockDrift)

	body, err := trustingPeriodContextArgs.Pack(abiTrustingPeriodContext{
		Timestamps: timestamps,
		Params:     params,
	})
	if err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidContextBody, "failed to pack trusting period context: %v", err)
	}

	return encodeContextEnvelope(abiCommitmentContext{
		Header:       contextHeader(ContextTypeTrustingPeriod),
		ContextBytes: body,
	})
}

func (c TrustingPeriodContext) String() string {
	return fmt.Sprintf(
		"TrustingPeriod{trusting_period=%s clock_drift=%s untrusted_header_timestamp=%s trusted_state_timestamp=%s}",
		c.TrustingPeriod, c.ClockDrift, c.UntrustedHeaderTimestamp, c.TrustedStateTimestamp,
	)
}

// abiCommitmentContext is the ABI-compatible envelope shared by all context
// types: a fixed header word followed by a type-specific body.
type abiCommitmentContext struct {
	Header       [32]byte
	ContextBytes []byte
}

// abiTrustingPeriodContext is the ABI-compatible trusting-period body.
type abiTrustingPeriodContext struct {
	Timestamps [32]byte
	Params     [32]byte
}

// contextHeader builds the 32-byte context header word: bytes 0-1 hold the
// big-endian type discriminant, bytes 2-31 are reserved and zero on encode.
func contextHeader(contextType uint16) [32]byte {
	var header [ContextHeaderSize]byte
	binary.BigEndian.PutUint16(header[0:2], contextType)
	return header
}

// parseContextTypeFromHeader extracts the type discriminant from a context
// header. Nonzero reserved bytes are tolerated as forward-compatibility
// slack.
func parseContextTypeFromHeader(headerBytes []byte) (uint16, error) {
	if len(headerBytes) != ContextHeaderSize {
		return 0, errorsmod.Wrapf(ErrInvalidContextHeader, "invalid commitment context header length: expected=%d actual=%d", ContextHeaderSize, len(headerBytes))
	}
	return binary.BigEndian.Uint16(headerBytes[0:2]), nil
}

func encodeContextEnvelope(env abiCommitmentContext) ([]byte, error) {
	bz, err := commitmentContextArgs.Pack(env)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidContextBody, "failed to pack commitment context: %v", err)
	}
	return bz, nil
}

func decodeContextEnvelope(bz []byte) (abiCommitmentContext, error) {
	values, err := commitmentContextArgs.Unpack(bz)
	if err != nil {
		return abiCommitmentContext{}, errorsmod.Wrapf(ErrInvalidContextHeader, "failed to unpack commitment context: %v", err)
	}
	if len(values) != 1 {
		return abiCommitmentContext{}, errorsmod.Wrapf(ErrInvalidContextHeader, "invalid commitment context arity: expected=1 actual=%d", len(values))
	}
	env := abi.ConvertType(values[0], new(abiCommitmentContext)).(*abiCommitmentContext)
	return *env, nil
}

// ABIDecodeCommitmentContext parses an encoded commitment context, failing
// closed on unknown discriminants and on bodies inconsistent with the
// declared type.
func ABIDecodeCommitmentContext(bz []byte) (CommitmentContext, error) {
	env, err := decodeContextEnvelope(bz)
	if err != nil {
		return nil, err
	}

	contextType, err := parseContextTypeFromHeader(env.Header[:])
	if err != nil {
		return nil, err
	}

	switch contextType {
	case ContextTypeEmpty:
		if len(env.ContextBytes) != 0 {
			return nil, errorsmod.Wrapf(ErrInvalidContextBody, "empty context must have an empty body: actual=%d bytes", len(env.ContextBytes))
		}
		return EmptyContext{}, nil
	case ContextTypeTrustingPeriod:
		return abiDecodeTrustingPeriodContext(env.ContextBytes)
	default:
		return nil, errorsmod.Wrapf(ErrUnknownContextType, "unknown commitment context type: %d", contextType)
	}
}

func abiDecodeTrustingPeriodContext(bz []byte) (TrustingPeriodContext, error) {
	values, err := trustingPeriodContextArgs.Unpack(bz)
	if err != nil {
		return TrustingPeriodContext{}, errorsmod.Wrapf(ErrInvalidContextBody, "failed to unpack trusting period context: %v", err)
	}
	if len(values) != 1 {
		return TrustingPeriodContext{}, errorsmod.Wrapf(ErrInvalidContextBody, "invalid trusting period context arity: expected=1 actual=%d", len(values))
	}
	body := abi.ConvertType(values[0], new(abiTrustingPeriodContext)).(*abiTrustingPeriodContext)

	untrustedNanos, err := parseUint128(body.Timestamps[0:16])
	if err != nil {
		return TrustingPeriodContext{}, err
	}
	trustedNanos, err := parseUint128(body.Timestamps[16:32])
	if err != nil {
		return TrustingPeriodContext{}, err
	}
	trustingPeriodNanos, err := parseUint128(body.Params[0:16])
	if err != nil {
		return TrustingPeriodContext{}, err
	}
	clockDriftNanos, err := parseUint128(body.Params[16:32])
	if err != nil {
		return TrustingPeriodContext{}, err
	}

	untrustedHeaderTimestamp, err := types.FromUnixTimestampNanos(untrustedNanos)
	if err != nil {
		return TrustingPeriodContext{}, err
	}
	trustedStateTimestamp, err := types.FromUnixTimestampNanos(trustedNanos)
	if err != nil {
		return TrustingPeriodContext{}, err
	}
	trustingPeriod, err := types.NanosToDuration(trustingPeriodNanos)
	if err != nil {
		return TrustingPeriodContext{}, err
	}
	clockDrift, err := types.NanosToDuration(clockDriftNanos)
	if err != nil {
		return TrustingPeriodContext{}, err
	}

	return NewTrustingPeriodContext(trustingPeriod, clockDrift, untrustedHeaderTimestamp, trustedStateTimestamp), nil
}
