package types

import (
	"fmt"
)

// Height is a monotonically increasing revision/height pair identifying a
// point on a counterparty chain.
type Height struct {
	RevisionNumber uint64
	RevisionHeight uint64
}

// NewHeight creates a new Height instance.
func NewHeight(revisionNumber, revisionHeight uint64) Height {
	return Height{
		RevisionNumber: revisionNumber,
		RevisionHeight: revisionHeight,
	}
}

// ZeroHeight is a helper function which returns an uninitialized height.
func ZeroHeight() Height {
	return Height{}
}

// IsZero returns true if height revision and revision-height are both zero.
func (h Height) IsZero() bool {
	return h.RevisionNumber == 0 && h.RevisionHeight == 0
}

// Compare implements a partial order over heights. It returns -1 if h is
// less than other, 0 if they are equal and 1 if h is greater than other.
// Heights are compared lexicographically: first by revision number, then by
// revision height.
func (h Height) Compare(other Height) int {
	var a, b uint64
	if h.RevisionNumber != other.RevisionNumber {
		a, b = h.RevisionNumber, other.RevisionNumber
	} else {
		a, b = h.RevisionHeight, other.RevisionHeight
	}

	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// LT returns true if h is strictly less than other.
func (h Height) LT(other Height) bool {
	return h.Compare(other) == -1
}

// LTE returns true if h is less than or equal to other.
func (h Height) LTE(other Height) bool {
	return h.Compare(other) <= 0
}

// GT returns true if h is strictly greater than other.
func (h Height) GT(other Height) bool {
	return h.Compare(other) == 1
}

// GTE returns true if h is greater than or equal to other.
func (h Height) GTE(other Height) bool {
	return h.Compare(other) >= 0
}

// EQ returns true if h is equal to other.
func (h Height) EQ(other Height) bool {
	return h.Compare(other) == 0
}

// Increment returns the height with the revision height incremented by one.
func (h Height) Increment() Height {
	return NewHeight(h.RevisionNumber, h.RevisionHeight+1)
}

func (h Height) String() string {
	return fmt.Sprintf("%d-%d", h.RevisionNumber, h.RevisionHeight)
}
