package entity

import (
	"slices"
	"time"
)

// Status is the review state of a reimbursement request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusPaid     Status = "paid"
	StatusRejected Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusPaid, StatusRejected:
		return true
	}
	return false
}

// transitions lists, for every status, the statuses it may be reached from.
var transitions = map[Status][]Status{
	StatusApproved: {StatusPending},
	StatusRejected: {StatusPending, StatusApproved},
	StatusPaid:     {StatusApproved},
}

// CanMoveTo reports whether a request in s may be moved to next. Paid and
// rejected are terminal and nothing moves back to pending.
func (s Status) CanMoveTo(next Status) bool {
	return slices.Contains(transitions[next], s)
}

// Reimbursement is an expense claim filed by one application. Amounts are in
// minor currency units.
type Reimbursement struct {
	ID            int64
	ApplicationID int64
	Event         string
	Date          time.Time
	ExpenseType   string
	AmountCents   int64
	Status        Status
	ReceiptURL    string
	Note          string
	AdminNote     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Stats sums the amounts of one application's requests per status.
type Stats struct {
	PendingCents  int64
	ApprovedCents int64
	PaidCents     int64
	RejectedCents int64
}
