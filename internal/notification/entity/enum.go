package entity

// Type groups notifications the way the app renders them.
type Type string

const (
	TypeEvent         Type = "event"
	TypeReimbursement Type = "reimbursement"
	TypeInfo          Type = "info"
	TypeSystem        Type = "system"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeEvent, TypeReimbursement, TypeInfo, TypeSystem:
		return true
	default:
		return false
	}
}
