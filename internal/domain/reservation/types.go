package reservation

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusActive, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Counts toward the concurrent-booking risk signal.
func (s Status) IsOpen() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Allowed edges. Everything not listed is rejected, which keeps the lifecycle forward-only.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusActive, StatusCompleted, StatusCancelled},
	StatusActive:    {StatusCompleted},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

type DepositStatus string

const (
	DepositPending  DepositStatus = "pending"
	DepositHeld     DepositStatus = "held"
	DepositReturned DepositStatus = "returned"
	DepositDeducted DepositStatus = "deducted"
)

func (d DepositStatus) String() string {
	return string(d)
}
