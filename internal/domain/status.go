package domain

// OperationStatus is the lifecycle state of an operation
type OperationStatus string

const (
	StatusDraft     OperationStatus = "Draft"
	StatusWaiting   OperationStatus = "Waiting"
	StatusReady     OperationStatus = "Ready"
	StatusShipped   OperationStatus = "Shipped"
	StatusDone      OperationStatus = "Done"
	StatusCancelled OperationStatus = "Cancelled"
)

var validTransitions = map[OperationStatus][]OperationStatus{
	StatusDraft:     {StatusWaiting, StatusReady, StatusShipped, StatusDone, StatusCancelled},
	StatusWaiting:   {StatusReady, StatusShipped, StatusDone, StatusCancelled},
	StatusReady:     {StatusShipped, StatusDone, StatusCancelled},
	StatusShipped:   {StatusDone},
	StatusDone:      {},
	StatusCancelled: {},
}

// ParseStatus validates s
func ParseStatus(s string) (OperationStatus, error) {
	status := OperationStatus(s)
	if _, ok := validTransitions[status]; !ok {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// IsValid reports whether the status is known
func (s OperationStatus) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// IsTerminal reports whether no further transition is possible
func (s OperationStatus) IsTerminal() bool {
	return s == StatusDone || s == StatusCancelled
}

// CanTransitionTo checks the operation state machine
func (s OperationStatus) CanTransitionTo(target OperationStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// String returns the status name
func (s OperationStatus) String() string {
	return string(s)
}

// UnmarshalText rejects unknown statuses when decoding JSON or YAML
func (s *OperationStatus) UnmarshalText(text []byte) error {
	status, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = status
	return nil
}
