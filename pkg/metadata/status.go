package metadata

import "fmt"

type Status string

const (
	StatusActive             Status = "ACTIVE"
	StatusTransferInProgress Status = "TRANSFER_IN_PROGRESS"
)

func NewStatus(value string) (Status, error) {
	status := Status(value)
	if !status.isValid() {
		return "", fmt.Errorf("invalid status: %s", value)
	}
	return status, nil
}

func (s Status) isValid() bool {
	switch s {
	case StatusActive, StatusTransferInProgress:
		return true
	default:
		return false
	}
}

// OperationalDown is the latest_status reported for an unreachable asset.
const OperationalDown = "Down"

func IsDown(latestStatus string) bool {
	return latestStatus == OperationalDown
}
