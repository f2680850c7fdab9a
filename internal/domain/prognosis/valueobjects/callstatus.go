package valueobjects

// CallStatus identifies the call handling state of a ticket.
type CallStatus int

const (
	CallStatusOpen       CallStatus = 1
	CallStatusInProgress CallStatus = 2
	CallStatusResolved   CallStatus = 3
	CallStatusClosed     CallStatus = 4
	CallStatusCancelled  CallStatus = 5
)

var callStatusDisplay = map[CallStatus]string{
	CallStatusOpen:       "Open",
	CallStatusInProgress: "In Progress",
	CallStatusResolved:   "Resolved",
	CallStatusClosed:     "Closed",
	CallStatusCancelled:  "Cancelled",
}

// IsValid reports whether the status is within the accepted filter range.
// Values above the display range are stored as-is and rendered as Unknown.
func (cs CallStatus) IsValid() bool {
	return cs >= 1 && cs <= 10
}

// Display returns the human readable name for the status.
func (cs CallStatus) Display() string {
	if name, ok := callStatusDisplay[cs]; ok {
		return name
	}
	return "Unknown"
}

func (cs CallStatus) Int() int {
	return int(cs)
}
