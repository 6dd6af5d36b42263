package item

import "fmt"

// Status is the lifecycle state of a gift item. The set is closed, but the
// machine is non-enforcing: any status may be patched to any other.
type Status string

const (
	StatusIdea    Status = "idea"
	StatusPlanned Status = "planned"
	StatusBought  Status = "bought"
	StatusShipped Status = "shipped"
	StatusWrapped Status = "wrapped"
	StatusDelayed Status = "delayed"
)

// AllStatuses lists every valid status, in lifecycle order.
var AllStatuses = []Status{StatusIdea, StatusPlanned, StatusBought, StatusShipped, StatusWrapped, StatusDelayed}

// ParseStatus validates a raw status string against the closed set.
func ParseStatus(raw string) (Status, error) {
	for _, s := range AllStatuses {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// Item is a single gift candidate or purchase tied to one recipient.
// Name may be empty right after creation: the UI creates an "idea" row first
// and lets the user type the name afterwards.
type Item struct {
	Id          int64
	RecipientId int64
	Name        string
	Cost        float64
	Status      Status
	Notes       string
}

// Patch carries a partial update. Nil fields are left untouched.
type Patch struct {
	Name   *string
	Cost   *float64
	Status *Status
	Notes  *string
}

// IsEmpty reports whether the patch names no fields at all.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Cost == nil && p.Status == nil && p.Notes == nil
}
