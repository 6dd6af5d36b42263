package recipient

// Recipient is a gift-list owner with an assigned spending budget.
// SortOrder is assigned at creation from a monotonic sequence and is never
// reused or renumbered, so values may be non-contiguous after deletions.
type Recipient struct {
	Id        int64
	Name      string
	Budget    float64
	SortOrder int
}

// Patch carries a partial update. Nil fields are left untouched.
type Patch struct {
	Name   *string
	Budget *float64
}
