package model

// RowStatus is the status of a row.
type RowStatus string

const (
	// Normal is the normal status.
	Normal RowStatus = "NORMAL"
	// Archived is the archived status.
	Archived RowStatus = "ARCHIVED"
)

func (s RowStatus) String() string {
	return string(s)
}
