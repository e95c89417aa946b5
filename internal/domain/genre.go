package domain

// Genre is a catalog genre label.
type Genre struct {
	ID          string
	Name        string
	Description *string
}
