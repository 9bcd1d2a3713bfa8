package domain

// Category is a user-owned grouping for items. Name is unique per owner.
type Category struct {
	UserOwned
	Name string `json:"name" db:"name"`
}
