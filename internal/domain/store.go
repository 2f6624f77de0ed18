package domain

// Store is a retail location visited by assignments.
type Store struct {
	StoreID     int
	Description string
	City        string
	County      string
	Address     string
}
