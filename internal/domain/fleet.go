package domain

// Category is a vehicle category carrying the base freight value.
type Category struct {
	ID          int64
	TenantID    int64
	Name        string
	BaseFreight float64
}

// Vehicle belongs to exactly one driver and one category.
type Vehicle struct {
	ID         int64
	DriverID   int64
	CategoryID int64
}
