package models

// Income is a one-off income record owned by a single user.
type Income struct {
	Base
	OwnerID     uint     `gorm:"index;not null" json:"owner_id"`
	Amount      *float64 `json:"amount"`
	Description string   `json:"description"`
	Date        *Date    `json:"date"`
}

// Expense is an expense record. Category defaults to "Other" when blank.
type Expense struct {
	Base
	OwnerID     uint     `gorm:"index;not null" json:"owner_id"`
	Amount      *float64 `json:"amount"`
	Description string   `json:"description"`
	Date        *Date    `json:"date"`
	Category    string   `json:"category"`
}

// Investment is a flat investment amount record, not a holding.
type Investment struct {
	Base
	OwnerID     uint     `gorm:"index;not null" json:"owner_id"`
	Amount      *float64 `json:"amount"`
	Description string   `json:"description"`
	Date        *Date    `json:"date"`
}

// DefaultCategory is applied to expenses created without a category.
const DefaultCategory = "Other"
