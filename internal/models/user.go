package models

// AccountType distinguishes individual accounts from group owners.
type AccountType string

const (
	AccountTypeIndividual AccountType = "individual"
	AccountTypeGroup      AccountType = "group"
)

// User represents a user profile. OwnerID is nil for root users and points
// to the owning group account for members; nesting is one level only.
type User struct {
	Base
	Name          string      `gorm:"not null" json:"name"`
	Email         string      `gorm:"uniqueIndex;not null" json:"email"`
	Password      string      `gorm:"not null" json:"-"`
	MonthlyIncome *float64    `json:"monthly_income"`
	AccountType   AccountType `gorm:"default:individual" json:"account_type"`
	OwnerID       *uint       `gorm:"index" json:"owner_id,omitempty"`
}

// IsGroup reports whether the user is a group owner account.
func (u *User) IsGroup() bool {
	return u.AccountType == AccountTypeGroup
}
