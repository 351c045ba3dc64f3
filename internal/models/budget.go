package models

// BudgetPeriod represents the period type for a budget. Only monthly
// budgets are evaluated by the status pass.
type BudgetPeriod string

const (
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// Budget is a per-category spending limit for a specific month and year.
type Budget struct {
	Base
	OwnerID     uint         `gorm:"index;not null" json:"owner_id"`
	Category    string       `gorm:"not null" json:"category"`
	LimitAmount *float64     `json:"limit_amount"`
	Period      BudgetPeriod `gorm:"default:monthly" json:"period"`
	Month       int          `json:"month"`
	Year        int          `json:"year"`
}
