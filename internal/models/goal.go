package models

// GoalStatus is the lifecycle state of a savings goal.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusAbandoned GoalStatus = "abandoned"
)

// GoalType classifies what the goal tracks.
type GoalType string

const (
	GoalTypeSavings          GoalType = "savings"
	GoalTypeExpenseReduction GoalType = "expense_reduction"
	GoalTypeInvestment       GoalType = "investment"
)

// Goal is a user-defined financial target.
type Goal struct {
	Base
	OwnerID       uint       `gorm:"index;not null" json:"owner_id"`
	Name          string     `json:"name"`
	TargetAmount  *float64   `json:"target_amount"`
	CurrentAmount *float64   `json:"current_amount"`
	TargetDate    *Date      `json:"target_date"`
	Status        GoalStatus `gorm:"default:active" json:"status"`
	Type          GoalType   `gorm:"default:savings" json:"type"`
}
