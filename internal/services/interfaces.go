package services

import (
	"iter"

	"moneta/internal/models"
	"moneta/internal/pagination"
)

// AuthServicer defines the contract for registration, sign-in, and session
// resolution.
type AuthServicer interface {
	Register(name, email, password string, monthlyIncome *float64, accountType models.AccountType) (string, *models.User, error)
	Login(email, password string) (string, *models.User, error)
	Resolve(token string) (*models.User, error)
}

// UserServicer defines the contract for the ownership graph: group members,
// visible users, and profile updates.
type UserServicer interface {
	GetUserByID(id uint) (*models.User, error)
	Members(ownerID uint) ([]models.User, error)
	VisibleUsers(user *models.User) ([]models.User, error)
	AddMember(acting *models.User, name, email, password string, monthlyIncome *float64, accountType models.AccountType) (*models.User, error)
	UpdateProfile(userID uint, name *string, monthlyIncome *float64) (*models.User, error)
}

// RecordUpdate holds optional new values for a ledger record. Nil fields are
// left unchanged; Category applies to expenses only.
type RecordUpdate struct {
	Amount      *float64
	Description *string
	Date        *models.Date
	Category    *string
}

// SummaryReport is the derived view over a user's ledger records. Total
// income folds in the profile monthly income of the user and, for group
// owners, of their members.
type SummaryReport struct {
	Incomes         []models.Income     `json:"incomes"`
	Expenses        []models.Expense    `json:"expenses"`
	Investments     []models.Investment `json:"investments"`
	TotalIncome     float64             `json:"total_income"`
	TotalExpense    float64             `json:"total_expense"`
	TotalInvestment float64             `json:"total_investment"`
	Net             float64             `json:"net"`
}

// HealthReport is the weighted composite financial health score.
type HealthReport struct {
	Score           float64 `json:"score"`
	Rating          string  `json:"rating"`
	SavingsRate     float64 `json:"savings_rate"`
	InvestmentRate  float64 `json:"investment_rate"`
	ExpenseRatio    float64 `json:"expense_ratio"`
	TotalIncome     float64 `json:"total_income"`
	TotalExpense    float64 `json:"total_expense"`
	TotalInvestment float64 `json:"total_investment"`
}

// SplitResult reports the outcome of a split-expense fan-out. Created record
// ids are intentionally not returned.
type SplitResult struct {
	Status         string  `json:"status"`
	SplitPerPerson float64 `json:"split_per_person"`
	Parties        int     `json:"parties"`
}

// LedgerServicer defines the contract for income/expense/investment records
// and the derived views over them.
type LedgerServicer interface {
	CreateIncome(ownerID uint, amount *float64, description string, date *models.Date) (*models.Income, error)
	UpdateIncome(userID, incomeID uint, upd RecordUpdate) (*models.Income, error)
	DeleteIncome(userID, incomeID uint) error
	GetIncomes(ownerID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error)

	CreateExpense(ownerID uint, amount *float64, description string, date *models.Date, category string) (*models.Expense, error)
	UpdateExpense(userID, expenseID uint, upd RecordUpdate) (*models.Expense, error)
	DeleteExpense(userID, expenseID uint) error
	GetExpenses(ownerID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)

	CreateInvestment(ownerID uint, amount *float64, description string, date *models.Date) (*models.Investment, error)
	UpdateInvestment(userID, investmentID uint, upd RecordUpdate) (*models.Investment, error)
	DeleteInvestment(userID, investmentID uint) error
	GetInvestments(ownerID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error)

	Summary(user *models.User) (*SummaryReport, error)
	CategoryBreakdown(ownerID uint) (map[string]float64, error)
	DailySpending(ownerID uint) (map[string]float64, error)
	ExportCSV(ownerID uint) (iter.Seq[string], error)
	HealthScore(user *models.User) (*HealthReport, error)
	SplitExpense(owner *models.User, amount *float64, description string, date *models.Date) (*SplitResult, error)
}

// BudgetStatus is the evaluated state of one monthly budget for the current
// calendar month. IsOverBudget and IsNearLimit are mutually exclusive.
type BudgetStatus struct {
	BudgetID     uint    `json:"budget_id"`
	Category     string  `json:"category"`
	Limit        float64 `json:"limit"`
	Spent        float64 `json:"spent"`
	Remaining    float64 `json:"remaining"`
	Percentage   float64 `json:"percentage"`
	IsOverBudget bool    `json:"is_over_budget"`
	IsNearLimit  bool    `json:"is_near_limit"`
}

// BudgetUpdate holds optional new values for a budget.
type BudgetUpdate struct {
	Category    *string
	LimitAmount *float64
	Period      *models.BudgetPeriod
	Month       *int
	Year        *int
}

// BudgetServicer defines the contract for budget CRUD and evaluation.
type BudgetServicer interface {
	Create(ownerID uint, category string, limitAmount *float64, period models.BudgetPeriod, month, year int) (*models.Budget, error)
	Update(userID, budgetID uint, upd BudgetUpdate) (*models.Budget, error)
	Delete(userID, budgetID uint) error
	List(ownerID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	Status(ownerID uint) (map[string]*BudgetStatus, error)
}

// DebtSummary nets a user's pending obligations per counterparty.
type DebtSummary struct {
	TotalOwed      float64          `json:"total_owed"`
	TotalOwedToYou float64          `json:"total_owed_to_you"`
	NetBalance     float64          `json:"net_balance"`
	OwedByPerson   map[uint]float64 `json:"owed_by_person"`
	OwedToPerson   map[uint]float64 `json:"owed_to_person"`
}

// DebtServicer defines the contract for the debt ledger.
type DebtServicer interface {
	Create(fromUserID, toUserID uint, amount *float64, description string, date *models.Date, relatedExpenseID *uint) (*models.Debt, error)
	ListPending(userID uint) ([]models.Debt, error)
	Settle(userID, debtID uint) (*models.Debt, error)
	Delete(userID, debtID uint) error
	Summary(userID uint) (*DebtSummary, error)
}

// GoalUpdate holds optional new values for a goal.
type GoalUpdate struct {
	Name          *string
	TargetAmount  *float64
	CurrentAmount *float64
	TargetDate    *models.Date
	Status        *models.GoalStatus
	Type          *models.GoalType
}

// GoalAchievements summarizes goal progress for a user.
type GoalAchievements struct {
	CompletedGoals  int     `json:"completed_goals"`
	ActiveGoals     int     `json:"active_goals"`
	TotalGoalAmount float64 `json:"total_goal_amount"`
	CurrentProgress float64 `json:"current_progress"`
}

// GoalServicer defines the contract for savings goals.
type GoalServicer interface {
	Create(ownerID uint, name string, targetAmount, currentAmount *float64, targetDate *models.Date, goalType models.GoalType) (*models.Goal, error)
	Update(userID, goalID uint, upd GoalUpdate) (*models.Goal, error)
	Delete(userID, goalID uint) error
	List(ownerID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Goal], error)
	Achievements(ownerID uint) (*GoalAchievements, error)
}
