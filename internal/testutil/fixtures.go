package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"moneta/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Float returns a pointer to the given amount.
func Float(v float64) *float64 {
	return &v
}

// CreateTestUser creates an individual user with a hashed password and
// unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:        fmt.Sprintf("Test User %d", nextID()),
		Email:       email,
		Password:    string(hash),
		AccountType: models.AccountTypeIndividual,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestGroupOwner creates a group account.
func CreateTestGroupOwner(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := CreateTestUser(t, db)
	if err := db.Model(user).Update("account_type", models.AccountTypeGroup).Error; err != nil {
		t.Fatalf("failed to promote user to group: %v", err)
	}
	user.AccountType = models.AccountTypeGroup
	return user
}

// CreateTestMember creates a member user owned by the given group owner.
func CreateTestMember(t *testing.T, db *gorm.DB, ownerID uint) *models.User {
	t.Helper()

	member := CreateTestUser(t, db)
	if err := db.Model(member).Update("owner_id", ownerID).Error; err != nil {
		t.Fatalf("failed to attach member to owner: %v", err)
	}
	member.OwnerID = &ownerID
	return member
}

// CreateTestIncome creates an income record dated today.
func CreateTestIncome(t *testing.T, db *gorm.DB, ownerID uint, amount float64) *models.Income {
	t.Helper()

	today := models.Today()
	income := &models.Income{
		OwnerID:     ownerID,
		Amount:      &amount,
		Description: fmt.Sprintf("Test Income %d", nextID()),
		Date:        &today,
	}
	if err := db.Create(income).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return income
}

// CreateTestExpense creates an expense record dated today with the given category.
func CreateTestExpense(t *testing.T, db *gorm.DB, ownerID uint, amount float64, category string) *models.Expense {
	t.Helper()

	today := models.Today()
	expense := &models.Expense{
		OwnerID:     ownerID,
		Amount:      &amount,
		Description: fmt.Sprintf("Test Expense %d", nextID()),
		Date:        &today,
		Category:    category,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestInvestment creates an investment record dated today.
func CreateTestInvestment(t *testing.T, db *gorm.DB, ownerID uint, amount float64) *models.Investment {
	t.Helper()

	today := models.Today()
	investment := &models.Investment{
		OwnerID:     ownerID,
		Amount:      &amount,
		Description: fmt.Sprintf("Test Investment %d", nextID()),
		Date:        &today,
	}
	if err := db.Create(investment).Error; err != nil {
		t.Fatalf("failed to create test investment: %v", err)
	}
	return investment
}

// CreateTestBudget creates a monthly budget for the current month.
func CreateTestBudget(t *testing.T, db *gorm.DB, ownerID uint, category string, limit float64) *models.Budget {
	t.Helper()

	today := models.Today()
	budget := &models.Budget{
		OwnerID:     ownerID,
		Category:    category,
		LimitAmount: &limit,
		Period:      models.BudgetPeriodMonthly,
		Month:       int(today.Month),
		Year:        today.Year,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestDebt creates a pending debt between the two users.
func CreateTestDebt(t *testing.T, db *gorm.DB, fromUserID, toUserID uint, amount float64) *models.Debt {
	t.Helper()

	today := models.Today()
	debt := &models.Debt{
		FromUserID:  fromUserID,
		ToUserID:    toUserID,
		Amount:      &amount,
		Description: fmt.Sprintf("Test Debt %d", nextID()),
		Date:        &today,
		Status:      models.DebtStatusPending,
	}
	if err := db.Create(debt).Error; err != nil {
		t.Fatalf("failed to create test debt: %v", err)
	}
	return debt
}

// CreateTestGoal creates an active savings goal.
func CreateTestGoal(t *testing.T, db *gorm.DB, ownerID uint, target, current float64) *models.Goal {
	t.Helper()

	targetDate := models.Today().AddMonths(6)
	goal := &models.Goal{
		OwnerID:       ownerID,
		Name:          fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount:  &target,
		CurrentAmount: &current,
		TargetDate:    &targetDate,
		Status:        models.GoalStatusActive,
		Type:          models.GoalTypeSavings,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}
