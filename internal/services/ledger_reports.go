package services

import (
	"iter"
	"math"
	"strconv"
	"strings"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
)

// fetchAll loads the complete record set for one owner, in insertion order.
func (s *ledgerService) fetchAll(ownerID uint) ([]models.Income, []models.Expense, []models.Investment, error) {
	var incomes []models.Income
	if err := s.db.Where("owner_id = ?", ownerID).Order("id").Find(&incomes).Error; err != nil {
		return nil, nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	var expenses []models.Expense
	if err := s.db.Where("owner_id = ?", ownerID).Order("id").Find(&expenses).Error; err != nil {
		return nil, nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	var investments []models.Investment
	if err := s.db.Where("owner_id = ?", ownerID).Order("id").Find(&investments).Error; err != nil {
		return nil, nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return incomes, expenses, investments, nil
}

// Summary computes the derived totals over a user's records. Total income is
// the profile monthly income, plus each member's monthly income for group
// owners, plus the one-off income records.
func (s *ledgerService) Summary(user *models.User) (*SummaryReport, error) {
	incomes, expenses, investments, err := s.fetchAll(user.ID)
	if err != nil {
		return nil, err
	}

	members, err := s.users.Members(user.ID)
	if err != nil {
		return nil, err
	}

	totalIncome := amt(user.MonthlyIncome)
	for i := range members {
		totalIncome += amt(members[i].MonthlyIncome)
	}
	for i := range incomes {
		totalIncome += amt(incomes[i].Amount)
	}

	var totalExpense float64
	for i := range expenses {
		totalExpense += amt(expenses[i].Amount)
	}

	var totalInvestment float64
	for i := range investments {
		totalInvestment += amt(investments[i].Amount)
	}

	return &SummaryReport{
		Incomes:         incomes,
		Expenses:        expenses,
		Investments:     investments,
		TotalIncome:     totalIncome,
		TotalExpense:    totalExpense,
		TotalInvestment: totalInvestment,
		Net:             totalIncome - totalExpense - totalInvestment,
	}, nil
}

// CategoryBreakdown sums expenses per category. A blank category counts
// toward "Other".
func (s *ledgerService) CategoryBreakdown(ownerID uint) (map[string]float64, error) {
	var expenses []models.Expense
	if err := s.db.Where("owner_id = ?", ownerID).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	breakdown := make(map[string]float64)
	for i := range expenses {
		category := expenses[i].Category
		if category == "" {
			category = models.DefaultCategory
		}
		breakdown[category] += amt(expenses[i].Amount)
	}
	return breakdown, nil
}

// DailySpending sums expenses per calendar date. Records without a date are
// excluded.
func (s *ledgerService) DailySpending(ownerID uint) (map[string]float64, error) {
	var expenses []models.Expense
	if err := s.db.Where("owner_id = ?", ownerID).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	daily := make(map[string]float64)
	for i := range expenses {
		if expenses[i].Date == nil {
			continue
		}
		daily[expenses[i].Date.String()] += amt(expenses[i].Amount)
	}
	return daily, nil
}

// ExportCSV returns the user's records as a lazy, restartable sequence of
// CSV rows: the header, then incomes, expenses, and investments in fetch
// order. Income and investment rows leave the category field empty.
func (s *ledgerService) ExportCSV(ownerID uint) (iter.Seq[string], error) {
	incomes, expenses, investments, err := s.fetchAll(ownerID)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		if !yield("Type,Date,Description,Amount,Category") {
			return
		}
		for i := range incomes {
			row := csvRow("Income", incomes[i].Date, incomes[i].Description, incomes[i].Amount, "")
			if !yield(row) {
				return
			}
		}
		for i := range expenses {
			category := expenses[i].Category
			if category == "" {
				category = models.DefaultCategory
			}
			row := csvRow("Expense", expenses[i].Date, expenses[i].Description, expenses[i].Amount, category)
			if !yield(row) {
				return
			}
		}
		for i := range investments {
			row := csvRow("Investment", investments[i].Date, investments[i].Description, investments[i].Amount, "")
			if !yield(row) {
				return
			}
		}
	}, nil
}

// csvRow formats one export row. The description is always quoted, with
// embedded quotes doubled; the other fields are emitted bare.
func csvRow(recordType string, date *models.Date, description string, amount *float64, category string) string {
	var b strings.Builder
	b.WriteString(recordType)
	b.WriteByte(',')
	if date != nil {
		b.WriteString(date.String())
	}
	b.WriteString(`,"`)
	b.WriteString(strings.ReplaceAll(description, `"`, `""`))
	b.WriteString(`",`)
	b.WriteString(strconv.FormatFloat(amt(amount), 'f', -1, 64))
	b.WriteByte(',')
	b.WriteString(category)
	return b.String()
}

// HealthScore derives the composite financial health score from the user's
// summary totals.
func (s *ledgerService) HealthScore(user *models.User) (*HealthReport, error) {
	summary, err := s.Summary(user)
	if err != nil {
		return nil, err
	}
	return computeHealthScore(summary.TotalIncome, summary.TotalExpense, summary.TotalInvestment), nil
}

// computeHealthScore combines savings rate, investment rate, and inverted
// expense ratio into a single score clamped to [0,100]. With no income the
// expense ratio pins to the worst case of 100.
func computeHealthScore(totalIncome, totalExpense, totalInvestment float64) *HealthReport {
	var savingsRate, investmentRate float64
	expenseRatio := 100.0
	if totalIncome > 0 {
		savingsRate = (totalIncome - totalExpense) / totalIncome * 100
		investmentRate = totalInvestment / totalIncome * 100
		expenseRatio = totalExpense / totalIncome * 100
	}

	score := savingsRate*0.4 + investmentRate*0.3 + math.Max(0, 100-expenseRatio)*0.3
	score = math.Min(100, math.Max(0, score))

	var rating string
	switch {
	case score >= 80:
		rating = "Excellent"
	case score >= 60:
		rating = "Good"
	case score >= 40:
		rating = "Fair"
	default:
		rating = "Needs Improvement"
	}

	return &HealthReport{
		Score:           round1(score),
		Rating:          rating,
		SavingsRate:     round1(savingsRate),
		InvestmentRate:  round1(investmentRate),
		ExpenseRatio:    round1(expenseRatio),
		TotalIncome:     totalIncome,
		TotalExpense:    totalExpense,
		TotalInvestment: totalInvestment,
	}
}

// round1 rounds to one decimal place on the scaled value.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
