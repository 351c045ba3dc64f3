package services

import (
	"testing"

	"moneta/internal/models"
	"moneta/internal/testutil"
)

func TestCreateDebt(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		debtor := testutil.CreateTestUser(t, db)
		creditor := testutil.CreateTestUser(t, db)

		debt, err := svc.Create(debtor.ID, creditor.ID, testutil.Float(25), "Lunch", nil, nil)
		testutil.AssertNoError(t, err)

		if debt.Status != models.DebtStatusPending {
			t.Errorf("expected pending status, got %s", debt.Status)
		}
		if debt.Date == nil {
			t.Error("expected a defaulted date")
		}
	})

	t.Run("missing_creditor", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		debtor := testutil.CreateTestUser(t, db)

		_, err := svc.Create(debtor.ID, 0, testutil.Float(25), "Lunch", nil, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListPendingDebts(t *testing.T) {
	t.Run("includes_both_directions_excludes_settled", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		a := testutil.CreateTestUser(t, db)
		b := testutil.CreateTestUser(t, db)
		c := testutil.CreateTestUser(t, db)

		testutil.CreateTestDebt(t, db, a.ID, b.ID, 10)
		testutil.CreateTestDebt(t, db, b.ID, a.ID, 20)
		settled := testutil.CreateTestDebt(t, db, a.ID, b.ID, 30)
		db.Model(settled).Update("status", models.DebtStatusSettled)
		testutil.CreateTestDebt(t, db, b.ID, c.ID, 40) // a not involved

		debts, err := svc.ListPending(a.ID)
		testutil.AssertNoError(t, err)

		if len(debts) != 2 {
			t.Errorf("expected 2 pending debts, got %d", len(debts))
		}
	})
}

func TestSettleDebt(t *testing.T) {
	t.Run("debtor_settles", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		debtor := testutil.CreateTestUser(t, db)
		creditor := testutil.CreateTestUser(t, db)
		debt := testutil.CreateTestDebt(t, db, debtor.ID, creditor.ID, 25)

		settled, err := svc.Settle(debtor.ID, debt.ID)
		testutil.AssertNoError(t, err)
		if settled.Status != models.DebtStatusSettled {
			t.Errorf("expected settled, got %s", settled.Status)
		}
	})

	t.Run("creditor_settles", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		debtor := testutil.CreateTestUser(t, db)
		creditor := testutil.CreateTestUser(t, db)
		debt := testutil.CreateTestDebt(t, db, debtor.ID, creditor.ID, 25)

		_, err := svc.Settle(creditor.ID, debt.ID)
		testutil.AssertNoError(t, err)
	})

	t.Run("outsider_forbidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		debtor := testutil.CreateTestUser(t, db)
		creditor := testutil.CreateTestUser(t, db)
		outsider := testutil.CreateTestUser(t, db)
		debt := testutil.CreateTestDebt(t, db, debtor.ID, creditor.ID, 25)

		_, err := svc.Settle(outsider.ID, debt.ID)
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})

	t.Run("settle_is_idempotent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		debtor := testutil.CreateTestUser(t, db)
		creditor := testutil.CreateTestUser(t, db)
		debt := testutil.CreateTestDebt(t, db, debtor.ID, creditor.ID, 25)

		_, err := svc.Settle(debtor.ID, debt.ID)
		testutil.AssertNoError(t, err)
		again, err := svc.Settle(debtor.ID, debt.ID)
		testutil.AssertNoError(t, err)
		if again.Status != models.DebtStatusSettled {
			t.Errorf("expected settled, got %s", again.Status)
		}
	})

	t.Run("missing_debt", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Settle(user.ID, 9999)
		testutil.AssertAppError(t, err, "DEBT_NOT_FOUND")
	})
}

func TestDebtSummary(t *testing.T) {
	t.Run("nets_per_counterparty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		a := testutil.CreateTestUser(t, db)
		b := testutil.CreateTestUser(t, db)
		c := testutil.CreateTestUser(t, db)

		testutil.CreateTestDebt(t, db, a.ID, b.ID, 50) // a owes b
		testutil.CreateTestDebt(t, db, a.ID, b.ID, 25) // a owes b again
		testutil.CreateTestDebt(t, db, c.ID, a.ID, 30) // c owes a

		summary, err := svc.Summary(a.ID)
		testutil.AssertNoError(t, err)

		testutil.AssertFloat(t, summary.TotalOwed, 75)
		testutil.AssertFloat(t, summary.TotalOwedToYou, 30)
		testutil.AssertFloat(t, summary.NetBalance, -45)
		testutil.AssertFloat(t, summary.OwedByPerson[b.ID], 75)
		testutil.AssertFloat(t, summary.OwedToPerson[c.ID], 30)
	})

	t.Run("per_person_sums_match_totals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		a := testutil.CreateTestUser(t, db)
		b := testutil.CreateTestUser(t, db)
		c := testutil.CreateTestUser(t, db)

		testutil.CreateTestDebt(t, db, a.ID, b.ID, 10)
		testutil.CreateTestDebt(t, db, a.ID, c.ID, 20)
		testutil.CreateTestDebt(t, db, b.ID, a.ID, 5)
		testutil.CreateTestDebt(t, db, c.ID, a.ID, 15)

		summary, err := svc.Summary(a.ID)
		testutil.AssertNoError(t, err)

		var owedBy, owedTo float64
		for _, v := range summary.OwedByPerson {
			owedBy += v
		}
		for _, v := range summary.OwedToPerson {
			owedTo += v
		}
		testutil.AssertFloat(t, owedBy, summary.TotalOwed)
		testutil.AssertFloat(t, owedTo, summary.TotalOwedToYou)
		testutil.AssertFloat(t, summary.NetBalance, summary.TotalOwedToYou-summary.TotalOwed)
	})

	t.Run("settled_debts_excluded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		a := testutil.CreateTestUser(t, db)
		b := testutil.CreateTestUser(t, db)

		debt := testutil.CreateTestDebt(t, db, a.ID, b.ID, 50)
		db.Model(debt).Update("status", models.DebtStatusSettled)

		summary, err := svc.Summary(a.ID)
		testutil.AssertNoError(t, err)

		testutil.AssertFloat(t, summary.TotalOwed, 0)
		testutil.AssertFloat(t, summary.NetBalance, 0)
	})
}

func TestDeleteDebt(t *testing.T) {
	t.Run("party_deletes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		debtor := testutil.CreateTestUser(t, db)
		creditor := testutil.CreateTestUser(t, db)
		debt := testutil.CreateTestDebt(t, db, debtor.ID, creditor.ID, 25)

		testutil.AssertNoError(t, svc.Delete(creditor.ID, debt.ID))

		var count int64
		db.Model(&models.Debt{}).Where("id = ?", debt.ID).Count(&count)
		if count != 0 {
			t.Error("expected debt to be deleted")
		}
	})

	t.Run("outsider_forbidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		debtor := testutil.CreateTestUser(t, db)
		creditor := testutil.CreateTestUser(t, db)
		outsider := testutil.CreateTestUser(t, db)
		debt := testutil.CreateTestDebt(t, db, debtor.ID, creditor.ID, 25)

		err := svc.Delete(outsider.ID, debt.ID)
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})
}
