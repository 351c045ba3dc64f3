package services

import (
	"testing"

	"moneta/internal/models"
	"moneta/internal/testutil"
)

func TestCreateGoal(t *testing.T) {
	t.Run("valid_with_defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		goal, err := svc.Create(user.ID, "Emergency fund", testutil.Float(10000), nil, nil, "")
		testutil.AssertNoError(t, err)

		if goal.Status != models.GoalStatusActive {
			t.Errorf("expected active status, got %s", goal.Status)
		}
		if goal.Type != models.GoalTypeSavings {
			t.Errorf("expected savings type, got %s", goal.Type)
		}
		expected := models.Today().AddMonths(6)
		if goal.TargetDate == nil || *goal.TargetDate != expected {
			t.Errorf("expected target date %s, got %v", expected, goal.TargetDate)
		}
	})

	t.Run("missing_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Create(user.ID, "", testutil.Float(10000), nil, nil, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateGoal(t *testing.T) {
	t.Run("marks_completed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 1000, 1000)

		status := models.GoalStatusCompleted
		_, err := svc.Update(user.ID, goal.ID, GoalUpdate{Status: &status})
		testutil.AssertNoError(t, err)

		var stored models.Goal
		db.First(&stored, goal.ID)
		if stored.Status != models.GoalStatusCompleted {
			t.Errorf("expected completed, got %s", stored.Status)
		}
	})

	t.Run("non_owner_forbidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, owner.ID, 1000, 0)

		_, err := svc.Update(other.ID, goal.ID, GoalUpdate{CurrentAmount: testutil.Float(1)})
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})

	t.Run("missing_goal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Update(user.ID, 9999, GoalUpdate{})
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})
}

func TestGoalAchievements(t *testing.T) {
	t.Run("counts_and_sums", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestGoal(t, db, user.ID, 1000, 400)
		testutil.CreateTestGoal(t, db, user.ID, 500, 100)
		done := testutil.CreateTestGoal(t, db, user.ID, 200, 200)
		db.Model(done).Update("status", models.GoalStatusCompleted)
		abandoned := testutil.CreateTestGoal(t, db, user.ID, 900, 10)
		db.Model(abandoned).Update("status", models.GoalStatusAbandoned)

		result, err := svc.Achievements(user.ID)
		testutil.AssertNoError(t, err)

		if result.CompletedGoals != 1 {
			t.Errorf("expected 1 completed goal, got %d", result.CompletedGoals)
		}
		if result.ActiveGoals != 2 {
			t.Errorf("expected 2 active goals, got %d", result.ActiveGoals)
		}
		testutil.AssertFloat(t, result.TotalGoalAmount, 1500)
		testutil.AssertFloat(t, result.CurrentProgress, 500)
	})

	t.Run("empty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		result, err := svc.Achievements(user.ID)
		testutil.AssertNoError(t, err)

		if result.CompletedGoals != 0 || result.ActiveGoals != 0 {
			t.Errorf("expected empty achievements, got %+v", result)
		}
	})
}
