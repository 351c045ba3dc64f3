package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/pagination"
)

// goalService handles savings goals.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// Create creates a goal. The target date defaults to six months out and the
// type to savings.
func (s *goalService) Create(ownerID uint, name string, targetAmount, currentAmount *float64, targetDate *models.Date, goalType models.GoalType) (*models.Goal, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if targetDate == nil {
		d := models.Today().AddMonths(6)
		targetDate = &d
	}
	if goalType == "" {
		goalType = models.GoalTypeSavings
	}

	goal := &models.Goal{
		OwnerID:       ownerID,
		Name:          name,
		TargetAmount:  targetAmount,
		CurrentAmount: currentAmount,
		TargetDate:    targetDate,
		Status:        models.GoalStatusActive,
		Type:          goalType,
	}
	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

func (s *goalService) getGoal(userID, goalID uint) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.First(&goal, goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if goal.OwnerID != userID {
		return nil, apperrors.ErrForbidden
	}
	return &goal, nil
}

// Update updates a goal owned by the acting user.
func (s *goalService) Update(userID, goalID uint, upd GoalUpdate) (*models.Goal, error) {
	goal, err := s.getGoal(userID, goalID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if upd.Name != nil {
		updates["name"] = *upd.Name
	}
	if upd.TargetAmount != nil {
		updates["target_amount"] = *upd.TargetAmount
	}
	if upd.CurrentAmount != nil {
		updates["current_amount"] = *upd.CurrentAmount
	}
	if upd.TargetDate != nil {
		updates["target_date"] = *upd.TargetDate
	}
	if upd.Status != nil {
		updates["status"] = *upd.Status
	}
	if upd.Type != nil {
		updates["type"] = *upd.Type
	}

	if len(updates) > 0 {
		if err := s.db.Model(goal).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return goal, nil
}

// Delete deletes a goal owned by the acting user.
func (s *goalService) Delete(userID, goalID uint) error {
	goal, err := s.getGoal(userID, goalID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// List returns a page of the user's goals.
func (s *goalService) List(ownerID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Goal], error) {
	return listRecords[models.Goal](s.db, ownerID, page)
}

// Achievements summarizes the user's completed and active goals.
func (s *goalService) Achievements(ownerID uint) (*GoalAchievements, error) {
	var goals []models.Goal
	if err := s.db.Where("owner_id = ?", ownerID).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := &GoalAchievements{}
	for i := range goals {
		switch goals[i].Status {
		case models.GoalStatusCompleted:
			result.CompletedGoals++
		case models.GoalStatusActive:
			result.ActiveGoals++
			result.TotalGoalAmount += amt(goals[i].TargetAmount)
			result.CurrentProgress += amt(goals[i].CurrentAmount)
		}
	}
	return result, nil
}
