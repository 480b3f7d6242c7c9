package forms

import (
	"context"
	"strconv"
	"strings"

	"vincit.fi/collector/api/apitype"
)

var goalMessages = messages{
	"MonthlySpending.required": "Monthly spending is required",
	"MonthlySpending.numeric":  "Monthly spending must be a number",
	"CushionAmount.numeric":    "Cushion amount must be a number",
}

// GoalSetter saves a new spending goal. GoalFormError explains the latest
// failure.
type GoalSetter interface {
	SetGoal(ctx context.Context, request *apitype.NewGoalRequest) error
	GoalFormError() string
}

// SetGoalForm holds the amounts as typed.
type SetGoalForm struct {
	MonthlySpending string `validate:"required,numeric"`
	Cushion         bool
	CushionAmount   string `validate:"omitempty,numeric"`

	target GoalSetter
	submission
}

func NewSetGoalForm(target GoalSetter) *SetGoalForm {
	return &SetGoalForm{target: target, submission: newSubmission()}
}

func (s *SetGoalForm) Submit(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	s.MonthlySpending = strings.TrimPrefix(strings.TrimSpace(s.MonthlySpending), "$")
	s.CushionAmount = strings.TrimPrefix(strings.TrimSpace(s.CushionAmount), "$")
	if err := check(s, goalMessages); err != nil {
		return s.fail(err, "")
	}

	request := &apitype.NewGoalRequest{SpendingCushion: s.Cushion}
	request.MonthlySpending, _ = strconv.ParseFloat(s.MonthlySpending, 64)
	if s.Cushion && s.CushionAmount != "" {
		request.CushionAmount, _ = strconv.ParseFloat(s.CushionAmount, 64)
	}

	if err := s.target.SetGoal(ctx, request); err != nil {
		return s.fail(err, s.target.GoalFormError())
	}
	return nil
}
