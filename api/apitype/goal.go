package apitype

import "time"

type Goal struct {
	id              GoalId
	monthlySpending float64
	cushion         bool
	cushionAmount   float64
	created         time.Time
}

func NewGoal(id GoalId, monthlySpending float64, cushion bool, cushionAmount float64, created time.Time) *Goal {
	return &Goal{
		id:              id,
		monthlySpending: monthlySpending,
		cushion:         cushion,
		cushionAmount:   cushionAmount,
		created:         created,
	}
}

func (s *Goal) Id() GoalId {
	return s.id
}

func (s *Goal) MonthlySpending() float64 {
	return s.monthlySpending
}

func (s *Goal) HasCushion() bool {
	return s.cushion
}

func (s *Goal) CushionAmount() float64 {
	return s.cushionAmount
}

func (s *Goal) Created() time.Time {
	return s.created
}

// CushionLine is the target plus the cushion. The second value is false when
// the cushion is not enabled.
func (s *Goal) CushionLine() (float64, bool) {
	if !s.cushion {
		return 0, false
	}
	return s.monthlySpending + s.cushionAmount, true
}

// NewGoalRequest is the write shape of a goal.
type NewGoalRequest struct {
	MonthlySpending float64 `json:"monthly_spending" validate:"gt=0"`
	SpendingCushion bool    `json:"spending_cushion"`
	CushionAmount   float64 `json:"cushion_amount" validate:"gte=0"`
}
