package remote

import (
	"context"
	"fmt"
	"net/http"

	"vincit.fi/collector/api/apitype"
)

func (s *Client) FetchFinancialSummary(ctx context.Context) (*apitype.FinancialSummary, error) {
	var raw rawFinancialSummary
	if err := s.get(ctx, "fetch financial data", "financial-data/", nil, &raw); err != nil {
		return nil, err
	}
	return toApiSummary(&raw), nil
}

func (s *Client) GetGoals(ctx context.Context, userId apitype.UserId) ([]*apitype.Goal, error) {
	var raw []rawGoal
	if err := s.get(ctx, "get goals", fmt.Sprintf("profiles/%d/goals/", userId), nil, &raw); err != nil {
		return nil, err
	}
	goals := make([]*apitype.Goal, 0, len(raw))
	for i := range raw {
		goals = append(goals, toApiGoal(&raw[i]))
	}
	return goals, nil
}

func (s *Client) SaveGoal(ctx context.Context, userId apitype.UserId, goal *apitype.NewGoalRequest) (*apitype.Goal, error) {
	body, err := jsonBody(goal)
	if err != nil {
		return nil, err
	}
	var raw rawGoal
	if err := s.send(ctx, "save goal", http.MethodPost, fmt.Sprintf("profiles/%d/goals/", userId), body, &raw); err != nil {
		return nil, err
	}
	return toApiGoal(&raw), nil
}
