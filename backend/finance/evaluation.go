package finance

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
	"vincit.fi/collector/api"
	"vincit.fi/collector/api/apitype"
	"vincit.fi/collector/common/logger"
	"vincit.fi/collector/common/util"
)

const (
	LoadErrorMessage    = "Failed to load financial data. Please try again later."
	SaveErrorMessage    = "An error occurred while saving the goal. Please try again."
	InvalidGoalMessage  = "Monthly spending must be greater than zero"
	InvalidCushionValue = "Cushion amount cannot be negative"
)

var (
	ErrInvalidGoal = errors.New("invalid goal")
	validate       = validator.New()
)

// Line is a horizontal reference line drawn over the monthly spending.
type Line struct {
	Label string
	Value float64
}

// Evaluation is the spending summary of the current user with the most
// recent goal.
type Evaluation struct {
	remote api.FinanceRemote
	sender api.Sender
	userId apitype.UserId
	saving *util.InFlight[apitype.UserId]

	mux       sync.Mutex
	loading   bool
	message   string
	summary   *apitype.FinancialSummary
	goal      *apitype.Goal
	formOpen  bool
	formError string
}

func NewEvaluation(remote api.FinanceRemote, sender api.Sender, userId apitype.UserId) *Evaluation {
	return &Evaluation{
		remote:  remote,
		sender:  sender,
		userId:  userId,
		saving:  util.NewInFlight[apitype.UserId](),
		loading: true,
		summary: &apitype.FinancialSummary{},
	}
}

// Load fetches the summary and the goals concurrently. A failing goal fetch
// only hides the goal lines.
func (s *Evaluation) Load(ctx context.Context) error {
	s.mux.Lock()
	s.loading = true
	s.message = ""
	s.mux.Unlock()

	var summary *apitype.FinancialSummary
	var goals []*apitype.Goal

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		summary, err = s.remote.FetchFinancialSummary(groupCtx)
		return
	})
	group.Go(func() error {
		var err error
		goals, err = s.remote.GetGoals(groupCtx, s.userId)
		if err != nil {
			logger.Warn.Printf("Failed to load goals of %d: %s", s.userId, err)
		}
		return nil
	})
	err := group.Wait()

	s.mux.Lock()
	defer s.mux.Unlock()
	s.loading = false
	if err != nil {
		logger.Error.Printf("Failed to load financial data: %s", err)
		s.message = LoadErrorMessage
		return err
	}
	if summary != nil {
		s.summary = summary
	}
	s.goal = MostRecentGoal(goals)
	return nil
}

// MostRecentGoal returns the goal created last. Of equal timestamps the one
// later in the list wins.
func MostRecentGoal(goals []*apitype.Goal) *apitype.Goal {
	var latest *apitype.Goal
	for _, goal := range goals {
		if latest == nil || !goal.Created().Before(latest.Created()) {
			latest = goal
		}
	}
	return latest
}

// Lines returns the goal line and, when the cushion is enabled, the cushion
// line.
func (s *Evaluation) Lines() []Line {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.goal == nil {
		return []Line{}
	}
	lines := []Line{{
		Label: fmt.Sprintf("Goal: $%.2f", s.goal.MonthlySpending()),
		Value: s.goal.MonthlySpending(),
	}}
	if cushion, ok := s.goal.CushionLine(); ok {
		lines = append(lines, Line{
			Label: fmt.Sprintf("Cushion: $%.2f", cushion),
			Value: cushion,
		})
	}
	return lines
}

func (s *Evaluation) OpenGoalForm() {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.formOpen = true
	s.formError = ""
}

func (s *Evaluation) CloseGoalForm() {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.formOpen = false
	s.formError = ""
}

// SetGoal validates and saves a new goal. The form is closed only after the
// server has confirmed the save; on failure it stays open with the error.
func (s *Evaluation) SetGoal(ctx context.Context, request *apitype.NewGoalRequest) error {
	if message := validateGoal(request); message != "" {
		s.setFormError(message)
		return fmt.Errorf("%w: %s", ErrInvalidGoal, message)
	}
	if !s.saving.TryBegin(s.userId) {
		return util.ErrInFlight
	}
	defer s.saving.End(s.userId)

	saved, err := s.remote.SaveGoal(ctx, s.userId, request)
	if err != nil {
		s.setFormError(SaveErrorMessage)
		s.sender.SendCommandToTopic(api.ShowNotice, &api.NoticeCommand{Message: SaveErrorMessage})
		return err
	}

	s.mux.Lock()
	s.goal = saved
	s.formOpen = false
	s.formError = ""
	s.mux.Unlock()
	return nil
}

// validateGoal returns the message of the first invalid field or "".
func validateGoal(request *apitype.NewGoalRequest) string {
	err := validate.Struct(request)
	if err == nil {
		return ""
	}
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 && fieldErrors[0].StructField() == "CushionAmount" {
		return InvalidCushionValue
	}
	return InvalidGoalMessage
}

func (s *Evaluation) setFormError(message string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.formError = message
}

func (s *Evaluation) IsLoading() bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.loading
}

func (s *Evaluation) Message() string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.message
}

func (s *Evaluation) Summary() apitype.FinancialSummary {
	s.mux.Lock()
	defer s.mux.Unlock()
	summary := *s.summary
	summary.Collections = append([]apitype.CollectionPrice{}, s.summary.Collections...)
	summary.MonthlySpending = append([]apitype.MonthlySpending{}, s.summary.MonthlySpending...)
	return summary
}

// Goal is the most recent goal or nil.
func (s *Evaluation) Goal() *apitype.Goal {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.goal
}

func (s *Evaluation) IsGoalFormOpen() bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.formOpen
}

func (s *Evaluation) GoalFormError() string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.formError
}
