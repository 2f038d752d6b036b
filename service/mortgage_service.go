package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dario.cat/mergo"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"mortgage-planner/domain"
	"mortgage-planner/logging"
	"mortgage-planner/repository"
)

type MortgageService struct {
	repo   repository.PlanRepository
	cache  repository.CacheRepository
	logger *logging.Logger
	now    func() time.Time
}

// NewMortgageService creates a new MortgageService with the given repository and cache.
func NewMortgageService(
	repo repository.PlanRepository,
	cache repository.CacheRepository,
	logger *logging.Logger,
) *MortgageService {
	return &MortgageService{
		repo:   repo,
		cache:  cache,
		logger: logger.WithComponent(logging.ComponentMortgage),
		now:    time.Now,
	}
}

// NewPlan parses req into a PaymentPlan and enforces the service limits.
func (s *MortgageService) NewPlan(req domain.PlanRequest) (*domain.PaymentPlan, error) {
	plan, err := domain.NewPaymentPlan(req.InterestRate, req.Interval, req.Period, req.Amount, req.StartDate)
	if err != nil {
		return nil, err
	}
	if err := checkLimits(plan.Params()); err != nil {
		return nil, err
	}
	return plan, nil
}

func checkLimits(p domain.PlanParams) error {
	if p.Amount > MaxLoanAmount {
		return fmt.Errorf("amount exceeds the maximum of %s", domain.MoneyFromInt(MaxLoanAmount).Value())
	}
	if p.InterestRate > MaxInterestRate {
		return fmt.Errorf("interest rate exceeds the maximum of %.2f %%", MaxInterestRate)
	}
	if p.Years > MaxPeriodYears {
		return fmt.Errorf("period exceeds the maximum of %d years", MaxPeriodYears)
	}
	return nil
}

// defaultPlanRequest fills the fields a form may leave empty.
var defaultPlanRequest = domain.PlanRequest{
	Interval: "Månedlig",
	Kind:     string(domain.FixedPlan),
}

func withDefaults(req domain.PlanRequest) (domain.PlanRequest, error) {
	if err := mergo.Merge(&req, defaultPlanRequest); err != nil {
		return req, fmt.Errorf("apply request defaults: %w", err)
	}
	return req, nil
}

func planKind(s string) (domain.PlanKind, error) {
	if strings.TrimSpace(s) == "" {
		return domain.FixedPlan, nil
	}
	return domain.ParsePlanKind(s)
}

// CalculatePlan generates the repayment schedule for req. Results are cached
// by their parameters and stored; neither failing stops the calculation.
func (s *MortgageService) CalculatePlan(
	ctx context.Context,
	req domain.PlanRequest,
) (domain.PlanResult, error) {
	req, err := withDefaults(req)
	if err != nil {
		return domain.PlanResult{}, err
	}
	kind, err := planKind(req.Kind)
	if err != nil {
		return domain.PlanResult{}, err
	}
	plan, err := s.NewPlan(req)
	if err != nil {
		return domain.PlanResult{}, err
	}

	key := cacheKey(kind, plan.Params())
	if cached, ok := s.cache.Get(ctx, key); ok {
		var result domain.PlanResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			s.logger.DebugContext(ctx, "plan served from cache", logging.FieldPlanID, result.ID)
			return result, nil
		}
		s.logger.WarnContext(ctx, "discarding unreadable cache entry", "key", key)
	}

	table, err := plan.Plan(kind)
	if err != nil {
		return domain.PlanResult{}, err
	}
	summary := table.Summary()
	req.Kind = string(kind)
	result := domain.PlanResult{
		ID:            uuid.NewString(),
		Request:       req,
		Summary:       summary,
		InterestShare: summary.InterestShare().Value(),
		Rows:          table.Display(),
		CreatedAt:     s.now().UTC(),
	}

	// Caching and saving are best effort.
	if raw, err := json.Marshal(result); err != nil {
		s.logger.WarnContext(ctx, "failed to encode plan for cache", logging.FieldError, err)
	} else if err := s.cache.Set(ctx, key, string(raw)); err != nil {
		s.logger.WarnContext(ctx, "failed to cache plan", logging.FieldPlanID, result.ID, logging.FieldError, err)
	}
	if err := s.repo.Save(ctx, result); err != nil {
		s.logger.WarnContext(ctx, "failed to save plan", logging.FieldPlanID, result.ID, logging.FieldError, err)
	}

	s.logger.InfoContext(ctx, "plan calculated",
		logging.FieldPlanID, result.ID,
		logging.FieldPlanKind, kind,
		"periods", summary.Periods)
	return result, nil
}

// FindPlan returns a previously calculated plan.
func (s *MortgageService) FindPlan(ctx context.Context, id string) (domain.PlanResult, error) {
	result, err := s.repo.FindByID(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrPlanNotFound) {
		s.logger.ErrorContext(ctx, "failed to load plan", logging.FieldPlanID, id, logging.FieldError, err)
		return domain.PlanResult{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return result, err
}

// ComparePlans computes the fixed and the serial schedule of the same loan.
func (s *MortgageService) ComparePlans(
	ctx context.Context,
	req domain.PlanRequest,
) (domain.PlanComparison, error) {
	req, err := withDefaults(req)
	if err != nil {
		return domain.PlanComparison{}, err
	}
	plan, err := s.NewPlan(req)
	if err != nil {
		return domain.PlanComparison{}, err
	}

	var fixed, serial domain.Summary
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		fixed = plan.FixedMortgagePlan().Summary()
		return nil
	})
	g.Go(func() error {
		serial = plan.SerialMortgagePlan().Summary()
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.PlanComparison{}, err
	}

	return domain.PlanComparison{
		Fixed:         fixed,
		Serial:        serial,
		InterestSaved: domain.MoneyFromInt(fixed.TotalInterest - serial.TotalInterest).Value(),
	}, nil
}

func cacheKey(kind domain.PlanKind, p domain.PlanParams) string {
	return fmt.Sprintf("%s%s:%g:%d:%d:%d:%s",
		cacheKeyPrefix, kind, p.InterestRate, p.Interval.PerYear, p.Years, p.Amount,
		p.StartDate.Format(time.DateOnly))
}

