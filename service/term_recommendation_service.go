package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"
	"strconv"

	"dario.cat/mergo"
	"golang.org/x/sync/errgroup"

	"mortgage-planner/domain"
	"mortgage-planner/logging"
)

type TermRecommendationService struct {
	logger *logging.Logger
}

func NewTermRecommendationService(logger *logging.Logger) *TermRecommendationService {
	return &TermRecommendationService{
		logger: logger.WithComponent(logging.ComponentMortgage),
	}
}

var defaultRecommendationInput = domain.TermRecommendationInput{
	Interval:   "Månedlig",
	Preference: "balanced",
}

var preferences = map[string]bool{
	"minimize_interest": true,
	"minimize_payment":  true,
	"balanced":          true,
}

// RecommendPeriod evaluates every loan period from MinYears to MaxYears as a
// fixed plan and ranks the periods whose payment fits MaxPayment.
func (s *TermRecommendationService) RecommendPeriod(
	ctx context.Context,
	input domain.TermRecommendationInput,
) (domain.TermRecommendationResult, error) {
	if err := mergo.Merge(&input, defaultRecommendationInput); err != nil {
		return domain.TermRecommendationResult{}, fmt.Errorf("apply request defaults: %w", err)
	}

	if input.MinYears <= 0 || input.MaxYears <= 0 {
		return domain.TermRecommendationResult{}, errors.New("invalid periods")
	}
	if input.MinYears > input.MaxYears {
		return domain.TermRecommendationResult{}, errors.New("minimum period is longer than maximum period")
	}
	if input.MaxYears > MaxPeriodYears {
		return domain.TermRecommendationResult{}, fmt.Errorf("maximum period exceeds the limit of %d years", MaxPeriodYears)
	}
	if input.MaxYears-input.MinYears > MaxPeriodRangeYears {
		return domain.TermRecommendationResult{}, fmt.Errorf("period range exceeds the maximum of %d years", MaxPeriodRangeYears)
	}
	if input.MaxPayment <= 0 {
		return domain.TermRecommendationResult{}, errors.New("invalid maximum payment")
	}
	if !preferences[input.Preference] {
		return domain.TermRecommendationResult{}, errors.New("invalid preference")
	}

	base, err := domain.NewPaymentPlan(input.InterestRate, input.Interval,
		strconv.Itoa(input.MinYears), input.Amount, input.StartDate)
	if err != nil {
		return domain.TermRecommendationResult{}, err
	}
	if err := checkLimits(base.Params()); err != nil {
		return domain.TermRecommendationResult{}, err
	}

	candidates := make([]*domain.TermRecommendation, input.MaxYears-input.MinYears+1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range candidates {
		years := input.MinYears + i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			params := base.Params()
			params.Years = years
			plan, err := domain.NewPaymentPlanFromParams(params)
			if err != nil {
				s.logger.WarnContext(ctx, "skipping period", "years", years, logging.FieldError, err)
				return nil
			}
			summary := plan.FixedMortgagePlan().Summary()
			rec := domain.NewTermRecommendation(years, summary.FirstPayment, summary.TotalInterest)
			candidates[i] = &rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.TermRecommendationResult{}, err
	}

	recommendations := []domain.TermRecommendation{}
	for _, c := range candidates {
		// Filtered by the maximum payment
		if c == nil || c.PaymentKroner() > input.MaxPayment {
			continue
		}
		recommendations = append(recommendations, *c)
	}
	if len(recommendations) == 0 {
		return domain.TermRecommendationResult{}, errors.New("no period gives a payment within the specified maximum")
	}

	bounds := boundsOf(recommendations)
	for i := range recommendations {
		recommendations[i].Score = calculateScore(recommendations[i], input, bounds)
		recommendations[i].Reason = generateReason(input.Preference)
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		if recommendations[i].Score != recommendations[j].Score {
			return recommendations[i].Score > recommendations[j].Score
		}
		return recommendations[i].Years < recommendations[j].Years
	})

	top := &recommendations[0]
	top.Reason = explain(*top, input.Preference)

	return domain.TermRecommendationResult{
		RecommendedYears: top.Years,
		Recommendations:  recommendations,
	}, nil
}

type scoreBounds struct {
	minInterest, maxInterest int64
	minPayment, maxPayment   int64
	minYears, maxYears       int
}

func boundsOf(recs []domain.TermRecommendation) scoreBounds {
	b := scoreBounds{
		minInterest: math.MaxInt64, minPayment: math.MaxInt64, minYears: math.MaxInt,
	}
	for _, r := range recs {
		b.minInterest = min(b.minInterest, r.TotalInterestKroner())
		b.maxInterest = max(b.maxInterest, r.TotalInterestKroner())
		b.minPayment = min(b.minPayment, r.PaymentKroner())
		b.maxPayment = max(b.maxPayment, r.PaymentKroner())
		b.minYears = min(b.minYears, r.Years)
		b.maxYears = max(b.maxYears, r.Years)
	}
	return b
}

// normalized maps v within [lo, hi] to 10 (at lo) down to 0 (at hi).
func normalized(v, lo, hi float64) float64 {
	if hi <= lo {
		return 10
	}
	return 10 * (1 - (v-lo)/(hi-lo))
}

func calculateScore(
	rec domain.TermRecommendation,
	input domain.TermRecommendationInput,
	b scoreBounds,
) float64 {
	// Scores on a 0-10 scale
	interestScore := normalized(float64(rec.TotalInterestKroner()), float64(b.minInterest), float64(b.maxInterest))
	paymentScore := normalized(float64(rec.PaymentKroner()), float64(b.minPayment), float64(b.maxPayment))
	periodScore := normalized(float64(rec.Years), float64(b.minYears), float64(b.maxYears))

	var score float64
	switch input.Preference {
	case "minimize_interest":
		score = 0.6*interestScore + 0.2*paymentScore + 0.2*periodScore
	case "minimize_payment":
		score = 0.2*interestScore + 0.6*paymentScore + 0.2*periodScore
	case "balanced":
		score = 0.4*interestScore + 0.4*paymentScore + 0.2*periodScore
	}
	return math.Round(score*100) / 100
}

func generateReason(preference string) string {
	switch preference {
	case "minimize_interest":
		return "Period chosen to keep the total interest cost low"
	case "minimize_payment":
		return "Period chosen to keep the periodic payment low"
	case "balanced":
		return "Balance between periodic payment and total cost"
	}
	return "Recommendation based on the given parameters"
}

func explain(rec domain.TermRecommendation, preference string) string {
	return fmt.Sprintf("%s: over %d years you pay %s per period and %s in interest in total",
		generateReason(preference), rec.Years, rec.Payment, rec.TotalInterest)
}
