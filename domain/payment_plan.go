package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// DateLayout is the Norwegian date format used for input and display.
const DateLayout = "02.01.2006"

// MaxPeriods bounds the rows of one schedule: a hundred years of weekly
// payments.
const MaxPeriods = 100 * 52

type PlanKind string

const (
	FixedPlan  PlanKind = "annuitet"
	SerialPlan PlanKind = "serie"
)

var ErrUnknownPlanKind = errors.New("unknown payment plan kind")

// ParsePlanKind accepts the Norwegian kind names and "fixed"/"serial".
func ParsePlanKind(s string) (PlanKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "annuitet", "annuity", "fixed", "fast":
		return FixedPlan, nil
	case "serie", "serial":
		return SerialPlan, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPlanKind, s)
}

// PlanParams are the typed inputs of a payment plan.
type PlanParams struct {
	InterestRate float64 // yearly, in percent
	Interval     Interval
	Years        int
	Amount       int64
	StartDate    time.Time
}

// PaymentPlan generates repayment schedules for a loan. It does not change
// after construction.
type PaymentPlan struct {
	params  PlanParams
	periods int
	rate    float64
}

// NewPaymentPlan parses the loan parameters as they are typed in a form:
// "5 %", "Månedlig", "25 år", "800 000 kr", "01.06.2023".
func NewPaymentPlan(interestRate, interval, period, amount, startDate string) (*PaymentPlan, error) {
	rate, err := NewPercentage(interestRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInterestRate, err)
	}
	iv, err := LookupInterval(interval)
	if err != nil {
		return nil, err
	}
	years, err := parseYears(period)
	if err != nil {
		return nil, err
	}
	principal, err := NewMoney(amount)
	if err != nil {
		return nil, err
	}
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}
	return NewPaymentPlanFromParams(PlanParams{
		InterestRate: rate.Decimal().InexactFloat64(),
		Interval:     iv,
		Years:        years,
		Amount:       principal.Kroner(),
		StartDate:    start,
	})
}

func NewPaymentPlanFromParams(p PlanParams) (*PaymentPlan, error) {
	if p.InterestRate < 0 || math.IsNaN(p.InterestRate) || math.IsInf(p.InterestRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterestRate, p.InterestRate)
	}
	if p.Interval.PerYear <= 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInterval, p.Interval.Name)
	}
	if p.Years <= 0 {
		return nil, fmt.Errorf("%w: %d years", ErrInvalidPeriod, p.Years)
	}
	if p.Years > MaxPeriods/p.Interval.PerYear {
		return nil, fmt.Errorf("%w: %d years of %s payments exceeds %d periods",
			ErrInvalidPeriod, p.Years, strings.ToLower(p.Interval.Name), MaxPeriods)
	}
	if p.Amount <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAmount, p.Amount)
	}
	if p.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: missing", ErrInvalidStartDate)
	}
	return &PaymentPlan{
		params:  p,
		periods: p.Interval.PerYear * p.Years,
		rate:    p.InterestRate / float64(p.Interval.PerYear) / 100,
	}, nil
}

// ParseDate reads dd.mm.yyyy, or yyyy-mm-dd.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DateLayout, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q, expected dd.mm.yyyy", ErrInvalidStartDate, s)
}

func parseYears(s string) (int, error) {
	trimmed := strings.TrimSpace(strings.TrimRightFunc(strings.TrimSpace(s), unicode.IsLetter))
	years, err := strconv.Atoi(trimmed)
	if err != nil || years <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return years, nil
}

func (p *PaymentPlan) Params() PlanParams { return p.params }

// Periods is the number of payments, interval times years.
func (p *PaymentPlan) Periods() int { return p.periods }

// PeriodRate is the interest rate of one period as a fraction.
func (p *PaymentPlan) PeriodRate() float64 { return p.rate }

// PeriodList returns the payment dates, preceded by an empty entry for
// period 0, the disbursement.
func (p *PaymentPlan) PeriodList() []string {
	list := make([]string, 0, p.periods+1)
	list = append(list, "")
	for k := 0; k < p.periods; k++ {
		list = append(list, p.params.Interval.Date(p.params.StartDate, k).Format(DateLayout))
	}
	return list
}

// Plan generates the schedule of the given kind.
func (p *PaymentPlan) Plan(kind PlanKind) (Table, error) {
	switch kind {
	case FixedPlan:
		return p.FixedMortgagePlan(), nil
	case SerialPlan:
		return p.SerialMortgagePlan(), nil
	}
	return Table{}, fmt.Errorf("%w: %q", ErrUnknownPlanKind, kind)
}

// FixedMortgagePlan is the annuity schedule: the same payment every period,
// with the interest part shrinking as the balance goes down. Each period's
// payment, interest and principal are rounded to whole kroner on their own.
func (p *PaymentPlan) FixedMortgagePlan() Table {
	payment := annuityPayment(p.rate, p.periods, float64(p.params.Amount))
	return p.build(FixedPlan, func(i int, _ int64) (int64, int64, int64) {
		interest := p.interestPortion(i, payment)
		return roundKroner(payment), roundKroner(interest), roundKroner(payment - interest)
	})
}

// SerialMortgagePlan is the serial schedule: the same principal every
// period, interest on the balance left after the previous period.
func (p *PaymentPlan) SerialMortgagePlan() Table {
	principal := roundKroner(float64(p.params.Amount) / float64(p.periods))
	return p.build(SerialPlan, func(_ int, previous int64) (int64, int64, int64) {
		interest := roundKroner(float64(previous) * p.rate)
		return interest + principal, interest, principal
	})
}

// build lays out rows 0..N. step gets the period index and the balance
// after the previous period and returns payment, interest and principal.
func (p *PaymentPlan) build(kind PlanKind, step func(i int, previous int64) (int64, int64, int64)) Table {
	rows := make([]Row, p.periods+1)
	rows[0] = Row{Remaining: p.params.Amount}
	for i := 1; i <= p.periods; i++ {
		prev := rows[i-1]
		payment, interest, principal := step(i, prev.Remaining)
		row := Row{
			Period:         i,
			Date:           p.params.Interval.Date(p.params.StartDate, i-1),
			Payment:        payment,
			Interest:       interest,
			Principal:      principal,
			TotalPayment:   prev.TotalPayment + payment,
			TotalInterest:  prev.TotalInterest + interest,
			TotalPrincipal: prev.TotalPrincipal + principal,
		}
		row.Remaining = p.params.Amount - row.TotalPrincipal
		rows[i] = row
	}
	return Table{Kind: kind, Rows: rows}
}

// interestPortion is the interest part of the i-th fixed payment: the
// balance left after i-1 payments times the period rate.
func (p *PaymentPlan) interestPortion(i int, payment float64) float64 {
	if p.rate == 0 {
		return 0
	}
	growth := math.Pow(1+p.rate, float64(i-1))
	balance := float64(p.params.Amount)*growth - payment*(growth-1)/p.rate
	return balance * p.rate
}

func annuityPayment(rate float64, periods int, principal float64) float64 {
	if rate == 0 {
		return principal / float64(periods)
	}
	return principal * rate / (1 - math.Pow(1+rate, -float64(periods)))
}

// roundKroner rounds half away from zero.
func roundKroner(v float64) int64 {
	return int64(math.Round(v))
}
