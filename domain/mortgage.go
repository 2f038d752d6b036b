package domain

import "time"

// PlanRequest carries the loan parameters as typed into the mortgage form.
type PlanRequest struct {
	InterestRate string `json:"interest_rate"`
	Interval     string `json:"interval"`
	Period       string `json:"period"`
	Amount       string `json:"amount"`
	StartDate    string `json:"start_date"`
	Kind         string `json:"kind"`
}

type PlanResult struct {
	ID            string       `json:"id"`
	Request       PlanRequest  `json:"request"`
	Summary       Summary      `json:"summary"`
	InterestShare string       `json:"interest_share"`
	Rows          []DisplayRow `json:"rows"`
	CreatedAt     time.Time    `json:"created_at"`
}

// PlanComparison sets the two repayment kinds side by side for one loan.
type PlanComparison struct {
	Fixed         Summary `json:"fixed"`
	Serial        Summary `json:"serial"`
	InterestSaved string  `json:"interest_saved"`
}
