package domain

type TermRecommendationInput struct {
	Amount       string `json:"amount"`
	InterestRate string `json:"interest_rate"`
	Interval     string `json:"interval"`
	StartDate    string `json:"start_date"`
	MinYears     int    `json:"min_years"`
	MaxYears     int    `json:"max_years"`
	MaxPayment   int64  `json:"max_payment"`
	Preference   string `json:"preference"` // "minimize_interest", "minimize_payment", "balanced"
}

type TermRecommendation struct {
	Years         int     `json:"years"`
	Payment       string  `json:"payment"`
	TotalInterest string  `json:"total_interest"`
	Score         float64 `json:"score"`
	Reason        string  `json:"reason"`

	payment       int64
	totalInterest int64
}

func NewTermRecommendation(years int, payment, totalInterest int64) TermRecommendation {
	return TermRecommendation{
		Years:         years,
		Payment:       MoneyFromInt(payment).Value(),
		TotalInterest: MoneyFromInt(totalInterest).Value(),
		payment:       payment,
		totalInterest: totalInterest,
	}
}

func (r TermRecommendation) PaymentKroner() int64       { return r.payment }
func (r TermRecommendation) TotalInterestKroner() int64 { return r.totalInterest }

type TermRecommendationResult struct {
	RecommendedYears int                  `json:"recommended_years"`
	Recommendations  []TermRecommendation `json:"recommendations"`
}
