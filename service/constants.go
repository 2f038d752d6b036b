package service

const (
	MaxLoanAmount   = 1_000_000_000 // 1 milliard kroner
	MaxInterestRate = 100.0         // 100 % per year
	MaxPeriodYears  = 50

	// Limits for the period recommendation
	MaxPeriodRangeYears = 40 // widest range of periods evaluated in one request
	MaxHouseholdMembers = 20

	cacheKeyPrefix = "plan:"
)
