package domain

import "errors"

// Validation errors. They are wrapped with the offending input before they
// leave the package, so compare with errors.Is.
var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidCurrency     = errors.New("invalid currency")
	ErrInvalidPercent      = errors.New("invalid percent")
	ErrInvalidPercentage   = errors.New("invalid percentage")
	ErrInvalidSex          = errors.New("invalid sex")
	ErrInvalidFlag         = errors.New("invalid flag, expected \"0\" or \"1\"")
	ErrNegativeAge         = errors.New("age cannot be negative")
	ErrNegativeIncome      = errors.New("income cannot be negative")
	ErrNegativeCars        = errors.New("number of cars cannot be negative")
	ErrInvalidMember       = errors.New("family member must be a male or a female")
	ErrUnknownInterval     = errors.New("unknown payment interval")
	ErrInvalidInterestRate = errors.New("invalid interest rate")
	ErrInvalidPeriod       = errors.New("invalid loan period")
	ErrInvalidStartDate    = errors.New("invalid start date")
)

// ErrPregnancyNotPossible is a domain rule violation rather than malformed input.
var ErrPregnancyNotPossible = errors.New("pregnancy at this age is not possible")
