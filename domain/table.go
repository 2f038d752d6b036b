package domain

import (
	"strconv"
	"time"
)

// Row is one period of a repayment schedule, in whole kroner. Row 0 is the
// disbursement: no date and nothing paid.
type Row struct {
	Period         int
	Date           time.Time
	Payment        int64
	Interest       int64
	Principal      int64
	TotalPayment   int64
	TotalInterest  int64
	TotalPrincipal int64
	Remaining      int64
}

type Table struct {
	Kind PlanKind
	Rows []Row
}

// Columns are the display column names, in order.
var Columns = []string{
	"Dato", "Termin", "T.beløp", "Renter", "Avdrag",
	"T.beløp.total", "Renter.total", "Avdrag.total", "Restgjeld",
}

// DisplayRow is a Row as shown to users, money formatted as "4 677 kr".
type DisplayRow struct {
	Date           string `json:"Dato"`
	Period         int    `json:"Termin"`
	Payment        string `json:"T.beløp"`
	Interest       string `json:"Renter"`
	Principal      string `json:"Avdrag"`
	TotalPayment   string `json:"T.beløp.total"`
	TotalInterest  string `json:"Renter.total"`
	TotalPrincipal string `json:"Avdrag.total"`
	Remaining      string `json:"Restgjeld"`
}

func (r Row) Display() DisplayRow {
	var date string
	if !r.Date.IsZero() {
		date = r.Date.Format(DateLayout)
	}
	return DisplayRow{
		Date:           date,
		Period:         r.Period,
		Payment:        MoneyFromInt(r.Payment).Value(),
		Interest:       MoneyFromInt(r.Interest).Value(),
		Principal:      MoneyFromInt(r.Principal).Value(),
		TotalPayment:   MoneyFromInt(r.TotalPayment).Value(),
		TotalInterest:  MoneyFromInt(r.TotalInterest).Value(),
		TotalPrincipal: MoneyFromInt(r.TotalPrincipal).Value(),
		Remaining:      MoneyFromInt(r.Remaining).Value(),
	}
}

// Record is the row as strings in Columns order.
func (d DisplayRow) Record() []string {
	return []string{
		d.Date, strconv.Itoa(d.Period), d.Payment, d.Interest, d.Principal,
		d.TotalPayment, d.TotalInterest, d.TotalPrincipal, d.Remaining,
	}
}

func (t Table) Display() []DisplayRow {
	out := make([]DisplayRow, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Display()
	}
	return out
}

// Summary condenses a schedule to the figures shown above the table.
type Summary struct {
	Kind          PlanKind `json:"kind"`
	Periods       int      `json:"periods"`
	FirstPayment  int64    `json:"first_payment"`
	LastPayment   int64    `json:"last_payment"`
	TotalPaid     int64    `json:"total_paid"`
	TotalInterest int64    `json:"total_interest"`
	Remaining     int64    `json:"remaining"`
}

func (t Table) Summary() Summary {
	s := Summary{Kind: t.Kind}
	if len(t.Rows) < 2 {
		return s
	}
	last := t.Rows[len(t.Rows)-1]
	s.Periods = len(t.Rows) - 1
	s.FirstPayment = t.Rows[1].Payment
	s.LastPayment = last.Payment
	s.TotalPaid = last.TotalPayment
	s.TotalInterest = last.TotalInterest
	s.Remaining = last.Remaining
	return s
}

// InterestShare is the part of everything paid that went to interest.
func (s Summary) InterestShare() Share {
	return MoneyShare(MoneyFromInt(s.TotalInterest), MoneyFromInt(s.TotalPaid))
}
