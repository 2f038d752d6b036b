package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlan(t *testing.T, interval, period string) *PaymentPlan {
	t.Helper()
	plan, err := NewPaymentPlan("5 %", interval, period, "800 000 kr", "01.06.2023")
	require.NoError(t, err)
	return plan
}

func TestNewPaymentPlan_Invalid(t *testing.T) {
	tests := []struct {
		name                               string
		rate, interval, period, amount, at string
		want                               error
	}{
		{"rate", "fem", "Månedlig", "25 år", "800000", "01.06.2023", ErrInvalidInterestRate},
		{"negative rate", "-5 %", "Månedlig", "25 år", "800000", "01.06.2023", ErrInvalidInterestRate},
		{"interval", "5 %", "Daglig", "25 år", "800000", "01.06.2023", ErrUnknownInterval},
		{"period", "5 %", "Månedlig", "null år", "800000", "01.06.2023", ErrInvalidPeriod},
		{"zero period", "5 %", "Månedlig", "0 år", "800000", "01.06.2023", ErrInvalidPeriod},
		{"amount", "5 %", "Månedlig", "25 år", "kr", "01.06.2023", ErrInvalidAmount},
		{"zero amount", "5 %", "Månedlig", "25 år", "0", "01.06.2023", ErrInvalidAmount},
		{"amount beyond int64", "5 %", "Månedlig", "25 år", "18446744073709552416 kr", "01.06.2023", ErrInvalidAmount},
		{"too many periods", "5 %", "Ukentlig", "101 år", "800000", "01.06.2023", ErrInvalidPeriod},
		{"absurd period", "5 %", "Månedlig", "100000000 år", "800000", "01.06.2023", ErrInvalidPeriod},
		{"start date", "5 %", "Månedlig", "25 år", "800000", "2023/06/01", ErrInvalidStartDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPaymentPlan(tt.rate, tt.interval, tt.period, tt.amount, tt.at)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewPaymentPlan_Params(t *testing.T) {
	plan, err := NewPaymentPlan("5,5 %", "monthly", "10", "1 000 000", "2024-01-31")
	require.NoError(t, err)

	p := plan.Params()
	assert.InDelta(t, 5.5, p.InterestRate, 1e-9)
	assert.Equal(t, "Månedlig", p.Interval.Name)
	assert.Equal(t, 10, p.Years)
	assert.Equal(t, int64(1000000), p.Amount)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), p.StartDate)
	assert.Equal(t, 120, plan.Periods())
	assert.InDelta(t, 5.5/12/100, plan.PeriodRate(), 1e-12)
}

func TestLookupInterval(t *testing.T) {
	all := Intervals()
	require.Len(t, all, 8)

	perYear := make([]int, len(all))
	for i, iv := range all {
		perYear[i] = iv.PerYear
		byName, err := LookupInterval(iv.Name)
		require.NoError(t, err)
		assert.Equal(t, iv.Name, byName.Name)
		byAlias, err := LookupInterval(iv.Alias)
		require.NoError(t, err)
		assert.Equal(t, iv.Name, byAlias.Name)
	}
	assert.Equal(t, []int{1, 2, 4, 6, 12, 24, 26, 52}, perYear)

	iv, err := LookupInterval(" MÅNEDLIG ")
	require.NoError(t, err)
	assert.Equal(t, 12, iv.PerYear)

	_, err = LookupInterval("Daglig")
	assert.ErrorIs(t, err, ErrUnknownInterval)
}

func TestInterval_Date(t *testing.T) {
	date := func(s string) time.Time {
		d, err := ParseDate(s)
		require.NoError(t, err)
		return d
	}
	lookup := func(name string) Interval {
		iv, err := LookupInterval(name)
		require.NoError(t, err)
		return iv
	}

	monthly := lookup("Månedlig")
	assert.Equal(t, date("29.02.2024"), monthly.Date(date("31.01.2024"), 1))
	assert.Equal(t, date("31.03.2024"), monthly.Date(date("31.01.2024"), 2))

	yearly := lookup("Årlig")
	assert.Equal(t, date("28.02.2025"), yearly.Date(date("29.02.2024"), 1))

	semiMonthly := lookup("Halvmånedlig")
	start := date("01.06.2023")
	assert.Equal(t, date("01.06.2023"), semiMonthly.Date(start, 0))
	assert.Equal(t, date("15.06.2023"), semiMonthly.Date(start, 1))
	assert.Equal(t, date("01.07.2023"), semiMonthly.Date(start, 2))
	assert.Equal(t, date("15.07.2023"), semiMonthly.Date(start, 3))

	assert.Equal(t, date("15.06.2023"), lookup("Annenhver uke").Date(start, 1))
	assert.Equal(t, date("08.06.2023"), lookup("Ukentlig").Date(start, 1))
	assert.Equal(t, date("01.12.2023"), lookup("Halvårlig").Date(start, 1))
	assert.Equal(t, date("01.09.2023"), lookup("Kvartalsvis").Date(start, 1))
	assert.Equal(t, date("01.08.2023"), lookup("Annenhver måned").Date(start, 1))
}

func TestPeriodList(t *testing.T) {
	for _, iv := range Intervals() {
		plan := newTestPlan(t, iv.Name, "3 år")
		list := plan.PeriodList()
		require.Len(t, list, iv.PerYear*3+1, iv.Name)
		assert.Equal(t, "", list[0])
		assert.Equal(t, "01.06.2023", list[1])
	}

	list := newTestPlan(t, "Månedlig", "25 år").PeriodList()
	assert.Equal(t, "01.07.2023", list[2])
	assert.Equal(t, "01.05.2048", list[300])
}

func TestNewPaymentPlanFromParams_MaxPeriods(t *testing.T) {
	weekly, err := LookupInterval("Ukentlig")
	require.NoError(t, err)
	params := PlanParams{
		InterestRate: 5,
		Interval:     weekly,
		Years:        100,
		Amount:       800000,
		StartDate:    time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	plan, err := NewPaymentPlanFromParams(params)
	require.NoError(t, err)
	assert.Equal(t, MaxPeriods, plan.Periods())

	params.Years = 101
	_, err = NewPaymentPlanFromParams(params)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestPlans_RowCountPerInterval(t *testing.T) {
	for _, iv := range Intervals() {
		t.Run(iv.Alias, func(t *testing.T) {
			plan := newTestPlan(t, iv.Name, "4 år")
			want := iv.PerYear*4 + 1

			fixed := plan.FixedMortgagePlan()
			serial := plan.SerialMortgagePlan()
			require.Len(t, fixed.Rows, want)
			require.Len(t, serial.Rows, want)

			assert.Equal(t, int64(800000), fixed.Rows[0].Remaining)
			assert.Equal(t, int64(800000), serial.Rows[0].Remaining)
			assert.InDelta(t, 0, fixed.Rows[want-1].Remaining, float64(want)/2)
			assert.InDelta(t, 0, serial.Rows[want-1].Remaining, float64(want)/2)

			dates := plan.PeriodList()
			for i := 1; i < want; i++ {
				assert.Equal(t, dates[i], fixed.Rows[i].Date.Format(DateLayout))
			}
		})
	}
}

func TestSerialMortgagePlan(t *testing.T) {
	table := newTestPlan(t, "Månedlig", "25 år").SerialMortgagePlan()
	require.Len(t, table.Rows, 301)
	assert.Equal(t, SerialPlan, table.Kind)

	assert.Equal(t, Row{Remaining: 800000}, table.Rows[0])

	first := table.Rows[1]
	assert.Equal(t, int64(2667), first.Principal)
	assert.Equal(t, int64(3333), first.Interest)
	assert.Equal(t, int64(6000), first.Payment)
	assert.Equal(t, int64(797333), first.Remaining)
	assert.Equal(t, "01.06.2023", first.Date.Format(DateLayout))

	second := table.Rows[2]
	assert.Equal(t, int64(3322), second.Interest)
	assert.Equal(t, int64(5989), second.Payment)
	assert.Equal(t, int64(11989), second.TotalPayment)

	for i := 1; i < len(table.Rows); i++ {
		r, prev := table.Rows[i], table.Rows[i-1]
		assert.Equal(t, int64(2667), r.Principal)
		assert.Equal(t, r.Interest+r.Principal, r.Payment)
		assert.Equal(t, prev.TotalPayment+r.Payment, r.TotalPayment)
		assert.Equal(t, prev.TotalInterest+r.Interest, r.TotalInterest)
		assert.Equal(t, int64(800000)-r.TotalPrincipal, r.Remaining)
		assert.Less(t, r.Interest, prev.Interest+1, "interest never grows")
	}

	last := table.Rows[300]
	assert.Equal(t, int64(-100), last.Remaining)
	assert.Equal(t, "-100 kr", last.Display().Remaining)
}

func TestFixedMortgagePlan(t *testing.T) {
	table := newTestPlan(t, "Månedlig", "25 år").FixedMortgagePlan()
	require.Len(t, table.Rows, 301)
	assert.Equal(t, FixedPlan, table.Kind)

	first := table.Rows[1]
	assert.Equal(t, int64(4677), first.Payment)
	assert.Equal(t, int64(3333), first.Interest)
	assert.Equal(t, int64(1343), first.Principal)

	for i := 1; i < len(table.Rows); i++ {
		r, prev := table.Rows[i], table.Rows[i-1]
		assert.Equal(t, int64(4677), r.Payment)
		assert.InDelta(t, 0, r.Payment-r.Interest-r.Principal, 1, "period %d", i)
		assert.Equal(t, prev.TotalPrincipal+r.Principal, r.TotalPrincipal)
		assert.Equal(t, int64(800000)-r.TotalPrincipal, r.Remaining)
		if i > 1 {
			assert.LessOrEqual(t, r.Interest, prev.Interest)
			assert.GreaterOrEqual(t, r.Principal, prev.Principal)
		}
	}

	last := table.Rows[300]
	assert.InDelta(t, 0, last.Remaining, 150)
	assert.Equal(t, int64(4677*300), last.TotalPayment)
}

func TestFixedMortgagePlan_ZeroRate(t *testing.T) {
	plan, err := NewPaymentPlan("0 %", "Månedlig", "1 år", "120 000", "01.01.2024")
	require.NoError(t, err)

	table := plan.FixedMortgagePlan()
	require.Len(t, table.Rows, 13)
	for _, r := range table.Rows[1:] {
		assert.Equal(t, int64(10000), r.Payment)
		assert.Equal(t, int64(0), r.Interest)
	}
	assert.Equal(t, int64(0), table.Rows[12].Remaining)
}

func TestPlan(t *testing.T) {
	plan := newTestPlan(t, "Årlig", "2 år")

	fixed, err := plan.Plan(FixedPlan)
	require.NoError(t, err)
	assert.Equal(t, plan.FixedMortgagePlan(), fixed)

	_, err = plan.Plan("bullet")
	assert.ErrorIs(t, err, ErrUnknownPlanKind)

	kind, err := ParsePlanKind("Serial")
	require.NoError(t, err)
	assert.Equal(t, SerialPlan, kind)
}

func TestTable_DisplayAndSummary(t *testing.T) {
	table := newTestPlan(t, "Månedlig", "25 år").SerialMortgagePlan()

	rows := table.Display()
	require.Len(t, rows, 301)
	assert.Equal(t, "", rows[0].Date)
	assert.Equal(t, "0 kr", rows[0].Payment)
	assert.Equal(t, "800 000 kr", rows[0].Remaining)
	assert.Equal(t, "01.06.2023", rows[1].Date)
	assert.Equal(t, "2 667 kr", rows[1].Principal)
	assert.Equal(t, "3 333 kr", rows[1].Interest)
	assert.Equal(t, []string{
		"01.06.2023", "1", "6 000 kr", "3 333 kr", "2 667 kr",
		"6 000 kr", "3 333 kr", "2 667 kr", "797 333 kr",
	}, rows[1].Record())

	s := table.Summary()
	assert.Equal(t, 300, s.Periods)
	assert.Equal(t, int64(6000), s.FirstPayment)
	assert.Equal(t, int64(-100), s.Remaining)
	assert.Equal(t, s.TotalPaid, int64(800100)+s.TotalInterest)
	assert.NotEqual(t, "0.00 %", s.InterestShare().Value())

	assert.Equal(t, Summary{Kind: SerialPlan}, Table{Kind: SerialPlan}.Summary())
}
