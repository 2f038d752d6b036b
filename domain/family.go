package domain

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Family is a household: its members in the order they were added, the
// gross yearly income and the number of cars.
type Family struct {
	id      uuid.UUID
	members []Person
	income  int64
	cars    int
}

func NewFamily(members []Person, income int64, cars int) (*Family, error) {
	if income < 0 {
		return nil, fmt.Errorf("family: %w: %d", ErrNegativeIncome, income)
	}
	if cars < 0 {
		return nil, fmt.Errorf("family: %w: %d", ErrNegativeCars, cars)
	}
	f := &Family{
		id:      uuid.New(),
		members: make([]Person, 0, len(members)),
		income:  income,
		cars:    cars,
	}
	for _, m := range members {
		if err := f.AddFamilyMember(m); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// AddFamilyMember appends p. A nil Male or Female is rejected.
func (f *Family) AddFamilyMember(p Person) error {
	switch v := p.(type) {
	case *Male:
		if v == nil {
			return fmt.Errorf("family: %w", ErrInvalidMember)
		}
	case *Female:
		if v == nil {
			return fmt.Errorf("family: %w", ErrInvalidMember)
		}
	default:
		return fmt.Errorf("family: %w: %T", ErrInvalidMember, p)
	}
	f.members = append(f.members, p)
	return nil
}

func (f *Family) ID() uuid.UUID { return f.id }
func (f *Family) Income() int64 { return f.income }
func (f *Family) Cars() int     { return f.cars }

// Members returns a copy of the member list.
func (f *Family) Members() []Person {
	out := make([]Person, len(f.members))
	copy(out, f.members)
	return out
}

// Properties flattens the household into one map. Member fields are
// suffixed with the member's position: age0, sfo1, ...
func (f *Family) Properties() map[string]string {
	props := map[string]string{
		"inntekt":      strconv.FormatInt(f.income, 10),
		"antall_biler": strconv.Itoa(f.cars),
	}
	for i, m := range f.members {
		for _, field := range m.fields() {
			props[field.property+strconv.Itoa(i)] = field.value
		}
	}
	return props
}

// ExternalFormFields is Properties under the field names of the SIFO
// reference budget form.
func (f *Family) ExternalFormFields() map[string]string {
	fields := map[string]string{
		"inntekt":     strconv.FormatInt(f.income, 10),
		"antallbiler": strconv.Itoa(f.cars),
	}
	for i, m := range f.members {
		for _, field := range m.fields() {
			if field.formField == "" {
				continue
			}
			fields[field.formField+strconv.Itoa(i)] = field.value
		}
	}
	return fields
}
