package domain

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/google/uuid"
)

type Sex string

const (
	SexMale   Sex = "m"
	SexFemale Sex = "f"
)

// ParseSex accepts the household form codes "m" and "f".
func ParseSex(s string) (Sex, error) {
	switch Sex(s) {
	case SexMale, SexFemale:
		return Sex(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSex, s)
}

// Flag is a yes/no field of the household form, sent as "0" or "1".
type Flag string

const (
	No  Flag = "0"
	Yes Flag = "1"
)

func (f Flag) normalize() (Flag, error) {
	switch f {
	case "":
		return No, nil
	case No, Yes:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFlag, string(f))
}

// Upper bounds of the reference budget age groups, in years. 0.41 and 0.91
// are the infant groups (0-5 and 6-11 months).
var ageBrackets = []float64{0.41, 0.91, 1, 2, 3, 5, 9, 13, 17, 19, 50, 60, 66, 75}

// Pregnancy is only offered for these age groups.
var fertileBrackets = map[float64]bool{19: true, 50: true}

// AgeBracket maps age to the smallest age group bound that is >= age.
// Everyone older than 75 is in the 75 group.
func AgeBracket(age float64) (string, error) {
	if age < 0 || math.IsNaN(age) {
		return "", fmt.Errorf("%w: %v", ErrNegativeAge, age)
	}
	i := sort.SearchFloat64s(ageBrackets, age)
	if i == len(ageBrackets) {
		i--
	}
	return strconv.FormatFloat(ageBrackets[i], 'f', -1, 64), nil
}

// Person is a member of a household. Male and Female are the only
// implementations.
type Person interface {
	ID() uuid.UUID
	Sex() Sex
	Age() float64
	AgeBracket() string
	Kindergarten() Flag
	SFO() Flag
	Income() int64
	SetAge(age float64) error

	fields() []memberField
}

// PersonInput holds what the household form asks about every member.
type PersonInput struct {
	Age          float64
	Kindergarten Flag
	SFO          Flag
	Income       int64
}

// memberField is one per-member field under both of its names: the property
// name used inside the application and the field name of the SIFO form.
// Fields without a form name are not sent to the form.
type memberField struct {
	property  string
	formField string
	value     string
}

type member struct {
	id           uuid.UUID
	sex          Sex
	age          float64
	bracket      string
	kindergarten Flag
	sfo          Flag
	income       int64
}

func newMember(sex Sex, in PersonInput) (member, error) {
	if _, err := ParseSex(string(sex)); err != nil {
		return member{}, err
	}
	bracket, err := AgeBracket(in.Age)
	if err != nil {
		return member{}, err
	}
	kindergarten, err := in.Kindergarten.normalize()
	if err != nil {
		return member{}, fmt.Errorf("kindergarten: %w", err)
	}
	sfo, err := in.SFO.normalize()
	if err != nil {
		return member{}, fmt.Errorf("sfo: %w", err)
	}
	if in.Income < 0 {
		return member{}, fmt.Errorf("%w: %d", ErrNegativeIncome, in.Income)
	}
	return member{
		id:           uuid.New(),
		sex:          sex,
		age:          in.Age,
		bracket:      bracket,
		kindergarten: kindergarten,
		sfo:          sfo,
		income:       in.Income,
	}, nil
}

func (m *member) ID() uuid.UUID      { return m.id }
func (m *member) Sex() Sex           { return m.sex }
func (m *member) Age() float64       { return m.age }
func (m *member) AgeBracket() string { return m.bracket }
func (m *member) Kindergarten() Flag { return m.kindergarten }
func (m *member) SFO() Flag          { return m.sfo }
func (m *member) Income() int64      { return m.income }

// SetAge moves the member to the age group of age.
func (m *member) SetAge(age float64) error {
	bracket, err := AgeBracket(age)
	if err != nil {
		return err
	}
	m.age, m.bracket = age, bracket
	return nil
}

func (m *member) fields() []memberField {
	return []memberField{
		{property: "sex", formField: "kjonn", value: string(m.sex)},
		{property: "age", formField: "alder", value: m.bracket},
		{property: "kindergarten", formField: "barnehage", value: string(m.kindergarten)},
		{property: "sfo", formField: "sfo", value: string(m.sfo)},
		{property: "income", value: strconv.FormatInt(m.income, 10)},
	}
}

type Male struct {
	member
}

func NewMale(in PersonInput) (*Male, error) {
	m, err := newMember(SexMale, in)
	if err != nil {
		return nil, fmt.Errorf("male: %w", err)
	}
	return &Male{member: m}, nil
}

type Female struct {
	member
	pregnant Flag
}

// NewFemale validates the pregnancy flag against the given age: only the
// ages that are themselves a fertile age group bound (19 and 50) qualify.
func NewFemale(in PersonInput, pregnant Flag) (*Female, error) {
	m, err := newMember(SexFemale, in)
	if err != nil {
		return nil, fmt.Errorf("female: %w", err)
	}
	pregnant, err = pregnant.normalize()
	if err != nil {
		return nil, fmt.Errorf("female: pregnant: %w", err)
	}
	if err := checkPregnancy(in.Age, pregnant); err != nil {
		return nil, fmt.Errorf("female: %w", err)
	}
	return &Female{member: m, pregnant: pregnant}, nil
}

func (f *Female) Pregnant() Flag {
	return f.pregnant
}

// SetAge refuses an age that would make an existing pregnancy impossible.
func (f *Female) SetAge(age float64) error {
	if err := checkPregnancy(age, f.pregnant); err != nil {
		return err
	}
	return f.member.SetAge(age)
}

func (f *Female) fields() []memberField {
	return append(f.member.fields(), memberField{property: "pregnant", formField: "gravid", value: string(f.pregnant)})
}

func checkPregnancy(age float64, pregnant Flag) error {
	if pregnant == Yes && !fertileBrackets[age] {
		return fmt.Errorf("%w: %v", ErrPregnancyNotPossible, age)
	}
	return nil
}
