package service

import (
	"context"
	"errors"
	"fmt"

	"mortgage-planner/domain"
	"mortgage-planner/logging"
)

// HouseholdService turns the household form into the fields the SIFO
// reference budget calculator expects.
type HouseholdService struct {
	logger *logging.Logger
}

func NewHouseholdService(logger *logging.Logger) *HouseholdService {
	return &HouseholdService{logger: logger.WithComponent(logging.ComponentHousehold)}
}

// BuildFamily validates every member and the household totals.
func (s *HouseholdService) BuildFamily(req domain.HouseholdRequest) (*domain.Family, error) {
	if len(req.Members) == 0 {
		return nil, errors.New("a household needs at least one member")
	}
	if len(req.Members) > MaxHouseholdMembers {
		return nil, fmt.Errorf("number of members exceeds the maximum of %d", MaxHouseholdMembers)
	}

	members := make([]domain.Person, 0, len(req.Members))
	for i, m := range req.Members {
		p, err := newPerson(m)
		if err != nil {
			return nil, fmt.Errorf("member %d: %w", i, err)
		}
		members = append(members, p)
	}
	return domain.NewFamily(members, req.Income, req.Cars)
}

func newPerson(m domain.HouseholdMember) (domain.Person, error) {
	sex, err := domain.ParseSex(m.Sex)
	if err != nil {
		return nil, err
	}
	in := domain.PersonInput{
		Age:          m.Age,
		Kindergarten: domain.Flag(m.Kindergarten),
		SFO:          domain.Flag(m.SFO),
		Income:       m.Income,
	}
	if sex == domain.SexMale {
		if domain.Flag(m.Pregnant) == domain.Yes {
			return nil, fmt.Errorf("male: %w", domain.ErrPregnancyNotPossible)
		}
		return domain.NewMale(in)
	}
	return domain.NewFemale(in, domain.Flag(m.Pregnant))
}

func (s *HouseholdService) FormFields(
	ctx context.Context,
	req domain.HouseholdRequest,
) (domain.HouseholdResult, error) {
	family, err := s.BuildFamily(req)
	if err != nil {
		return domain.HouseholdResult{}, err
	}

	s.logger.DebugContext(ctx, "household form fields built",
		"family_id", family.ID().String(),
		"members", len(req.Members))

	return domain.HouseholdResult{
		FamilyID:   family.ID().String(),
		Properties: family.Properties(),
		FormFields: family.ExternalFormFields(),
	}, nil
}
