package repository

import (
	"context"
	"errors"

	"mortgage-planner/domain"
)

var ErrPlanNotFound = errors.New("plan not found")

type PlanRepository interface {
	Save(ctx context.Context, result domain.PlanResult) error
	FindByID(ctx context.Context, id string) (domain.PlanResult, error)
}
