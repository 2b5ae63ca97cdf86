package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// IBlueprintUseCase snapshots accepted estimates into a Blueprint of Values.
type IBlueprintUseCase interface {
	Convert(ctx context.Context, estimateID string) (entities.BlueprintOfValues, error)
	GetByID(ctx context.Context, id string) (entities.BlueprintOfValues, error)
	ListByProject(ctx context.Context, projectID string) ([]entities.BlueprintOfValues, error)
}

type BlueprintUseCase struct {
	blueprints interfaces.IBlueprintRepository
	estimates  interfaces.IEstimateRepository
	numbers    *DocumentNumbers
	log        *zap.Logger
	now        func() time.Time
}

var _ IBlueprintUseCase = (*BlueprintUseCase)(nil)

func NewBlueprintUseCase(blueprints interfaces.IBlueprintRepository, estimates interfaces.IEstimateRepository, numbers *DocumentNumbers, log *zap.Logger) *BlueprintUseCase {
	return &BlueprintUseCase{
		blueprints: blueprints,
		estimates:  estimates,
		numbers:    numbers,
		log:        named(log, "blueprint"),
		now:        time.Now,
	}
}

// Convert creates one blueprint item per estimate line item, priced at the
// item's unit cost. It does not guard against repeated conversion; callers
// own the one-shot marker on the estimate.
func (u *BlueprintUseCase) Convert(ctx context.Context, estimateID string) (entities.BlueprintOfValues, error) {
	estimateID = strings.TrimSpace(estimateID)
	if estimateID == "" {
		return entities.BlueprintOfValues{}, ErrInvalidEstimateID
	}
	est, err := u.estimates.GetByID(ctx, estimateID)
	if err != nil {
		return entities.BlueprintOfValues{}, persistenceError("load estimate", err)
	}
	if est.ID == "" {
		return entities.BlueprintOfValues{}, ErrEstimateNotFound
	}

	number, err := u.numbers.Next(ctx, blueprintNumberPrefix)
	if err != nil {
		return entities.BlueprintOfValues{}, err
	}

	lines := make([]entities.EstimateLineItem, len(est.LineItems))
	copy(lines, est.LineItems)
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].SortOrder < lines[j].SortOrder })

	bov := entities.BlueprintOfValues{
		ID:         uuid.NewString(),
		BOVNumber:  number,
		ProjectID:  est.ProjectID,
		EstimateID: est.ID,
		Name:       "BOV for Estimate " + estimateLabel(est),
		Status:     entities.BlueprintStatusActive,
		CreatedAt:  u.now().UTC(),
	}
	total := decimal.Zero
	for i, li := range lines {
		scheduled := entities.Money(li.Quantity.Mul(li.UnitCost))
		bov.Items = append(bov.Items, entities.BlueprintItem{
			ID:                 uuid.NewString(),
			BlueprintID:        bov.ID,
			EstimateLineItemID: li.ID,
			Description:        li.Description,
			Quantity:           li.Quantity,
			Unit:               li.Unit,
			UnitPrice:          li.UnitCost,
			ScheduledValue:     scheduled,
			SortOrder:          i,
		})
		total = total.Add(scheduled)
	}
	bov.TotalAmount = total

	created, err := u.blueprints.Create(ctx, bov)
	if err != nil {
		u.log.Error("create blueprint failed", zap.String("estimate_id", est.ID), zap.Error(err))
		return entities.BlueprintOfValues{}, persistenceError("create blueprint", err)
	}
	u.log.Info("blueprint created",
		zap.String("bov_id", created.ID),
		zap.String("bov_number", created.BOVNumber),
		zap.String("estimate_id", est.ID),
		zap.Int("items", len(created.Items)),
		zap.String("total", created.TotalAmount.String()))
	return created, nil
}

func estimateLabel(e entities.Estimate) string {
	if e.EstimateNumber != "" {
		return e.EstimateNumber
	}
	return e.ID
}

func (u *BlueprintUseCase) GetByID(ctx context.Context, id string) (entities.BlueprintOfValues, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.BlueprintOfValues{}, ErrInvalidBlueprintID
	}
	bov, err := u.blueprints.GetByID(ctx, id)
	if err != nil {
		return entities.BlueprintOfValues{}, persistenceError("load blueprint", err)
	}
	if bov.ID == "" {
		return entities.BlueprintOfValues{}, ErrBlueprintNotFound
	}
	return bov, nil
}

func (u *BlueprintUseCase) ListByProject(ctx context.Context, projectID string) ([]entities.BlueprintOfValues, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, ErrInvalidProjectID
	}
	list, err := u.blueprints.ListByProject(ctx, projectID)
	if err != nil {
		return nil, persistenceError("list blueprints", err)
	}
	return list, nil
}
