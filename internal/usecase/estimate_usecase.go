package usecase

import (
	"context"
	"fmt"
	"strings"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// CascadeStep names one step of the acceptance cascade.
type CascadeStep string

const (
	CascadeStepBlueprint CascadeStep = "blueprint"
	CascadeStepDeposit   CascadeStep = "deposit_invoice"
)

// CascadeFailure is a step that did not complete. Err wraps ErrPartialCascade.
type CascadeFailure struct {
	Step CascadeStep `json:"step"`
	Err  error       `json:"-"`
}

func (f CascadeFailure) Error() string {
	return fmt.Sprintf("%s: %v", f.Step, f.Err)
}

// AcceptanceResult reports a status change and whatever the acceptance
// cascade did as a consequence of it.
type AcceptanceResult struct {
	Estimate         entities.Estimate `json:"estimate"`
	CascadeRan       bool              `json:"cascade_ran"`
	BlueprintID      string            `json:"blueprint_id,omitempty"`
	DepositInvoiceID string            `json:"deposit_invoice_id,omitempty"`
	Failures         []CascadeFailure  `json:"failures,omitempty"`
}

// IEstimateUseCase drives the estimate state machine.
//
//   - UpdateStatus sets any known status; entering Accepted runs the cascade
//   - Send/Accept/Reject/Expire are shortcuts for UpdateStatus
//   - ResumeAcceptance re-runs the cascade for an already accepted estimate
type IEstimateUseCase interface {
	GetByID(ctx context.Context, id string) (entities.Estimate, error)
	UpdateStatus(ctx context.Context, id string, status entities.EstimateStatus, actor string) (AcceptanceResult, error)
	Send(ctx context.Context, id, actor string) (AcceptanceResult, error)
	Accept(ctx context.Context, id, actor string) (AcceptanceResult, error)
	Reject(ctx context.Context, id, actor string) (AcceptanceResult, error)
	Expire(ctx context.Context, id, actor string) (AcceptanceResult, error)
	ResumeAcceptance(ctx context.Context, id, actor string) (AcceptanceResult, error)
}

type EstimateUseCase struct {
	repo       interfaces.IEstimateRepository
	blueprints IBlueprintUseCase
	generator  IInvoiceGenerator
	log        *zap.Logger
}

var _ IEstimateUseCase = (*EstimateUseCase)(nil)

func NewEstimateUseCase(repo interfaces.IEstimateRepository, blueprints IBlueprintUseCase, generator IInvoiceGenerator, log *zap.Logger) *EstimateUseCase {
	return &EstimateUseCase{
		repo:       repo,
		blueprints: blueprints,
		generator:  generator,
		log:        named(log, "estimate"),
	}
}

func (u *EstimateUseCase) GetByID(ctx context.Context, id string) (entities.Estimate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Estimate{}, ErrInvalidEstimateID
	}
	e, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, persistenceError("load estimate", err)
	}
	if e.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	return e, nil
}

func (u *EstimateUseCase) Send(ctx context.Context, id, actor string) (AcceptanceResult, error) {
	return u.UpdateStatus(ctx, id, entities.EstimateStatusSent, actor)
}

func (u *EstimateUseCase) Accept(ctx context.Context, id, actor string) (AcceptanceResult, error) {
	return u.UpdateStatus(ctx, id, entities.EstimateStatusAccepted, actor)
}

func (u *EstimateUseCase) Reject(ctx context.Context, id, actor string) (AcceptanceResult, error) {
	return u.UpdateStatus(ctx, id, entities.EstimateStatusRejected, actor)
}

func (u *EstimateUseCase) Expire(ctx context.Context, id, actor string) (AcceptanceResult, error) {
	return u.UpdateStatus(ctx, id, entities.EstimateStatusExpired, actor)
}

// UpdateStatus persists the new status first. Cascade failures are
// reported in the result and never returned as the error.
func (u *EstimateUseCase) UpdateStatus(ctx context.Context, id string, status entities.EstimateStatus, actor string) (AcceptanceResult, error) {
	if !status.Valid() {
		return AcceptanceResult{}, ErrInvalidStatus
	}
	current, err := u.GetByID(ctx, id)
	if err != nil {
		return AcceptanceResult{}, err
	}

	updated, err := u.repo.UpdateStatus(ctx, current.ID, status, strings.TrimSpace(actor))
	if err != nil {
		return AcceptanceResult{}, persistenceError("update estimate status", err)
	}
	if updated.ID == "" {
		return AcceptanceResult{}, ErrEstimateNotFound
	}
	u.log.Info("estimate status updated",
		zap.String("estimate_id", updated.ID),
		zap.String("from", string(current.Status)),
		zap.String("to", string(status)))

	if !entities.IsAcceptance(current.Status, status) {
		return AcceptanceResult{Estimate: updated}, nil
	}
	return u.cascade(ctx, updated, actor), nil
}

// ResumeAcceptance runs whatever cascade steps an accepted estimate has not
// completed yet. Completed steps are skipped through their markers.
func (u *EstimateUseCase) ResumeAcceptance(ctx context.Context, id, actor string) (AcceptanceResult, error) {
	e, err := u.GetByID(ctx, id)
	if err != nil {
		return AcceptanceResult{}, err
	}
	if e.Status != entities.EstimateStatusAccepted {
		return AcceptanceResult{}, fmt.Errorf("%w (status %s)", ErrEstimateNotAccepted, e.Status)
	}
	return u.cascade(ctx, e, actor), nil
}

func (u *EstimateUseCase) cascade(ctx context.Context, e entities.Estimate, actor string) AcceptanceResult {
	res := AcceptanceResult{Estimate: e, CascadeRan: true}
	log := u.log.With(zap.String("estimate_id", e.ID), zap.String("project_id", e.ProjectID))

	fail := func(step CascadeStep, err error) {
		log.Warn("acceptance cascade step failed", zap.String("step", string(step)), zap.Error(err))
		res.Failures = append(res.Failures, CascadeFailure{
			Step: step,
			Err:  fmt.Errorf("%w: %s: %w", ErrPartialCascade, step, err),
		})
	}

	if e.IsConvertedToBOV {
		res.BlueprintID = e.BlueprintOfValuesID
	} else {
		bov, err := u.blueprints.Convert(ctx, e.ID)
		if err != nil {
			fail(CascadeStepBlueprint, err)
		} else {
			res.BlueprintID = bov.ID
			marked, err := u.repo.MarkConvertedToBOV(ctx, e.ID, bov.ID)
			switch {
			case err != nil:
				fail(CascadeStepBlueprint, persistenceError("mark estimate converted", err))
			case !marked:
				log.Warn("estimate already marked converted", zap.String("bov_id", bov.ID))
			default:
				res.Estimate.IsConvertedToBOV = true
				res.Estimate.BlueprintOfValuesID = bov.ID
			}
		}
	}

	switch {
	case e.IsInitialInvoiceGenerated:
		res.DepositInvoiceID = e.InitialInvoiceID
	case e.DepositConfigured():
		invoiceID, err := u.generator.GenerateDeposit(ctx, e.ID, actor)
		if err != nil {
			fail(CascadeStepDeposit, err)
		}
		// A partially billed invoice still exists and must not be issued twice.
		if invoiceID != "" {
			res.DepositInvoiceID = invoiceID
			marked, err := u.repo.MarkInitialInvoiceGenerated(ctx, e.ID, invoiceID)
			switch {
			case err != nil:
				fail(CascadeStepDeposit, persistenceError("mark initial invoice generated", err))
			case !marked:
				log.Warn("estimate already marked invoiced", zap.String("invoice_id", invoiceID))
			default:
				res.Estimate.IsInitialInvoiceGenerated = true
				res.Estimate.InitialInvoiceID = invoiceID
			}
		}
	}

	log.Info("acceptance cascade finished",
		zap.String("bov_id", res.BlueprintID),
		zap.String("deposit_invoice_id", res.DepositInvoiceID),
		zap.Int("failures", len(res.Failures)))
	return res
}
