package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/andrescamacho/unitforge-go/internal/adapters/metrics"
	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/application/mediator"
	"github.com/andrescamacho/unitforge-go/internal/application/unit/services"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// AdvanceDayCommand runs the daily tick over every unit
type AdvanceDayCommand struct {
	Minutes int // Tech minutes worked per unit, defaults to a full work day
}

// UnitDayResult is what happened to one unit
type UnitDayResult struct {
	UnitID            string
	Name              string
	MothballCompleted bool
	RefitCompleted    bool
	MaintenanceReport string
}

// AdvanceDayResponse lists the units that changed
type AdvanceDayResponse struct {
	Units  []UnitDayResult
	Failed int
}

// AdvanceDayHandler handles the AdvanceDay command
type AdvanceDayHandler struct {
	unitRepo unit.UnitRepository
	loader   *services.UnitLoader
	recorder *services.ReconcileRecorder
	issuer   unit.IDIssuer
	clock    shared.Clock
}

// NewAdvanceDayHandler creates a new AdvanceDayHandler
func NewAdvanceDayHandler(
	unitRepo unit.UnitRepository,
	recorder *services.ReconcileRecorder,
	issuer unit.IDIssuer,
	clock shared.Clock,
) *AdvanceDayHandler {
	if issuer == nil {
		issuer = unit.DefaultIDIssuer
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &AdvanceDayHandler{
		unitRepo: unitRepo,
		loader:   services.NewUnitLoader(unitRepo),
		recorder: recorder,
		issuer:   issuer,
		clock:    clock,
	}
}

// Handle executes the AdvanceDay command. A unit that fails is logged and
// skipped; the others still advance.
func (h *AdvanceDayHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AdvanceDayCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AdvanceDayCommand")
	}
	minutes := cmd.Minutes
	if minutes <= 0 {
		minutes = unit.TechWorkDay
	}
	units, err := h.loader.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	logger := common.LoggerFromContext(ctx)
	resp := &AdvanceDayResponse{}
	var errs error
	for _, u := range units {
		result, err := h.advance(ctx, u, minutes)
		if err == nil {
			err = h.unitRepo.Save(ctx, u)
		}
		if err != nil {
			resp.Failed++
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", u.Name(), err))
			logger.Log(common.LevelError, "Failed to advance unit", map[string]interface{}{
				"action":  "advance_day",
				"unit_id": u.ID().String(),
				"error":   err.Error(),
			})
			continue
		}
		if result.MothballCompleted || result.RefitCompleted || result.MaintenanceReport != "" {
			resp.Units = append(resp.Units, result)
		}
	}

	logger.Log(common.LevelInfo, "Day advanced", map[string]interface{}{
		"action":  "advance_day",
		"units":   len(units),
		"changed": len(resp.Units),
		"failed":  resp.Failed,
	})
	if resp.Failed == len(units) && errs != nil {
		return nil, errs
	}
	return resp, nil
}

func (h *AdvanceDayHandler) advance(ctx context.Context, u *unit.Unit, minutes int) (UnitDayResult, error) {
	result := UnitDayResult{UnitID: u.ID().String(), Name: u.Name()}
	u.ResetEngineerDay()

	if days := u.DaysToArrival(); days > 0 {
		u.SetDaysToArrival(days - 1)
	}

	if u.InTransition() {
		from := u.MothballStatus()
		u.SpendEngineerTime(minutes)
		done, err := u.WorkMothball(minutes)
		if err != nil {
			return result, err
		}
		if done {
			result.MothballCompleted = true
			metrics.RecordMothballTransition(string(u.Category()), from, u.MothballStatus())
		}
	}

	if u.IsRefitting() && u.WorkRefit(minutes) {
		report, err := u.CompleteRefit(h.issuer)
		if err != nil {
			return result, fmt.Errorf("failed to complete refit: %w", err)
		}
		result.RefitCompleted = true
		if err := h.recorder.Record(ctx, u, services.TriggerRefit, report); err != nil {
			return result, err
		}
	}

	if u.RequiresMaintenance() {
		maintained := u.TechID() != uuid.Nil || u.Engineer() != nil
		u.IncrementDaysSinceMaintenance(maintained, u.AstechTeam())
		if u.Options().CheckMaintenance && u.IsMaintenanceDue() {
			result.MaintenanceReport = h.maintenanceReport(u)
			u.SetLastMaintenanceReport(result.MaintenanceReport)
			u.ResetDaysSinceMaintenance()
		}
	}
	return result, nil
}

func (h *AdvanceDayHandler) maintenanceReport(u *unit.Unit) string {
	return fmt.Sprintf("%s maintenance check: %.0f%% coverage, %d astechs, quality %s, %d parts need fixing",
		shared.CampaignDate(h.clock),
		u.MaintenanceCoverage()*100,
		u.AstechsMaintained(),
		u.QualityName(),
		len(u.PartsNeedingFixing()),
	)
}
