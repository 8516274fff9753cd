package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/unitforge-go/internal/domain/loadout"
	"github.com/andrescamacho/unitforge-go/internal/domain/part"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
	"github.com/andrescamacho/unitforge-go/test/helpers"
)

type reconciliationContext struct {
	sheet  *loadout.Sheet
	unit   *unit.Unit
	report *unit.ReconcileReport
	err    error
}

func (rc *reconciliationContext) reset() {
	rc.sheet = nil
	rc.unit = nil
	rc.report = nil
	rc.err = nil
}

func sheetForCategory(category string) (*loadout.Sheet, error) {
	switch category {
	case "mech":
		return helpers.CreateTestMechSheet(), nil
	case "omni":
		return helpers.CreateTestOmniMechSheet(), nil
	case "tank":
		return helpers.CreateTestTankSheet(), nil
	case "dropship":
		return helpers.CreateTestDropshipSheet(), nil
	case "infantry":
		return helpers.CreateTestInfantrySheet(), nil
	default:
		return nil, fmt.Errorf("no test sheet for %q", category)
	}
}

// Given steps

func (rc *reconciliationContext) aNewUnit(category string) error {
	sheet, err := sheetForCategory(category)
	if err != nil {
		return err
	}
	rc.sheet = sheet
	rc.unit = helpers.NewTestUnit(sheet, nil)
	return nil
}

func (rc *reconciliationContext) aReconciledUnit(category string) error {
	if err := rc.aNewUnit(category); err != nil {
		return err
	}
	_, err := rc.unit.Reconcile(true, nil)
	return err
}

// When steps

func (rc *reconciliationContext) theUnitIsReconciled() error {
	rc.report, rc.err = rc.unit.Reconcile(true, nil)
	return rc.err
}

func (rc *reconciliationContext) theUnitIsReconciledWithoutCreatingParts() error {
	rc.report, rc.err = rc.unit.Reconcile(false, nil)
	return rc.err
}

func (rc *reconciliationContext) componentIsDestroyedOnTheSheet(index int) error {
	if index < 0 || index >= len(rc.sheet.Comps) {
		return fmt.Errorf("sheet has no component %d", index)
	}
	rc.sheet.Comps[index].Destroyed = true
	return nil
}

func (rc *reconciliationContext) theLastMountIsRemovedFromTheSheet() error {
	if len(rc.sheet.Equipment) == 0 {
		return fmt.Errorf("sheet has no mounts")
	}
	rc.sheet.Equipment = rc.sheet.Equipment[:len(rc.sheet.Equipment)-1]
	return nil
}

// Then steps

func (rc *reconciliationContext) theUnitShouldHaveParts(expected int) error {
	if got := len(rc.unit.Parts()); got != expected {
		return fmt.Errorf("expected %d parts, got %d", expected, got)
	}
	return nil
}

func (rc *reconciliationContext) theLastPassShouldHaveOperations(expected int, action string) error {
	if rc.report == nil {
		return fmt.Errorf("no reconcile pass has run")
	}
	if got := rc.report.Count(unit.ReconcileAction(action)); got != expected {
		return fmt.Errorf("expected %d %s ops, got %d: %v", expected, action, got, rc.report.Ops)
	}
	return nil
}

func (rc *reconciliationContext) theLastPassShouldBeEmpty() error {
	if rc.report == nil {
		return fmt.Errorf("no reconcile pass has run")
	}
	if !rc.report.IsEmpty() {
		return fmt.Errorf("expected an empty pass, got %v", rc.report.Ops)
	}
	return nil
}

func (rc *reconciliationContext) everyPartShouldHaveAnIdentity() error {
	for _, p := range rc.unit.Parts() {
		if !p.HasIdentity() {
			return fmt.Errorf("part %s has no identity", p.Key())
		}
	}
	return nil
}

func (rc *reconciliationContext) noPartShouldHaveAnIdentity() error {
	for _, p := range rc.unit.Parts() {
		if p.HasIdentity() {
			return fmt.Errorf("part %s already has identity %s", p.Key(), p.ID())
		}
	}
	return nil
}

func (rc *reconciliationContext) noTwoPartsShouldShareAKey() error {
	seen := make(map[part.Key]bool)
	for _, p := range rc.unit.Parts() {
		if seen[p.Key()] {
			return fmt.Errorf("duplicate part key %s", p.Key())
		}
		seen[p.Key()] = true
	}
	return nil
}

func (rc *reconciliationContext) partsShouldBeMissing(expected int) error {
	got := 0
	for _, p := range rc.unit.Parts() {
		if p.IsMissing() {
			got++
		}
	}
	if got != expected {
		return fmt.Errorf("expected %d missing parts, got %d", expected, got)
	}
	return nil
}

// InitializeReconciliationScenario registers the part reconciliation steps
func InitializeReconciliationScenario(ctx *godog.ScenarioContext) {
	rc := &reconciliationContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		rc.reset()
		return ctx, nil
	})

	ctx.Step(`^a new "([^"]*)" unit$`, rc.aNewUnit)
	ctx.Step(`^a reconciled "([^"]*)" unit$`, rc.aReconciledUnit)

	ctx.Step(`^the unit is reconciled$`, rc.theUnitIsReconciled)
	ctx.Step(`^the unit is reconciled without creating parts$`, rc.theUnitIsReconciledWithoutCreatingParts)
	ctx.Step(`^component (\d+) is destroyed on the sheet$`, rc.componentIsDestroyedOnTheSheet)
	ctx.Step(`^the last mount is removed from the sheet$`, rc.theLastMountIsRemovedFromTheSheet)

	ctx.Step(`^the unit should have (\d+) parts$`, rc.theUnitShouldHaveParts)
	ctx.Step(`^the last pass should have (\d+) "([^"]*)" operations$`, rc.theLastPassShouldHaveOperations)
	ctx.Step(`^the last pass should be empty$`, rc.theLastPassShouldBeEmpty)
	ctx.Step(`^every part should have an identity$`, rc.everyPartShouldHaveAnIdentity)
	ctx.Step(`^no part should have an identity$`, rc.noPartShouldHaveAnIdentity)
	ctx.Step(`^no two parts should share a key$`, rc.noTwoPartsShouldShareAKey)
	ctx.Step(`^(\d+) part should be missing$`, rc.partsShouldBeMissing)
}
