package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/google/uuid"

	"github.com/andrescamacho/unitforge-go/internal/adapters/definition"
	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/application/mediator"
	"github.com/andrescamacho/unitforge-go/internal/application/setup"
	unitCommands "github.com/andrescamacho/unitforge-go/internal/application/unit/commands"
	unitQueries "github.com/andrescamacho/unitforge-go/internal/application/unit/queries"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
	"github.com/andrescamacho/unitforge-go/test/helpers"
)

type unitWorkflowContext struct {
	dir      string
	sheets   *definition.TOMLLoader
	repos    *helpers.TestRepositories
	mediator mediator.Mediator
	ctx      context.Context

	imported     map[string]uuid.UUID
	lastImported uuid.UUID
	lastImport   *unitCommands.ImportUnitResponse
	lastReport   *unit.ReconcileReport
	err          error
}

func (wc *unitWorkflowContext) reset() error {
	wc.cleanup()

	dir, err := os.MkdirTemp("", "unitforge-bdd-")
	if err != nil {
		return err
	}
	wc.dir = dir
	wc.sheets = definition.NewTOMLLoader()
	wc.repos = nil
	wc.mediator = nil
	wc.ctx = common.WithLogger(context.Background(), helpers.NewCaptureLogger())
	wc.imported = make(map[string]uuid.UUID)
	wc.lastImported = uuid.Nil
	wc.lastImport = nil
	wc.lastReport = nil
	wc.err = nil
	return nil
}

func (wc *unitWorkflowContext) cleanup() {
	if wc.dir != "" {
		_ = os.RemoveAll(wc.dir)
		wc.dir = ""
	}
}

func (wc *unitWorkflowContext) sheetPath(name string) string {
	return filepath.Join(wc.dir, name)
}

func (wc *unitWorkflowContext) writeSheet(category, name string, destroyed ...int) error {
	sheet, err := sheetForCategory(category)
	if err != nil {
		return err
	}
	for _, i := range destroyed {
		if i < 0 || i >= len(sheet.Comps) {
			return fmt.Errorf("sheet has no component %d", i)
		}
		sheet.Comps[i].Destroyed = true
	}
	return wc.sheets.Save(wc.sheetPath(name), sheet)
}

// Given steps

func (wc *unitWorkflowContext) aCleanCampaignDatabase() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	wc.repos = helpers.NewTestRepositories(helpers.SharedTestDB, shared.NewMockClock(helpers.DefaultTestTime()))

	registry := setup.NewHandlerRegistry(setup.Dependencies{
		UnitRepo:   wc.repos.UnitRepo,
		People:     wc.repos.PersonRepo,
		RunRepo:    wc.repos.RunRepo,
		Inventory:  wc.repos.Inventory,
		Sheets:     wc.sheets,
		SheetIndex: wc.repos.SheetIndex,
		Options:    unit.DefaultOptions(),
		Clock:      shared.NewMockClock(helpers.DefaultTestTime()),
	})
	m, err := registry.CreateConfiguredMediator()
	if err != nil {
		return err
	}
	wc.mediator = m
	return nil
}

func (wc *unitWorkflowContext) aDesignSheet(category, name string) error {
	return wc.writeSheet(category, name)
}

func (wc *unitWorkflowContext) aDesignSheetWithComponentDestroyed(category, name string, component int) error {
	return wc.writeSheet(category, name, component)
}

func (wc *unitWorkflowContext) iHaveImported(name string) error {
	if err := wc.importSheet(name, ""); err != nil {
		return err
	}
	return wc.err
}

func (wc *unitWorkflowContext) theSpareStockHolds(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		qty, err := strconv.Atoi(row.Cells[1].Value)
		if err != nil {
			return fmt.Errorf("bad quantity %q: %w", row.Cells[1].Value, err)
		}
		_, err = wc.mediator.Send(wc.ctx, &unitCommands.AdjustStockCommand{
			PartName: row.Cells[0].Value,
			Delta:    qty,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// When steps

func (wc *unitWorkflowContext) importSheet(name, fluff string) error {
	resp, err := wc.mediator.Send(wc.ctx, &unitCommands.ImportUnitCommand{
		SheetPath: wc.sheetPath(name),
		FluffName: fluff,
	})
	wc.err = err
	if err != nil {
		return nil
	}
	imported, ok := resp.(*unitCommands.ImportUnitResponse)
	if !ok {
		return fmt.Errorf("unexpected response type %T", resp)
	}
	wc.lastImport = imported
	wc.lastImported = imported.UnitID
	wc.imported[name] = imported.UnitID
	return nil
}

func (wc *unitWorkflowContext) iImportAs(name, fluff string) error {
	return wc.importSheet(name, fluff)
}

func (wc *unitWorkflowContext) iReplaceTheMissingPart(partName string) error {
	status, err := wc.status(wc.lastImported)
	if err != nil {
		return err
	}
	var partID uuid.UUID
	for _, p := range status.Parts {
		if p.Name == partName && p.Condition == "MISSING" {
			partID, err = uuid.Parse(p.ID)
			if err != nil {
				return err
			}
			break
		}
	}
	if partID == uuid.Nil {
		return fmt.Errorf("unit has no missing %s", partName)
	}

	_, wc.err = wc.mediator.Send(wc.ctx, &unitCommands.ReplaceMissingPartCommand{
		UnitID: wc.lastImported,
		PartID: partID,
	})
	return nil
}

func (wc *unitWorkflowContext) theImportedUnitIsReconciledThroughTheMediator() error {
	resp, err := wc.mediator.Send(wc.ctx, &unitCommands.ReconcileUnitCommand{
		UnitID:             wc.lastImported,
		CreateMissingParts: true,
	})
	if err != nil {
		return err
	}
	wc.lastReport = resp.(*unitCommands.ReconcileUnitResponse).Report
	return nil
}

func (wc *unitWorkflowContext) theDesignSheetIsRewrittenWithComponentsDestroyed(category, name string, first, second int) error {
	return wc.writeSheet(category, name, first, second)
}

func (wc *unitWorkflowContext) theSheetChangeIsPickedUp() error {
	_, err := wc.mediator.Send(wc.ctx, &unitCommands.SheetChangedCommand{
		SheetPath: wc.sheetPath("hunchback.toml"),
	})
	return err
}

// Then steps

func (wc *unitWorkflowContext) status(id uuid.UUID) (*unitQueries.UnitDetailDTO, error) {
	resp, err := wc.mediator.Send(wc.ctx, &unitQueries.GetUnitStatusQuery{UnitRef: id.String()})
	if err != nil {
		return nil, err
	}
	return resp.(*unitQueries.GetUnitStatusResponse).Unit, nil
}

func (wc *unitWorkflowContext) theImportShouldHaveCreatedParts(expected int) error {
	if wc.err != nil {
		return wc.err
	}
	if wc.lastImport.Parts != expected {
		return fmt.Errorf("expected %d parts, got %d", expected, wc.lastImport.Parts)
	}
	if got := wc.lastImport.Report.Count(unit.ActionCreate); got != expected {
		return fmt.Errorf("expected %d CREATE ops, got %d", expected, got)
	}
	return nil
}

func (wc *unitWorkflowContext) theUnitShouldBeListed(name string) error {
	resp, err := wc.mediator.Send(wc.ctx, &unitQueries.ListUnitsQuery{})
	if err != nil {
		return err
	}
	for _, u := range resp.(*unitQueries.ListUnitsResponse).Units {
		if u.Name == name {
			return nil
		}
	}
	return fmt.Errorf("unit %q is not listed", name)
}

func (wc *unitWorkflowContext) theImportedUnitShouldHavePartsInCondition(expected int, condition string) error {
	status, err := wc.status(wc.lastImported)
	if err != nil {
		return err
	}
	got := 0
	for _, p := range status.Parts {
		if p.Condition == condition {
			got++
		}
	}
	if got != expected {
		return fmt.Errorf("expected %d %s parts, got %d", expected, condition, got)
	}
	return nil
}

func (wc *unitWorkflowContext) theImportedUnitShouldHaveReconcileRunWithTrigger(expected int, trigger string) error {
	resp, err := wc.mediator.Send(wc.ctx, &unitQueries.ListReconcileRunsQuery{UnitRef: wc.lastImported.String()})
	if err != nil {
		return err
	}
	got := 0
	for _, run := range resp.(*unitQueries.ListReconcileRunsResponse).Runs {
		if run.Trigger == trigger {
			got++
		}
	}
	if got != expected {
		return fmt.Errorf("expected %d %q runs, got %d", expected, trigger, got)
	}
	return nil
}

func (wc *unitWorkflowContext) theCommandShouldSucceed() error {
	return wc.err
}

func (wc *unitWorkflowContext) theCommandShouldFailWith(message string) error {
	if wc.err == nil {
		return fmt.Errorf("expected an error containing %q", message)
	}
	if !strings.Contains(wc.err.Error(), message) {
		return fmt.Errorf("expected an error containing %q, got %q", message, wc.err.Error())
	}
	return nil
}

func (wc *unitWorkflowContext) theSpareStockShouldHold(expected int, partName string) error {
	resp, err := wc.mediator.Send(wc.ctx, &unitQueries.ListStockQuery{})
	if err != nil {
		return err
	}
	got := 0
	for _, line := range resp.(*unitQueries.ListStockResponse).Lines {
		if line.PartName == partName {
			got = line.Quantity
		}
	}
	if got != expected {
		return fmt.Errorf("expected %d %s in stock, got %d", expected, partName, got)
	}
	return nil
}

func (wc *unitWorkflowContext) theReconcileShouldNeitherCreateNorRemoveParts() error {
	if wc.lastReport == nil {
		return fmt.Errorf("no reconcile pass has run")
	}
	if n := wc.lastReport.Count(unit.ActionCreate) + wc.lastReport.Count(unit.ActionRemove); n != 0 {
		return fmt.Errorf("expected no creates or removes, got %v", wc.lastReport.Ops)
	}
	return nil
}

func (wc *unitWorkflowContext) sellValue(name string) (float64, error) {
	id, ok := wc.imported[name]
	if !ok {
		return 0, fmt.Errorf("%s was never imported", name)
	}
	resp, err := wc.mediator.Send(wc.ctx, &unitQueries.GetUnitValuationQuery{UnitRef: id.String()})
	if err != nil {
		return 0, err
	}
	return resp.(*unitQueries.GetUnitValuationResponse).SellValue, nil
}

func (wc *unitWorkflowContext) theDamagedUnitShouldSellForLessThanTheIntactOne() error {
	damaged, err := wc.sellValue("hunchback.toml")
	if err != nil {
		return err
	}
	intact, err := wc.sellValue("intact.toml")
	if err != nil {
		return err
	}
	if damaged >= intact {
		return fmt.Errorf("damaged unit sells for %.0f, intact for %.0f", damaged, intact)
	}
	return nil
}

// InitializeUnitWorkflowScenario registers the mediator level unit steps
func InitializeUnitWorkflowScenario(ctx *godog.ScenarioContext) {
	wc := &unitWorkflowContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, wc.reset()
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		wc.cleanup()
		return ctx, nil
	})

	ctx.Step(`^a clean campaign database$`, wc.aCleanCampaignDatabase)
	ctx.Step(`^a "([^"]*)" design sheet "([^"]*)"$`, wc.aDesignSheet)
	ctx.Step(`^a "([^"]*)" design sheet "([^"]*)" with component (\d+) destroyed$`, wc.aDesignSheetWithComponentDestroyed)
	ctx.Step(`^I have imported "([^"]*)"$`, wc.iHaveImported)
	ctx.Step(`^the spare stock holds:$`, wc.theSpareStockHolds)

	ctx.Step(`^I import "([^"]*)" as "([^"]*)"$`, wc.iImportAs)
	ctx.Step(`^I replace the missing "([^"]*)" part$`, wc.iReplaceTheMissingPart)
	ctx.Step(`^the imported unit is reconciled through the mediator$`, wc.theImportedUnitIsReconciledThroughTheMediator)
	ctx.Step(`^the "([^"]*)" design sheet "([^"]*)" is rewritten with components (\d+) and (\d+) destroyed$`, wc.theDesignSheetIsRewrittenWithComponentsDestroyed)
	ctx.Step(`^the sheet change is picked up$`, wc.theSheetChangeIsPickedUp)

	ctx.Step(`^the import should have created (\d+) parts$`, wc.theImportShouldHaveCreatedParts)
	ctx.Step(`^the unit "([^"]*)" should be listed$`, wc.theUnitShouldBeListed)
	ctx.Step(`^the imported unit should have (\d+) parts? in condition "([^"]*)"$`, wc.theImportedUnitShouldHavePartsInCondition)
	ctx.Step(`^the imported unit should have (\d+) reconcile runs? with trigger "([^"]*)"$`, wc.theImportedUnitShouldHaveReconcileRunWithTrigger)
	ctx.Step(`^the command should succeed$`, wc.theCommandShouldSucceed)
	ctx.Step(`^the command should fail with "([^"]*)"$`, wc.theCommandShouldFailWith)
	ctx.Step(`^the spare stock should hold (\d+) "([^"]*)"$`, wc.theSpareStockShouldHold)
	ctx.Step(`^the reconcile should neither create nor remove parts$`, wc.theReconcileShouldNeitherCreateNorRemoveParts)
	ctx.Step(`^the damaged unit should sell for less than the intact one$`, wc.theDamagedUnitShouldSellForLessThanTheIntactOne)
}
