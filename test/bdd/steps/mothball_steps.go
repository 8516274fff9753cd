package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/cucumber/godog"
	"github.com/google/uuid"

	"github.com/andrescamacho/unitforge-go/internal/domain/personnel"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
	"github.com/andrescamacho/unitforge-go/test/helpers"
)

type mothballContext struct {
	unit     *unit.Unit
	driver   *personnel.Person
	storeman *personnel.Person
	err      error
}

func (mc *mothballContext) reset() {
	mc.unit = nil
	mc.driver = nil
	mc.storeman = nil
	mc.err = nil
}

// Given steps

func (mc *mothballContext) aCrewedTank() error {
	mc.driver = helpers.CreateTestPerson(2, map[personnel.SkillType]int{personnel.SkillPilotGroundVee: 4})
	gunner := helpers.CreateTestPerson(3, map[personnel.SkillType]int{personnel.SkillGunneryVehicle: 4})
	mc.storeman = helpers.CreateTestPerson(1, map[personnel.SkillType]int{personnel.SkillTechMechanic: 7})

	roster := helpers.NewTestRoster(mc.driver, gunner, mc.storeman)
	mc.unit = helpers.NewReconciledTestUnit(helpers.CreateTestTankSheet(), roster)
	if err := mc.unit.Assign(mc.driver.ID(), unit.RoleDriver); err != nil {
		return err
	}
	return mc.unit.Assign(gunner.ID(), unit.RoleGunner)
}

func (mc *mothballContext) theTankHasBeenMothballedByTheGamemaster() error {
	return mc.unit.StartMothballing(mc.storeman.ID(), true)
}

// When steps

func (mc *mothballContext) theTankStartsMothballing() error {
	mc.err = mc.unit.StartMothballing(mc.storeman.ID(), false)
	return nil
}

func (mc *mothballContext) theTankStartsActivating() error {
	mc.err = mc.unit.StartActivating(mc.storeman.ID(), false)
	return nil
}

func (mc *mothballContext) minutesOfMothballWorkAreDone(minutes int) error {
	_, err := mc.unit.WorkMothball(minutes)
	return err
}

func (mc *mothballContext) theMothballWorkIsCancelled() error {
	return mc.unit.CancelMothballOrActivation()
}

// Then steps

func (mc *mothballContext) theTankShouldHaveNoDriver() error {
	if mc.err != nil {
		return mc.err
	}
	if drivers := mc.unit.DriverIDs(); len(drivers) != 0 {
		return fmt.Errorf("expected no driver, got %v", drivers)
	}
	return nil
}

func (mc *mothballContext) theTankDriverShouldBeSeated() error {
	if mc.err != nil {
		return mc.err
	}
	drivers := mc.unit.DriverIDs()
	if len(drivers) != 1 || drivers[0] != mc.driver.ID() {
		return fmt.Errorf("expected driver %s, got %v", mc.driver.ID(), drivers)
	}
	return nil
}

func (mc *mothballContext) theMothballStatusShouldBe(expected string) error {
	if mc.err != nil {
		return mc.err
	}
	if got := mc.unit.MothballStatus(); string(got) != expected {
		return fmt.Errorf("expected mothball status %s, got %s", expected, got)
	}
	return nil
}

func (mc *mothballContext) minutesOfMothballWorkShouldRemain(expected int) error {
	if got := mc.unit.MothballTime(); got != expected {
		return fmt.Errorf("expected %d minutes left, got %d", expected, got)
	}
	return nil
}

func (mc *mothballContext) theTransitionShouldBeRejected() error {
	var invalid *shared.InvalidTransitionError
	if !errors.As(mc.err, &invalid) {
		return fmt.Errorf("expected an invalid transition error, got %v", mc.err)
	}
	if mc.unit.TechID() != uuid.Nil {
		return fmt.Errorf("a rejected transition must not assign a tech")
	}
	return nil
}

// InitializeMothballScenario registers the mothballing steps
func InitializeMothballScenario(ctx *godog.ScenarioContext) {
	mc := &mothballContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		mc.reset()
		return ctx, nil
	})

	ctx.Step(`^a crewed tank$`, mc.aCrewedTank)
	ctx.Step(`^the tank has been mothballed by the gamemaster$`, mc.theTankHasBeenMothballedByTheGamemaster)

	ctx.Step(`^the tank starts mothballing$`, mc.theTankStartsMothballing)
	ctx.Step(`^the tank starts activating$`, mc.theTankStartsActivating)
	ctx.Step(`^(\d+) minutes of mothball work are done$`, mc.minutesOfMothballWorkAreDone)
	ctx.Step(`^the mothball work is cancelled$`, mc.theMothballWorkIsCancelled)

	ctx.Step(`^the tank should have no driver$`, mc.theTankShouldHaveNoDriver)
	ctx.Step(`^the tank driver should be seated$`, mc.theTankDriverShouldBeSeated)
	ctx.Step(`^the mothball status should be "([^"]*)"$`, mc.theMothballStatusShouldBe)
	ctx.Step(`^(\d+) minutes of mothball work should remain$`, mc.minutesOfMothballWorkShouldRemain)
	ctx.Step(`^the transition should be rejected$`, mc.theTransitionShouldBeRejected)
}
