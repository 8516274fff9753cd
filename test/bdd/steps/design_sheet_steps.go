package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/unitforge-go/internal/adapters/definition"
	"github.com/andrescamacho/unitforge-go/internal/domain/loadout"
	"github.com/andrescamacho/unitforge-go/internal/domain/part"
	"github.com/andrescamacho/unitforge-go/test/helpers"
)

type designSheetContext struct {
	dir      string
	path     string
	original *loadout.Sheet
	loaded   loadout.Definition
	err      error
}

func (dc *designSheetContext) reset() error {
	dc.cleanup()
	dir, err := os.MkdirTemp("", "unitforge-sheets-")
	if err != nil {
		return err
	}
	dc.dir = dir
	dc.path = ""
	dc.original = nil
	dc.loaded = nil
	dc.err = nil
	return nil
}

func (dc *designSheetContext) cleanup() {
	if dc.dir != "" {
		_ = os.RemoveAll(dc.dir)
		dc.dir = ""
	}
}

func partKeys(def loadout.Definition) ([]part.Key, error) {
	u := helpers.NewTestUnit(def, nil)
	if _, err := u.Reconcile(true, nil); err != nil {
		return nil, err
	}
	keys := make([]part.Key, 0, len(u.Parts()))
	for _, p := range u.Parts() {
		keys = append(keys, p.Key())
	}
	return keys, nil
}

// Given steps

func (dc *designSheetContext) aDesignSheetSavedToDisk(category string) error {
	sheet, err := sheetForCategory(category)
	if err != nil {
		return err
	}
	dc.original = sheet
	dc.path = filepath.Join(dc.dir, category+".toml")
	return definition.NewTOMLLoader().Save(dc.path, sheet)
}

func (dc *designSheetContext) aSheetFileContaining(name string, body *godog.DocString) error {
	dc.path = filepath.Join(dc.dir, name)
	return os.WriteFile(dc.path, []byte(body.Content), 0o644)
}

// When steps

func (dc *designSheetContext) theSheetIsLoadedBack() error {
	dc.loaded, dc.err = definition.NewTOMLLoader().Load(dc.path)
	return nil
}

// Then steps

func (dc *designSheetContext) theLoadedSheetShouldHaveTheSameMounts() error {
	if dc.err != nil {
		return dc.err
	}
	if !reflect.DeepEqual(dc.original.Mounts(), dc.loaded.Mounts()) {
		return fmt.Errorf("mounts differ after reload:\nwant %v\ngot  %v", dc.original.Mounts(), dc.loaded.Mounts())
	}
	return nil
}

func (dc *designSheetContext) aUnitFromTheLoadedSheetShouldGetTheSameParts() error {
	if dc.err != nil {
		return dc.err
	}
	want, err := partKeys(dc.original)
	if err != nil {
		return err
	}
	got, err := partKeys(dc.loaded)
	if err != nil {
		return err
	}
	if !reflect.DeepEqual(want, got) {
		return fmt.Errorf("part keys differ after reload:\nwant %v\ngot  %v", want, got)
	}
	return nil
}

func (dc *designSheetContext) loadingShouldFailNaming(name string) error {
	if dc.err == nil {
		return fmt.Errorf("expected %s to be refused", name)
	}
	if !strings.Contains(dc.err.Error(), name) {
		return fmt.Errorf("error %q does not name %s", dc.err, name)
	}
	return nil
}

func (dc *designSheetContext) theLoadErrorShouldMention(text string) error {
	if dc.err == nil || !strings.Contains(dc.err.Error(), text) {
		return fmt.Errorf("expected an error mentioning %q, got %v", text, dc.err)
	}
	return nil
}

// InitializeDesignSheetScenario registers the design sheet file steps
func InitializeDesignSheetScenario(ctx *godog.ScenarioContext) {
	dc := &designSheetContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, dc.reset()
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		dc.cleanup()
		return ctx, nil
	})

	ctx.Step(`^a "([^"]*)" design sheet saved to disk$`, dc.aDesignSheetSavedToDisk)
	ctx.Step(`^a sheet file "([^"]*)" containing:$`, dc.aSheetFileContaining)

	ctx.Step(`^the sheet is loaded back$`, dc.theSheetIsLoadedBack)

	ctx.Step(`^the loaded sheet should have the same mounts as the original$`, dc.theLoadedSheetShouldHaveTheSameMounts)
	ctx.Step(`^a unit built from the loaded sheet should get the same parts as the original$`, dc.aUnitFromTheLoadedSheetShouldGetTheSameParts)
	ctx.Step(`^loading should fail naming "([^"]*)"$`, dc.loadingShouldFailNaming)
	ctx.Step(`^the load error should mention "([^"]*)"$`, dc.theLoadErrorShouldMention)
}
