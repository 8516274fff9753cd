package helpers

import (
	"gorm.io/gorm"

	"github.com/andrescamacho/unitforge-go/internal/adapters/persistence"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// TestRepositories holds all real repository instances for integration tests
type TestRepositories struct {
	DB         *gorm.DB
	UnitRepo   *persistence.UnitRepositoryGORM
	PersonRepo *persistence.GormPersonRepository
	RunRepo    *persistence.ReconcileRunRepositoryGORM
	Inventory  *persistence.InventoryRepositoryGORM
	SheetIndex *persistence.SheetIndexGORM
}

// NewTestRepositories creates all real repository instances on db.
// clock is used for time-sensitive operations (usually a MockClock in tests)
func NewTestRepositories(db *gorm.DB, clock shared.Clock) *TestRepositories {
	return &TestRepositories{
		DB:         db,
		UnitRepo:   persistence.NewUnitRepositoryGORM(db, unit.DefaultOptions(), clock),
		PersonRepo: persistence.NewGormPersonRepository(db),
		RunRepo:    persistence.NewReconcileRunRepositoryGORM(db),
		Inventory:  persistence.NewInventoryRepositoryGORM(db),
		SheetIndex: persistence.NewSheetIndexGORM(db),
	}
}
