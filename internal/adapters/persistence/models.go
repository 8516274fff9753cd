package persistence

import (
	"time"
)

// UnitModel represents the units table
type UnitModel struct {
	ID                     string    `gorm:"column:id;primaryKey"`
	Name                   string    `gorm:"column:name;index;not null"`
	FluffName              string    `gorm:"column:fluff_name;index"`
	Category               string    `gorm:"column:category;not null"`
	Definition             string    `gorm:"column:definition_toml;type:text;not null"` // Design sheet as TOML
	Site                   int       `gorm:"column:site;not null;default:0"`
	Salvage                bool      `gorm:"column:salvage;not null;default:false"`
	ForceID                int       `gorm:"column:force_id;not null"`
	ScenarioID             int       `gorm:"column:scenario_id;not null"`
	DaysToArrival          int       `gorm:"column:days_to_arrival;not null;default:0"`
	Drivers                string    `gorm:"column:drivers;type:text"`                  // JSON array of person refs
	Gunners                string    `gorm:"column:gunners;type:text"`                  // JSON array of person refs
	VesselCrew             string    `gorm:"column:vessel_crew;type:text"`              // JSON array of person refs
	Navigator              string    `gorm:"column:navigator"`
	TechOfficer            string    `gorm:"column:tech_officer"`
	Tech                   string    `gorm:"column:tech"`
	Mothballed             bool      `gorm:"column:mothballed;not null;default:false"`
	MothballTime           int       `gorm:"column:mothball_time;not null;default:0"`
	MothballSnapshot       string    `gorm:"column:mothball_snapshot;type:text"`        // JSON, empty when none
	DaysSinceMaintenance   int       `gorm:"column:days_since_maintenance;not null;default:0"`
	DaysActivelyMaintained int       `gorm:"column:days_actively_maintained;not null;default:0"`
	AstechDaysMaintained   int       `gorm:"column:astech_days_maintained;not null;default:0"`
	History                string    `gorm:"column:history;type:text"`
	LastMaintenanceReport  string    `gorm:"column:last_maintenance_report;type:text"`
	RefitDefinition        string    `gorm:"column:refit_definition_toml;type:text"`    // Empty when no refit is pending
	RefitMinutesLeft       int       `gorm:"column:refit_minutes_left;not null;default:0"`
	RefitTech              string    `gorm:"column:refit_tech"`
	RefitCost              float64   `gorm:"column:refit_cost;not null;default:0"`
	UpdatedAt              time.Time `gorm:"column:updated_at;not null"`
}

func (UnitModel) TableName() string {
	return "units"
}

// PartModel represents the parts table
type PartModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	UnitID      string     `gorm:"column:unit_id;not null;index:idx_parts_unit_key,unique"`
	Unit        *UnitModel `gorm:"foreignKey:UnitID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Key         string     `gorm:"column:part_key;not null;index:idx_parts_unit_key,unique"`
	Kind        string     `gorm:"column:kind;not null"`
	Name        string     `gorm:"column:name;not null"`
	Missing     bool       `gorm:"column:missing;not null;default:false"`
	Spec        string     `gorm:"column:spec;type:text;not null"` // JSON
	Quality     int        `gorm:"column:quality;not null"`
	Salvaging   bool       `gorm:"column:salvaging;not null;default:false"`
	TechID      string     `gorm:"column:tech_id"`
	MinutesLeft int        `gorm:"column:minutes_left;not null;default:0"`
	ParentID    string     `gorm:"column:parent_id"`
	ChildIDs    string     `gorm:"column:child_ids;type:text"`     // JSON array
}

func (PartModel) TableName() string {
	return "parts"
}

// PersonModel represents the people table
type PersonModel struct {
	ID           string `gorm:"column:id;primaryKey"`
	LegacyID     int    `gorm:"column:legacy_id;index;not null;default:0"` // Integer surrogate of older saves, 0 when none
	Name         string `gorm:"column:name;not null"`
	Callsign     string `gorm:"column:callsign"`
	Rank         int    `gorm:"column:rank;not null;default:0"`
	Hits         int    `gorm:"column:hits;not null;default:0"`
	Active       bool   `gorm:"column:active;not null"`
	Toughness    int    `gorm:"column:toughness;not null;default:0"`
	Edge         int    `gorm:"column:edge;not null;default:0"`
	MinutesLeft  int    `gorm:"column:minutes_left;not null;default:0"`
	OvertimeLeft int    `gorm:"column:overtime_left;not null;default:0"`
	Astechs      int    `gorm:"column:astechs;not null;default:0"`
	PilotingMod  int    `gorm:"column:piloting_mod;not null;default:0"`
	GunneryMod   int    `gorm:"column:gunnery_mod;not null;default:0"`
	Skills       string `gorm:"column:skills;type:text"`                   // JSON object
	Abilities    string `gorm:"column:abilities;type:text"`                // JSON object
}

func (PersonModel) TableName() string {
	return "people"
}

// UnitSheetModel represents the unit_sheets table: the design sheet a unit
// was imported from
type UnitSheetModel struct {
	UnitID string     `gorm:"column:unit_id;primaryKey"`
	Unit   *UnitModel `gorm:"foreignKey:UnitID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Path   string     `gorm:"column:path;index;not null"`
}

func (UnitSheetModel) TableName() string {
	return "unit_sheets"
}

// ReconcileRunModel represents the reconcile_runs table
type ReconcileRunModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	UnitID       string    `gorm:"column:unit_id;index;not null"`
	Trigger      string    `gorm:"column:run_trigger;not null"`
	Created      int       `gorm:"column:created;not null;default:0"`
	Removed      int       `gorm:"column:removed;not null;default:0"`
	Refreshed    int       `gorm:"column:refreshed;not null;default:0"`
	Promoted     int       `gorm:"column:promoted;not null;default:0"`
	Inconsistent int       `gorm:"column:inconsistent;not null;default:0"`
	RanAt        time.Time `gorm:"column:ran_at;index;not null"`
}

func (ReconcileRunModel) TableName() string {
	return "reconcile_runs"
}

// StockModel represents the spare_parts table
type StockModel struct {
	PartName string `gorm:"column:part_name;primaryKey"`
	Quantity int    `gorm:"column:quantity;not null;default:0"`
}

func (StockModel) TableName() string {
	return "spare_parts"
}

// AllModels lists every table for auto-migration
func AllModels() []interface{} {
	return []interface{}{
		&UnitModel{},
		&PartModel{},
		&PersonModel{},
		&UnitSheetModel{},
		&ReconcileRunModel{},
		&StockModel{},
	}
}
