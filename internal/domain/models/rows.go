package models

import "sync/atomic"

var rowSeq atomic.Int64

// NextRowID mints a row identifier that is unique for the lifetime of the
// process. Identifiers are never reused, so a removed row's id stays dead.
func NextRowID() int64 {
	return rowSeq.Add(1)
}

// Section identifies one of the five row collections inside a DailyRecord.
type Section string

const (
	SectionFieldLabor Section = "fieldLabor"
	SectionAdminLabor Section = "adminLabor"
	SectionEquipment  Section = "equipment"
	SectionMaterials  Section = "materials"
	SectionProgress   Section = "progress"
)

// Valid reports whether s names a known row collection.
func (s Section) Valid() bool {
	switch s {
	case SectionFieldLabor, SectionAdminLabor, SectionEquipment, SectionMaterials, SectionProgress:
		return true
	}
	return false
}

// EquipmentStatus is the operational state of a machine for the day.
type EquipmentStatus string

const (
	StatusOperational EquipmentStatus = "Operational"
	StatusMaintenance EquipmentStatus = "Maintenance"
	StatusBroken      EquipmentStatus = "Broken"
	StatusStandby     EquipmentStatus = "Standby"
)

// Weather is the recorded site weather for the day. Empty means not set.
type Weather string

const (
	WeatherSunny  Weather = "Sunny"
	WeatherCloudy Weather = "Cloudy"
	WeatherRainy  Weather = "Rainy"
)

// LaborRow is a single person entry, used for both field and administrative
// personnel. Setting Role to a known rate-table key overwrites HourlyRate
// and NormalHours from the table.
type LaborRow struct {
	ID            int64   `bson:"id" json:"id"`
	Name          string  `bson:"name" json:"name"`
	Role          string  `bson:"role" json:"role"`
	NormalHours   float64 `bson:"normal_hours" json:"normalHours"`
	OvertimeHours float64 `bson:"overtime_hours" json:"overtimeHours"`
	AssignedTask  string  `bson:"assigned_task" json:"assignedTask"`
	HourlyRate    float64 `bson:"hourly_rate" json:"hourlyRate"`
	Present       bool    `bson:"present" json:"present"`
}

// EquipmentRow is a single machine entry. Setting EquipmentType to a known
// rate-table key overwrites HourlyCost.
type EquipmentRow struct {
	ID            int64           `bson:"id" json:"id"`
	EquipmentType string          `bson:"equipment_type" json:"equipmentType"`
	Identifier    string          `bson:"identifier" json:"identifier"`
	Operator      string          `bson:"operator" json:"operator"`
	HoursWorked   float64         `bson:"hours_worked" json:"hoursWorked"`
	FuelUsed      float64         `bson:"fuel_used" json:"fuelUsed"`
	AssignedTask  string          `bson:"assigned_task" json:"assignedTask"`
	Status        EquipmentStatus `bson:"status" json:"status"`
	HourlyCost    float64         `bson:"hourly_cost" json:"hourlyCost"`
}

// MaterialRow is a single material delivery entry. TotalCost is derived:
// it always equals Quantity * UnitCost and is never edited directly.
type MaterialRow struct {
	ID           int64   `bson:"id" json:"id"`
	MaterialType string  `bson:"material_type" json:"materialType"`
	Quantity     float64 `bson:"quantity" json:"quantity"`
	Unit         string  `bson:"unit" json:"unit"`
	Supplier     string  `bson:"supplier" json:"supplier"`
	UnitCost     float64 `bson:"unit_cost" json:"unitCost"`
	TotalCost    float64 `bson:"total_cost" json:"totalCost"`
}

// ProgressRow tracks daily progress against one contract line item.
type ProgressRow struct {
	ID                        int64   `bson:"id" json:"id"`
	ContractItemCode          string  `bson:"contract_item_code" json:"contractItemCode"`
	ProgressToday             float64 `bson:"progress_today" json:"progressToday"`
	CumulativeProgressPercent float64 `bson:"cumulative_progress_percent" json:"cumulativeProgressPercent"`
	Notes                     string  `bson:"notes" json:"notes"`
}
