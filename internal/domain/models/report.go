package models

import "time"

// DateLayout is the calendar-date key format used throughout the store.
const DateLayout = "2006-01-02"

// DailyRecord is the full site report for one calendar date. Exactly one
// record exists per date; the record owns its rows.
type DailyRecord struct {
	Date            string         `bson:"date" json:"date"`
	ProjectName     string         `bson:"project_name" json:"projectName"`
	ClientName      string         `bson:"client_name" json:"clientName"`
	Weather         Weather        `bson:"weather" json:"weather"`
	Supervisor      string         `bson:"supervisor" json:"supervisor"`
	FieldLabor      []LaborRow     `bson:"field_labor" json:"fieldLabor"`
	AdminLabor      []LaborRow     `bson:"admin_labor" json:"adminLabor"`
	Equipment       []EquipmentRow `bson:"equipment" json:"equipment"`
	Materials       []MaterialRow  `bson:"materials" json:"materials"`
	Progress        []ProgressRow  `bson:"progress" json:"progress"`
	GeneralNotes    string         `bson:"general_notes" json:"generalNotes"`
	SafetyIncidents string         `bson:"safety_incidents" json:"safetyIncidents"`
}

// Clone returns a deep copy of the record. Row structs hold no reference
// types, so copying the slices is sufficient. Empty sections stay non-nil
// so they serialize as [] rather than null.
func (r DailyRecord) Clone() DailyRecord {
	out := r
	out.FieldLabor = append([]LaborRow{}, r.FieldLabor...)
	out.AdminLabor = append([]LaborRow{}, r.AdminLabor...)
	out.Equipment = append([]EquipmentRow{}, r.Equipment...)
	out.Materials = append([]MaterialRow{}, r.Materials...)
	out.Progress = append([]ProgressRow{}, r.Progress...)
	return out
}

// DailySummary holds the per-category cost subtotals and the grand total
// for one day. Values are unrounded; formatting happens at presentation.
type DailySummary struct {
	FieldLaborCost float64 `bson:"field_labor_cost" json:"fieldLaborCost"`
	AdminLaborCost float64 `bson:"admin_labor_cost" json:"adminLaborCost"`
	EquipmentCost  float64 `bson:"equipment_cost" json:"equipmentCost"`
	MaterialsCost  float64 `bson:"materials_cost" json:"materialsCost"`
	DailyTotal     float64 `bson:"daily_total" json:"dailyTotal"`
}

// ReportDocument is the shareable form of a day's report: the record, its
// cost summary, and a generation timestamp. It is what the copy and email
// paths transport.
type ReportDocument struct {
	Record      DailyRecord  `json:"record"`
	Summary     DailySummary `json:"summary"`
	GeneratedAt time.Time    `json:"generatedAt"`
}

// SnapshotSchemaVersion identifies the current export layout.
const SnapshotSchemaVersion = 1

// Snapshot is the full-store export: every record keyed by ISO date.
type Snapshot struct {
	SchemaVersion int                    `json:"schemaVersion"`
	GeneratedAt   time.Time              `json:"generatedAt"`
	Reports       map[string]DailyRecord `json:"reports"`
}

// ArchivedReport is the shape stored in MongoDB when a day is submitted.
type ArchivedReport struct {
	Date      string       `bson:"date" json:"date"`
	Record    DailyRecord  `bson:"record" json:"record"`
	Summary   DailySummary `bson:"summary" json:"summary"`
	CreatedAt time.Time    `bson:"created_at" json:"createdAt"`
}
