package report

import (
	"strconv"

	"github.com/buildtrack/sitereport/internal/domain/models"
	"github.com/buildtrack/sitereport/internal/domain/rates"
)

// Field values arrive from JSON, so numbers are float64 and flags are
// bool, but the coercions below also tolerate ints and numeric strings
// the way the original form fed Number() through its inputs.

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// applyLaborField assigns one field on a labor row and fires the derived
// rule: a role that hits the rate table overwrites the hourly rate and
// resets normal hours to the role's daily minimum. Unknown fields and
// mistyped values are ignored.
func applyLaborField(row *models.LaborRow, field string, value any) {
	switch field {
	case "name":
		if s, ok := asString(value); ok {
			row.Name = s
		}
	case "role":
		s, ok := asString(value)
		if !ok {
			return
		}
		row.Role = s
		if rate, found := rates.LookupLaborRate(s); found {
			row.HourlyRate = rate.HourlyRate
			row.NormalHours = rate.MinimumDailyHours
		}
	case "normalHours":
		if f, ok := asFloat(value); ok {
			row.NormalHours = f
		}
	case "overtimeHours":
		if f, ok := asFloat(value); ok {
			row.OvertimeHours = f
		}
	case "assignedTask":
		if s, ok := asString(value); ok {
			row.AssignedTask = s
		}
	case "hourlyRate":
		if f, ok := asFloat(value); ok {
			row.HourlyRate = f
		}
	case "present":
		if b, ok := asBool(value); ok {
			row.Present = b
		}
	}
}

// applyEquipmentField assigns one field on an equipment row. A type that
// hits the rate table overwrites the hourly cost.
func applyEquipmentField(row *models.EquipmentRow, field string, value any) {
	switch field {
	case "equipmentType":
		s, ok := asString(value)
		if !ok {
			return
		}
		row.EquipmentType = s
		if cost, found := rates.LookupEquipmentRate(s); found {
			row.HourlyCost = cost
		}
	case "identifier":
		if s, ok := asString(value); ok {
			row.Identifier = s
		}
	case "operator":
		if s, ok := asString(value); ok {
			row.Operator = s
		}
	case "hoursWorked":
		if f, ok := asFloat(value); ok {
			row.HoursWorked = f
		}
	case "fuelUsed":
		if f, ok := asFloat(value); ok {
			row.FuelUsed = f
		}
	case "assignedTask":
		if s, ok := asString(value); ok {
			row.AssignedTask = s
		}
	case "status":
		if s, ok := asString(value); ok {
			row.Status = models.EquipmentStatus(s)
		}
	case "hourlyCost":
		if f, ok := asFloat(value); ok {
			row.HourlyCost = f
		}
	}
}

// applyMaterialField assigns one field on a material row. Quantity and
// unit-cost edits recompute the line total; totalCost itself is derived
// and never directly editable.
func applyMaterialField(row *models.MaterialRow, field string, value any) {
	switch field {
	case "materialType":
		if s, ok := asString(value); ok {
			row.MaterialType = s
		}
	case "quantity":
		if f, ok := asFloat(value); ok {
			row.Quantity = f
			row.TotalCost = row.Quantity * row.UnitCost
		}
	case "unit":
		if s, ok := asString(value); ok {
			row.Unit = s
		}
	case "supplier":
		if s, ok := asString(value); ok {
			row.Supplier = s
		}
	case "unitCost":
		if f, ok := asFloat(value); ok {
			row.UnitCost = f
			row.TotalCost = row.Quantity * row.UnitCost
		}
	}
}

// applyProgressField assigns one field on a progress row. No derived fields.
func applyProgressField(row *models.ProgressRow, field string, value any) {
	switch field {
	case "contractItemCode":
		if s, ok := asString(value); ok {
			row.ContractItemCode = s
		}
	case "progressToday":
		if f, ok := asFloat(value); ok {
			row.ProgressToday = f
		}
	case "cumulativeProgressPercent":
		if f, ok := asFloat(value); ok {
			row.CumulativeProgressPercent = f
		}
	case "notes":
		if s, ok := asString(value); ok {
			row.Notes = s
		}
	}
}

// applyMetaField assigns one of the record's scalar fields. The date key
// is not editable.
func applyMetaField(rec *models.DailyRecord, field string, value any) {
	switch field {
	case "projectName":
		if s, ok := asString(value); ok {
			rec.ProjectName = s
		}
	case "clientName":
		if s, ok := asString(value); ok {
			rec.ClientName = s
		}
	case "weather":
		if s, ok := asString(value); ok {
			rec.Weather = models.Weather(s)
		}
	case "supervisor":
		if s, ok := asString(value); ok {
			rec.Supervisor = s
		}
	case "generalNotes":
		if s, ok := asString(value); ok {
			rec.GeneralNotes = s
		}
	case "safetyIncidents":
		if s, ok := asString(value); ok {
			rec.SafetyIncidents = s
		}
	}
}

// newRow builds the kind-appropriate default row with a fresh id. Labor
// rows start at a full present day of eight hours, equipment starts
// operational, everything else starts zeroed.
func newRow(section models.Section) any {
	switch section {
	case models.SectionFieldLabor, models.SectionAdminLabor:
		return models.LaborRow{ID: models.NextRowID(), NormalHours: 8, Present: true}
	case models.SectionEquipment:
		return models.EquipmentRow{ID: models.NextRowID(), Status: models.StatusOperational}
	case models.SectionMaterials:
		return models.MaterialRow{ID: models.NextRowID()}
	case models.SectionProgress:
		return models.ProgressRow{ID: models.NextRowID()}
	}
	return nil
}
