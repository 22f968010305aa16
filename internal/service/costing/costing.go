// Package costing computes the monetary summary of a daily record. All
// functions are pure folds over the record's rows; nothing here rounds,
// formatting to two decimals is the presentation layer's job.
package costing

import "github.com/buildtrack/sitereport/internal/domain/models"

// LaborCost sums (normal + overtime hours) * hourly rate over the rows.
// Rows flagged not present still count; the report bills the roster as
// entered, attendance is informational.
func LaborCost(rows []models.LaborRow) float64 {
	var sum float64
	for _, row := range rows {
		sum += (row.NormalHours + row.OvertimeHours) * row.HourlyRate
	}
	return sum
}

// EquipmentCost sums hours worked * hourly cost over the rows.
func EquipmentCost(rows []models.EquipmentRow) float64 {
	var sum float64
	for _, row := range rows {
		sum += row.HoursWorked * row.HourlyCost
	}
	return sum
}

// MaterialsCost sums the derived line totals over the rows.
func MaterialsCost(rows []models.MaterialRow) float64 {
	var sum float64
	for _, row := range rows {
		sum += row.TotalCost
	}
	return sum
}

// DailyTotal is the grand total across both labor lists, equipment, and
// materials.
func DailyTotal(rec models.DailyRecord) float64 {
	return LaborCost(rec.FieldLabor) +
		LaborCost(rec.AdminLabor) +
		EquipmentCost(rec.Equipment) +
		MaterialsCost(rec.Materials)
}

// Summarize folds a record into its per-category subtotals and grand total.
func Summarize(rec models.DailyRecord) models.DailySummary {
	s := models.DailySummary{
		FieldLaborCost: LaborCost(rec.FieldLabor),
		AdminLaborCost: LaborCost(rec.AdminLabor),
		EquipmentCost:  EquipmentCost(rec.Equipment),
		MaterialsCost:  MaterialsCost(rec.Materials),
	}
	s.DailyTotal = s.FieldLaborCost + s.AdminLaborCost + s.EquipmentCost + s.MaterialsCost
	return s
}
