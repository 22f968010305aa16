// Package emailer renders a daily record into the prepared report email.
// It is deployed behind its own binary so the function can re-render
// whatever record it is handed, independent of the editing service.
package emailer

import (
	"bytes"
	"fmt"
	"html"

	"github.com/buildtrack/sitereport/internal/domain/models"
	"github.com/buildtrack/sitereport/internal/service/costing"
)

const (
	defaultProject = "Villa Marina Fase 4"
	defaultClient  = "Grupo VerdeAzul"
)

// Render builds the subject, HTML body, and plain-text fallback for the
// report email. Amounts are formatted to two decimals here and nowhere
// earlier.
func Render(req models.EmailRequest) models.EmailData {
	rec := req.Report
	summary := costing.Summarize(rec)

	project := rec.ProjectName
	if project == "" {
		project = defaultProject
	}
	client := rec.ClientName
	if client == "" {
		client = defaultClient
	}

	return models.EmailData{
		To:      req.RecipientEmail,
		Subject: fmt.Sprintf("Reporte Diario - %s - %s", project, req.ReportDate),
		HTML:    renderHTML(rec, summary, project, client, req.ReportDate),
		Text:    fmt.Sprintf("Reporte diario para %s. Costo total: %s", req.ReportDate, formatAmount(summary.DailyTotal)),
	}
}

func renderHTML(rec models.DailyRecord, summary models.DailySummary, project, client, reportDate string) string {
	var buf bytes.Buffer

	buf.WriteString("<!DOCTYPE html>")
	buf.WriteString("<html><head><style>")
	buf.WriteString("body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }")
	buf.WriteString(".container { max-width: 800px; margin: 0 auto; padding: 20px; }")
	buf.WriteString(".header { background: linear-gradient(135deg, #2563eb 0%, #1d4ed8 100%); color: white; padding: 20px; border-radius: 8px; margin-bottom: 20px; }")
	buf.WriteString(".section { background: #f9fafb; padding: 15px; margin-bottom: 15px; border-radius: 8px; border-left: 4px solid #2563eb; }")
	buf.WriteString(".section h2 { margin-top: 0; color: #1e40af; }")
	buf.WriteString(".summary-grid { display: grid; grid-template-columns: 1fr 1fr; gap: 10px; }")
	buf.WriteString(".summary-item { background: white; padding: 10px; border-radius: 4px; }")
	buf.WriteString(".total { background: #fee2e2; border-left-color: #dc2626; padding: 15px; font-size: 18px; font-weight: bold; }")
	buf.WriteString(".label { color: #6b7280; font-size: 14px; }")
	buf.WriteString(".value { color: #111827; font-size: 16px; font-weight: 600; }")
	buf.WriteString("table { width: 100%; border-collapse: collapse; margin-top: 10px; }")
	buf.WriteString("th, td { padding: 8px; text-align: left; border-bottom: 1px solid #e5e7eb; }")
	buf.WriteString("th { background: #f3f4f6; font-weight: 600; }")
	buf.WriteString("</style></head><body>")

	buf.WriteString(`<div class="container">`)

	// Header.
	buf.WriteString(`<div class="header">`)
	buf.WriteString(`<h1 style="margin: 0;">Reporte Diario de Obra</h1>`)
	buf.WriteString(`<p style="margin: 5px 0 0 0; opacity: 0.9;">` + html.EscapeString(project) + `</p>`)
	buf.WriteString(`<p style="margin: 5px 0 0 0; opacity: 0.9;">` + html.EscapeString(reportDate) + `</p>`)
	buf.WriteString(`</div>`)

	// General information.
	buf.WriteString(`<div class="section">`)
	buf.WriteString(`<h2>Información General</h2>`)
	buf.WriteString(`<p><strong>Cliente:</strong> ` + html.EscapeString(client) + `</p>`)
	buf.WriteString(`<p><strong>Supervisor:</strong> ` + orNA(rec.Supervisor) + `</p>`)
	buf.WriteString(`<p><strong>Clima:</strong> ` + orNA(string(rec.Weather)) + `</p>`)
	buf.WriteString(`</div>`)

	// Field personnel table.
	if len(rec.FieldLabor) > 0 {
		buf.WriteString(`<div class="section">`)
		buf.WriteString(fmt.Sprintf(`<h2>Personal de Campo (%d)</h2>`, len(rec.FieldLabor)))
		buf.WriteString(`<table><thead><tr><th>Nombre</th><th>Tipo</th><th>Horas</th><th>Costo</th></tr></thead><tbody>`)
		for _, p := range rec.FieldLabor {
			hours := p.NormalHours + p.OvertimeHours
			buf.WriteString(`<tr>`)
			buf.WriteString(`<td>` + html.EscapeString(p.Name) + `</td>`)
			buf.WriteString(`<td>` + html.EscapeString(p.Role) + `</td>`)
			buf.WriteString(fmt.Sprintf(`<td>%gh</td>`, hours))
			buf.WriteString(`<td>` + formatAmount(hours*p.HourlyRate) + `</td>`)
			buf.WriteString(`</tr>`)
		}
		buf.WriteString(`</tbody></table></div>`)
	}

	// Equipment table.
	if len(rec.Equipment) > 0 {
		buf.WriteString(`<div class="section">`)
		buf.WriteString(fmt.Sprintf(`<h2>Equipos (%d)</h2>`, len(rec.Equipment)))
		buf.WriteString(`<table><thead><tr><th>Equipo</th><th>Operador</th><th>Horas</th><th>Costo</th></tr></thead><tbody>`)
		for _, e := range rec.Equipment {
			buf.WriteString(`<tr>`)
			buf.WriteString(`<td>` + html.EscapeString(e.EquipmentType) + `</td>`)
			buf.WriteString(`<td>` + html.EscapeString(e.Operator) + `</td>`)
			buf.WriteString(fmt.Sprintf(`<td>%gh</td>`, e.HoursWorked))
			buf.WriteString(`<td>` + formatAmount(e.HoursWorked*e.HourlyCost) + `</td>`)
			buf.WriteString(`</tr>`)
		}
		buf.WriteString(`</tbody></table></div>`)
	}

	// Financial summary.
	buf.WriteString(`<div class="section">`)
	buf.WriteString(`<h2>Resumen Financiero</h2>`)
	buf.WriteString(`<div class="summary-grid">`)
	writeSummaryItem(&buf, "Personal Campo", summary.FieldLaborCost)
	writeSummaryItem(&buf, "Personal Admin", summary.AdminLaborCost)
	writeSummaryItem(&buf, "Equipos", summary.EquipmentCost)
	writeSummaryItem(&buf, "Materiales", summary.MaterialsCost)
	buf.WriteString(`</div></div>`)

	// Grand total.
	buf.WriteString(`<div class="section total">`)
	buf.WriteString(`<div style="display: flex; justify-content: space-between; align-items: center;">`)
	buf.WriteString(`<span>COSTO TOTAL DEL DÍA:</span>`)
	buf.WriteString(`<span style="color: #dc2626;">` + formatAmount(summary.DailyTotal) + `</span>`)
	buf.WriteString(`</div></div>`)

	// Observations.
	if rec.GeneralNotes != "" {
		buf.WriteString(`<div class="section">`)
		buf.WriteString(`<h2>Observaciones</h2>`)
		buf.WriteString(`<p>` + html.EscapeString(rec.GeneralNotes) + `</p>`)
		buf.WriteString(`</div>`)
	}

	buf.WriteString(`<div style="margin-top: 30px; padding-top: 20px; border-top: 2px solid #e5e7eb; text-align: center; color: #6b7280; font-size: 12px;">`)
	buf.WriteString(`<p>Este es un reporte automático generado por el Sistema de Control de Obra</p>`)
	buf.WriteString(`</div>`)

	buf.WriteString(`</div></body></html>`)

	return buf.String()
}

func writeSummaryItem(buf *bytes.Buffer, label string, amount float64) {
	buf.WriteString(`<div class="summary-item">`)
	buf.WriteString(`<div class="label">` + html.EscapeString(label) + `</div>`)
	buf.WriteString(`<div class="value">` + formatAmount(amount) + `</div>`)
	buf.WriteString(`</div>`)
}

// formatAmount renders a balboa amount with two decimals, the only place
// cost figures are rounded.
func formatAmount(amount float64) string {
	return fmt.Sprintf("B/. %.2f", amount)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return html.EscapeString(s)
}
