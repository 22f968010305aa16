package report

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/buildtrack/sitereport/internal/domain/models"
	"github.com/buildtrack/sitereport/internal/repository/memory"
	"github.com/buildtrack/sitereport/internal/service/costing"
)

const (
	day      = "2025-03-01"
	nextDay  = "2025-03-02"
	noSuchID = int64(987654)
)

func newTestService() (*Service, *memory.Store) {
	store := memory.NewStore("Villa Marina Fase 4", "Grupo VerdeAzul")
	return NewService(store, nil, nil, nil, nil), store
}

func addLaborRow(t *testing.T, svc *Service, section models.Section) models.LaborRow {
	t.Helper()
	row, err := svc.AddRow(day, section)
	if err != nil {
		t.Fatalf("AddRow: %v", err)
	}
	labor, ok := row.(models.LaborRow)
	if !ok {
		t.Fatalf("AddRow returned %T, want LaborRow", row)
	}
	return labor
}

func addMaterialRow(t *testing.T, svc *Service) models.MaterialRow {
	t.Helper()
	row, err := svc.AddRow(day, models.SectionMaterials)
	if err != nil {
		t.Fatalf("AddRow: %v", err)
	}
	mat, ok := row.(models.MaterialRow)
	if !ok {
		t.Fatalf("AddRow returned %T, want MaterialRow", row)
	}
	return mat
}

func TestAddRowDefaults(t *testing.T) {
	svc, _ := newTestService()

	labor := addLaborRow(t, svc, models.SectionFieldLabor)
	if labor.ID == 0 {
		t.Error("labor row should get a fresh id")
	}
	if labor.NormalHours != 8 || !labor.Present {
		t.Errorf("labor defaults = %+v, want 8 normal hours and present", labor)
	}

	row, err := svc.AddRow(day, models.SectionEquipment)
	if err != nil {
		t.Fatalf("AddRow equipment: %v", err)
	}
	equip := row.(models.EquipmentRow)
	if equip.Status != models.StatusOperational {
		t.Errorf("equipment status = %q, want Operational", equip.Status)
	}
	if equip.ID == labor.ID {
		t.Error("row ids must be unique")
	}

	if _, err := svc.AddRow(day, models.Section("acarreos")); !errors.Is(err, ErrUnknownSection) {
		t.Errorf("unknown section error = %v, want ErrUnknownSection", err)
	}
}

func TestAddRowCreatesRecordLazily(t *testing.T) {
	svc, store := newTestService()

	if _, err := svc.Record(day); !errors.Is(err, ErrNoReport) {
		t.Fatalf("reading an unedited date should be ErrNoReport, got %v", err)
	}

	addLaborRow(t, svc, models.SectionFieldLabor)

	if store.Count() != 1 {
		t.Error("first edit should create the day's record")
	}
}

func TestRoleAutofillsRateAndHours(t *testing.T) {
	svc, _ := newTestService()
	labor := addLaborRow(t, svc, models.SectionFieldLabor)

	rec, err := svc.UpdateField(day, models.SectionFieldLabor, labor.ID, "role", "Operador Excavadora")
	if err != nil {
		t.Fatalf("UpdateField: %v", err)
	}

	got := rec.FieldLabor[0]
	if got.HourlyRate != 18.50 {
		t.Errorf("hourly rate = %v, want 18.50", got.HourlyRate)
	}
	if got.NormalHours != 4 {
		t.Errorf("normal hours = %v, want the role's 4h minimum", got.NormalHours)
	}

	// The autofilled hours stay user-overridable.
	rec, _ = svc.UpdateField(day, models.SectionFieldLabor, labor.ID, "normalHours", 6.0)
	if rec.FieldLabor[0].NormalHours != 6 {
		t.Error("normal hours should remain editable after the autofill")
	}

	// An unknown role keeps the prior rate untouched.
	rec, _ = svc.UpdateField(day, models.SectionFieldLabor, labor.ID, "role", "Soldador")
	if rec.FieldLabor[0].Role != "Soldador" {
		t.Error("role assignment itself must still apply")
	}
	if rec.FieldLabor[0].HourlyRate != 18.50 {
		t.Error("a rate-table miss must leave the prior rate unchanged")
	}
}

func TestLaborScenarioExcavatorOperator(t *testing.T) {
	svc, _ := newTestService()
	labor := addLaborRow(t, svc, models.SectionFieldLabor)

	svc.UpdateField(day, models.SectionFieldLabor, labor.ID, "role", "Operador Excavadora")
	rec, _ := svc.UpdateField(day, models.SectionFieldLabor, labor.ID, "overtimeHours", 2.0)

	if got := costing.LaborCost(rec.FieldLabor); got != 111.00 {
		t.Errorf("labor cost = %v, want (4+2)*18.50 = 111.00", got)
	}
}

func TestEquipmentTypeAutofillsCost(t *testing.T) {
	svc, _ := newTestService()
	row, _ := svc.AddRow(day, models.SectionEquipment)
	equip := row.(models.EquipmentRow)

	rec, _ := svc.UpdateField(day, models.SectionEquipment, equip.ID, "equipmentType", "Volqueta 10m³")
	if rec.Equipment[0].HourlyCost != 75.00 {
		t.Errorf("hourly cost = %v, want 75.00", rec.Equipment[0].HourlyCost)
	}

	rec, _ = svc.UpdateField(day, models.SectionEquipment, equip.ID, "equipmentType", "Grúa Torre")
	if rec.Equipment[0].HourlyCost != 75.00 {
		t.Error("a rate-table miss must leave the prior cost unchanged")
	}
}

func TestMaterialTotalRecomputes(t *testing.T) {
	svc, _ := newTestService()
	mat := addMaterialRow(t, svc)

	svc.UpdateField(day, models.SectionMaterials, mat.ID, "quantity", 10.0)
	rec, _ := svc.UpdateField(day, models.SectionMaterials, mat.ID, "unitCost", 5.25)
	if rec.Materials[0].TotalCost != 52.50 {
		t.Errorf("total = %v, want 52.50", rec.Materials[0].TotalCost)
	}

	rec, _ = svc.UpdateField(day, models.SectionMaterials, mat.ID, "quantity", 12.0)
	if rec.Materials[0].TotalCost != 63.00 {
		t.Errorf("total = %v, want 63.00", rec.Materials[0].TotalCost)
	}
}

func TestMaterialTotalNotDirectlyEditable(t *testing.T) {
	svc, _ := newTestService()
	mat := addMaterialRow(t, svc)

	svc.UpdateField(day, models.SectionMaterials, mat.ID, "quantity", 10.0)
	svc.UpdateField(day, models.SectionMaterials, mat.ID, "unitCost", 5.25)
	rec, _ := svc.UpdateField(day, models.SectionMaterials, mat.ID, "totalCost", 999.0)

	if rec.Materials[0].TotalCost != 52.50 {
		t.Errorf("total = %v, direct edits to the derived field must be ignored", rec.Materials[0].TotalCost)
	}
}

func TestUpdateUnknownFieldOrRowIsNoOp(t *testing.T) {
	svc, _ := newTestService()
	labor := addLaborRow(t, svc, models.SectionAdminLabor)
	svc.UpdateField(day, models.SectionAdminLabor, labor.ID, "name", "R. Pinto")

	before, _ := svc.Record(day)

	// Unknown field name.
	after, _ := svc.UpdateField(day, models.SectionAdminLabor, labor.ID, "salary", 1000.0)
	if !reflect.DeepEqual(before, after) {
		t.Error("unknown field must be a no-op")
	}

	// Unknown row id: the UI may race a deletion, never an error.
	after, err := svc.UpdateField(day, models.SectionAdminLabor, noSuchID, "name", "ghost")
	if err != nil {
		t.Fatalf("unknown row id should not error: %v", err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Error("unknown row id must be a no-op")
	}
}

func TestRemoveThenUpdateIsNoOp(t *testing.T) {
	svc, _ := newTestService()
	keep := addLaborRow(t, svc, models.SectionFieldLabor)
	gone := addLaborRow(t, svc, models.SectionFieldLabor)
	svc.UpdateField(day, models.SectionFieldLabor, keep.ID, "name", "Ana")

	rec, err := svc.RemoveRow(day, models.SectionFieldLabor, gone.ID)
	if err != nil {
		t.Fatalf("RemoveRow: %v", err)
	}
	if len(rec.FieldLabor) != 1 || rec.FieldLabor[0].ID != keep.ID {
		t.Fatalf("remove left %+v", rec.FieldLabor)
	}

	after, _ := svc.UpdateField(day, models.SectionFieldLabor, gone.ID, "name", "ghost")
	if !reflect.DeepEqual(rec, after) {
		t.Error("updating a removed row must leave the collection unchanged")
	}

	// Removing an id twice is equally harmless.
	again, _ := svc.RemoveRow(day, models.SectionFieldLabor, gone.ID)
	if !reflect.DeepEqual(rec, again) {
		t.Error("removing an absent id must be a no-op")
	}
}

func TestUpdateMeta(t *testing.T) {
	svc, _ := newTestService()

	svc.UpdateMeta(day, "supervisor", "C. Mendoza")
	svc.UpdateMeta(day, "weather", "Rainy")
	rec := svc.UpdateMeta(day, "date", "1999-01-01")

	if rec.Supervisor != "C. Mendoza" {
		t.Errorf("supervisor = %q", rec.Supervisor)
	}
	if rec.Weather != models.WeatherRainy {
		t.Errorf("weather = %q", rec.Weather)
	}
	if rec.Date != day {
		t.Error("the date key must not be editable")
	}
}

func TestCarryForward(t *testing.T) {
	svc, _ := newTestService()

	// Two field workers, one flagged absent, one with an unmatched role.
	a := addLaborRow(t, svc, models.SectionFieldLabor)
	svc.UpdateField(day, models.SectionFieldLabor, a.ID, "role", "Operador Excavadora")
	svc.UpdateField(day, models.SectionFieldLabor, a.ID, "normalHours", 8.0)
	svc.UpdateField(day, models.SectionFieldLabor, a.ID, "overtimeHours", 3.0)

	b := addLaborRow(t, svc, models.SectionFieldLabor)
	svc.UpdateField(day, models.SectionFieldLabor, b.ID, "role", "Soldador")
	svc.UpdateField(day, models.SectionFieldLabor, b.ID, "normalHours", 4.0)
	svc.UpdateField(day, models.SectionFieldLabor, b.ID, "present", false)

	eq, _ := svc.AddRow(day, models.SectionEquipment)
	equip := eq.(models.EquipmentRow)
	svc.UpdateField(day, models.SectionEquipment, equip.ID, "equipmentType", "Excavadora CAT 320")
	svc.UpdateField(day, models.SectionEquipment, equip.ID, "hoursWorked", 6.0)
	svc.UpdateField(day, models.SectionEquipment, equip.ID, "fuelUsed", 40.0)

	mat := addMaterialRow(t, svc)
	svc.UpdateField(day, models.SectionMaterials, mat.ID, "quantity", 10.0)
	svc.AddRow(day, models.SectionProgress)
	svc.UpdateMeta(day, "generalNotes", "poured slab at north wing")
	svc.UpdateMeta(day, "supervisor", "C. Mendoza")
	svc.UpdateMeta(day, "weather", "Sunny")

	next, err := svc.CarryForward(day, nextDay)
	if err != nil {
		t.Fatalf("CarryForward: %v", err)
	}

	if next.Date != nextDay {
		t.Errorf("date = %q, want %q", next.Date, nextDay)
	}
	if len(next.FieldLabor) != 2 {
		t.Fatalf("field labor rows = %d, want 2", len(next.FieldLabor))
	}

	first := next.FieldLabor[0]
	if first.NormalHours != 4 {
		t.Errorf("matched role hours = %v, want the 4h tariff minimum", first.NormalHours)
	}
	if first.OvertimeHours != 0 {
		t.Error("overtime must reset to 0")
	}
	if !first.Present {
		t.Error("presence must be forced on")
	}
	if first.ID != a.ID {
		t.Error("carried rows keep their identity")
	}

	second := next.FieldLabor[1]
	if second.NormalHours != 4 {
		t.Errorf("unmatched role hours = %v, want the prior 4h kept", second.NormalHours)
	}
	if !second.Present {
		t.Error("the absent worker must come back present")
	}

	if next.Equipment[0].HoursWorked != 0 || next.Equipment[0].FuelUsed != 0 {
		t.Error("equipment hours and fuel must reset to 0")
	}
	if next.Equipment[0].HourlyCost != 125.00 {
		t.Error("equipment rate and identity fields must carry over")
	}

	if len(next.Materials) != 0 || len(next.Progress) != 0 {
		t.Error("materials and progress are not carried forward")
	}
	if next.GeneralNotes != "" {
		t.Error("general notes must reset")
	}
	if next.Supervisor != "C. Mendoza" || next.Weather != models.WeatherSunny {
		t.Error("supervisor and weather carry over from the prior day")
	}

	// The prior day is untouched.
	prior, _ := svc.Record(day)
	if prior.FieldLabor[0].OvertimeHours != 3 || len(prior.Materials) != 1 {
		t.Error("carry-forward must not mutate the source record")
	}
}

func TestCarryForwardOverwritesTarget(t *testing.T) {
	svc, _ := newTestService()
	addLaborRow(t, svc, models.SectionFieldLabor)
	svc.UpdateMeta(nextDay, "generalNotes", "stale draft")

	next, err := svc.CarryForward(day, nextDay)
	if err != nil {
		t.Fatalf("CarryForward: %v", err)
	}
	if next.GeneralNotes != "" || len(next.FieldLabor) != 1 {
		t.Error("carry-forward must overwrite whatever was at the target date")
	}
}

func TestCarryForwardMissingSource(t *testing.T) {
	svc, store := newTestService()
	svc.UpdateMeta(nextDay, "generalNotes", "already here")
	before, _ := store.Get(nextDay)

	_, err := svc.CarryForward("2020-01-01", nextDay)
	if !errors.Is(err, ErrNoPriorReport) {
		t.Fatalf("err = %v, want ErrNoPriorReport", err)
	}

	after, ok := store.Get(nextDay)
	if !ok || !reflect.DeepEqual(before, after) {
		t.Error("a failed carry-forward must leave the store unchanged")
	}
	if store.Count() != 1 {
		t.Errorf("store count = %d, want 1", store.Count())
	}
}

func TestExportSnapshot(t *testing.T) {
	svc, _ := newTestService()
	addLaborRow(t, svc, models.SectionFieldLabor)
	svc.UpdateMeta(nextDay, "weather", "Cloudy")

	snap := svc.ExportSnapshot()

	if snap.SchemaVersion != models.SnapshotSchemaVersion {
		t.Errorf("schema version = %d", snap.SchemaVersion)
	}
	if len(snap.Reports) != 2 {
		t.Fatalf("snapshot has %d reports, want 2", len(snap.Reports))
	}
	if _, ok := snap.Reports[day]; !ok {
		t.Error("snapshot missing the edited day")
	}
	if snap.GeneratedAt.IsZero() {
		t.Error("snapshot should carry a generation timestamp")
	}
}

func TestBuildDocument(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.BuildDocument(day); !errors.Is(err, ErrNoReport) {
		t.Fatalf("err = %v, want ErrNoReport", err)
	}

	labor := addLaborRow(t, svc, models.SectionFieldLabor)
	svc.UpdateField(day, models.SectionFieldLabor, labor.ID, "role", "Operador Excavadora")

	doc, err := svc.BuildDocument(day)
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}
	if doc.Summary.FieldLaborCost != 74.00 {
		t.Errorf("document summary field labor = %v, want 4*18.50 = 74.00", doc.Summary.FieldLaborCost)
	}
	if doc.GeneratedAt.IsZero() {
		t.Error("document should carry a generation timestamp")
	}
}

// ---------------------------------------------------------------------------
// Collaborator fakes
// ---------------------------------------------------------------------------

type fakeArchiver struct {
	archived []models.ArchivedReport
	err      error
}

func (f *fakeArchiver) ArchiveReport(_ context.Context, report models.ArchivedReport) error {
	if f.err != nil {
		return f.err
	}
	f.archived = append(f.archived, report)
	return nil
}

type fakeLedger struct {
	rows []models.DailySummary
	err  error
}

func (f *fakeLedger) AppendSummary(_ context.Context, _ string, summary models.DailySummary) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, summary)
	return nil
}

type fakeMailer struct {
	req  models.EmailRequest
	data *models.EmailData
	err  error
}

func (f *fakeMailer) SendReportEmail(_ context.Context, req models.EmailRequest) (*models.EmailData, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func TestSubmit(t *testing.T) {
	store := memory.NewStore("p", "c")
	archiver := &fakeArchiver{}
	ledger := &fakeLedger{}
	svc := NewService(store, archiver, ledger, nil, nil)

	if _, err := svc.Submit(context.Background(), day); !errors.Is(err, ErrNoReport) {
		t.Fatalf("err = %v, want ErrNoReport", err)
	}

	store.Update(day, func(r *models.DailyRecord) {
		r.Materials = append(r.Materials, models.MaterialRow{ID: 1, Quantity: 10, UnitCost: 5.25, TotalCost: 52.50})
	})

	summary, err := svc.Submit(context.Background(), day)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if summary.DailyTotal != 52.50 {
		t.Errorf("summary total = %v, want 52.50", summary.DailyTotal)
	}
	if len(archiver.archived) != 1 || archiver.archived[0].Date != day {
		t.Error("submit should archive the day's report")
	}
	if len(ledger.rows) != 1 {
		t.Error("submit should append a ledger row")
	}
}

func TestSubmitSurfacesCollaboratorFailure(t *testing.T) {
	store := memory.NewStore("p", "c")
	archiver := &fakeArchiver{err: errors.New("mongo down")}
	svc := NewService(store, archiver, nil, nil, nil)

	store.Update(day, func(*models.DailyRecord) {})
	before, _ := store.Get(day)

	if _, err := svc.Submit(context.Background(), day); err == nil {
		t.Fatal("archive failure must surface")
	}

	after, _ := store.Get(day)
	if !reflect.DeepEqual(before, after) {
		t.Error("a failed submit must not mutate the store")
	}
}

func TestEmailReport(t *testing.T) {
	store := memory.NewStore("p", "c")
	mailer := &fakeMailer{data: &models.EmailData{To: "jefe@obra.pa", Subject: "Reporte"}}
	svc := NewService(store, nil, nil, mailer, nil)

	if _, err := svc.EmailReport(context.Background(), day, "jefe@obra.pa"); !errors.Is(err, ErrNoReport) {
		t.Fatalf("err = %v, want ErrNoReport", err)
	}

	store.Update(day, func(r *models.DailyRecord) {
		r.Supervisor = "C. Mendoza"
	})

	data, err := svc.EmailReport(context.Background(), day, "jefe@obra.pa")
	if err != nil {
		t.Fatalf("EmailReport: %v", err)
	}
	if data.To != "jefe@obra.pa" {
		t.Errorf("to = %q", data.To)
	}
	if mailer.req.ReportDate != day || mailer.req.Report.Supervisor != "C. Mendoza" {
		t.Error("the mailer must receive the date and the full record")
	}
}

func TestEmailReportNotConfigured(t *testing.T) {
	svc, _ := newTestService()
	svc.UpdateMeta(day, "supervisor", "x")

	if _, err := svc.EmailReport(context.Background(), day, "a@b.c"); !errors.Is(err, ErrEmailNotConfigured) {
		t.Fatalf("err = %v, want ErrEmailNotConfigured", err)
	}
}
