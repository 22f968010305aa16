// Package memory implements the in-process record store. The store is the
// sole owner of every DailyRecord; it hands out deep copies and applies
// mutations under its own lock. Nothing is persisted automatically, the
// only durability is the explicit snapshot export.
package memory

import (
	"sort"
	"sync"

	"github.com/buildtrack/sitereport/internal/domain/models"
)

// Store maps ISO calendar dates to daily records. It starts empty; a
// record comes into existence the first time a date is edited.
type Store struct {
	mu          sync.RWMutex
	reports     map[string]*models.DailyRecord
	projectName string
	clientName  string
}

// NewStore creates an empty store. New records are pre-filled with the
// given project and client names.
func NewStore(projectName, clientName string) *Store {
	return &Store{
		reports:     make(map[string]*models.DailyRecord),
		projectName: projectName,
		clientName:  clientName,
	}
}

func (s *Store) newRecord(date string) *models.DailyRecord {
	return &models.DailyRecord{
		Date:        date,
		ProjectName: s.projectName,
		ClientName:  s.clientName,
		FieldLabor:  []models.LaborRow{},
		AdminLabor:  []models.LaborRow{},
		Equipment:   []models.EquipmentRow{},
		Materials:   []models.MaterialRow{},
		Progress:    []models.ProgressRow{},
	}
}

// Get returns a copy of the record for date, reporting whether it exists.
func (s *Store) Get(date string) (models.DailyRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.reports[date]
	if !ok {
		return models.DailyRecord{}, false
	}
	return rec.Clone(), true
}

// Update applies fn to the record for date, creating the record first if
// the date has never been edited. It returns a copy of the record after
// the mutation.
func (s *Store) Update(date string, fn func(*models.DailyRecord)) models.DailyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.reports[date]
	if !ok {
		rec = s.newRecord(date)
		s.reports[date] = rec
	}
	fn(rec)
	return rec.Clone()
}

// Put stores rec at date, overwriting any existing record there.
func (s *Store) Put(date string, rec models.DailyRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := rec.Clone()
	clone.Date = date
	s.reports[date] = &clone
}

// Snapshot returns a deep copy of every record, keyed by date.
func (s *Store) Snapshot() map[string]models.DailyRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]models.DailyRecord, len(s.reports))
	for date, rec := range s.reports {
		out[date] = rec.Clone()
	}
	return out
}

// Dates returns the dates with a record, sorted ascending.
func (s *Store) Dates() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dates := make([]string, 0, len(s.reports))
	for date := range s.reports {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// Count returns the number of stored records.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}

// Reset discards every record. The only way records are ever deleted.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = make(map[string]*models.DailyRecord)
}
