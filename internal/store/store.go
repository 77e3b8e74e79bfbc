// Package store persists extracted hierarchies in an embedded badgerhold
// database and answers the lookup, search, and export queries the API serves.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ayodele/xtractor/internal/hierarchy"
)

// ErrNotFound is returned when a record with the given ID does not exist.
var ErrNotFound = errors.New("not found")

// Store wraps the badgerhold database.
type Store struct {
	db  *badgerhold.Store
	log *slog.Logger
}

// Open opens (creating if needed) the database at path.
func Open(path string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = path
	options.ValueDir = path
	options.Logger = nil

	db, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	log.Info("database opened", "path", path)
	return &Store{db: db, log: log}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveDocument persists an extracted document, creating missing states, LGAs,
// and wards and skipping ones already present. It writes an extraction log
// for the run and returns it with the created counts filled in.
func (s *Store) SaveDocument(doc *hierarchy.Document, filename string) (*ExtractionLog, error) {
	logRec := &ExtractionLog{
		ID:        uuid.NewString(),
		Filename:  filename,
		Status:    LogInProgress,
		CreatedAt: time.Now(),
	}
	if err := s.db.Insert(logRec.ID, logRec); err != nil {
		return nil, fmt.Errorf("create extraction log: %w", err)
	}

	lgas, wards, err := s.saveTree(doc)
	logRec.LGAsExtracted = lgas
	logRec.WardsExtracted = wards
	logRec.CompletedAt = time.Now()
	if err != nil {
		logRec.Status = LogFailed
		logRec.Error = err.Error()
	} else {
		logRec.Status = LogSuccess
	}
	if updErr := s.db.Update(logRec.ID, logRec); updErr != nil {
		s.log.Error("update extraction log failed", "error", updErr)
	}
	if err != nil {
		return logRec, fmt.Errorf("save document: %w", err)
	}
	return logRec, nil
}

func (s *Store) saveTree(doc *hierarchy.Document) (int, int, error) {
	lgasCreated, wardsCreated := 0, 0
	for _, state := range doc.States {
		if len(state.LGAs) == 0 {
			continue
		}
		stateRec, err := s.findOrCreateState(state.Name)
		if err != nil {
			return lgasCreated, wardsCreated, err
		}
		for _, lga := range state.LGAs {
			lgaRec, created, err := s.findOrCreateLGA(lga.Name, lga.Code, stateRec.ID)
			if err != nil {
				return lgasCreated, wardsCreated, err
			}
			if created {
				lgasCreated++
			}
			for _, ward := range lga.Wards {
				_, created, err := s.findOrCreateWard(ward.Name, ward.Code, lgaRec.ID)
				if err != nil {
					return lgasCreated, wardsCreated, err
				}
				if created {
					wardsCreated++
				}
			}
		}
	}
	return lgasCreated, wardsCreated, nil
}

func (s *Store) findOrCreateState(name string) (*StateRecord, error) {
	var recs []StateRecord
	if err := s.db.Find(&recs, badgerhold.Where("Name").Eq(name)); err != nil {
		return nil, fmt.Errorf("find state %s: %w", name, err)
	}
	if len(recs) > 0 {
		return &recs[0], nil
	}
	now := time.Now()
	rec := StateRecord{
		ID:        uuid.NewString(),
		Name:      name,
		Code:      hierarchy.CodeFromName(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.Insert(rec.ID, rec); err != nil {
		return nil, fmt.Errorf("insert state %s: %w", name, err)
	}
	return &rec, nil
}

func (s *Store) findOrCreateLGA(name, code, stateID string) (*LGARecord, bool, error) {
	var recs []LGARecord
	err := s.db.Find(&recs, badgerhold.Where("Name").Eq(name).And("StateID").Eq(stateID))
	if err != nil {
		return nil, false, fmt.Errorf("find lga %s: %w", name, err)
	}
	if len(recs) > 0 {
		return &recs[0], false, nil
	}
	now := time.Now()
	rec := LGARecord{
		ID:        uuid.NewString(),
		Name:      name,
		Code:      code,
		StateID:   stateID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.Insert(rec.ID, rec); err != nil {
		return nil, false, fmt.Errorf("insert lga %s: %w", name, err)
	}
	return &rec, true, nil
}

func (s *Store) findOrCreateWard(name, code, lgaID string) (*WardRecord, bool, error) {
	var recs []WardRecord
	err := s.db.Find(&recs, badgerhold.Where("Name").Eq(name).And("LGAID").Eq(lgaID))
	if err != nil {
		return nil, false, fmt.Errorf("find ward %s: %w", name, err)
	}
	if len(recs) > 0 {
		return &recs[0], false, nil
	}
	now := time.Now()
	rec := WardRecord{
		ID:        uuid.NewString(),
		Name:      name,
		Code:      code,
		LGAID:     lgaID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.Insert(rec.ID, rec); err != nil {
		return nil, false, fmt.Errorf("insert ward %s: %w", name, err)
	}
	return &rec, true, nil
}
