package patient

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/hbill/hbill/internal/platform/apperr"
)

type Service struct {
	patients Repository
	log      zerolog.Logger
}

func NewService(patients Repository, log zerolog.Logger) *Service {
	return &Service{patients: patients, log: log}
}

// AddInput carries the registry form fields as the caller collected them.
// All fields except Name are optional.
type AddInput struct {
	Name          string
	Age           string
	Gender        string
	Contact       string
	Address       string
	Disease       string
	AdmissionDate string
}

// Add registers a new patient and returns its id. AdmissionDate defaults to
// the current day when blank.
func (s *Service) Add(ctx context.Context, in AddInput) (int64, error) {
	if in.Name == "" {
		return 0, apperr.Validationf("patient name is required")
	}

	age, err := parseAge(in.Age)
	if err != nil {
		return 0, err
	}

	admission := in.AdmissionDate
	if admission == "" {
		admission = time.Now().Format("2006-01-02")
	}

	p := &Patient{
		Name:          in.Name,
		Age:           age,
		Gender:        optional(in.Gender),
		Contact:       optional(in.Contact),
		Address:       optional(in.Address),
		Disease:       optional(in.Disease),
		AdmissionDate: admission,
	}

	if err := s.patients.Create(ctx, p); err != nil {
		return 0, apperr.Storage("insert patient", err)
	}

	s.log.Info().Int64("patient_id", p.ID).Str("name", p.Name).Msg("patient registered")
	return p.ID, nil
}

// Get returns the patient with the given id.
func (s *Service) Get(ctx context.Context, id int64) (*Patient, error) {
	p, err := s.patients.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("patient", id)
	}
	if err != nil {
		return nil, apperr.Storage("lookup patient", err)
	}
	return p, nil
}

// PatientName resolves an id to the patient's display name, for billing.
func (s *Service) PatientName(ctx context.Context, id int64) (string, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return p.Name, nil
}

// UpdateFields applies a partial update; blank fields keep the stored value.
func (s *Service) UpdateFields(ctx context.Context, id int64, u Update) error {
	if u.Age != "" {
		if _, err := parseAge(u.Age); err != nil {
			return err
		}
	}

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.patients.Update(ctx, id, &u); err != nil {
		return apperr.Storage("update patient", err)
	}

	s.log.Info().Int64("patient_id", id).Msg("patient updated")
	return nil
}

// Delete removes a patient; its bills and their payments cascade away with
// it. Deleting an id that does not exist is an error, not a no-op.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.patients.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("patient", id)
	}
	if err != nil {
		return apperr.Storage("delete patient", err)
	}

	s.log.Info().Int64("patient_id", id).Msg("patient deleted with bills and payments")
	return nil
}

// Find searches the registry. name and contact match as substrings (the
// store's LIKE, case-insensitive for ASCII); id matches exactly. Results are
// ordered by name except for id lookups.
func (s *Service) Find(ctx context.Context, criterion, term string) ([]*Summary, error) {
	if term == "" {
		return nil, apperr.Validationf("search term is required")
	}

	switch criterion {
	case ByName, ByContact:
	case ByID:
		if _, err := strconv.ParseInt(term, 10, 64); err != nil {
			return nil, apperr.Validationf("patient id must be a number, got %q", term)
		}
	default:
		return nil, apperr.Validationf("search criterion must be name, contact, or id; got %q", criterion)
	}

	items, err := s.patients.Search(ctx, criterion, term)
	if err != nil {
		return nil, apperr.Storage("search patients", err)
	}
	return items, nil
}

// List returns all patients ordered by name, optionally filtered by a
// name-or-contact substring.
func (s *Service) List(ctx context.Context, term string) ([]*Patient, error) {
	items, err := s.patients.List(ctx, term)
	if err != nil {
		return nil, apperr.Storage("list patients", err)
	}
	return items, nil
}

func parseAge(raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	age, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || age < 0 {
		return nil, apperr.Validationf("age must be a non-negative integer, got %q", raw)
	}
	return &age, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
