package hospital

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/registry"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

// HospitalService runs one registry operation per call against the
// caller's session registry.
type HospitalService interface {
	AddDoctor(ctx context.Context, h *registry.Hospital, doctor model.Doctor)
	ListDoctors(ctx context.Context, h *registry.Hospital) []model.Doctor
	SearchDoctor(ctx context.Context, h *registry.Hospital, name string) model.DoctorSearchResult
	RemoveDoctor(ctx context.Context, h *registry.Hospital, name string) model.RemoveResult
	AddPatient(ctx context.Context, h *registry.Hospital, patient model.Patient)
	ListPatients(ctx context.Context, h *registry.Hospital) []model.Patient
	PatientCount(ctx context.Context, h *registry.Hospital) int
	RemovePatient(ctx context.Context, h *registry.Hospital, name string) model.RemoveResult
}

const (
	entityDoctor  = "doctor"
	entityPatient = "patient"
)

type Service struct {
	metrics *metrics.Metrics
}

func NewService(m *metrics.Metrics) *Service {
	return &Service{metrics: m}
}

func (s *Service) AddDoctor(ctx context.Context, h *registry.Hospital, doctor model.Doctor) {
	h.AddDoctor(doctor)
	s.observe(entityDoctor, "add")

	log.Ctx(ctx).Debug().
		Str("doctor", doctor.Name).
		Str("specialty", doctor.Specialty).
		Msg("doctor added")
}

func (s *Service) ListDoctors(ctx context.Context, h *registry.Hospital) []model.Doctor {
	s.observe(entityDoctor, "list")
	return h.Doctors()
}

func (s *Service) SearchDoctor(ctx context.Context, h *registry.Hospital, name string) model.DoctorSearchResult {
	s.observe(entityDoctor, "search")

	doctor, found := h.SearchDoctor(name)
	if !found {
		s.metrics.SearchResults.WithLabelValues("miss").Inc()
		log.Ctx(ctx).Debug().Str("query", name).Msg("doctor not found")
		return model.DoctorSearchResult{}
	}

	s.metrics.SearchResults.WithLabelValues("hit").Inc()
	return model.DoctorSearchResult{Found: true, Doctor: &doctor}
}

func (s *Service) RemoveDoctor(ctx context.Context, h *registry.Hospital, name string) model.RemoveResult {
	removed := h.RemoveDoctor(name)
	s.observe(entityDoctor, "remove")
	s.metrics.EntriesRemoved.WithLabelValues(entityDoctor).Add(float64(removed))

	log.Ctx(ctx).Debug().Str("doctor", name).Int("removed", removed).Msg("doctor remove")
	return model.RemoveResult{Name: name, Removed: removed}
}

func (s *Service) AddPatient(ctx context.Context, h *registry.Hospital, patient model.Patient) {
	h.AddPatient(patient)
	s.observe(entityPatient, "add")

	log.Ctx(ctx).Debug().Str("patient", patient.Name).Msg("patient added")
}

func (s *Service) ListPatients(ctx context.Context, h *registry.Hospital) []model.Patient {
	s.observe(entityPatient, "list")
	return h.Patients()
}

func (s *Service) PatientCount(ctx context.Context, h *registry.Hospital) int {
	s.observe(entityPatient, "count")
	return h.PatientCount()
}

func (s *Service) RemovePatient(ctx context.Context, h *registry.Hospital, name string) model.RemoveResult {
	removed := h.RemovePatient(name)
	s.observe(entityPatient, "remove")
	s.metrics.EntriesRemoved.WithLabelValues(entityPatient).Add(float64(removed))

	log.Ctx(ctx).Debug().Str("patient", name).Int("removed", removed).Msg("patient remove")
	return model.RemoveResult{Name: name, Removed: removed}
}

func (s *Service) observe(entity, op string) {
	s.metrics.Operations.WithLabelValues(entity, op).Inc()
}
