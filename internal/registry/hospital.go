// Package registry holds the in-memory doctor and patient collections of a
// single session. A Hospital is not safe for concurrent use; callers that
// share one across goroutines must serialise access themselves.
package registry

import (
	"strings"

	"github.com/jwalitptl/hospital-api/internal/model"
)

const DefaultName = "City Hospital"

// Hospital owns the doctor and patient sequences of one session.
// Insertion order is preserved and names are not required to be unique.
type Hospital struct {
	name     string
	doctors  []model.Doctor
	patients []model.Patient
}

// NewHospital returns an empty registry. An empty name falls back to DefaultName.
func NewHospital(name string) *Hospital {
	if name == "" {
		name = DefaultName
	}
	return &Hospital{name: name}
}

func (h *Hospital) Name() string {
	return h.name
}

func (h *Hospital) AddDoctor(doctor model.Doctor) {
	h.doctors = append(h.doctors, doctor)
}

// RemoveDoctor drops every doctor whose name equals name ignoring case and
// returns how many were dropped. No match leaves the registry untouched.
func (h *Hospital) RemoveDoctor(name string) int {
	var removed int
	h.doctors, removed = removeMatching(h.doctors, name, func(d model.Doctor) string { return d.Name })
	return removed
}

// SearchDoctor returns the first doctor, in insertion order, whose name
// equals name ignoring case.
func (h *Hospital) SearchDoctor(name string) (model.Doctor, bool) {
	for _, d := range h.doctors {
		if sameName(d.Name, name) {
			return d, true
		}
	}
	return model.Doctor{}, false
}

func (h *Hospital) AddPatient(patient model.Patient) {
	h.patients = append(h.patients, patient)
}

// RemovePatient drops every patient whose name equals name ignoring case.
func (h *Hospital) RemovePatient(name string) int {
	var removed int
	h.patients, removed = removeMatching(h.patients, name, func(p model.Patient) string { return p.Name })
	return removed
}

func (h *Hospital) PatientCount() int {
	return len(h.patients)
}

// Doctors returns a copy of the doctor sequence in insertion order.
func (h *Hospital) Doctors() []model.Doctor {
	out := make([]model.Doctor, len(h.doctors))
	copy(out, h.doctors)
	return out
}

// Patients returns a copy of the patient sequence in insertion order.
func (h *Hospital) Patients() []model.Patient {
	out := make([]model.Patient, len(h.patients))
	copy(out, h.patients)
	return out
}

func sameName(a, b string) bool {
	return strings.ToLower(a) == strings.ToLower(b)
}

// removeMatching copies the non-matching items into a fresh slice, keeping
// order. The original slice is returned unchanged when nothing matches.
func removeMatching[T any](items []T, name string, nameOf func(T) string) ([]T, int) {
	var kept []T
	removed := 0
	for _, item := range items {
		if sameName(nameOf(item), name) {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	if removed == 0 {
		return items, 0
	}
	return kept, removed
}
