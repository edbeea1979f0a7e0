package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/jwalitptl/hospital-api/internal/model"
)

// === Unit Tests ===

func TestNewHospital_Empty(t *testing.T) {
	h := NewHospital("")

	assert.Equal(t, DefaultName, h.Name())
	assert.Equal(t, 0, h.PatientCount())
	assert.Empty(t, h.Doctors())
	assert.Empty(t, h.Patients())

	_, found := h.SearchDoctor("anyone")
	assert.False(t, found)
}

func TestNewHospital_KeepsName(t *testing.T) {
	assert.Equal(t, "St. Mary", NewHospital("St. Mary").Name())
}

func TestSearchDoctor_CaseInsensitive(t *testing.T) {
	h := NewHospital("")
	alice := model.Doctor{Name: "Alice", Specialty: "Cardiology", Experience: 5}
	h.AddDoctor(alice)

	got, found := h.SearchDoctor("ALICE")
	require.True(t, found)
	assert.Equal(t, alice, got)
}

func TestSearchDoctor_ExactNotSubstring(t *testing.T) {
	h := NewHospital("")
	h.AddDoctor(model.Doctor{Name: "Alice"})

	_, found := h.SearchDoctor("Ali")
	assert.False(t, found)
	_, found = h.SearchDoctor("Alice Smith")
	assert.False(t, found)
}

func TestSearchDoctor_FirstMatchWins(t *testing.T) {
	h := NewHospital("")
	h.AddDoctor(model.Doctor{Name: "Sam", Specialty: "Neurology", Experience: 3})
	h.AddDoctor(model.Doctor{Name: "sam", Specialty: "Oncology", Experience: 9})

	got, found := h.SearchDoctor("SAM")
	require.True(t, found)
	assert.Equal(t, "Neurology", got.Specialty)
}

func TestRemoveDoctor_RemovesAllMatches(t *testing.T) {
	h := NewHospital("")
	h.AddDoctor(model.Doctor{Name: "Alice"})
	h.AddDoctor(model.Doctor{Name: "Bob"})
	h.AddDoctor(model.Doctor{Name: "ALICE"})

	removed := h.RemoveDoctor("alice")

	assert.Equal(t, 2, removed)
	assert.Equal(t, []model.Doctor{{Name: "Bob"}}, h.Doctors())
}

func TestRemoveDoctor_NoMatchIsNoop(t *testing.T) {
	h := NewHospital("")
	h.AddDoctor(model.Doctor{Name: "Alice", Specialty: "Cardiology", Experience: 5})
	before := h.Doctors()

	removed := h.RemoveDoctor("Nobody")

	assert.Equal(t, 0, removed)
	assert.Equal(t, before, h.Doctors())
}

func TestRemoveDoctor_RoundTrip(t *testing.T) {
	h := NewHospital("")
	h.AddDoctor(model.Doctor{Name: "Gregory House", Specialty: "Diagnostics", Experience: 20})

	h.RemoveDoctor("gregory HOUSE")

	_, found := h.SearchDoctor("Gregory House")
	assert.False(t, found)
}

func TestRemovePatient_RemovesDuplicates(t *testing.T) {
	h := NewHospital("")
	h.AddPatient(model.Patient{Name: "Bob", Age: 40, Disease: "Flu"})
	h.AddPatient(model.Patient{Name: "Carol", Age: 33, Disease: "Asthma"})
	h.AddPatient(model.Patient{Name: "Bob", Age: 12, Disease: "Measles"})
	before := h.PatientCount()

	removed := h.RemovePatient("bob")

	assert.Equal(t, 2, removed)
	assert.Equal(t, before-2, h.PatientCount())
	assert.Equal(t, "Carol", h.Patients()[0].Name)
}

func TestRemovePatient_NoMatchIsNoop(t *testing.T) {
	h := NewHospital("")
	h.AddPatient(model.Patient{Name: "Bob"})

	assert.Equal(t, 0, h.RemovePatient("bobby"))
	assert.Equal(t, 1, h.PatientCount())
}

func TestAdd_AcceptsEmptyNamesAndDuplicates(t *testing.T) {
	h := NewHospital("")
	h.AddPatient(model.Patient{})
	h.AddPatient(model.Patient{})
	h.AddDoctor(model.Doctor{})

	assert.Equal(t, 2, h.PatientCount())
	_, found := h.SearchDoctor("")
	assert.True(t, found)
}

func TestList_PreservesOrderAndReturnsCopies(t *testing.T) {
	h := NewHospital("")
	h.AddPatient(model.Patient{Name: "Zed"})
	h.AddPatient(model.Patient{Name: "Amy"})

	patients := h.Patients()
	require.Len(t, patients, 2)
	assert.Equal(t, "Zed", patients[0].Name)
	assert.Equal(t, "Amy", patients[1].Name)

	patients[0].Name = "mutated"
	assert.Equal(t, "Zed", h.Patients()[0].Name)
}

// === Property-Based Tests ===

func TestHospital_PropertyBased_SearchReturnsFirstAdded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := NewHospital("")
		names := rapid.SliceOfN(rapid.StringMatching(`[a-zA-Z]{1,6}`), 1, 30).Draw(t, "names")

		for i, name := range names {
			h.AddDoctor(model.Doctor{Name: name, Experience: i})
		}

		idx := rapid.IntRange(0, len(names)-1).Draw(t, "idx")
		query := strings.ToUpper(names[idx])

		got, found := h.SearchDoctor(query)
		if !found {
			t.Fatalf("doctor %q not found", query)
		}
		for i, name := range names {
			if strings.EqualFold(name, query) {
				if got.Experience != i {
					t.Fatalf("expected first match at %d, got %d", i, got.Experience)
				}
				break
			}
		}
	})
}

func TestHospital_PropertyBased_CountTracksSequence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := NewHospital("")
		var expected []string

		numOps := rapid.IntRange(1, 100).Draw(t, "numOps")
		for i := 0; i < numOps; i++ {
			name := rapid.SampledFrom([]string{"bob", "Bob", "amy", "ZED", ""}).Draw(t, "name")

			switch rapid.IntRange(0, 1).Draw(t, "op") {
			case 0:
				h.AddPatient(model.Patient{Name: name})
				expected = append(expected, name)
			case 1:
				removed := h.RemovePatient(name)
				var kept []string
				for _, n := range expected {
					if strings.ToLower(n) != strings.ToLower(name) {
						kept = append(kept, n)
					}
				}
				if removed != len(expected)-len(kept) {
					t.Fatalf("removed %d, expected %d", removed, len(expected)-len(kept))
				}
				expected = kept
			}

			if h.PatientCount() != len(expected) {
				t.Fatalf("count %d, expected %d", h.PatientCount(), len(expected))
			}
		}
	})
}

func TestHospital_PropertyBased_RemoveMissingNeverMutates(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := NewHospital("")
		names := rapid.SliceOf(rapid.StringMatching(`[a-z]{1,5}`)).Draw(t, "names")
		for _, name := range names {
			h.AddDoctor(model.Doctor{Name: name})
			h.AddPatient(model.Patient{Name: name})
		}
		doctors, patients := h.Doctors(), h.Patients()

		// digits never appear in generated names
		missing := rapid.StringMatching(`[0-9]{1,4}`).Draw(t, "missing")
		h.RemoveDoctor(missing)
		h.RemovePatient(missing)

		if len(h.Doctors()) != len(doctors) || len(h.Patients()) != len(patients) {
			t.Fatalf("remove of missing name %q mutated the registry", missing)
		}
		for i := range doctors {
			if h.Doctors()[i] != doctors[i] {
				t.Fatalf("doctor %d changed", i)
			}
		}
	})
}
