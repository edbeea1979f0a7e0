package session

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

func newTestStore(t *testing.T, cfg Config) (*Store, *metrics.Metrics) {
	t.Helper()
	m := metrics.New("test", prometheus.NewRegistry())
	return NewStore(cfg, m), m
}

func TestStore_AcquireCreatesSession(t *testing.T) {
	store, m := newTestStore(t, Config{HospitalName: "General"})

	sess, created := store.Acquire("")

	require.True(t, created)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "General", sess.Hospital.Name())
	assert.Equal(t, 0, sess.Hospital.PatientCount())
	assert.Equal(t, 1, store.Count())
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ActiveSessions))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SessionsTotal))
}

func TestStore_AcquireReturnsSameRegistry(t *testing.T) {
	store, _ := newTestStore(t, Config{})

	first, _ := store.Acquire("")
	first.Hospital.AddPatient(model.Patient{Name: "Bob"})

	again, created := store.Acquire(first.ID)

	assert.False(t, created)
	assert.Same(t, first, again)
	assert.Equal(t, 1, again.Hospital.PatientCount())
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	store, _ := newTestStore(t, Config{})

	a, _ := store.Acquire("")
	b, _ := store.Acquire("")
	a.Hospital.AddDoctor(model.Doctor{Name: "Alice"})

	assert.NotEqual(t, a.ID, b.ID)
	_, found := b.Hospital.SearchDoctor("alice")
	assert.False(t, found)
}

func TestStore_AcquireRejectsMalformedID(t *testing.T) {
	store, _ := newTestStore(t, Config{})

	sess, created := store.Acquire("not-a-uuid")

	assert.True(t, created)
	assert.NotEqual(t, "not-a-uuid", sess.ID)
}

func TestStore_AcquireUnknownIDIssuesFreshID(t *testing.T) {
	store, _ := newTestStore(t, Config{})
	unknown := "3f1c9a8e-4a5b-4c6d-8e7f-0a1b2c3d4e5f"

	sess, created := store.Acquire(unknown)

	assert.True(t, created)
	assert.NotEqual(t, unknown, sess.ID)
}

func TestStore_End(t *testing.T) {
	store, m := newTestStore(t, Config{})
	sess, _ := store.Acquire("")

	assert.True(t, store.End(sess.ID))
	assert.False(t, store.End(sess.ID))

	_, found := store.Get(sess.ID)
	assert.False(t, found)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.ActiveSessions))
}

func TestStore_Expiry(t *testing.T) {
	store, m := newTestStore(t, Config{TTL: 20 * time.Millisecond, CleanupInterval: time.Hour})
	sess, _ := store.Acquire("")

	time.Sleep(40 * time.Millisecond)

	_, found := store.Get(sess.ID)
	assert.False(t, found)

	fresh, created := store.Acquire(sess.ID)
	assert.True(t, created)
	assert.NotEqual(t, sess.ID, fresh.ID)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ActiveSessions))
}
