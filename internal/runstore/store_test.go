package runstore

import (
	"path/filepath"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epidemic-sim/epidemic-sim/sim"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_SaveAndGetRun(t *testing.T) {
	store := openTestStore(t)

	run := Run{
		ID:        "run-1",
		Kind:      "simulation",
		City:      "Sample City",
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Request:   []byte(`{"population":1000000}`),
		Summary:   []byte(`{"total_cases":1234}`),
	}
	require.NoError(t, store.SaveRun(run))

	got, err := store.GetRun("run-1")
	require.NoError(t, err)
	assert.Equal(t, run.Kind, got.Kind)
	assert.Equal(t, run.City, got.City)
	assert.JSONEq(t, string(run.Request), string(got.Request))
	assert.JSONEq(t, string(run.Summary), string(got.Summary))
}

func TestStore_SaveRunRejectsDuplicateID(t *testing.T) {
	store := openTestStore(t)

	run := Run{ID: "run-1", Kind: "simulation", City: "x", CreatedAt: time.Now(), Request: []byte("{}"), Summary: []byte("{}")}
	require.NoError(t, store.SaveRun(run))
	require.Error(t, store.SaveRun(run))
}

func TestStore_GetRunMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetRun("no-such-run")
	require.Error(t, err)
}

func TestStore_SaveSimulation(t *testing.T) {
	store := openTestStore(t)

	req := &sim.SimulationRequest{CityName: "Sample City", Population: 500_000, RValue: 2.5, InitialCases: 100}
	req.ApplyDefaults()
	report := &sim.Report{
		ID:        "sim-1",
		CityName:  req.CityName,
		CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Summary:   sim.ReportSummary{DurationDays: 90, TotalCases: 4321, TotalDeaths: 12},
	}

	require.NoError(t, store.SaveSimulation(req, report))

	got, err := store.GetRun("sim-1")
	require.NoError(t, err)
	assert.Equal(t, "simulation", got.Kind)

	var summary sim.ReportSummary
	require.NoError(t, json.Unmarshal(got.Summary, &summary))
	assert.Equal(t, report.Summary, summary)
}

func TestStore_RecentRunsOrdering(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, store.SaveRun(Run{
			ID:        id,
			Kind:      "simulation",
			City:      "x",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Request:   []byte("{}"),
			Summary:   []byte("{}"),
		}))
	}

	runs, err := store.RecentRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, "mid", runs[1].ID)
}
