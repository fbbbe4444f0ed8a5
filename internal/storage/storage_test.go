package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simtest/internal/domain"
)

func sampleReport() *domain.RunReport {
	expected := "HELLO"
	limit := int64(100)
	speed := int64(150)
	return &domain.RunReport{
		Meta: domain.RunMeta{Circuit: "mips.circ", TotalCases: 2, PassedCases: 1, FailedCases: 1, Workers: 1},
		Cases: []domain.CaseRecord{
			{Name: "hello", Status: domain.StatusFailed, ExpectedOutput: &expected, ActualOutput: "HELLO", OutputOK: true, SpeedLimit: &limit, ActualSpeed: &speed},
			{Name: "nop", Status: domain.StatusPassed, OutputOK: true, SpeedOK: true},
		},
	}
}

func TestJSONStorage_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "simtest-results.json")
	st := NewJSONStorage(path)

	require.NoError(t, st.Save(sampleReport()))
	assert.FileExists(t, path)

	loaded, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleReport(), loaded)

	failures := loaded.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "hello", failures[0].Name)
}

func TestJSONStorage_LoadMissing(t *testing.T) {
	_, err := NewJSONStorage(filepath.Join(t.TempDir(), "none.json")).Load()
	assert.Error(t, err)
}

func TestHistoryRow(t *testing.T) {
	runAt := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	report := sampleReport()

	row := historyRow(runAt, "mips.circ", report.Cases[0])
	assert.Equal(t, []any{
		runAt, "mips.circ", "hello", "failed", true,
		sql.NullInt64{Int64: 150, Valid: true},
		sql.NullInt64{Int64: 100, Valid: true},
	}, row)

	row = historyRow(runAt, "mips.circ", report.Cases[1])
	assert.Equal(t, sql.NullInt64{}, row[5])
	assert.Equal(t, sql.NullInt64{}, row[6])
}
