package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "unit")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "unit"), filepath.Dir(w.Dir()))

	t.Run("writes agent configs with a header", func(t *testing.T) {
		err := w.WriteAgentConfigs([]AgentConfig{
			{ID: 0, Random: true},
			{ID: 1, Depth: 3, Goroutines: 4, EmptyWeight: 10, MaxWeight: 0.5},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Equal(t, [][]string{
			{"id", "random", "depth", "goroutines", "empty_weight", "max_weight"},
			{"0", "true", "0", "0", "0", "0"},
			{"1", "false", "3", "4", "10", "0.5"},
		}, rows)
	})

	t.Run("writes one row per game", func(t *testing.T) {
		start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		err := w.WriteGameRecords([]GameRecord{{
			ID:    1,
			Agent: 2,
			Seed:  7,
			GameMetric: GameMetric{
				SessionID:  "abc",
				Score:      1234,
				MaxTile:    256,
				GameOver:   true,
				StartTime:  start,
				EndTime:    start.Add(time.Second),
				Duration:   time.Second,
				TotalMoves: 140,
			},
		}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{
			"1", "2", "7", "abc", "1234", "256", "true", "140",
			"2024-01-02T03:04:05Z", "2024-01-02T03:04:06Z", "1s",
		}, rows[1])
	})

	t.Run("writes moves as parquet", func(t *testing.T) {
		err := w.WriteMoveRecords([]MoveRecord{
			{Game: 1, MoveMetric: MoveMetric{Step: 1, Direction: "up", Gained: 0, Score: 0,
				SearchMetric: SearchMetric{Goroutines: 1, Depth: 3, Duration: time.Millisecond, Nodes: 10, Leaves: 90, DeadEnds: 2}}},
			{Game: 1, MoveMetric: MoveMetric{Step: 2, Direction: "left", Gained: 4, Score: 4}},
		})
		require.NoError(t, err)

		path := filepath.Join(w.Dir(), "moves.parquet")
		_, err = os.Stat(path + ".tmp")
		require.True(t, os.IsNotExist(err), "Temporary file should be renamed")

		rows, err := parquet.ReadFile[moveRow](path)
		require.NoError(t, err)
		require.Equal(t, []moveRow{
			{Game: 1, Step: 1, Direction: "up", Depth: 3, Goroutines: 1, DurationNs: 1e6, Nodes: 10, Leaves: 90, DeadEnds: 2},
			{Game: 1, Step: 2, Direction: "left", Gained: 4, Score: 4},
		}, rows)
	})
}
