package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// AgentConfig describes one player taking part in an experiment.
type AgentConfig struct {
	ID          int
	Random      bool // Uniform random baseline instead of expectimax
	Depth       int
	Goroutines  int
	EmptyWeight float64
	MaxWeight   float64
}

type GameRecord struct {
	ID    int
	Agent int // AgentConfig.ID
	Seed  uint64
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// moveRow is the parquet layout of a MoveRecord.
type moveRow struct {
	Game       int32  `parquet:"game"`
	Step       int32  `parquet:"step"`
	Direction  string `parquet:"direction,dict"`
	Gained     int32  `parquet:"gained"`
	Score      int32  `parquet:"score"`
	Depth      int32  `parquet:"depth"`
	Goroutines int32  `parquet:"goroutines"`
	DurationNs int64  `parquet:"duration_ns"`
	Nodes      int64  `parquet:"nodes"`
	Leaves     int64  `parquet:"leaves"`
	DeadEnds   int64  `parquet:"dead_ends"`
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> to hold the records of one run.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := [][]string{{"id", "random", "depth", "goroutines", "empty_weight", "max_weight"}}
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			strconv.FormatBool(config.Random),
			strconv.Itoa(config.Depth),
			strconv.Itoa(config.Goroutines),
			strconv.FormatFloat(config.EmptyWeight, 'g', -1, 64),
			strconv.FormatFloat(config.MaxWeight, 'g', -1, 64),
		})
	}

	if err := w.writeCSV("agent_configs.csv", rows); err != nil {
		return fmt.Errorf("failed to write agent configs: %w", err)
	}
	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := [][]string{{"id", "agent", "seed", "session", "score", "max_tile", "game_over", "moves", "start_time", "end_time", "duration"}}
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent),
			strconv.FormatUint(record.Seed, 10),
			record.SessionID,
			strconv.Itoa(record.Score),
			strconv.Itoa(record.MaxTile),
			strconv.FormatBool(record.GameOver),
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}

	if err := w.writeCSV("game_records.csv", rows); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	return nil
}

// WriteMoveRecords stores one row per move in moves.parquet.
func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([]moveRow, len(records))
	for i, record := range records {
		rows[i] = moveRow{
			Game:       int32(record.Game),
			Step:       int32(record.Step),
			Direction:  record.Direction,
			Gained:     int32(record.Gained),
			Score:      int32(record.Score),
			Depth:      int32(record.Depth),
			Goroutines: int32(record.Goroutines),
			DurationNs: record.Duration.Nanoseconds(),
			Nodes:      int64(record.Nodes),
			Leaves:     int64(record.Leaves),
			DeadEnds:   int64(record.DeadEnds),
		}
	}

	path := filepath.Join(w.baseDir, "moves.parquet")
	tmpPath := path + ".tmp"
	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "move_record_v1"),
	); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename move records: %w", err)
	}
	return nil
}

func (w *Writer) writeCSV(name string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.baseDir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	return f.Close()
}
