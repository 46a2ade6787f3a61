package train

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// ErrHistoryClosed is returned when writing to a closed history.
var ErrHistoryClosed = errors.New("train: cannot write history: writer is closed")

// HistoryRow is one generation in a training history file.
type HistoryRow struct {
	Generation int32   `parquet:"generation"`
	Best       float64 `parquet:"best"`
	Mean       float64 `parquet:"mean"`
	Worst      float64 `parquet:"worst"`
	BestEver   float64 `parquet:"best_ever"`
	ElapsedMs  int64   `parquet:"elapsed_ms"`
	Population int32   `parquet:"population"`
}

// HistoryWriter appends generation summaries to a parquet file.
type HistoryWriter struct {
	path       string
	population int

	file   *os.File
	writer *parquet.GenericWriter[HistoryRow]
	rows   int
}

// CreateHistory creates (or truncates) a parquet history at path.
func CreateHistory(path string, population int) (*HistoryWriter, error) {
	if path == "" {
		return nil, errors.New("train: cannot create history: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("train: cannot create history directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("train: cannot open history: %w", err)
	}
	w := parquet.NewGenericWriter[HistoryRow](
		f,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
	)
	w.SetKeyValueMetadata("schema", "training_history_v1")
	return &HistoryWriter{path: path, population: population, file: f, writer: w}, nil
}

// Path returns the output file.
func (h *HistoryWriter) Path() string { return h.path }

// Rows returns the number of generations written.
func (h *HistoryWriter) Rows() int { return h.rows }

// Write appends one generation.
func (h *HistoryWriter) Write(g Generation) error {
	if h.writer == nil {
		return ErrHistoryClosed
	}
	row := HistoryRow{
		Generation: int32(g.Index),
		Best:       g.Best,
		Mean:       g.Mean,
		Worst:      g.Worst,
		BestEver:   g.BestEver,
		ElapsedMs:  g.Elapsed.Milliseconds(),
		Population: int32(h.population),
	}
	if _, err := h.writer.Write([]HistoryRow{row}); err != nil {
		return fmt.Errorf("train: cannot write history: %w", err)
	}
	h.rows++
	return nil
}

// Close flushes the parquet footer and closes the file.
func (h *HistoryWriter) Close() error {
	if h.writer == nil {
		return nil
	}
	var errs []error
	if err := h.writer.Close(); err != nil {
		errs = append(errs, fmt.Errorf("train: cannot close parquet writer: %w", err))
	}
	h.writer = nil
	if err := h.file.Sync(); err != nil {
		errs = append(errs, fmt.Errorf("train: cannot sync history: %w", err))
	}
	if err := h.file.Close(); err != nil {
		errs = append(errs, fmt.Errorf("train: cannot close history: %w", err))
	}
	return errors.Join(errs...)
}

// ReadHistory loads every row of a history file.
func ReadHistory(path string) ([]HistoryRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("train: cannot open history: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("train: cannot stat history: %w", err)
	}
	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		return nil, fmt.Errorf("train: cannot open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[HistoryRow](pf)
	defer reader.Close()

	rows := make([]HistoryRow, 0, int(reader.NumRows()))
	buf := make([]HistoryRow, 64)
	for {
		n, err := reader.Read(buf)
		rows = append(rows, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rows, fmt.Errorf("train: cannot read history: %w", err)
		}
	}
	return rows, nil
}
