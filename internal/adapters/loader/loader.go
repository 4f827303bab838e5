// Package loader ingests the district CSV files into the in-memory repositories.
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/headcount/internal/adapters/repository"
	"github.com/okian/headcount/pkg/logger"
	"github.com/okian/headcount/pkg/metrics"
)

// Summary reports what a load stored.
type Summary struct {
	Records   map[string]int `json:"records"`
	Rejected  map[string]int `json:"rejected"`
	Districts int            `json:"districts"`
}

// Total returns the number of stored records across categories.
func (s Summary) Total() int {
	n := 0
	for _, v := range s.Records {
		n += v
	}
	return n
}

// Loader reads source files into a DistrictRepository.
type Loader struct {
	repo   *repository.DistrictRepository
	logger logger.Logger
}

// New constructs a Loader writing into repo.
func New(repo *repository.DistrictRepository, opts ...Option) *Loader {
	l := &Loader{repo: repo, logger: logger.Nop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads every configured source. Paths are relative to dir unless absolute.
// Categories are loaded in Categories order; unknown categories fail before any file
// is read.
func (l *Loader) Load(ctx context.Context, dir string, sources map[string]string) (Summary, error) {
	start := time.Now()
	for category := range sources {
		if _, err := lookup(category); err != nil {
			return Summary{}, err
		}
	}

	sum := Summary{Records: make(map[string]int), Rejected: make(map[string]int)}
	for _, category := range Categories {
		name, ok := sources[category]
		if !ok || name == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, name)
		}
		n, bad, err := l.LoadFile(ctx, category, path)
		if err != nil {
			return sum, err
		}
		sum.Records[category] = n
		sum.Rejected[category] = bad
	}

	sum.Districts = l.repo.Count()
	metrics.UpdateDistrictsLoaded(sum.Districts)
	metrics.RecordLoadDuration(float64(time.Since(start).Microseconds()) / 1000)
	l.logger.Info(ctx, "data loaded",
		logger.Int("districts", sum.Districts),
		logger.Int("records", sum.Total()),
		logger.Duration("elapsed", time.Since(start)),
	)
	return sum, nil
}

// LoadFile reads one category file.
func (l *Loader) LoadFile(ctx context.Context, category, path string) (stored, rejected int, err error) {
	f, err := os.Open(path)
	if err != nil {
		metrics.RecordErrorByComponent("loader", "open")
		return 0, 0, fmt.Errorf("%s: %w: %w", path, ErrReadSource, err)
	}
	defer f.Close()

	stored, rejected, err = l.LoadReader(ctx, category, f)
	if err != nil {
		return stored, rejected, fmt.Errorf("%s: %w", path, err)
	}
	l.logger.Debug(ctx, "source loaded",
		logger.String("category", category),
		logger.String("path", path),
		logger.Int("stored", stored),
		logger.Int("rejected", rejected),
	)
	return stored, rejected, nil
}

// LoadReader reads CSV rows of category from r. Rows whose value cannot be read are
// counted as rejected and skipped.
func (l *Loader) LoadReader(ctx context.Context, category string, r io.Reader) (n, bad int, err error) {
	h, err := lookup(category)
	if err != nil {
		return 0, 0, err
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	cols, err := reader.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("%s header: %w: %w", category, ErrReadSource, err)
	}
	head := newHeader(cols)
	if err := head.require(append([]string{colLocation, colTimeFrame, colDataFormat, colData}, h.columns...)...); err != nil {
		return 0, 0, fmt.Errorf("%s: %w", category, err)
	}

	for line := 2; ; line++ {
		row, rerr := reader.Read()
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			metrics.RecordErrorByComponent("loader", "parse")
			return n, bad, fmt.Errorf("%s line %d: %w: %w", category, line, ErrReadSource, rerr)
		}
		if line%1024 == 0 {
			if cerr := ctx.Err(); cerr != nil {
				return n, bad, cerr
			}
		}

		switch l.storeRow(ctx, category, h, head.record(row), line) {
		case stored:
			n++
		case rejected:
			bad++
			metrics.RecordRecordRejected(category)
		}
	}

	metrics.RecordRecordsLoaded(category, n)
	return n, bad, nil
}

func (l *Loader) storeRow(ctx context.Context, category string, h handler, rec record, line int) outcome {
	if rec.location == "" {
		return rejected
	}
	year, err := rec.year()
	if err != nil {
		l.logger.Debug(ctx, "row skipped", logger.String("category", category), logger.Int("line", line), logger.Error(err))
		return rejected
	}
	v, err := rec.value()
	if err != nil {
		l.logger.Debug(ctx, "row skipped", logger.String("category", category), logger.Int("line", line), logger.Error(err))
		return rejected
	}
	out, err := h.store(l.repo, rec, year, v)
	if err != nil {
		l.logger.Debug(ctx, "row skipped", logger.String("category", category), logger.Int("line", line), logger.Error(err))
	}
	return out
}
