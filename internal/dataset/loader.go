package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"stoichcli/internal/errors"
)

// Loader fetches a delimited dataset from a filesystem path or an http(s)
// URL into an in-memory Table. A failed or malformed source is fatal for
// the run; there is no retry policy.
type Loader struct {
	logger *slog.Logger
	client *http.Client
}

// NewLoader creates a dataset loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger: logger,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Load reads the source identified by path or URL using the given record
// delimiter and returns the parsed table.
func (l *Loader) Load(ctx context.Context, source string, delimiter rune) (*Table, error) {
	l.logger.InfoContext(ctx, "loading source dataset",
		slog.String("source", source),
		slog.String("delimiter", string(delimiter)))

	reader, closer, err := l.open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer closer()

	table, err := parseDelimited(reader, delimiter)
	if err != nil {
		return nil, errors.NewLoadError("malformed source dataset", err).
			WithContext("source", source)
	}

	l.logger.InfoContext(ctx, "loaded source dataset",
		slog.Int("rows", table.Len()),
		slog.Int("columns", len(table.Columns())))

	return table, nil
}

// open resolves the source to a reader. http(s) sources are fetched with a
// single GET; anything else is treated as a filesystem path.
func (l *Loader) open(ctx context.Context, source string) (io.Reader, func(), error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, nil, errors.NewLoadError("invalid source URL", err).
				WithContext("source", source)
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, nil, errors.NewLoadError("source unreachable", err).
				WithContext("source", source)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, nil, errors.NewLoadError(
				fmt.Sprintf("source returned status %d", resp.StatusCode), nil).
				WithContext("source", source)
		}
		return resp.Body, func() { resp.Body.Close() }, nil
	}

	file, err := os.Open(source)
	if err != nil {
		return nil, nil, errors.NewLoadError("source unreachable", err).
			WithContext("source", source)
	}
	return file, func() { file.Close() }, nil
}

// parseDelimited parses header plus data rows. A UTF-8 BOM on the first
// header field is tolerated and stripped.
func parseDelimited(r io.Reader, delimiter rune) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("source is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record %d: %w", len(rows)+2, err)
		}
		rows = append(rows, record)
	}

	return NewTable(header, rows), nil
}
