package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// MetricsTracker receives load statistics. A nil tracker disables reporting.
type MetricsTracker interface {
	ExamplesLoaded(count int)
	ExamplesRejectedInc()
}

// Loader reads stop records from a local CSV file or an HTTP endpoint.
type Loader struct {
	client  *resty.Client
	metrics MetricsTracker
}

// NewLoader creates a loader with the given HTTP timeout for remote sources.
func NewLoader(timeout time.Duration) *Loader {
	r := resty.New()
	if timeout > 0 {
		r.SetTimeout(timeout)
	} else {
		r.SetTimeout(30 * time.Second) // default fallback
	}
	return &Loader{client: r}
}

// SetMetrics attaches a metrics tracker to the loader.
func (l *Loader) SetMetrics(m MetricsTracker) {
	l.metrics = m
}

// LoadFile parses stop records from a CSV file on disk.
func (l *Loader) LoadFile(path string) ([]Example, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer f.Close()

	examples, err := l.parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	return examples, nil
}

// LoadURL downloads the stop CSV from url and parses it.
func (l *Loader) LoadURL(ctx context.Context, url string) ([]Example, error) {
	log.Info().Str("url", url).Msg("Downloading dataset")

	resp, err := l.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download dataset: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("dataset download returned %s", resp.Status())
	}

	examples, err := l.parse(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse downloaded dataset: %w", err)
	}
	return examples, nil
}

// Recognized header names, matched case-insensitively after trimming.
const (
	colDate        = "stop_date"
	colTime        = "stop_time"
	colDescription = "description"
	colViolation   = "violation_type"
)

func (l *Loader) parse(r io.Reader) ([]Example, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colDate, colTime, colDescription, colViolation} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("dataset is missing column %q", required)
		}
	}

	var examples []Example
	rejected := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		ex, ok := l.cleanRecord(record, cols)
		if !ok {
			rejected++
			if l.metrics != nil {
				l.metrics.ExamplesRejectedInc()
			}
			continue
		}
		examples = append(examples, ex)
	}

	if l.metrics != nil {
		l.metrics.ExamplesLoaded(len(examples))
	}
	log.Info().
		Int("examples", len(examples)).
		Int("rejected", rejected).
		Msg("Dataset loaded")

	return examples, nil
}

func (l *Loader) cleanRecord(record []string, cols map[string]int) (Example, bool) {
	field := func(name string) string {
		i := cols[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	cited, ok := parseViolation(field(colViolation))
	if !ok {
		return Example{}, false
	}

	month, day, ok := parseStopDate(field(colDate))
	if !ok {
		return Example{}, false
	}

	hour, ok := parseStopHour(field(colTime))
	if !ok {
		return Example{}, false
	}

	traveling, limit, ok := ExtractSpeeds(field(colDescription))
	if !ok {
		return Example{}, false
	}
	diff := traveling - limit
	if diff >= 500 || limit <= 0 {
		return Example{}, false
	}

	return Example{
		Month:     float64(month),
		Day:       float64(day),
		Hour:      float64(hour),
		SpeedOver: diff,
		Cited:     cited,
	}, true
}

func parseViolation(v string) (cited, ok bool) {
	switch strings.ToLower(v) {
	case "citation":
		return true, true
	case "warning":
		return false, true
	default:
		// SERO and other dispositions are out of scope.
		return false, false
	}
}

var dateLayouts = []string{"01/02/2006", "2006-01-02", "01/02/2006 15:04:05"}

func parseStopDate(v string) (month, day int, ok bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return int(t.Month()), t.Day(), true
		}
	}
	return 0, 0, false
}

var timeLayouts = []string{"15:04:05", "15:04", "3:04:05 PM", "3:04 PM"}

func parseStopHour(v string) (hour int, ok bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Hour(), true
		}
	}
	return 0, false
}

var numericToken = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ExtractSpeeds pulls the traveling speed and posted limit out of a stop
// description. The description must contain exactly two distinct numeric
// tokens; the larger is the traveling speed, the smaller the posted limit.
func ExtractSpeeds(description string) (traveling, limit float64, ok bool) {
	seen := map[float64]bool{}
	var values []float64
	for _, tok := range numericToken.FindAllString(description, -1) {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			continue
		}
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	if len(values) != 2 {
		return 0, 0, false
	}
	if values[0] >= values[1] {
		return values[0], values[1], true
	}
	return values[1], values[0], true
}
