// Package worklog appends completed pomodoros to one plain-text log file per
// day and reads them back.
//
// Format per line: <minutes>|<category>|<unix-seconds>
package worklog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Uncategorized is the category recorded when none was configured.
const Uncategorized = "uncategorized"

const dateLayout = "2006-01-02"

// Record is one completed work interval.
type Record struct {
	Minutes   int       `json:"minutes"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

// Appender persists records. The scheduler depends on this rather than on
// *Writer so tests can substitute an in-memory log.
type Appender interface {
	Append(rec Record) error
}

// Writer appends records under Dir, one file per calendar date.
type Writer struct {
	Dir string
}

// NewWriter returns a Writer for dir. The directory is created lazily on
// the first Append.
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir}
}

// PathFor returns the log file holding records from the local date of t.
func (w *Writer) PathFor(t time.Time) string {
	return filepath.Join(w.Dir, t.Local().Format(dateLayout)+".log")
}

// Append writes rec as a single line to its day's file and closes the file
// before returning. Any open, write or close failure is returned.
func (w *Writer) Append(rec Record) error {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	path := w.PathFor(rec.Timestamp)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	if _, err := io.WriteString(f, FormatLine(rec)); err != nil {
		f.Close()
		return fmt.Errorf("writing log file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing log file: %w", err)
	}
	return nil
}

var categoryReplacer = strings.NewReplacer("|", "/", "\n", " ", "\r", " ")

// FormatLine renders rec as a newline-terminated log line.
func FormatLine(rec Record) string {
	category := strings.TrimSpace(categoryReplacer.Replace(rec.Category))
	if category == "" {
		category = Uncategorized
	}
	return fmt.Sprintf("%d|%s|%d\n", rec.Minutes, category, rec.Timestamp.Unix())
}

// ParseLine parses one log line. The trailing newline is optional.
func ParseLine(line string) (Record, error) {
	line = strings.TrimRight(line, "\r\n")
	parts := strings.Split(line, "|")
	if len(parts) != 3 {
		return Record{}, fmt.Errorf("malformed log line %q", line)
	}
	minutes, err := strconv.Atoi(parts[0])
	if err != nil {
		return Record{}, fmt.Errorf("malformed minutes in %q: %w", line, err)
	}
	epoch, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("malformed timestamp in %q: %w", line, err)
	}
	return Record{
		Minutes:   minutes,
		Category:  parts[1],
		Timestamp: time.Unix(epoch, 0),
	}, nil
}

// ReadFile reads all records from a single log file, skipping malformed lines.
// A missing file yields no records and no error.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil // no log yet
		}
		return nil, err
	}
	defer f.Close()

	var recs []Record
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		rec, err := ParseLine(scanner.Text())
		if err != nil {
			continue
		}
		recs = append(recs, rec)
	}
	return recs, scanner.Err()
}

// ReadDay returns the records logged on the local date of day.
func ReadDay(dir string, day time.Time) ([]Record, error) {
	return ReadFile((&Writer{Dir: dir}).PathFor(day))
}

// ReadRange returns the records of every day from the local date of from to
// the local date of to, inclusive, ordered by timestamp.
func ReadRange(dir string, from, to time.Time) ([]Record, error) {
	start := startOfDay(from)
	end := startOfDay(to)
	var all []Record
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		recs, err := ReadDay(dir, day)
		if err != nil {
			return nil, fmt.Errorf("reading log for %s: %w", day.Format(dateLayout), err)
		}
		all = append(all, recs...)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Timestamp.Before(all[j].Timestamp) })
	return all, nil
}

func startOfDay(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
