package upstream

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/username/vacation-calendar/internal/holidays"
	"github.com/username/vacation-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

// FileProvider implements Provider using a local text file
type FileProvider struct {
	filePath string
	logger   *zap.Logger

	mu   sync.RWMutex
	data map[string][]holidays.Record // key: "CC/YYYY"
	seen map[string]bool              // country codes present in the file
}

// NewFileProvider creates a new FileProvider instance
func NewFileProvider(filePath string, logger *zap.Logger) *FileProvider {
	return &FileProvider{
		filePath: filePath,
		logger:   logger,
		data:     make(map[string][]holidays.Record),
		seen:     make(map[string]bool),
	}
}

// Load loads holiday data from file
func (fp *FileProvider) Load() error {
	file, err := os.Open(fp.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer file.Close()

	data := make(map[string][]holidays.Record)
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(file)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Format: YYYY-MM-DD CC name
		// Example: 2025-01-26 IN Republic Day
		parts := strings.SplitN(line, " ", 3)
		if len(parts) < 3 {
			fp.logger.Warn("Invalid line format", zap.Int("line", lineNo), zap.String("text", line))
			continue
		}

		date, err := time.Parse(dateutil.ISODate, parts[0])
		if err != nil {
			fp.logger.Warn("Failed to parse date", zap.String("date", parts[0]), zap.Error(err))
			continue
		}

		country := strings.ToUpper(parts[1])
		name := strings.TrimSpace(parts[2])
		key := fileKey(country, date.Year())

		seen[country] = true
		data[key] = append(data[key], holidays.Record{
			Name: name,
			Date: holidays.Date{ISO: parts[0]},
			Type: []string{"Local"},
		})
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading holiday file: %w", err)
	}

	fp.mu.Lock()
	fp.data = data
	fp.seen = seen
	fp.mu.Unlock()

	fp.logger.Info("Holiday file loaded",
		zap.String("file", fp.filePath),
		zap.Int("countries", len(seen)),
		zap.Int("country_years", len(data)))

	return nil
}

// Holidays returns the file's holidays for country in year.
// A country present in the file but without entries for year yields an empty list.
func (fp *FileProvider) Holidays(ctx context.Context, country string, year int) (*holidays.Response, error) {
	country = strings.ToUpper(country)

	fp.mu.RLock()
	defer fp.mu.RUnlock()

	if !fp.seen[country] {
		return nil, NotFound(country)
	}

	records := fp.data[fileKey(country, year)]
	out := make([]holidays.Record, len(records))
	copy(out, records)

	return newResponse(country, year, out), nil
}

func fileKey(country string, year int) string {
	return fmt.Sprintf("%s/%d", country, year)
}
