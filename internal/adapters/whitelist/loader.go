package whitelist

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// DefaultDomains seeds the whitelist when no bulk data is available.
var DefaultDomains = []string{"gmail.com", "yahoo.com", "outlook.com"}

// csvColumn is the header of the column holding domains in bulk CSV files.
const csvColumn = "text"

// Load builds the whitelist store. Sources, in order of preference:
// a previously written snapshot file, the bulk CSV (persisting a snapshot
// for the next startup), and finally DefaultDomains. Domains from the
// extra list are always included.
func Load(csvPath, snapshotPath string, extra []string, logger *zap.Logger) (*Store, error) {
	domains, err := loadBulk(csvPath, snapshotPath, logger)
	if err != nil {
		return nil, err
	}
	return NewStore(append(domains, extra...), logger), nil
}

func loadBulk(csvPath, snapshotPath string, logger *zap.Logger) ([]string, error) {
	if snapshotPath != "" {
		if domains, err := loadSnapshot(snapshotPath); err == nil {
			logger.Info("Whitelist loaded from snapshot",
				zap.String("path", snapshotPath),
				zap.Int("domain_count", len(domains)))
			return domains, nil
		}
	}

	if csvPath != "" {
		if _, err := os.Stat(csvPath); err == nil {
			domains, err := loadCSV(csvPath)
			if err != nil {
				return nil, fmt.Errorf("failed to load whitelist CSV: %w", err)
			}
			logger.Info("Whitelist created from CSV",
				zap.String("path", csvPath),
				zap.Int("domain_count", len(domains)))
			if snapshotPath != "" {
				if err := writeSnapshot(snapshotPath, domains); err != nil {
					logger.Warn("Failed to persist whitelist snapshot", zap.Error(err))
				}
			}
			return domains, nil
		}
	}

	logger.Warn("No whitelist data found, using default safe list",
		zap.Strings("domains", DefaultDomains))
	return DefaultDomains, nil
}

// loadSnapshot reads a newline-separated domain file
func loadSnapshot(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var domains []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			domains = append(domains, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(domains) == 0 {
		return nil, fmt.Errorf("snapshot %s is empty", path)
	}
	return domains, nil
}

// loadCSV extracts the unique, normalized values of the domain column
func loadCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	col := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), csvColumn) {
			col = i
			break
		}
	}
	if col == -1 {
		return nil, fmt.Errorf("CSV has no %q column", csvColumn)
	}

	seen := make(map[string]struct{})
	var domains []string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		if col >= len(record) {
			continue
		}
		domain := strings.ToLower(strings.TrimSpace(record[col]))
		if domain == "" {
			continue
		}
		if _, ok := seen[domain]; ok {
			continue
		}
		seen[domain] = struct{}{}
		domains = append(domains, domain)
	}

	return domains, nil
}

// writeSnapshot persists domains one per line so later startups skip the CSV
func writeSnapshot(path string, domains []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	for _, d := range domains {
		if _, err := fmt.Fprintln(w, d); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
