package pipeline

import (
	"fmt"
	"os"
	"strings"

	"etdbatch/internal/marc"
)

func ReadRecords(path string) ([]*marc.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := marc.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}

// FindRecord returns the first record whose control number, minus prefix,
// equals uid.
func FindRecord(records []*marc.Record, uid, prefix string) (*marc.Record, bool) {
	uid = strings.TrimSpace(uid)
	for _, rec := range records {
		raw, ok := rec.ControlNumber()
		if !ok {
			continue
		}
		if got, err := ExtractUID(raw, prefix); err == nil && got == uid {
			return rec, true
		}
	}
	return nil, false
}
