package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"etdbatch/internal"
	"etdbatch/internal/eligibility"
	"etdbatch/internal/marc"
	"etdbatch/internal/policy"
)

const (
	MissingAbort = "abort"
	MissingSkip  = "skip"
)

type ProcessingService struct {
	extract   *Extractor
	assemble  *Assembler
	filter    *eligibility.Filter
	log       zerolog.Logger
	onMissing string
}

func NewProcessingService(pol *policy.Policy, filter *eligibility.Filter, onMissing string, log zerolog.Logger) (*ProcessingService, error) {
	switch onMissing {
	case "":
		onMissing = MissingAbort
	case MissingAbort, MissingSkip:
	default:
		return nil, fmt.Errorf("unknown missing-field policy %q (want %s or %s)", onMissing, MissingAbort, MissingSkip)
	}
	asm, err := NewAssembler(pol)
	if err != nil {
		return nil, err
	}
	return &ProcessingService{
		extract:   NewExtractor(pol, log),
		assemble:  asm,
		filter:    filter,
		log:       log,
		onMissing: onMissing,
	}, nil
}

type ProcessResult struct {
	Header []string
	Rows   [][]string
	Stats  internal.RunStats
}

// Process filters and normalizes records in input order.
func (s *ProcessingService) Process(records []*marc.Record) (ProcessResult, error) {
	res := ProcessResult{Header: s.assemble.Header(), Rows: [][]string{}}
	err := s.eachEligible(records, &res.Stats, func(rec *marc.Record, uid string) error {
		th, err := s.extract.Thesis(rec, uid)
		if err != nil {
			if s.skipMissing(err) {
				res.Stats.Skipped++
				return nil
			}
			return err
		}
		res.Rows = append(res.Rows, s.assemble.Row(th))
		res.Stats.Exported++
		return nil
	})
	return res, err
}

// EligibleUIDs lists the UIDs that pass the filter, in input order.
func (s *ProcessingService) EligibleUIDs(records []*marc.Record) ([]string, internal.RunStats, error) {
	var stats internal.RunStats
	var out []string
	err := s.eachEligible(records, &stats, func(_ *marc.Record, uid string) error {
		out = append(out, uid)
		return nil
	})
	return out, stats, err
}

func (s *ProcessingService) eachEligible(records []*marc.Record, stats *internal.RunStats, fn func(*marc.Record, string) error) error {
	for _, rec := range records {
		stats.Read++
		uid, err := s.extract.UID(rec)
		switch {
		case errors.Is(err, ErrMalformedUID):
			stats.Malformed++
			s.log.Warn().Err(err).Msg("skipping record with malformed uid")
			continue
		case err != nil:
			if s.skipMissing(err) {
				stats.Skipped++
				continue
			}
			return err
		}

		ok, reason := s.filter.Check(uid)
		if !ok {
			switch reason {
			case eligibility.ReasonRestricted:
				stats.Restricted++
			case eligibility.ReasonDuplicate:
				stats.Duplicate++
			}
			s.log.Debug().Str("uid", uid).Str("reason", string(reason)).Msg("record filtered")
			continue
		}
		if err := fn(rec, uid); err != nil {
			return err
		}
	}
	return nil
}

func (s *ProcessingService) skipMissing(err error) bool {
	var fe *FieldError
	if s.onMissing != MissingSkip || !errors.As(err, &fe) {
		return false
	}
	s.log.Warn().Str("uid", fe.UID).Str("tag", fe.Tag).Str("column", fe.Column).Msg("skipping record with missing required field")
	return true
}

// Run reads inputPath, writes the CSV export and, when xlsxPath is set, an
// XLSX copy of the same rows.
func (s *ProcessingService) Run(inputPath, outputPath, xlsxPath string) (internal.RunStats, error) {
	start := time.Now()
	records, err := ReadRecords(inputPath)
	if err != nil {
		return internal.RunStats{}, err
	}

	res, err := s.Process(records)
	if err != nil {
		return res.Stats, err
	}
	if err := ExportRowsToCSV(res.Header, res.Rows, outputPath); err != nil {
		return res.Stats, fmt.Errorf("export csv: %w", err)
	}
	if xlsxPath != "" {
		truncated, err := ExportRowsToXLSX(res.Header, res.Rows, xlsxPath)
		if err != nil {
			return res.Stats, fmt.Errorf("export xlsx: %w", err)
		}
		if len(truncated) > 0 {
			s.log.Warn().Strs("cells", truncated).Int("limit", excelize.TotalCellChars).Str("output", xlsxPath).Msg("xlsx cells truncated, csv keeps full values")
		}
	}

	s.log.Info().
		Int("read", res.Stats.Read).
		Int("exported", res.Stats.Exported).
		Int("restricted", res.Stats.Restricted).
		Int("duplicate", res.Stats.Duplicate).
		Int("malformed", res.Stats.Malformed).
		Int("skipped", res.Stats.Skipped).
		Dur("elapsed", time.Since(start)).
		Str("output", outputPath).
		Msg("run finished")
	return res.Stats, nil
}
