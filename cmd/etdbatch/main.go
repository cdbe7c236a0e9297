package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"etdbatch/internal/config"
	"etdbatch/internal/eligibility"
	"etdbatch/internal/pipeline"
	"etdbatch/internal/policy"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel, cfg.LogFormat)

	cmd := os.Args[1]
	switch cmd {
	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", cfg.InputPath, "MARC input file")
		dups := fs.String("duplicates", cfg.DuplicatesPath, "duplicate list (.txt) or inventory database (.db/.sqlite)")
		query := fs.String("query", cfg.DuplicatesQuery, "inventory query when --duplicates is a database")
		output := fs.String("output", cfg.OutputPath, "output csv path")
		xlsx := fs.String("xlsx", cfg.XLSXPath, "optional xlsx copy of the export")
		policyPath := fs.String("policy", cfg.PolicyPath, "policy yaml (embedded default when empty)")
		onMissing := fs.String("on-missing", cfg.OnMissingField, "abort|skip")
		_ = fs.Parse(os.Args[2:])

		pol, err := policy.Load(*policyPath)
		must(err)
		svc := newService(pol, *dups, *query, strings.ToLower(*onMissing), log)

		log.Info().Str("input", *input).Str("duplicates", *dups).Msg("run started")
		stats, err := svc.Run(*input, *output, *xlsx)
		must(err)
		fmt.Printf("exported %d of %d records to %s (restricted=%d duplicate=%d malformed=%d skipped=%d)\n",
			stats.Exported, stats.Read, *output, stats.Restricted, stats.Duplicate, stats.Malformed, stats.Skipped)
	case "assets:check":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", cfg.InputPath, "MARC input file")
		dups := fs.String("duplicates", cfg.DuplicatesPath, "duplicate list or inventory database")
		query := fs.String("query", cfg.DuplicatesQuery, "inventory query")
		pdfDir := fs.String("pdf-dir", cfg.PDFDir, "directory holding <uid><asset_extension> files")
		policyPath := fs.String("policy", cfg.PolicyPath, "policy yaml")
		_ = fs.Parse(os.Args[2:])
		must(cfg.Require("--pdf-dir", *pdfDir))

		pol, err := policy.Load(*policyPath)
		must(err)
		svc := newService(pol, *dups, *query, pipeline.MissingAbort, log)
		records, err := pipeline.ReadRecords(*input)
		must(err)
		uids, _, err := svc.EligibleUIDs(records)
		must(err)

		missing := 0
		for _, st := range pipeline.CheckAssets(uids, *pdfDir, pol.AssetExtension) {
			if st.OK() {
				log.Debug().Str("uid", st.UID).Int("pages", st.Pages).Msg("asset ok")
				continue
			}
			missing++
			if !st.Exists {
				fmt.Printf("%s\tmissing\n", st.UID)
			} else {
				fmt.Printf("%s\tunreadable\t%v\n", st.UID, st.Err)
			}
		}
		fmt.Printf("checked %d assets, %d missing or unreadable\n", len(uids), missing)
	case "record:show":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", cfg.InputPath, "MARC input file")
		uid := fs.String("uid", "", "record uid")
		policyPath := fs.String("policy", cfg.PolicyPath, "policy yaml")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*uid) == "" {
			must(fmt.Errorf("--uid is required"))
		}

		pol, err := policy.Load(*policyPath)
		must(err)
		records, err := pipeline.ReadRecords(*input)
		must(err)
		rec, ok := pipeline.FindRecord(records, *uid, pol.UIDPrefix)
		if !ok {
			must(fmt.Errorf("no record with uid %s", *uid))
		}
		for _, f := range rec.Fields {
			fmt.Printf("%s\t%s\n", f.Tag, f.Value())
		}

		asm, err := pipeline.NewAssembler(pol)
		must(err)
		th, err := pipeline.NewExtractor(pol, log).Thesis(rec, strings.TrimSpace(*uid))
		must(err)
		fmt.Println()
		row := asm.Row(th)
		for i, col := range asm.Header() {
			fmt.Printf("%s\t%s\n", col, row[i])
		}
	case "policy:check":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		policyPath := fs.String("policy", cfg.PolicyPath, "policy yaml")
		_ = fs.Parse(os.Args[2:])

		pol, err := policy.Load(*policyPath)
		must(err)
		_, err = pipeline.NewAssembler(pol)
		must(err)
		ids := 0
		for _, s := range pol.Restricted.Sets {
			ids += len(s.IDs)
		}
		fmt.Printf("policy ok: columns=%d restricted ranges=%d ids=%d exceptions=%d roman=%d suffixes=%d advisor labels=%d\n",
			len(pol.Columns), len(pol.Restricted.Ranges), ids, len(pol.Restricted.Exceptions),
			pol.RomanTable().Len(), len(pol.Suffixes), len(pol.Advisors.Labels))
	default:
		usage()
		os.Exit(1)
	}
}

func newService(pol *policy.Policy, dupsPath, query, onMissing string, log zerolog.Logger) *pipeline.ProcessingService {
	dups := eligibility.Duplicates{}
	if strings.TrimSpace(dupsPath) != "" {
		var err error
		dups, err = eligibility.LoadDuplicates(dupsPath, query, pol.DuplicateExtension)
		must(err)
	}
	log.Debug().Int("duplicates", len(dups)).Msg("duplicate set loaded")
	svc, err := pipeline.NewProcessingService(pol, eligibility.New(pol, dups), onMissing, log)
	must(err)
	return svc
}

func newLogger(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	var log zerolog.Logger
	if strings.EqualFold(format, "json") {
		log = zerolog.New(os.Stderr)
	} else {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}
	return log.Level(lvl).With().Timestamp().Logger()
}

func usage() {
	fmt.Println("usage: etdbatch <command>")
	fmt.Println("commands:")
	fmt.Println("  run [--input=...] [--duplicates=...] [--output=...csv] [--xlsx=...] [--policy=...] [--on-missing=abort|skip]")
	fmt.Println("  assets:check --pdf-dir=... [--input=...] [--duplicates=...] [--policy=...]")
	fmt.Println("  record:show --uid=... [--input=...] [--policy=...]")
	fmt.Println("  policy:check [--policy=...]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
