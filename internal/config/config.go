package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	InputPath       string
	DuplicatesPath  string
	DuplicatesQuery string
	OutputPath      string
	XLSXPath        string
	PolicyPath      string
	PDFDir          string

	OnMissingField string

	LogLevel  string
	LogFormat string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		InputPath:       getEnv("ETD_INPUT_PATH", filepath.Join(cwd, "data", "MARCDATA.MRC")),
		DuplicatesPath:  getEnv("ETD_DUPLICATES_PATH", filepath.Join(cwd, "data", "duplicates.txt")),
		DuplicatesQuery: getEnv("ETD_DUPLICATES_QUERY", "SELECT urn FROM items"),
		OutputPath:      getEnv("ETD_OUTPUT_PATH", filepath.Join(cwd, "out", "export.csv")),
		XLSXPath:        getEnv("ETD_XLSX_PATH", ""),
		PolicyPath:      getEnv("ETD_POLICY_PATH", ""),
		PDFDir:          getEnv("ETD_PDF_DIR", ""),

		OnMissingField: strings.ToLower(getEnv("ETD_ON_MISSING_FIELD", "abort")),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required setting: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
