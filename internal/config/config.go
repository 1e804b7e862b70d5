package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"activity-flags/internal/domain"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Source, artifact store and sink kinds.
const (
	KindFile     = "file"
	KindGCS      = "gcs"
	KindS3       = "s3"
	KindMemory   = "memory"
	KindCSV      = "csv"
	KindBigQuery = "bigquery"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the application configuration that can be loaded from a file.
type Config struct {
	Catalog   []string        `json:"catalog" yaml:"catalog" toml:"catalog"`
	Source    SourceConfig    `json:"source" yaml:"source" toml:"source"`
	Artifacts ArtifactsConfig `json:"artifacts" yaml:"artifacts" toml:"artifacts"`
	Sink      SinkConfig      `json:"sink" yaml:"sink" toml:"sink"`
	Log       LogConfig       `json:"log" yaml:"log" toml:"log"`
}

// SourceConfig locates the raw ledger.
type SourceConfig struct {
	Kind    string `json:"kind" yaml:"kind" toml:"kind"`
	Path    string `json:"path" yaml:"path" toml:"path"`
	Bucket  string `json:"bucket" yaml:"bucket" toml:"bucket"`
	Object  string `json:"object" yaml:"object" toml:"object"`
	Region  string `json:"region" yaml:"region" toml:"region"`
	Profile string `json:"profile" yaml:"profile" toml:"profile"`
}

// ArtifactsConfig selects where run artifacts are published.
type ArtifactsConfig struct {
	Kind    string `json:"kind" yaml:"kind" toml:"kind"`
	Dir     string `json:"dir" yaml:"dir" toml:"dir"`
	Bucket  string `json:"bucket" yaml:"bucket" toml:"bucket"`
	Prefix  string `json:"prefix" yaml:"prefix" toml:"prefix"`
	Region  string `json:"region" yaml:"region" toml:"region"`
	Profile string `json:"profile" yaml:"profile" toml:"profile"`
}

// SinkConfig selects the cumulative flags table.
type SinkConfig struct {
	Kind        string `json:"kind" yaml:"kind" toml:"kind"`
	Path        string `json:"path" yaml:"path" toml:"path"`
	Project     string `json:"project" yaml:"project" toml:"project"`
	Dataset     string `json:"dataset" yaml:"dataset" toml:"dataset"`
	Table       string `json:"table" yaml:"table" toml:"table"`
	CreateTable bool   `json:"create_table" yaml:"create_table" toml:"create_table"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level" toml:"level"`
	Format string `json:"format" yaml:"format" toml:"format"`
}

// Default returns the local layout: ledger, artifacts and sink under data/.
func Default() *Config {
	return &Config{
		Catalog: append([]string(nil), domain.DefaultCatalog...),
		Source: SourceConfig{
			Kind: KindFile,
			Path: filepath.Join("data", "profit_table.csv"),
		},
		Artifacts: ArtifactsConfig{
			Kind: KindFile,
			Dir:  "data",
		},
		Sink: SinkConfig{
			Kind: KindCSV,
			Path: filepath.Join("data", "flags_activity.csv"),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadFile loads a TOML, YAML or JSON configuration file. Sections missing from
// the file fall back to Default.
func LoadFile(filePath string) (*Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	config.applyDefaults()
	return &config, nil
}

// applyDefaults fills every section left out of a config file. A section that
// names its kind is taken as written.
func (c *Config) applyDefaults() {
	def := Default()
	if len(c.Catalog) == 0 {
		c.Catalog = def.Catalog
	}
	if c.Source.Kind == "" {
		c.Source = def.Source
	}
	if c.Artifacts.Kind == "" {
		c.Artifacts = def.Artifacts
	}
	if c.Sink.Kind == "" {
		c.Sink = def.Sink
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
}

// ProductCatalog returns the configured catalog.
func (c *Config) ProductCatalog() domain.ProductCatalog {
	return domain.ProductCatalog(c.Catalog)
}

// Validate checks that every section names a known kind and carries the fields
// that kind needs.
func (c *Config) Validate() error {
	var errs []error

	if err := c.ProductCatalog().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: catalog: %w", ErrInvalidConfig, err))
	}

	switch c.Source.Kind {
	case KindFile:
		errs = appendMissing(errs, "source.path", c.Source.Path)
	case KindGCS, KindS3:
		errs = appendMissing(errs, "source.bucket", c.Source.Bucket)
		errs = appendMissing(errs, "source.object", c.Source.Object)
	default:
		errs = append(errs, unknownKind("source.kind", c.Source.Kind))
	}

	switch c.Artifacts.Kind {
	case KindFile:
		errs = appendMissing(errs, "artifacts.dir", c.Artifacts.Dir)
	case KindGCS, KindS3:
		errs = appendMissing(errs, "artifacts.bucket", c.Artifacts.Bucket)
	case KindMemory:
	default:
		errs = append(errs, unknownKind("artifacts.kind", c.Artifacts.Kind))
	}

	switch c.Sink.Kind {
	case KindCSV:
		errs = appendMissing(errs, "sink.path", c.Sink.Path)
	case KindBigQuery:
		errs = appendMissing(errs, "sink.project", c.Sink.Project)
		errs = appendMissing(errs, "sink.dataset", c.Sink.Dataset)
		errs = appendMissing(errs, "sink.table", c.Sink.Table)
	default:
		errs = append(errs, unknownKind("sink.kind", c.Sink.Kind))
	}

	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: log.format must be console or json, got %q", ErrInvalidConfig, c.Log.Format))
	}

	return errors.Join(errs...)
}

func appendMissing(errs []error, field, value string) []error {
	if strings.TrimSpace(value) == "" {
		return append(errs, fmt.Errorf("%w: %s is required", ErrInvalidConfig, field))
	}
	return errs
}

func unknownKind(field, kind string) error {
	return fmt.Errorf("%w: unknown %s %q", ErrInvalidConfig, field, kind)
}
