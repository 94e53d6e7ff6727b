package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/alejandrodnm/pnlstats/internal/domain"
)

// Input source kinds.
const (
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
)

// Config es la configuración completa de pnlstats.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
}

// InputConfig indica de dónde se leen trades y sentimiento.
type InputConfig struct {
	TradesPath    string `yaml:"trades_path"`
	SentimentPath string `yaml:"sentiment_path"`
	Source        string `yaml:"source"`   // csv | sqlite
	Timezone      string `yaml:"timezone"` // zona de "Timestamp IST"; IST o nombre IANA
}

// OutputConfig controla dónde y cómo se escriben los resultados.
type OutputConfig struct {
	Dir           string `yaml:"dir"`
	ExportFormat  string `yaml:"export_format"` // "" (off) | csv | json | parquet
	Table         bool   `yaml:"table"`         // tablas completas en consola
	RenderWorkers int    `yaml:"render_workers"`
}

// AnalysisConfig contiene los parámetros del análisis.
type AnalysisConfig struct {
	CohortSize           int     `yaml:"cohort_size"`
	TopK                 int     `yaml:"top_k"`
	Whisker              float64 `yaml:"whisker"`
	Smoothing            string  `yaml:"smoothing"` // lowess | linear | none
	LowessFrac           float64 `yaml:"lowess_frac"`
	LowessIterations     int     `yaml:"lowess_iterations"` // 0 = sin pasadas robustas; negativo o ausente = 3
	StrictSentimentDates bool    `yaml:"strict_sentiment_dates"`
}

// StorageConfig controla la base SQLite usada como fuente de entrada.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
	Trace  bool   `yaml:"trace"`  // spans OpenTelemetry a stderr
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del .env sobreescriben los del YAML para las keys que correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	cfg := unset()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default devuelve la configuración sin archivo: defaults más env overrides.
func Default() *Config {
	_ = godotenv.Load()

	cfg := unset()
	applyEnvOverrides(&cfg)
	setDefaults(&cfg)
	return &cfg
}

// unset marca los campos donde el cero es un valor válido, para que
// setDefaults distinga "ausente" de "0".
func unset() Config {
	var cfg Config
	cfg.Analysis.LowessIterations = -1
	return cfg
}

// Normalize pasa a minúsculas los valores enumerados. main lo llama otra vez
// después de aplicar los flags.
func (c *Config) Normalize() {
	c.Input.Source = strings.ToLower(strings.TrimSpace(c.Input.Source))
	c.Output.ExportFormat = strings.ToLower(strings.TrimSpace(c.Output.ExportFormat))
	c.Analysis.Smoothing = strings.ToLower(strings.TrimSpace(c.Analysis.Smoothing))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
}

// Validate rejects unknown enum values.
func (c *Config) Validate() error {
	switch c.Input.Source {
	case SourceCSV, SourceSQLite:
	default:
		return fmt.Errorf("config: input.source %q (csv|sqlite)", c.Input.Source)
	}
	switch c.Output.ExportFormat {
	case "", "csv", "json", "parquet":
	default:
		return fmt.Errorf("config: output.export_format %q (csv|json|parquet)", c.Output.ExportFormat)
	}
	switch c.Analysis.Smoothing {
	case "lowess", "linear", "none":
	default:
		return fmt.Errorf("config: analysis.smoothing %q (lowess|linear|none)", c.Analysis.Smoothing)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location devuelve la zona horaria de los timestamps del trade log.
func (c *Config) Location() (*time.Location, error) {
	if strings.EqualFold(c.Input.Timezone, "IST") {
		return domain.IST, nil
	}
	loc, err := time.LoadLocation(c.Input.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: input.timezone %q: %w", c.Input.Timezone, err)
	}
	return loc, nil
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("PNLSTATS_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("PNLSTATS_TRACE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Log.Trace = b
		}
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Input.TradesPath == "" {
		cfg.Input.TradesPath = "historical_data.csv"
	}
	if cfg.Input.SentimentPath == "" {
		cfg.Input.SentimentPath = "fear_greed_index.csv"
	}
	cfg.Normalize()
	if cfg.Input.Source == "" {
		cfg.Input.Source = SourceCSV
	}
	if cfg.Input.Timezone == "" {
		cfg.Input.Timezone = "IST"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "charts"
	}
	if cfg.Analysis.CohortSize <= 0 {
		cfg.Analysis.CohortSize = 5
	}
	if cfg.Analysis.TopK <= 0 {
		cfg.Analysis.TopK = 10
	}
	if cfg.Analysis.Whisker <= 0 {
		cfg.Analysis.Whisker = 1.5
	}
	if cfg.Analysis.Smoothing == "" {
		cfg.Analysis.Smoothing = "lowess"
	}
	if cfg.Analysis.LowessFrac <= 0 || cfg.Analysis.LowessFrac > 1 {
		cfg.Analysis.LowessFrac = 2.0 / 3.0
	}
	if cfg.Analysis.LowessIterations < 0 {
		cfg.Analysis.LowessIterations = 3
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "pnlstats.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
