package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	RootCreationProbe         = "probe"
	RootCreationDeterministic = "deterministic"
)

// DefaultFolders is the category set created under every new root.
var DefaultFolders = []string{
	"Acciones Correctivas",
	"Actas",
	"Auditorías",
	"Capacitaciones",
	"Formatos",
	"Indicadores",
	"Instructivos",
	"Manuales",
	"Planes",
	"Procedimientos",
	"Registros",
}

type Configuration struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Storage    StorageConfig    `yaml:"storage"`
	Redis      RedisConfig      `yaml:"redis"`
	Auth       AuthConfig       `yaml:"auth"`
	Repository RepositoryConfig `yaml:"repository"`
	Reconcile  ReconcileConfig  `yaml:"reconcile"`
	Janitor    JanitorConfig    `yaml:"janitor"`
}

type ServerConfig struct {
	Port          int           `yaml:"port"`
	Concurrency   int           `yaml:"concurrency"`
	RequestConfig RequestConfig `yaml:"request"`
	LogConfig     LogConfig     `yaml:"log"`
	CORSOrigins   string        `yaml:"cors_origins"`
}

type RequestConfig struct {
	// SizeLimit is expressed in megabytes.
	SizeLimit int `yaml:"size_limit"`
}

type LogConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
	Output  string `yaml:"output"`
	LogPath string `yaml:"log_path"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type StorageConfig struct {
	Backend   string        `yaml:"backend"`
	Path      string        `yaml:"path"`
	PublicURL string        `yaml:"public_url"`
	URLExpiry time.Duration `yaml:"url_expiry"`
	Minio     MinioConfig   `yaml:"minio"`
}

// PublicURLPath is the local route that serves disk blobs.
func (s StorageConfig) PublicURLPath() string {
	parsed, err := url.Parse(s.PublicURL)
	if err != nil || strings.Trim(parsed.Path, "/") == "" {
		return "/blobs"
	}
	return "/" + strings.Trim(parsed.Path, "/")
}

type MinioConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type RedisConfig struct {
	URL string `yaml:"url"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type RepositoryConfig struct {
	RootName       string   `yaml:"root_name"`
	DefaultFolders []string `yaml:"default_folders"`
	Locale         string   `yaml:"locale"`
	RootCreation   string   `yaml:"root_creation"`
}

type ReconcileConfig struct {
	MaxBatchOps int           `yaml:"max_batch_ops"`
	LeaseTTL    time.Duration `yaml:"lease_ttl"`
}

type JanitorConfig struct {
	Schedule   string `yaml:"schedule"`
	AutoRepair bool   `yaml:"auto_repair"`
	SweepLimit int    `yaml:"sweep_limit"`
}

// LoadConfiguration reads the YAML file, expanding ${VAR} references from the
// environment (and an optional .env next to the working directory).
func LoadConfiguration(configurationFilePath string) (*Configuration, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	data, err := os.ReadFile(configurationFilePath)
	if err != nil {
		return nil, err
	}
	return ParseConfiguration(data)
}

func ParseConfiguration(data []byte) (*Configuration, error) {
	var config Configuration
	err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &config)
	if err != nil {
		return nil, err
	}
	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// Default returns a configuration suitable for local runs and tests.
func Default() *Configuration {
	var config Configuration
	config.ApplyDefaults()
	return &config
}

func (c *Configuration) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Concurrency == 0 {
		c.Server.Concurrency = 256
	}
	if c.Server.RequestConfig.SizeLimit == 0 {
		c.Server.RequestConfig.SizeLimit = 50
	}
	if c.Server.LogConfig.Level == "" {
		c.Server.LogConfig.Level = "info"
	}
	if c.Server.LogConfig.Format == "" {
		c.Server.LogConfig.Format = "text"
	}
	if c.Server.LogConfig.Output == "" {
		c.Server.LogConfig.Output = "stdout"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.DSN == "" && c.Database.Driver == "sqlite" {
		c.Database.DSN = "folio.db"
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "disk"
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "data/blobs"
	}
	if c.Storage.URLExpiry == 0 {
		c.Storage.URLExpiry = 24 * time.Hour
	}
	if c.Repository.RootName == "" {
		c.Repository.RootName = "Documentos"
	}
	if len(c.Repository.DefaultFolders) == 0 {
		c.Repository.DefaultFolders = append([]string(nil), DefaultFolders...)
	}
	if c.Repository.Locale == "" {
		c.Repository.Locale = "es"
	}
	if c.Repository.RootCreation == "" {
		c.Repository.RootCreation = RootCreationProbe
	}
	if c.Reconcile.MaxBatchOps == 0 {
		c.Reconcile.MaxBatchOps = 500
	}
	if c.Reconcile.LeaseTTL == 0 {
		c.Reconcile.LeaseTTL = 2 * time.Minute
	}
	if c.Janitor.Schedule == "" {
		c.Janitor.Schedule = "@hourly"
	}
	if c.Janitor.SweepLimit == 0 {
		c.Janitor.SweepLimit = 200
	}
}

func (c *Configuration) Validate() error {
	if err := validation.ValidateStruct(&c.Server,
		validation.Field(&c.Server.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.Server.Concurrency, validation.Min(1)),
	); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := validation.ValidateStruct(&c.Database,
		validation.Field(&c.Database.Driver, validation.Required, validation.In("postgres", "sqlite")),
		validation.Field(&c.Database.DSN, validation.When(c.Database.Driver == "sqlite", validation.Required)),
	); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := validation.ValidateStruct(&c.Storage,
		validation.Field(&c.Storage.Backend, validation.Required, validation.In("disk", "minio")),
		validation.Field(&c.Storage.Path, validation.When(c.Storage.Backend == "disk", validation.Required)),
	); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if c.Storage.Backend == "minio" {
		m := &c.Storage.Minio
		if err := validation.ValidateStruct(m,
			validation.Field(&m.Endpoint, validation.Required),
			validation.Field(&m.Bucket, validation.Required),
		); err != nil {
			return fmt.Errorf("storage.minio: %w", err)
		}
	}
	if err := validation.ValidateStruct(&c.Repository,
		validation.Field(&c.Repository.RootName, validation.Length(1, 255)),
		validation.Field(&c.Repository.RootCreation, validation.In(RootCreationProbe, RootCreationDeterministic)),
		validation.Field(&c.Repository.DefaultFolders, validation.Each(validation.Required, validation.Length(1, 255))),
	); err != nil {
		return fmt.Errorf("repository: %w", err)
	}
	// Each batch needs room for at least one re-parent plus the delete.
	if err := validation.ValidateStruct(&c.Reconcile,
		validation.Field(&c.Reconcile.MaxBatchOps, validation.Min(2)),
	); err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}
	return nil
}
