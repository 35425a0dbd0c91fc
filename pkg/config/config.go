package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/portfolio"
	ConfigFileName    = "portfolio.yml"

	defaultMaxUploadSize = 16 << 20
)

// DefaultAllowedExtensions are the image extensions accepted for upload.
var DefaultAllowedExtensions = []string{"png", "jpg", "jpeg", "gif", "webp"}

var extensionPattern = regexp.MustCompile(`^[a-z0-9]+$`)

// PortfolioConfig holds all portfolio-cms configuration settings
type PortfolioConfig struct {
	// AllowedExtensions are the lowercase file extensions accepted for upload, without dots
	AllowedExtensions []string `yaml:"allowed_extensions" json:"allowed_extensions"`

	// MaxUploadSize is the largest accepted upload in bytes
	MaxUploadSize int64 `yaml:"max_upload_size" json:"max_upload_size"`

	// StorageDriver selects where image files are stored
	StorageDriver StorageDriver `yaml:"storage_driver" json:"storage_driver"`

	// StorageRoot is the directory used by the local storage driver
	StorageRoot string `yaml:"storage_root" json:"storage_root"`

	S3Bucket    string `yaml:"s3_bucket" json:"s3_bucket"`
	S3Region    string `yaml:"s3_region" json:"s3_region"`
	S3Endpoint  string `yaml:"s3_endpoint" json:"s3_endpoint"`
	S3AccessKey string `yaml:"s3_access_key" json:"s3_access_key"`
	S3SecretKey string `yaml:"s3_secret_key" json:"s3_secret_key"`
	S3UseSSL    bool   `yaml:"s3_use_ssl" json:"s3_use_ssl"`

	// DefaultCategory is the name of the category assigned to otherwise uncategorized images
	DefaultCategory string `yaml:"default_category" json:"default_category"`

	// BackupDir is where backup archives are written
	BackupDir string `yaml:"backup_dir" json:"backup_dir"`

	SMTPHost         string `yaml:"smtp_host" json:"smtp_host"`
	SMTPPort         int    `yaml:"smtp_port" json:"smtp_port"`
	SMTPUsername     string `yaml:"smtp_username" json:"smtp_username"`
	SMTPPassword     string `yaml:"smtp_password" json:"smtp_password"`
	SMTPFrom         string `yaml:"smtp_from" json:"smtp_from"`
	ContactRecipient string `yaml:"contact_recipient" json:"contact_recipient"`

	// AdminTokenTTL is the lifetime of admin session tokens in seconds
	AdminTokenTTL int `yaml:"admin_token_ttl" json:"admin_token_ttl"`

	// CORSAllowedOrigins lists the origins allowed to call the public API
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" json:"cors_allowed_origins"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// New returns a config with default values
func New() *PortfolioConfig {
	c := &PortfolioConfig{
		AllowedExtensions:  append([]string(nil), DefaultAllowedExtensions...),
		MaxUploadSize:      defaultMaxUploadSize,
		StorageDriver:      StorageDriverLocal,
		StorageRoot:        "/var/lib/portfolio/photography-assets",
		DefaultCategory:    "Uncategorized",
		BackupDir:          "/var/lib/portfolio/backups",
		SMTPPort:           587,
		AdminTokenTTL:      3600,
		CORSAllowedOrigins: []string{},
		sources:            make(map[string]string),
	}
	for _, name := range attributeNames() {
		c.sources[name] = "default"
	}
	return c
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*PortfolioConfig, error) {
	config := New()

	configPath := os.Getenv("PORTFOLIO_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig PortfolioConfig
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	if err := config.applyEnvConfig(); err != nil {
		return nil, err
	}

	return config, nil
}

func attributeNames() []string {
	return []string{
		"allowed_extensions", "max_upload_size", "storage_driver", "storage_root",
		"s3_bucket", "s3_region", "s3_endpoint", "s3_access_key", "s3_secret_key", "s3_use_ssl",
		"default_category", "backup_dir",
		"smtp_host", "smtp_port", "smtp_username", "smtp_password", "smtp_from", "contact_recipient",
		"admin_token_ttl", "cors_allowed_origins",
	}
}

func (c *PortfolioConfig) setString(dst *string, val, name, source string) {
	if val != "" {
		*dst = val
		c.sources[name] = source
	}
}

func (c *PortfolioConfig) applyFileConfig(file *PortfolioConfig) {
	if len(file.AllowedExtensions) > 0 {
		c.AllowedExtensions = normalizeExtensions(file.AllowedExtensions)
		c.sources["allowed_extensions"] = "file"
	}
	if file.MaxUploadSize != 0 {
		c.MaxUploadSize = file.MaxUploadSize
		c.sources["max_upload_size"] = "file"
	}
	if file.StorageDriver != 0 {
		c.StorageDriver = file.StorageDriver
		c.sources["storage_driver"] = "file"
	}
	c.setString(&c.StorageRoot, file.StorageRoot, "storage_root", "file")
	c.setString(&c.S3Bucket, file.S3Bucket, "s3_bucket", "file")
	c.setString(&c.S3Region, file.S3Region, "s3_region", "file")
	c.setString(&c.S3Endpoint, file.S3Endpoint, "s3_endpoint", "file")
	c.setString(&c.S3AccessKey, file.S3AccessKey, "s3_access_key", "file")
	c.setString(&c.S3SecretKey, file.S3SecretKey, "s3_secret_key", "file")
	if file.S3UseSSL {
		c.S3UseSSL = true
		c.sources["s3_use_ssl"] = "file"
	}
	c.setString(&c.DefaultCategory, file.DefaultCategory, "default_category", "file")
	c.setString(&c.BackupDir, file.BackupDir, "backup_dir", "file")
	c.setString(&c.SMTPHost, file.SMTPHost, "smtp_host", "file")
	if file.SMTPPort != 0 {
		c.SMTPPort = file.SMTPPort
		c.sources["smtp_port"] = "file"
	}
	c.setString(&c.SMTPUsername, file.SMTPUsername, "smtp_username", "file")
	c.setString(&c.SMTPPassword, file.SMTPPassword, "smtp_password", "file")
	c.setString(&c.SMTPFrom, file.SMTPFrom, "smtp_from", "file")
	c.setString(&c.ContactRecipient, file.ContactRecipient, "contact_recipient", "file")
	if file.AdminTokenTTL != 0 {
		c.AdminTokenTTL = file.AdminTokenTTL
		c.sources["admin_token_ttl"] = "file"
	}
	if len(file.CORSAllowedOrigins) > 0 {
		c.CORSAllowedOrigins = file.CORSAllowedOrigins
		c.sources["cors_allowed_origins"] = "file"
	}
}

func (c *PortfolioConfig) applyEnvConfig() error {
	if val := os.Getenv("PORTFOLIO_ALLOWED_EXTENSIONS"); val != "" {
		c.AllowedExtensions = normalizeExtensions(splitAndTrim(val))
		c.sources["allowed_extensions"] = "environment"
	}
	if val := os.Getenv("PORTFOLIO_MAX_UPLOAD_SIZE"); val != "" {
		i, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid PORTFOLIO_MAX_UPLOAD_SIZE %q: %w", val, err)
		}
		c.MaxUploadSize = i
		c.sources["max_upload_size"] = "environment"
	}
	if val := os.Getenv("PORTFOLIO_STORAGE_DRIVER"); val != "" {
		driver, err := StorageDriverString(strings.ToLower(val))
		if err != nil {
			return fmt.Errorf("invalid PORTFOLIO_STORAGE_DRIVER: %w", err)
		}
		c.StorageDriver = driver
		c.sources["storage_driver"] = "environment"
	}
	c.setString(&c.StorageRoot, os.Getenv("PORTFOLIO_STORAGE_ROOT"), "storage_root", "environment")
	c.setString(&c.S3Bucket, os.Getenv("PORTFOLIO_S3_BUCKET"), "s3_bucket", "environment")
	c.setString(&c.S3Region, os.Getenv("PORTFOLIO_S3_REGION"), "s3_region", "environment")
	c.setString(&c.S3Endpoint, os.Getenv("PORTFOLIO_S3_ENDPOINT"), "s3_endpoint", "environment")
	c.setString(&c.S3AccessKey, os.Getenv("PORTFOLIO_S3_ACCESS_KEY"), "s3_access_key", "environment")
	c.setString(&c.S3SecretKey, os.Getenv("PORTFOLIO_S3_SECRET_KEY"), "s3_secret_key", "environment")
	if val := os.Getenv("PORTFOLIO_S3_USE_SSL"); val != "" {
		c.S3UseSSL = val == "true" || val == "1"
		c.sources["s3_use_ssl"] = "environment"
	}
	c.setString(&c.DefaultCategory, os.Getenv("PORTFOLIO_DEFAULT_CATEGORY"), "default_category", "environment")
	c.setString(&c.BackupDir, os.Getenv("PORTFOLIO_BACKUP_DIR"), "backup_dir", "environment")
	c.setString(&c.SMTPHost, os.Getenv("PORTFOLIO_SMTP_HOST"), "smtp_host", "environment")
	if val := os.Getenv("PORTFOLIO_SMTP_PORT"); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid PORTFOLIO_SMTP_PORT %q: %w", val, err)
		}
		c.SMTPPort = i
		c.sources["smtp_port"] = "environment"
	}
	c.setString(&c.SMTPUsername, os.Getenv("PORTFOLIO_SMTP_USERNAME"), "smtp_username", "environment")
	c.setString(&c.SMTPPassword, os.Getenv("PORTFOLIO_SMTP_PASSWORD"), "smtp_password", "environment")
	c.setString(&c.SMTPFrom, os.Getenv("PORTFOLIO_SMTP_FROM"), "smtp_from", "environment")
	c.setString(&c.ContactRecipient, os.Getenv("PORTFOLIO_CONTACT_RECIPIENT"), "contact_recipient", "environment")
	if val := os.Getenv("PORTFOLIO_ADMIN_TOKEN_TTL"); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid PORTFOLIO_ADMIN_TOKEN_TTL %q: %w", val, err)
		}
		c.AdminTokenTTL = i
		c.sources["admin_token_ttl"] = "environment"
	}
	if val := os.Getenv("PORTFOLIO_CORS_ALLOWED_ORIGINS"); val != "" {
		c.CORSAllowedOrigins = splitAndTrim(val)
		c.sources["cors_allowed_origins"] = "environment"
	}
	return nil
}

// ConfigFilePath returns the path to the config file
func (c *PortfolioConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *PortfolioConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// TokenTTL returns the admin token TTL as a duration
func (c *PortfolioConfig) TokenTTL() time.Duration {
	return time.Duration(c.AdminTokenTTL) * time.Second
}

// IsAllowedExtension reports whether ext (with or without a leading dot) may be uploaded.
func (c *PortfolioConfig) IsAllowedExtension(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, allowed := range c.AllowedExtensions {
		if allowed == ext {
			return true
		}
	}
	return false
}

// SMTPEnabled reports whether contact messages are relayed by mail.
func (c *PortfolioConfig) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.ContactRecipient != ""
}

// Validate validates the configuration
func (c *PortfolioConfig) Validate() error {
	if len(c.AllowedExtensions) == 0 {
		return fmt.Errorf("allowed_extensions must not be empty")
	}
	for _, ext := range c.AllowedExtensions {
		if !extensionPattern.MatchString(ext) {
			return fmt.Errorf("invalid allowed_extensions value: %q", ext)
		}
	}
	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("max_upload_size must be positive, got %d", c.MaxUploadSize)
	}
	if !c.StorageDriver.IsAStorageDriver() {
		return fmt.Errorf("invalid storage_driver: %d", c.StorageDriver)
	}
	switch c.StorageDriver {
	case StorageDriverLocal:
		if c.StorageRoot == "" {
			return fmt.Errorf("storage_root is required for the local storage driver")
		}
	case StorageDriverS3, StorageDriverMinio:
		if c.S3Bucket == "" {
			return fmt.Errorf("s3_bucket is required for the %s storage driver", c.StorageDriver)
		}
		if c.StorageDriver == StorageDriverMinio && c.S3Endpoint == "" {
			return fmt.Errorf("s3_endpoint is required for the minio storage driver")
		}
	}
	if strings.TrimSpace(c.DefaultCategory) == "" {
		return fmt.Errorf("default_category must not be empty")
	}
	if c.AdminTokenTTL <= 0 {
		return fmt.Errorf("admin_token_ttl must be positive, got %d", c.AdminTokenTTL)
	}
	return nil
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}

// Attributes returns all configuration attributes with their values and sources.
// Secret values are masked.
func (c *PortfolioConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "allowed_extensions", Value: strings.Join(c.AllowedExtensions, ","), Source: c.Source("allowed_extensions")},
		{Name: "max_upload_size", Value: strconv.FormatInt(c.MaxUploadSize, 10), Source: c.Source("max_upload_size")},
		{Name: "storage_driver", Value: c.StorageDriver.String(), Source: c.Source("storage_driver")},
		{Name: "storage_root", Value: c.StorageRoot, Source: c.Source("storage_root")},
		{Name: "s3_bucket", Value: c.S3Bucket, Source: c.Source("s3_bucket")},
		{Name: "s3_region", Value: c.S3Region, Source: c.Source("s3_region")},
		{Name: "s3_endpoint", Value: c.S3Endpoint, Source: c.Source("s3_endpoint")},
		{Name: "s3_access_key", Value: mask(c.S3AccessKey), Source: c.Source("s3_access_key")},
		{Name: "s3_secret_key", Value: mask(c.S3SecretKey), Source: c.Source("s3_secret_key")},
		{Name: "s3_use_ssl", Value: strconv.FormatBool(c.S3UseSSL), Source: c.Source("s3_use_ssl")},
		{Name: "default_category", Value: c.DefaultCategory, Source: c.Source("default_category")},
		{Name: "backup_dir", Value: c.BackupDir, Source: c.Source("backup_dir")},
		{Name: "smtp_host", Value: c.SMTPHost, Source: c.Source("smtp_host")},
		{Name: "smtp_port", Value: strconv.Itoa(c.SMTPPort), Source: c.Source("smtp_port")},
		{Name: "smtp_username", Value: c.SMTPUsername, Source: c.Source("smtp_username")},
		{Name: "smtp_password", Value: mask(c.SMTPPassword), Source: c.Source("smtp_password")},
		{Name: "smtp_from", Value: c.SMTPFrom, Source: c.Source("smtp_from")},
		{Name: "contact_recipient", Value: c.ContactRecipient, Source: c.Source("contact_recipient")},
		{Name: "admin_token_ttl", Value: strconv.Itoa(c.AdminTokenTTL), Source: c.Source("admin_token_ttl")},
		{Name: "cors_allowed_origins", Value: strings.Join(c.CORSAllowedOrigins, ","), Source: c.Source("cors_allowed_origins")},
	}
}

// FormatText returns a text representation of the configuration
func (c *PortfolioConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-25s %-45s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-25s %-45s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-25s %-45s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *PortfolioConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func normalizeExtensions(exts []string) []string {
	result := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			result = append(result, ext)
		}
	}
	return result
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
