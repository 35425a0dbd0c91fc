// Package config provides configuration management for portfolio-cms.
//
// Configuration is built once at process start and passed to the services
// that need it. There is no package-level instance.
//
// # Configuration Sources
//
// Values are layered, later sources winning:
//
//   - Built-in defaults
//   - $PORTFOLIO_CONFIG_PATH/portfolio.yml (default /etc/portfolio/portfolio.yml)
//   - PORTFOLIO_* environment variables
//
// Every attribute remembers which layer supplied it; see
// PortfolioConfig.Attributes.
//
// # Key Configuration Options
//
//   - PORTFOLIO_ALLOWED_EXTENSIONS: comma separated upload extensions
//   - PORTFOLIO_MAX_UPLOAD_SIZE: upload limit in bytes
//   - PORTFOLIO_STORAGE_DRIVER: local, s3 or minio
//   - PORTFOLIO_STORAGE_ROOT: directory for the local driver
//   - PORTFOLIO_DEFAULT_CATEGORY: fallback category name
//
// Secrets are not configuration attributes: DATABASE_URL and
// PORTFOLIO_JWT_SECRET are read directly by the commands that need them.
package config
