// Command portfolioctl runs and administers the photography portfolio CMS.
//
// # Quick Start
//
//	export DATABASE_URL=postgres://portfolio@localhost/portfolio?sslmode=disable
//	export PORTFOLIO_JWT_SECRET=$(openssl rand -hex 32)
//
//	# Create the schema
//	portfolioctl db migrate
//
//	# Create an admin account
//	portfolioctl admin create owner
//
//	# Start the server
//	portfolioctl server
//
// A sqlite catalog can be used for local work by pointing DATABASE_URL at
// sqlite:///path/to/portfolio.db.
//
// # Environment Variables
//
//   - DATABASE_URL: catalog database (postgres URL or sqlite://path)
//   - PORTFOLIO_JWT_SECRET: admin session signing secret, at least 32 bytes
//   - PORTFOLIO_CONFIG_PATH: directory holding portfolio.yml
//   - PORTFOLIO_LOG_LEVEL: set to debug for verbose and SQL logging
//   - AUDIT_DATABASE_URL: optional postgres database for the audit trail
//   - PORTFOLIO_AUDIT_ENABLED: set to false to disable audit output
//
// Any variable may also be set in a .env file in the working directory.
package main
