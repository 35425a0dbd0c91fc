// Package gorm provides GORM-based implementations of the store interfaces
// defined in the parent store package.
//
// The implementations run against PostgreSQL in production and sqlite in
// tests; queries stay within the SQL both understand.
package gorm
