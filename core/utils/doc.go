// Package utils provides common utility functions for the license manager
// agent. It includes lenient numeric parsing and hostname normalization
// helpers shared by the vendor output parsers.
package utils
