// Package storage provides object storage access for archived license
// server output.
package storage
