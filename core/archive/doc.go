// Package archive snapshots raw license server output to object storage.
package archive
