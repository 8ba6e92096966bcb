package repository

import "github.com/spf13/afero"

// FileSystemRepository defines the interface for filesystem operations.
type FileSystemRepository interface {
	afero.Fs
}

// NewOSFileSystem returns the real filesystem.
func NewOSFileSystem() FileSystemRepository {
	return afero.NewOsFs()
}

// NewDryRunFileSystem reads through to the real filesystem and keeps every
// write in memory.
func NewDryRunFileSystem() FileSystemRepository {
	return afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(afero.NewOsFs()), afero.NewMemMapFs())
}
