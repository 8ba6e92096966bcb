package usecase

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

const defaultFilePermissions = 0644

// rewriteFile applies edit to the contents of path and writes the result back
// with the original permissions.
func rewriteFile(fs afero.Fs, path string, edit func(string) (string, error)) error {
	info, err := fs.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	out, err := edit(string(data))
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", path, err)
	}
	return writeFile(fs, path, out, info.Mode().Perm())
}

func writeFile(fs afero.Fs, path, contents string, perm os.FileMode) error {
	if err := afero.WriteFile(fs, path, []byte(contents), perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
