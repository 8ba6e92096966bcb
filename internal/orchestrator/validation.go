package orchestrator

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/spf13/afero"

	"github.com/zendframework/maintainers/internal/domain"
)

// ErrInvalidArgument marks command input rejected before any work starts.
var ErrInvalidArgument = errors.New("invalid argument")

var (
	// bumpVersionRegex matches the versions accepted by changelog bumps
	bumpVersionRegex = regexp.MustCompile(`^(0|[1-9]\d*)\.\d+\.\d+$`)
	// componentNameRegex matches split component repository names
	componentNameRegex = regexp.MustCompile(`^zend-[a-z0-9-]+$`)
)

// BumpBaseBranches lists the branches a changelog bump may start from.
var BumpBaseBranches = []string{"master", "develop"}

// ValidateMinorVersion validates an M.N release line.
func ValidateMinorVersion(minor string) (domain.MinorVersion, error) {
	line, err := domain.ParseMinorVersion(minor)
	if err != nil {
		return domain.MinorVersion{}, fmt.Errorf("%w: invalid version provided: %q", ErrInvalidArgument, minor)
	}
	return line, nil
}

// ValidateBumpVersion validates the version of a changelog bump.
func ValidateBumpVersion(version string) error {
	if !bumpVersionRegex.MatchString(version) {
		return fmt.Errorf("%w: invalid version provided: %q", ErrInvalidArgument, version)
	}
	return nil
}

// ValidateBaseBranch validates the base branch of a changelog bump.
func ValidateBaseBranch(base string) error {
	for _, b := range BumpBaseBranches {
		if b == base {
			return nil
		}
	}
	return fmt.Errorf("%w: invalid base branch provided; \"master\" and \"develop\" are only allowed", ErrInvalidArgument)
}

// ValidateBasePath checks that the directory holding the component checkouts exists.
func ValidateBasePath(fs afero.Fs, path string) error {
	ok, err := afero.DirExists(fs, path)
	if err != nil || !ok {
		return fmt.Errorf("%w: invalid base path provided; directory %q does not exist", ErrInvalidArgument, path)
	}
	return nil
}

// ValidatePatchFiles checks that at least one patch is given and every patch exists.
func ValidatePatchFiles(fs afero.Fs, patches []string) error {
	if len(patches) == 0 {
		return fmt.Errorf("%w: missing patchfile option; required at least one patchfile", ErrInvalidArgument)
	}
	for _, patch := range patches {
		if err := ValidatePatchFile(fs, patch); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePatchFile checks that a patch file exists.
func ValidatePatchFile(fs afero.Fs, patch string) error {
	info, err := fs.Stat(patch)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: invalid patchfile; file %q does not exist", ErrInvalidArgument, patch)
	}
	return nil
}

// ValidatePatchTarget checks that the directory a rewritten patch goes to exists.
func ValidatePatchTarget(fs afero.Fs, target string) error {
	dir := filepath.Dir(target)
	ok, err := afero.DirExists(fs, dir)
	if target == "" || err != nil || !ok {
		return fmt.Errorf("%w: invalid target; directory %q does not exist", ErrInvalidArgument, dir)
	}
	return nil
}

// ValidateComponentName validates a split component name such as zend-view.
func ValidateComponentName(component string) error {
	if !componentNameRegex.MatchString(component) {
		return fmt.Errorf("%w: invalid component name: %q", ErrInvalidArgument, component)
	}
	return nil
}
