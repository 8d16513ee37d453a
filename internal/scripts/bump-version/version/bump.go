package version

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/robgonnella/sweep/internal/exception"
)

var semver = regexp.MustCompile(`^v\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?$`)

// ErrDirtyTree returned when a bump is attempted with uncommitted changes
var ErrDirtyTree = errors.New("work tree has uncommitted changes")

// Bump regenerates the app-info source for info, then commits and tags it.
// Only the generated file goes into the release commit, so the work tree
// must be clean beforehand.
func Bump(info AppInfo, generator SourceGenerator, releaser Releaser) error {
	if !semver.MatchString(info.Version) {
		return exception.NewInputError(
			"version",
			info.Version,
			errors.New("must look like v1.2.3"),
		)
	}

	clean, err := releaser.Clean()

	if err != nil {
		return fmt.Errorf("failed to read work tree status: %w", err)
	}

	if !clean {
		return ErrDirtyTree
	}

	file, err := generator.Generate(info)

	if err != nil {
		return fmt.Errorf("failed to generate version file: %w", err)
	}

	if err := releaser.Add(file); err != nil {
		return fmt.Errorf("failed to add %s: %w", file, err)
	}

	if err := releaser.Commit(fmt.Sprintf("Bump version %s", info.Version)); err != nil {
		return fmt.Errorf("failed to commit version: %w", err)
	}

	if err := releaser.Tag(info.Version); err != nil {
		return fmt.Errorf("failed to tag version: %w", err)
	}

	return nil
}
