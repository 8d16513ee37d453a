package version

import (
	"fmt"
	"os/exec"
	"strings"
)

// Git implements Releaser with the git cli
type Git struct {
	dir string
}

// NewGit returns a new instance of Git operating in the current directory
func NewGit() *Git {
	return &Git{}
}

// NewGitInDir returns a new instance of Git operating in dir
func NewGitInDir(dir string) *Git {
	return &Git{dir: dir}
}

// Clean reports whether the work tree has no uncommitted changes
func (g *Git) Clean() (bool, error) {
	out, err := g.run("status", "--porcelain")

	if err != nil {
		return false, err
	}

	return out == "", nil
}

// Add stages paths
func (g *Git) Add(paths ...string) error {
	_, err := g.run(append([]string{"add", "--"}, paths...)...)
	return err
}

// Commit commits staged changes with message
func (g *Git) Commit(message string) error {
	_, err := g.run("commit", "-m", message)
	return err
}

// Tag creates an annotated tag named version
func (g *Git) Tag(version string) error {
	_, err := g.run("tag", "-m", version, version)
	return err
}

func (g *Git) run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = g.dir

	out, err := cmd.CombinedOutput()

	trimmed := strings.TrimSpace(string(out))

	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s", args[0], err, trimmed)
	}

	return trimmed, nil
}
