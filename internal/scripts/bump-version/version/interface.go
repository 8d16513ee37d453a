package version

// AppInfo represents the values rendered into the app-info source file
type AppInfo struct {
	Name    string
	Version string
}

//go:generate mockgen -destination=../../../mock/scripts/bump-version/version/version.go -package=mock_version . Releaser,SourceGenerator

// Releaser records a release in version control
type Releaser interface {
	Clean() (bool, error)
	Add(paths ...string) error
	Commit(message string) error
	Tag(version string) error
}

// SourceGenerator renders app info into a go source file and returns the
// path it wrote
type SourceGenerator interface {
	Generate(info AppInfo) (string, error)
}
