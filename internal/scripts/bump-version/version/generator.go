package version

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"text/template"
)

// TemplateGenerator implements SourceGenerator by rendering a go template
type TemplateGenerator struct {
	outFile      string
	templatePath string
}

// NewTemplateGenerator returns a new instance of TemplateGenerator
func NewTemplateGenerator(outFile, templatePath string) *TemplateGenerator {
	return &TemplateGenerator{
		outFile:      outFile,
		templatePath: templatePath,
	}
}

// Generate renders info and replaces the output file with the gofmt'd
// result. The output file is left untouched when the rendered source does
// not parse.
func (t *TemplateGenerator) Generate(info AppInfo) (string, error) {
	tmpl, err := template.New(filepath.Base(t.templatePath)).ParseFiles(t.templatePath)

	if err != nil {
		return "", err
	}

	buf := bytes.Buffer{}

	if err := tmpl.Execute(&buf, info); err != nil {
		return "", err
	}

	src, err := format.Source(buf.Bytes())

	if err != nil {
		return "", fmt.Errorf("rendered %s is not valid go: %w", t.templatePath, err)
	}

	dir := filepath.Dir(t.outFile)

	if err := os.MkdirAll(dir, 0751); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, ".app-info-*")

	if err != nil {
		return "", err
	}

	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(src); err != nil {
		tmp.Close()
		return "", err
	}

	if err := tmp.Close(); err != nil {
		return "", err
	}

	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", err
	}

	if err := os.Rename(tmp.Name(), t.outFile); err != nil {
		return "", err
	}

	return t.outFile, nil
}
