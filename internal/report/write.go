package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bull/research-insights/internal/markdown"
)

// Output formats.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

var fileNames = map[string]string{
	FormatJSON:     "report.json",
	FormatMarkdown: "report.md",
	FormatHTML:     "report.html",
}

// Render encodes r in the given format. HTML is rendered from the Markdown
// form by renderer.
func Render(r *Report, format string, renderer *markdown.Renderer) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatMarkdown:
		return Markdown(r), nil
	case FormatHTML:
		data, err := renderer.Document("Research Report: "+r.Metadata.Research.Topic, Markdown(r))
		if err != nil {
			return nil, fmt.Errorf("render html: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// WriteFiles renders r in every format and writes report.json, report.md
// and report.html into dir. Each file is replaced atomically. It returns
// the written paths.
func WriteFiles(dir string, r *Report, renderer *markdown.Renderer) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var paths []string
	for _, format := range []string{FormatJSON, FormatMarkdown, FormatHTML} {
		data, err := Render(r, format, renderer)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, fileNames[format])
		if err := writeAtomic(path, data); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "tmp-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
