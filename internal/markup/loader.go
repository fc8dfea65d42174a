package markup

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/navgridgo/internal/ctxlog"
	"github.com/vk/navgridgo/internal/fsutil"
	"github.com/vk/navgridgo/internal/schema"
)

// Loader parses layout files into their schema form.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a Loader with a fresh parser.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// LoadDir loads every .hcl layout under dir, recursively and in sorted path
// order, and merges them into one schema.File.
func (l *Loader) LoadDir(ctx context.Context, dir string) (*schema.File, error) {
	logger := ctxlog.FromContext(ctx)

	paths, err := fsutil.FindFilesByExtension(dir, ".hcl")
	if err != nil {
		logger.Error("Failed to walk layout directory", "path", dir, "error", err)
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .hcl layout files found in %q", dir)
	}
	logger.Debug("Found layout files to load.", "files", paths)

	merged := &schema.File{}
	for _, path := range paths {
		hclFile, diags := l.parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse layout file %s: %w", path, diags)
		}
		f, err := decodeFile(hclFile.Body)
		if err != nil {
			return nil, fmt.Errorf("layout file %s: %w", path, err)
		}
		merged.Pages = append(merged.Pages, f.Pages...)
		merged.Templates = append(merged.Templates, f.Templates...)
		logger.Debug("Loaded layout file.", "file", path)
	}

	logger.Info("Layout loaded successfully.",
		"files", len(paths),
		"pages", len(merged.Pages),
		"templates", len(merged.Templates),
	)
	return merged, nil
}

// Parse decodes one in-memory layout source. Tests and tooling use it to
// avoid touching the filesystem.
func (l *Loader) Parse(filename string, src []byte) (*schema.File, error) {
	hclFile, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse layout %s: %w", filename, diags)
	}
	return decodeFile(hclFile.Body)
}

// decodeFile maps an HCL body onto the layout schema. Layouts are static:
// expressions are evaluated without any variables in scope.
func decodeFile(body hcl.Body) (*schema.File, error) {
	f := &schema.File{}
	if diags := gohcl.DecodeBody(body, nil, f); diags.HasErrors() {
		return nil, diags
	}
	return f, nil
}
