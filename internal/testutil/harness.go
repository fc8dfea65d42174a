package testutil

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/navgridgo/actions/goback"
	"github.com/vk/navgridgo/actions/navigate"
	"github.com/vk/navgridgo/internal/ctxlog"
	"github.com/vk/navgridgo/internal/dispatch"
	"github.com/vk/navgridgo/internal/markup"
	"github.com/vk/navgridgo/internal/registry"
	"github.com/vk/navgridgo/internal/scope"
)

// LayoutResult holds the outcomes and live collaborators of a harness build.
type LayoutResult struct {
	Layout     *markup.Layout
	Logs       *SafeBuffer
	Dispatcher *dispatch.Manual
	Navigator  *RecordingNavigator
	Scopes     *scope.Provider
	Registry   *registry.Registry
	Err        error
}

// BuildLayout provides a standardized harness for layout pipeline tests
// using a default background context.
func BuildLayout(t *testing.T, files map[string]string) *LayoutResult {
	t.Helper()
	return BuildLayoutWithContext(context.Background(), t, files)
}

// BuildLayoutWithContext writes the given layout sources to a temporary
// directory, loads and builds them with the stock action modules registered,
// and returns the built layout together with the test doubles wired into it.
// Load or build failures are reported through Err, not the test, so error
// paths stay assertable.
func BuildLayoutWithContext(ctx context.Context, t *testing.T, files map[string]string) *LayoutResult {
	t.Helper()

	// 1. Write all layout files to a temporary directory. The test provides
	//    relative paths (e.g. "screens/main.hcl"), which naturally creates
	//    the subdirectory structure within the root.
	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	// 2. Capture all logging at debug level.
	logs := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx = ctxlog.WithLogger(ctx, logger)

	// 3. Register the stock action modules.
	reg := registry.New()
	(&navigate.Module{}).Register(reg)
	(&goback.Module{}).Register(reg)

	nav := &RecordingNavigator{}
	disp := dispatch.NewManual()
	scopes := scope.NewProvider(logger, nav)

	result := &LayoutResult{
		Logs:       logs,
		Dispatcher: disp,
		Navigator:  nav,
		Scopes:     scopes,
		Registry:   reg,
	}

	file, err := markup.NewLoader().LoadDir(ctx, tmpDir)
	if err != nil {
		result.Err = err
		return result
	}

	layout, err := markup.Build(ctx, file, markup.Deps{
		Registry:   reg,
		Scopes:     scopes,
		Dispatcher: disp,
		BaseContext: func() context.Context {
			return ctxlog.WithLogger(context.Background(), logger)
		},
	})
	result.Layout = layout
	result.Err = err
	return result
}
