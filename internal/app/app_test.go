package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoPageLayout is the smallest layout with a working cross-page action.
const twoPageLayout = `
page "home" {
  element "button" "go" {
    action "navigate" { target = "details" }
  }
}

page "details" {
  title = "Details"
}
`

func writeLayout(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.hcl"), []byte(content), 0600))
	return dir
}

func TestNew(t *testing.T) {
	a, logs := SetupAppTest(t, &Config{LayoutPath: writeLayout(t, twoPageLayout)})

	t.Run("layout is built", func(t *testing.T) {
		require.NotNil(t, a.Layout())
		assert.Len(t, a.Layout().Pages(), 2)
		assert.Equal(t, "home", a.Layout().RootID())
	})

	t.Run("stack is populated and rooted", func(t *testing.T) {
		require.NotNil(t, a.Stack())
		current := a.Stack().Current()
		require.NotNil(t, current)
		assert.Equal(t, "home", current.ID())
	})

	t.Run("stock actions are registered", func(t *testing.T) {
		assert.Equal(t, []string{"go_back", "navigate"}, a.Registry().Kinds())
	})

	t.Run("startup is logged", func(t *testing.T) {
		logOutput := logs.String()
		assert.Contains(t, logOutput, "Registry validation passed.")
		assert.Contains(t, logOutput, "Layout built.")
		assert.Contains(t, logOutput, "Navigation stack populated.")
	})
}

func TestNewPanicsOnMissingLayout(t *testing.T) {
	require.Panics(t, func() {
		New(&SafeBuffer{}, &Config{LayoutPath: filepath.Join(t.TempDir(), "absent")})
	})
}

func TestNewPanicsOnUnknownTarget(t *testing.T) {
	dir := writeLayout(t, `
page "home" {
  element "button" "go" {
    action "navigate" { target = "detials" }
  }
}
page "details" {}
`)

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a startup panic")
		err, ok := r.(error)
		require.True(t, ok)
		assert.Contains(t, err.Error(), "layout validation failed:")
		assert.Contains(t, err.Error(), `action "navigate" on element "go" targets unknown page "detials" (did you mean "details"?)`)
	}()
	New(&SafeBuffer{}, &Config{LayoutPath: dir, LogLevel: "debug"})
}

func TestNewConfig(t *testing.T) {
	t.Run("requires a layout path", func(t *testing.T) {
		_, err := NewConfig(Config{})
		require.Error(t, err)
	})

	t.Run("rejects conflicting modes", func(t *testing.T) {
		_, err := NewConfig(Config{LayoutPath: "x", ValidateOnly: true, Trigger: "go"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mutually exclusive")
	})
}

func TestNearest(t *testing.T) {
	assert.Equal(t, "details", nearest("detials", []string{"home", "details"}))
	assert.Equal(t, "", nearest("completely-else", []string{"home", "details"}))
}
