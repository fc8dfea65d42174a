package markup

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("decodes a full layout", func(t *testing.T) {
		src := `
page "home" {
  title = "Home"
  root  = true

  element "button" "go" {
    label = "Go"

    action "navigate" {
      bind_context = "page"
      target       = "details"
    }
  }
}

template "card" {
  element "row" "body" {}
}
`
		file, err := NewLoader().Parse("layout.hcl", []byte(src))
		require.NoError(t, err)

		require.Len(t, file.Pages, 1)
		page := file.Pages[0]
		assert.Equal(t, "home", page.ID)
		assert.Equal(t, "Home", page.Title)
		assert.True(t, page.Root)

		require.Len(t, page.Elements, 1)
		el := page.Elements[0]
		assert.Equal(t, "button", el.Kind)
		assert.Equal(t, "go", el.ID)
		assert.Equal(t, "Go", el.Label)

		require.Len(t, el.Actions, 1)
		assert.Equal(t, "navigate", el.Actions[0].Kind)
		assert.Equal(t, "page", el.Actions[0].BindContext)

		require.Len(t, file.Templates, 1)
		assert.Equal(t, "card", file.Templates[0].Name)
	})

	t.Run("reports syntax errors", func(t *testing.T) {
		_, err := NewLoader().Parse("broken.hcl", []byte(`page "home" {`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse layout broken.hcl")
	})

	t.Run("rejects unknown blocks", func(t *testing.T) {
		_, err := NewLoader().Parse("layout.hcl", []byte(`widget "x" {}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "widget")
	})
}

func TestLoadDir(t *testing.T) {
	writeFile := func(t *testing.T, dir, name, content string) {
		t.Helper()
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	t.Run("merges files in sorted path order", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "01_home.hcl", `page "home" {}`)
		writeFile(t, dir, "screens/02_details.hcl", `page "details" {}`)
		writeFile(t, dir, "notes.txt", "not a layout")

		file, err := NewLoader().LoadDir(context.Background(), dir)
		require.NoError(t, err)
		require.Len(t, file.Pages, 2)
		assert.Equal(t, "home", file.Pages[0].ID)
		assert.Equal(t, "details", file.Pages[1].ID)
	})

	t.Run("fails when no layout files exist", func(t *testing.T) {
		_, err := NewLoader().LoadDir(context.Background(), t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no .hcl layout files found")
	})

	t.Run("reports the failing file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "bad.hcl", `page "home" {`)

		_, err := NewLoader().LoadDir(context.Background(), dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad.hcl")
	})
}
