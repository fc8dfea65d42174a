package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/navgridgo/internal/binding"
)

type okConfig struct {
	Target string `hcl:"target"`
}

func okEntry() *Entry {
	return &Entry{
		NewConfig: func() any { return new(okConfig) },
		Build:     func(any) (binding.Invoker, error) { return nil, nil },
	}
}

func TestRegisterAction(t *testing.T) {
	r := New()
	r.RegisterAction("navigate", okEntry())

	assert.Equal(t, []string{"navigate"}, r.Kinds())
	assert.Panics(t, func() { r.RegisterAction("navigate", okEntry()) })
}

func TestActionLookup(t *testing.T) {
	r := New()
	r.RegisterAction("navigate", okEntry())
	r.RegisterAction("go_back", okEntry())

	t.Run("known kind resolves", func(t *testing.T) {
		e, err := r.Action("navigate")
		require.NoError(t, err)
		assert.NotNil(t, e)
	})

	t.Run("typo gets a suggestion", func(t *testing.T) {
		_, err := r.Action("navgate")
		require.Error(t, err)
		assert.ErrorContains(t, err, `did you mean "navigate"`)
	})

	t.Run("distant kind lists what is registered", func(t *testing.T) {
		_, err := r.Action("teleport_somewhere")
		require.Error(t, err)
		assert.ErrorContains(t, err, "registered: [go_back navigate]")
	})
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("complete entries pass", func(t *testing.T) {
		r := New()
		r.RegisterAction("navigate", okEntry())
		assert.NoError(t, r.Validate(ctx))
	})

	t.Run("missing factories fail", func(t *testing.T) {
		r := New()
		r.RegisterAction("bare", &Entry{})
		err := r.Validate(ctx)
		require.Error(t, err)
		assert.ErrorContains(t, err, "must provide NewConfig and Build")
	})

	t.Run("non-struct configs fail", func(t *testing.T) {
		r := New()
		r.RegisterAction("odd", &Entry{
			NewConfig: func() any { return "not a struct" },
			Build:     func(any) (binding.Invoker, error) { return nil, nil },
		})
		err := r.Validate(ctx)
		require.Error(t, err)
		assert.ErrorContains(t, err, "pointer to a struct")
	})

	t.Run("untagged exported fields fail", func(t *testing.T) {
		type badConfig struct {
			Target string
		}
		r := New()
		r.RegisterAction("untagged", &Entry{
			NewConfig: func() any { return new(badConfig) },
			Build:     func(any) (binding.Invoker, error) { return nil, nil },
		})
		err := r.Validate(ctx)
		require.Error(t, err)
		assert.ErrorContains(t, err, "config field 'Target' has no hcl tag")
	})
}
