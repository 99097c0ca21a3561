package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pagetree/internal/config"
	"git.home.luguber.info/inful/pagetree/internal/content"
)

// TestPluginMetadataValidation tests plugin metadata validation.
func TestPluginMetadataValidation(t *testing.T) {
	tests := []struct {
		name      string
		metadata  PluginMetadata
		expectErr bool
	}{
		{
			name:     "valid metadata",
			metadata: PluginMetadata{Name: "test-plugin", Version: "v1.0.0", Type: PluginTypeGenerator},
		},
		{
			name:      "missing name",
			metadata:  PluginMetadata{Version: "v1.0.0", Type: PluginTypeContent},
			expectErr: true,
		},
		{
			name:      "missing version",
			metadata:  PluginMetadata{Name: "test-plugin", Type: PluginTypeContent},
			expectErr: true,
		},
		{
			name:      "invalid type",
			metadata:  PluginMetadata{Name: "test-plugin", Version: "v1.0.0", Type: PluginType("theme")},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.metadata.Validate()
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHooks_DispatchOrderAndErrors(t *testing.T) {
	hooks := NewHooks(nil)
	var calls []string

	hooks.OnContentObjectInit("first", func(*content.Page) error {
		calls = append(calls, "first")
		return nil
	})
	hooks.OnContentObjectInit("second", func(*content.Page) error {
		calls = append(calls, "second")
		return errors.New("rejected")
	})
	hooks.OnContentObjectInit("third", func(*content.Page) error {
		calls = append(calls, "third")
		return nil
	})

	err := hooks.ContentObjectInit(content.NewPage(&config.Settings{}, "pages/a.md", "a", "en"))

	require.Error(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)

	var pe *PluginError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "second", pe.PluginName)
	assert.Equal(t, SignalContentObjectInit, pe.Operation)
}

func TestHooks_GeneratorAndWriteSignals(t *testing.T) {
	hooks := NewHooks(nil)
	var finalized, written int

	hooks.OnPageGeneratorFinalized("p", func(g *content.Generator) error {
		finalized += g.Len()
		return nil
	})
	hooks.OnPageWrite("p", func(*content.Page) error {
		written++
		return nil
	})

	s := &config.Settings{}
	page := content.NewPage(s, "pages/a.md", "a", "en")
	require.NoError(t, hooks.PageGeneratorFinalized(&content.Generator{Settings: s, Pages: []*content.Page{page}}))
	require.NoError(t, hooks.PageWrite(page))

	assert.Equal(t, 1, finalized)
	assert.Equal(t, 1, written)
	assert.Equal(t, 1, hooks.Receivers(SignalPageWrite))
	assert.Equal(t, 0, hooks.Receivers("unknown"))
}
