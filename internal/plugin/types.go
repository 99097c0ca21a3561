package plugin

import "fmt"

// PluginType identifies the category of plugin.
type PluginType string

const (
	// PluginTypeContent reacts to content objects as they are created.
	PluginTypeContent PluginType = "content"

	// PluginTypeGenerator post-processes the full page collection.
	PluginTypeGenerator PluginType = "generator"

	// PluginTypeWriter adjusts pages right before output.
	PluginTypeWriter PluginType = "writer"
)

// IsValid returns true if the plugin type is recognized.
func (t PluginType) IsValid() bool {
	switch t {
	case PluginTypeContent, PluginTypeGenerator, PluginTypeWriter:
		return true
	default:
		return false
	}
}

// String returns the string representation of the plugin type.
func (t PluginType) String() string {
	return string(t)
}

// PluginError represents an error that occurred within a plugin handler.
type PluginError struct {
	// PluginName identifies which plugin failed.
	PluginName string

	// Operation is the signal being dispatched when it failed.
	Operation string

	Err error
}

// Error implements the error interface.
func (e *PluginError) Error() string {
	return fmt.Sprintf("plugin %s failed during %s: %v", e.PluginName, e.Operation, e.Err)
}

// Unwrap returns the underlying error for error inspection.
func (e *PluginError) Unwrap() error {
	return e.Err
}

// NewPluginError creates a new plugin error.
func NewPluginError(pluginName, operation string, err error) *PluginError {
	return &PluginError{
		PluginName: pluginName,
		Operation:  operation,
		Err:        err,
	}
}
