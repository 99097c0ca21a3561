package errors

import stderrors "errors"

// Convenience functions for common error patterns

// ErrPageOutsidePaths is the sentinel matched by errors.Is for pages whose
// source directory is not under any configured page path.
var ErrPageOutsidePaths = stderrors.New("page outside of configured page paths")

// Config errors

func ConfigNotFound(path string) *ClassifiedError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *ClassifiedError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

func ValidationFailed(field, reason string) *ClassifiedError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// PageOutsidePaths reports a page whose directory matches no configured page
// path. It signals a misconfiguration rather than bad content.
func PageOutsidePaths(sourcePath string, pagePaths []string) *ClassifiedError {
	return Wrap(ErrPageOutsidePaths, CategoryConfig, SeverityFatal, "cannot resolve page directory").
		WithContext("source_path", sourcePath).
		WithContext("page_paths", pagePaths)
}

// Content errors

func TemplateError(template string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryTemplate, SeverityFatal, "template formatting failed").
		WithContext("template", template)
}

func ContentError(path string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryContent, SeverityFatal, "content processing failed").
		WithContext("path", path)
}

func PluginFailed(plugin, operation string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryPlugin, SeverityFatal, "plugin failed").
		WithContext("plugin", plugin).
		WithContext("operation", operation)
}

func WriteError(path string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "write failed").
		WithContext("path", path)
}
