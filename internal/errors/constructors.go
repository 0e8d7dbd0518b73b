package errors

// Convenience constructors for common error patterns.

func ConfigNotFound(path string) *BuildError {
	return New(CategoryConfig, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *BuildError {
	return New(CategoryConfig, "required configuration missing").
		WithContext("field", field)
}

func ValidationFailed(field, reason string) *BuildError {
	return New(CategoryValidation, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

func RuleFailed(rule string, cause error) *BuildError {
	return Wrap(cause, CategoryDocument, "build rule failed").
		WithContext("rule", rule)
}

func RenderFailed(target string, cause error) *BuildError {
	return Wrap(cause, CategoryRender, "render failed").
		WithContext("target", target)
}

func InstallFailed(source, target string, cause error) *BuildError {
	return Wrap(cause, CategoryFileSystem, "install failed").
		WithContext("source", source).
		WithContext("target", target)
}

func ConvertFailed(source, target string, cause error) *BuildError {
	return Wrap(cause, CategoryImage, "image conversion failed").
		WithContext("source", source).
		WithContext("target", target)
}
