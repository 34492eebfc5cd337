package errors

// Config errors

func ConfigInvalid(path string, cause error) *DocsError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration invalid").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *DocsError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Template errors

func TemplateParse(name string, cause error) *DocsError {
	return Wrap(cause, CategoryTemplate, SeverityFatal, "template parse failed").
		WithContext("template", name)
}

func TemplateRender(name, operator string, cause error) *DocsError {
	return Wrap(cause, CategoryTemplate, SeverityFatal, "template render failed").
		WithContext("template", name).
		WithContext("operator", operator)
}

// Filesystem errors

func WriteFailed(path string, cause error) *DocsError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "write failed").
		WithContext("path", path)
}

func ScanFailed(path string, cause error) *DocsError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "directory scan failed").
		WithContext("path", path)
}

// Git errors

func GitFailure(operation string, cause error) *DocsError {
	return Wrap(cause, CategoryGit, SeverityError, "git operation failed").
		WithContext("operation", operation)
}
