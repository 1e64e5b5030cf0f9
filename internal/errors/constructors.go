package errors

// Convenience functions for common error patterns

// Input errors

func ValidationFailed(field, reason string) *MsphError {
	return New(CategoryValidation, SeverityFatal, reason).
		WithContext("field", field)
}

func UnsupportedValue(field, value string, allowed []string) *MsphError {
	return New(CategoryValidation, SeverityFatal, "unsupported value").
		WithContext("field", field).
		WithContext("value", value).
		WithContext("allowed", allowed)
}

// Config errors

func ConfigNotFound(path string) *MsphError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *MsphError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration file is invalid").
		WithContext("path", path)
}

func ModuleNotConfigured(name string) *MsphError {
	return New(CategoryConfig, SeverityFatal, "module not configured").
		WithContext("module", name)
}

func ContainerNotConfigured(module string) *MsphError {
	return New(CategoryConfig, SeverityFatal, "module has no container").
		WithContext("module", module)
}

// Local resource errors

func FileSystemError(operation, path string, cause error) *MsphError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "filesystem operation failed").
		WithContext("operation", operation).
		WithContext("path", path)
}

func RegistryRequestFailed(url string, cause error) *MsphError {
	return Wrap(cause, CategoryNetwork, SeverityError, "registry request failed").
		WithContext("url", url)
}

// Internal errors

func InternalError(message string, cause error) *MsphError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
