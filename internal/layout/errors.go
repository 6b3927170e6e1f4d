package layout

import "errors"

// Sentinel errors for the layout package
var (
	// ErrFileNotFound indicates the layout file does not exist
	ErrFileNotFound = errors.New("layout file not found")

	// ErrInvalidFormat indicates the layout file is not valid YAML or JSON
	ErrInvalidFormat = errors.New("layout file must be valid YAML or JSON")

	// ErrUnsupportedExt indicates an unsupported file extension
	ErrUnsupportedExt = errors.New("unsupported file extension (use .yaml, .yml, or .json)")

	// ErrInvalidTrailingSlash indicates an unknown trailing-slash mode
	ErrInvalidTrailingSlash = errors.New("trailing_slash must be \"default\" or \"always\"")

	// ErrSPAWithoutFallback indicates SPA mode without a fallback document
	ErrSPAWithoutFallback = errors.New("spa mode requires a fallback document")
)
