package products

import "errors"

var (
	// ErrUnknownProduct is returned by Lookup for names it does not know.
	ErrUnknownProduct = errors.New("unknown product")

	// ErrAppNotInstalled is returned when the product package cannot be found
	// below the base directory.
	ErrAppNotInstalled = errors.New("product is not installed")

	// ErrUnsupportedVersion is returned when the installed product is older
	// than the minimum version the wizard supports.
	ErrUnsupportedVersion = errors.New("unsupported product version")
)
