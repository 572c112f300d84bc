package binder

import "errors"

var (
	// ErrBinderNotApplicable tells the caller to skip this binder for the request.
	ErrBinderNotApplicable = errors.New("binder not applicable")

	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrFailedToParseForm    = errors.New("failed to parse form data")
	ErrFailedToParsePath    = errors.New("failed to parse path parameters")
	ErrFailedToParseSignals = errors.New("failed to parse datastar signals")
)
