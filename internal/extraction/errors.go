package extraction

import "errors"

// Request-level failures abort analysis of a file and never populate the
// cache. ErrExtractionFailure is node-local: it is logged and the node's
// fact is omitted.
var (
	// ErrInvalidArgument indicates a missing or empty path, key or filename.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound indicates that no candidate path resolution succeeded.
	ErrNotFound = errors.New("file not found")

	// ErrUnsupportedKind indicates a file extension outside the supported set.
	ErrUnsupportedKind = errors.New("unsupported file kind")

	// ErrTooLarge indicates content above the size ceiling.
	ErrTooLarge = errors.New("file too large")

	// ErrParseFailure indicates the grammar-level parser could not produce a tree.
	ErrParseFailure = errors.New("parse failure")

	// ErrExtractionFailure indicates a single node could not be turned into a fact.
	ErrExtractionFailure = errors.New("extraction failure")
)
