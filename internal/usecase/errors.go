package usecase

import crerr "github.com/cockroachdb/errors"

// Error taxonomy for ingestion runs. Fetch and extraction errors are scoped to
// one match, persistence errors to one batch, configuration errors to the
// whole run. ErrMissingData wraps ErrExtraction so callers can match either.
var (
	ErrFetch         = crerr.New("document fetch failed")
	ErrExtraction    = crerr.New("document extraction failed")
	ErrMissingData   = crerr.Wrap(ErrExtraction, "required data missing")
	ErrPersistence   = crerr.New("batch persistence failed")
	ErrConfiguration = crerr.New("storage is not configured")
)
