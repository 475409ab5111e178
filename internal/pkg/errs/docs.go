// Package errs provides the typed error values shared by the domain,
// application and adapter layers.
//
// Each error type pairs a sentinel (ErrValueIsRequired, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrObjectNotFound) with a struct carrying the
// offending parameter and an optional cause. Unwrap returns the sentinel, so
// callers classify with errors.Is:
//
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    return echo.NewHTTPError(http.StatusNotFound)
//	}
//
// IsValidation groups the input-validation sentinels; the HTTP adapter maps
// them to 400 responses before any transaction is opened.
package errs
