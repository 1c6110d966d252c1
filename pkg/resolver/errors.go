package resolver

// ResolutionError is returned when a stop or line selector cannot be turned
// into a single entity. Compare against the exported values with errors.Is.
type ResolutionError struct {
	Code string
}

func (e *ResolutionError) Error() string {
	return e.Code
}

var (
	ErrStopSelectorRequired   = &ResolutionError{Code: "stop_selector_required"}
	ErrCatalogRequiredForStop = &ResolutionError{Code: "catalog_required_for_stop_name"}
	ErrStopNameAmbiguous      = &ResolutionError{Code: "stop_name_ambiguous"}
	ErrStopNotFound           = &ResolutionError{Code: "stop_not_found"}
	ErrCatalogRequiredForLine = &ResolutionError{Code: "catalog_required_for_line_name"}
	ErrLineNameAmbiguous      = &ResolutionError{Code: "line_name_ambiguous"}
	ErrLineNotFound           = &ResolutionError{Code: "line_not_found"}
)
