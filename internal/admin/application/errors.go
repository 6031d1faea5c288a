package application

import "errors"

// ErrInvalidStore wraps validation failures of store input.
var ErrInvalidStore = errors.New("invalid store")

// ErrExportUnavailable is returned when no workbook renderer is wired.
var ErrExportUnavailable = errors.New("dashboard export is not configured")
