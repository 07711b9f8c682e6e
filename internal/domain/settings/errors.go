package settings

import "errors"

var (
	ErrSettingsNotFound = errors.New("work settings have not been configured")
	ErrHolidayNotFound  = errors.New("holiday not found")
)
