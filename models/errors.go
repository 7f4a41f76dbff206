package models

import "errors"

// Базовые классы ошибок ядра. Конкретные ошибки оборачивают их через %w.
var (
	ErrValidation = errors.New("validation failed")
	ErrState      = errors.New("invalid tournament state")
)
