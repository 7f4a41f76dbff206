package services

import "errors"

// Ошибки сервисного слоя. Ошибки валидации и состояния ядра оборачивают
// models.ErrValidation и models.ErrState.
var (
	// Ошибка хранилища (загрузка/сохранение снимка) - запрос завершается неудачей.
	ErrStorage = errors.New("tournament storage failure")

	// Ошибки аутентификации и авторизации
	ErrAuthenticationFailed   = errors.New("authentication failed")
	ErrAuthInvalidCredentials = errors.New("invalid password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
)
