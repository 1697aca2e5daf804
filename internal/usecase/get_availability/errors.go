package get_availability

import "errors"

var (
	// ErrInvalidInput возвращается при отсутствующих или некорректных параметрах запроса
	ErrInvalidInput = errors.New("invalid input data")

	// ErrProfessionalNotFound возвращается, когда специалист не найден
	ErrProfessionalNotFound = errors.New("professional not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
