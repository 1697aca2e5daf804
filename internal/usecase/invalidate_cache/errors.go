package invalidate_cache

import "errors"

var (
	// ErrInvalidInput возвращается, когда запрос не передан
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при ошибке хранилища кэша
	ErrInternal = errors.New("usecase: internal error")
)
