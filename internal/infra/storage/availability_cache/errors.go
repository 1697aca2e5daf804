package availability_cache

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability_cache.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability_cache.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability_cache.repository: failed to scan row")

	// ErrEncode возвращается при ошибке сериализации слотов
	ErrEncode = errors.New("availability_cache.repository: failed to encode slots")
)
