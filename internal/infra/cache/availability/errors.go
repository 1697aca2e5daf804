package availability

import "errors"

var (
	// ErrRead возвращается при ошибке чтения из Redis
	ErrRead = errors.New("availability.cache: failed to read entry")

	// ErrWrite возвращается при ошибке записи в Redis
	ErrWrite = errors.New("availability.cache: failed to write entry")

	// ErrDelete возвращается при ошибке удаления ключа
	ErrDelete = errors.New("availability.cache: failed to delete entry")

	// ErrDecode возвращается, когда сохранённое значение не удаётся разобрать
	ErrDecode = errors.New("availability.cache: failed to decode entry")
)
