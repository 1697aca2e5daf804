package write_events

import "errors"

var (
	// ErrMalformedEvent сообщение невозможно разобрать, повторная обработка не поможет
	ErrMalformedEvent = errors.New("write_events: malformed event")
	// ErrInvalidate инвалидация кэша не удалась, сообщение будет обработано повторно
	ErrInvalidate = errors.New("write_events: failed to invalidate cache")
)
