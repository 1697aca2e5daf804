package get_availability

import "time"

// Request модель запроса доступных слотов
type Request struct {
	Date           string // YYYY-MM-DD в часовом поясе специалиста
	ProfessionalID string
	ServiceID      string
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date           string
	ProfessionalID string
	ServiceID      string
	Slots          []time.Time // начала слотов по возрастанию, UTC
	FromCache      bool
}
