package domain

import "time"

// AppointmentStatus статус записи клиента
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment запись клиента к специалисту
type Appointment struct {
	ID             string
	ProfessionalID string
	ServiceID      string
	Start          time.Time
	End            time.Time
	Status         AppointmentStatus
}

// IsCancelled true для отменённой записи
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// Blocks true, если запись занимает время специалиста
func (a *Appointment) Blocks() bool {
	return !a.IsCancelled()
}

// Interval занятый записью интервал
func (a *Appointment) Interval() Interval {
	return Interval{Start: a.Start, End: a.End}
}

// TimeBlock ручная блокировка времени специалиста
type TimeBlock struct {
	ID             string
	ProfessionalID string
	ServiceID      *string
	Start          time.Time
	End            time.Time
	Reason         *string
}

// Interval заблокированный интервал
func (b *TimeBlock) Interval() Interval {
	return Interval{Start: b.Start, End: b.End}
}

// RangeFilter выборка записей или блокировок специалиста по окну начала [From, To)
type RangeFilter struct {
	ProfessionalID string
	From           time.Time
	To             time.Time
}
