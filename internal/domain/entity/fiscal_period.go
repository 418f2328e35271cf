package entity

import "time"

// Estados de periodo contable.
const (
	PeriodStatusOpen   = "open"
	PeriodStatusClosed = "closed"
)

// FiscalPeriod representa un periodo contable. StartDate y EndDate son inclusivos (fechas sin hora).
type FiscalPeriod struct {
	ID        string
	CompanyID string
	Name      string // ej. 2025-01
	StartDate time.Time
	EndDate   time.Time
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen indica si el periodo admite registros.
func (p *FiscalPeriod) IsOpen() bool {
	return p.Status == PeriodStatusOpen
}

// Contains indica si la fecha (por día) cae dentro del periodo.
func (p *FiscalPeriod) Contains(t time.Time) bool {
	d := truncateDay(t)
	return !d.Before(truncateDay(p.StartDate)) && !d.After(truncateDay(p.EndDate))
}

// Overlaps indica si dos periodos comparten al menos un día.
func (p *FiscalPeriod) Overlaps(other *FiscalPeriod) bool {
	return !truncateDay(p.EndDate).Before(truncateDay(other.StartDate)) &&
		!truncateDay(other.EndDate).Before(truncateDay(p.StartDate))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
