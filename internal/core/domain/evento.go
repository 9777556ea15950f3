package domain

import "time"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Evento is a schedulable municipal event residents register for.
type Evento struct {
	ID              int64     `json:"id" db:"id"`
	Nombre          string    `json:"nombre" db:"nombre"`
	Descripcion     string    `json:"descripcion" db:"descripcion"`
	Fecha           string    `json:"fecha" db:"fecha"`
	Hora            *string   `json:"hora" db:"hora"`
	Lugar           string    `json:"lugar" db:"lugar"`
	Cupo            *int      `json:"cupo" db:"cupo"`
	SubsecretariaID *int64    `json:"subsecretaria_id" db:"subsecretaria_id"`
	TipoID          *int64    `json:"tipo_id" db:"tipo_id"`
	SubtipoID       *int64    `json:"subtipo_id" db:"subtipo_id"`
	Activo          bool      `json:"activo" db:"activo"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`

	// Vencido is derived from Fecha/Hora at read time and never stored.
	Vencido bool `json:"vencido" db:"-"`
}

// Expired reports whether the event's date (and time, when set) lies before now.
// An event without hora expires at the end of its day. Dates are interpreted
// in now's location.
func (e *Evento) Expired(now time.Time) bool {
	day, err := time.ParseInLocation(DateLayout, e.Fecha, now.Location())
	if err != nil {
		return false
	}
	if e.Hora == nil || *e.Hora == "" {
		return !now.Before(day.AddDate(0, 0, 1))
	}
	clock, err := time.Parse(TimeLayout, *e.Hora)
	if err != nil {
		return !now.Before(day.AddDate(0, 0, 1))
	}
	start := day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
	return now.After(start)
}

// EventoFilter narrows List; nil fields are ignored.
type EventoFilter struct {
	SubsecretariaID *int64
	TipoID          *int64
	SubtipoID       *int64
	Activo          *bool
}

// VecinoRegistrado is a vecino registered in an event.
type VecinoRegistrado struct {
	Vecino
	RegistroID    int64     `json:"registro_id" db:"registro_id"`
	FechaRegistro time.Time `json:"fecha_registro" db:"fecha_registro"`
	Observaciones string    `json:"observaciones" db:"observaciones"`
}
