package domain

// Resumen is the summary rendered on the dashboard landing page.
type Resumen struct {
	VecinosTotal      int64             `json:"vecinos_total" db:"vecinos_total"`
	VecinosActivos    int64             `json:"vecinos_activos" db:"vecinos_activos"`
	EventosTotal      int64             `json:"eventos_total" db:"eventos_total"`
	EventosActivos    int64             `json:"eventos_activos" db:"eventos_activos"`
	EventosProximos   int64             `json:"eventos_proximos" db:"eventos_proximos"`
	RegistrosTotal    int64             `json:"registros_total" db:"registros_total"`
	RegistrosUltimos  int64             `json:"registros_ultimos_30_dias" db:"registros_ultimos"`
	EventosDestacados []EventoConConteo `json:"eventos_destacados" db:"-"`
}

// EventoConConteo pairs an event with its registration count.
type EventoConConteo struct {
	ID        int64  `json:"id" db:"id"`
	Nombre    string `json:"nombre" db:"nombre"`
	Fecha     string `json:"fecha" db:"fecha"`
	Registros int64  `json:"registros" db:"registros"`
}
