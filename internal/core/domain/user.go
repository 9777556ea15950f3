package domain

import "time"

const (
	RoleAdmin         = "admin"
	RoleUser          = "user"
	RoleVisitante     = "visitante"
	RoleSubsecretaria = "subsecretaria"
)

// Roles lists every role a Usuario may hold.
var Roles = []string{RoleAdmin, RoleUser, RoleVisitante, RoleSubsecretaria}

// ValidRole reports whether r is one of Roles.
func ValidRole(r string) bool {
	for _, role := range Roles {
		if role == r {
			return true
		}
	}
	return false
}

// Usuario models an operator of the system (not a resident).
type Usuario struct {
	ID              int64     `json:"id" db:"id"`
	Nombre          string    `json:"nombre" db:"nombre"`
	Apellido        string    `json:"apellido" db:"apellido"`
	Email           string    `json:"email" db:"email"`
	PasswordHash    string    `json:"-" db:"password_hash"`
	Rol             string    `json:"rol" db:"rol"`
	SubsecretariaID *int64    `json:"subsecretaria_id" db:"subsecretaria_id"`
	Activo          bool      `json:"activo" db:"activo"`
	DatosAnteriores Snapshot  `json:"datos_anteriores,omitempty" db:"datos_anteriores"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// NombreCompleto joins nombre and apellido for display and token claims.
func (u *Usuario) NombreCompleto() string {
	if u.Apellido == "" {
		return u.Nombre
	}
	return u.Nombre + " " + u.Apellido
}

// Identity is the caller decoded from a verified token.
type Identity struct {
	UserID int64
	Email  string
	Rol    string
	Nombre string
}

func (i Identity) IsAdmin() bool { return i.Rol == RoleAdmin }
