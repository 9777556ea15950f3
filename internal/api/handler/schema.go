package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	PasswordActual string `json:"password_actual" validate:"required"`
	PasswordNuevo  string `json:"password_nuevo"  validate:"required,min=6"`
}

// --- Vecinos ---

type vecinoRequest struct {
	Nombre          string  `json:"nombre"           validate:"required,notblank,max=100"`
	Apellido        string  `json:"apellido"         validate:"required,notblank,max=100"`
	Documento       string  `json:"documento"        validate:"required,notblank,max=20"`
	Email           string  `json:"email"            validate:"omitempty,email,max=150"`
	Telefono        string  `json:"telefono"         validate:"max=50"`
	Direccion       string  `json:"direccion"        validate:"max=200"`
	Barrio          string  `json:"barrio"           validate:"max=100"`
	FechaNacimiento *string `json:"fecha_nacimiento" validate:"omitempty,fecha"`
}

// --- Eventos ---

type eventoRequest struct {
	Nombre          string  `json:"nombre"           validate:"required,notblank,max=150"`
	Descripcion     string  `json:"descripcion"`
	Fecha           string  `json:"fecha"            validate:"required,fecha"`
	Hora            *string `json:"hora"             validate:"omitempty,hora"`
	Lugar           string  `json:"lugar"            validate:"max=200"`
	Cupo            *int    `json:"cupo"             validate:"omitempty,gte=0"`
	SubsecretariaID *int64  `json:"subsecretaria_id" validate:"omitempty,gt=0"`
	TipoID          *int64  `json:"tipo_id"          validate:"omitempty,gt=0"`
	SubtipoID       *int64  `json:"subtipo_id"       validate:"omitempty,gt=0"`
}

// --- Registros ---

type registroRequest struct {
	VecinoID      int64  `json:"vecino_id"     validate:"required,gt=0"`
	EventoID      int64  `json:"evento_id"     validate:"required,gt=0"`
	Observaciones string `json:"observaciones"`
}

type registroDocumentoRequest struct {
	Documento     string `json:"documento"     validate:"required,notblank"`
	EventoID      int64  `json:"evento_id"     validate:"required,gt=0"`
	Observaciones string `json:"observaciones"`
}

type registroUpdateRequest struct {
	Observaciones string `json:"observaciones"`
}

// --- Taxonomía ---

type taxonomiaRequest struct {
	Nombre      string `json:"nombre"      validate:"required,notblank,max=100"`
	Descripcion string `json:"descripcion"`
}

type subtipoRequest struct {
	TipoID      int64  `json:"tipo_id"     validate:"required,gt=0"`
	Nombre      string `json:"nombre"      validate:"required,notblank,max=100"`
	Descripcion string `json:"descripcion"`
}

// --- Usuarios ---

// usuarioRequest is shared by create and update; the password requirement
// differs and is checked by the handler.
type usuarioRequest struct {
	Nombre          string `json:"nombre"           validate:"required,notblank,max=100"`
	Apellido        string `json:"apellido"         validate:"required,notblank,max=100"`
	Email           string `json:"email"            validate:"required,email,max=150"`
	Password        string `json:"password"         validate:"omitempty,min=6"`
	Rol             string `json:"rol"              validate:"rol"`
	SubsecretariaID *int64 `json:"subsecretaria_id" validate:"omitempty,gt=0"`
}

// --- Responses ---

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *userSummary `json:"user,omitempty"`
}

type verifyResponse struct {
	Valid bool         `json:"valid"`
	User  *userSummary `json:"user"`
}

// userSummary is the user shape exposed by the auth endpoints.
type userSummary struct {
	ID              int64  `json:"id"`
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	Email           string `json:"email"`
	Rol             string `json:"rol"`
	SubsecretariaID *int64 `json:"subsecretaria_id"`
}
