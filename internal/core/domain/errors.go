package domain

import "errors"

// Not found.
var (
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrResidentNotFound      = errors.New("vecino no encontrado")
	ErrEventoNotFound        = errors.New("evento no encontrado")
	ErrRegistroNotFound      = errors.New("registro no encontrado")
	ErrSubsecretariaNotFound = errors.New("subsecretaría no encontrada")
	ErrTipoNotFound          = errors.New("tipo no encontrado")
	ErrSubtipoNotFound       = errors.New("subtipo no encontrado")
)

// Conflicts and invalid input detected below the transport layer.
var (
	ErrAlreadyRegistered  = errors.New("el vecino ya está registrado en este evento")
	ErrDuplicateDocumento = errors.New("ya existe un vecino con ese documento")
	ErrDuplicateEmail     = errors.New("ya existe un usuario con ese email")
	ErrDuplicateNombre    = errors.New("ya existe un registro con ese nombre")
	ErrInUse              = errors.New("no se puede eliminar: tiene registros asociados")
	ErrInvalidReference   = errors.New("referencia inválida: la entidad relacionada no existe")
	ErrSubtipoMismatch    = errors.New("el subtipo no pertenece al tipo indicado")
	ErrSelfOperation      = errors.New("no puede realizar esta operación sobre su propio usuario")
	ErrInvalidRole        = errors.New("rol inválido")
	ErrSubsecretariaReq   = errors.New("el rol subsecretaria requiere una subsecretaría asignada")
	ErrEmptySearch        = errors.New("el parámetro de búsqueda es requerido")
	ErrWeakPassword       = errors.New("la contraseña debe tener al menos 6 caracteres")
)

// Authentication and authorization.
var (
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrInactiveUser       = errors.New("usuario inactivo")
	ErrForbidden          = errors.New("acceso denegado")
)
