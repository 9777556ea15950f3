package handler

import (
	"strings"

	"github.com/municipio/registro-eventos/internal/core/domain"
	"github.com/municipio/registro-eventos/internal/core/ports"
)

func toUserSummary(u *domain.Usuario) *userSummary {
	if u == nil {
		return nil
	}
	return &userSummary{
		ID:              u.ID,
		Nombre:          u.Nombre,
		Apellido:        u.Apellido,
		Email:           u.Email,
		Rol:             u.Rol,
		SubsecretariaID: u.SubsecretariaID,
	}
}

func toVecinoInput(r vecinoRequest) ports.VecinoInput {
	return ports.VecinoInput{
		Nombre:          strings.TrimSpace(r.Nombre),
		Apellido:        strings.TrimSpace(r.Apellido),
		Documento:       strings.TrimSpace(r.Documento),
		Email:           strings.TrimSpace(r.Email),
		Telefono:        strings.TrimSpace(r.Telefono),
		Direccion:       strings.TrimSpace(r.Direccion),
		Barrio:          strings.TrimSpace(r.Barrio),
		FechaNacimiento: emptyToNil(r.FechaNacimiento),
	}
}

func toEventoInput(r eventoRequest) ports.EventoInput {
	return ports.EventoInput{
		Nombre:          strings.TrimSpace(r.Nombre),
		Descripcion:     strings.TrimSpace(r.Descripcion),
		Fecha:           r.Fecha,
		Hora:            emptyToNil(r.Hora),
		Lugar:           strings.TrimSpace(r.Lugar),
		Cupo:            r.Cupo,
		SubsecretariaID: r.SubsecretariaID,
		TipoID:          r.TipoID,
		SubtipoID:       r.SubtipoID,
	}
}

func toUsuarioInput(r usuarioRequest) ports.UsuarioInput {
	return ports.UsuarioInput{
		Nombre:          strings.TrimSpace(r.Nombre),
		Apellido:        strings.TrimSpace(r.Apellido),
		Email:           r.Email,
		Password:        r.Password,
		Rol:             r.Rol,
		SubsecretariaID: r.SubsecretariaID,
	}
}

func toTaxonomiaInput(r taxonomiaRequest) ports.TaxonomiaInput {
	return ports.TaxonomiaInput{
		Nombre:      strings.TrimSpace(r.Nombre),
		Descripcion: strings.TrimSpace(r.Descripcion),
	}
}

func toSubtipoInput(r subtipoRequest) ports.SubtipoInput {
	return ports.SubtipoInput{
		TipoID:      r.TipoID,
		Nombre:      strings.TrimSpace(r.Nombre),
		Descripcion: strings.TrimSpace(r.Descripcion),
	}
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
