package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/municipio/registro-eventos/internal/core/domain"
	"github.com/municipio/registro-eventos/internal/core/ports"
)

func newUsuarioFixture(t *testing.T) (*UsuarioService, *stubUsuarioRepo) {
	repo := newStubUsuarioRepo(
		&domain.Usuario{ID: 1, Nombre: "Admin", Email: adminActor.Email, PasswordHash: mustHash(t, "Admin123!"), Rol: domain.RoleAdmin, Activo: true},
		&domain.Usuario{ID: 2, Nombre: "Operador", Email: userActor.Email, PasswordHash: mustHash(t, "operador"), Rol: domain.RoleUser, Activo: true},
	)
	return NewUsuarioService(repo, nil, zerolog.Nop()), repo
}

func TestUsuarioService_Create(t *testing.T) {
	svc, repo := newUsuarioFixture(t)

	u, err := svc.Create(context.Background(), adminActor, ports.UsuarioInput{
		Nombre: "Nora", Email: " Nora@Municipio.gob.ar ", Password: "secreto1", Rol: domain.RoleVisitante,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Email != "nora@municipio.gob.ar" {
		t.Errorf("expected normalized email, got %q", u.Email)
	}
	if !u.Activo {
		t.Errorf("expected new usuario to be active")
	}
	stored := repo.byID[u.ID]
	if stored.PasswordHash == "secreto1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUsuarioService_Create_DefaultsToUserRole(t *testing.T) {
	svc, _ := newUsuarioFixture(t)

	u, err := svc.Create(context.Background(), adminActor, ports.UsuarioInput{Nombre: "X", Email: "x@municipio.gob.ar", Password: "123456"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Rol != domain.RoleUser {
		t.Errorf("expected default rol user, got %q", u.Rol)
	}
}

func TestUsuarioService_Create_Validation(t *testing.T) {
	svc, _ := newUsuarioFixture(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, adminActor, ports.UsuarioInput{Email: "a@b.c", Password: "123456", Rol: "root"}); err != domain.ErrInvalidRole {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
	if _, err := svc.Create(ctx, adminActor, ports.UsuarioInput{Email: "a@b.c", Password: "123456", Rol: domain.RoleSubsecretaria}); err != domain.ErrSubsecretariaReq {
		t.Errorf("expected ErrSubsecretariaReq, got %v", err)
	}
	if _, err := svc.Create(ctx, adminActor, ports.UsuarioInput{Email: "a@b.c", Password: "123", Rol: domain.RoleUser}); err != domain.ErrWeakPassword {
		t.Errorf("expected ErrWeakPassword, got %v", err)
	}
	if _, err := svc.Create(ctx, adminActor, ports.UsuarioInput{Email: userActor.Email, Password: "123456"}); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUsuarioService_Update_PasswordOptional(t *testing.T) {
	svc, repo := newUsuarioFixture(t)
	before := repo.byID[2].PasswordHash

	u, err := svc.Update(context.Background(), adminActor, 2, ports.UsuarioInput{Nombre: "Operadora", Email: userActor.Email, Rol: domain.RoleUser})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Nombre != "Operadora" {
		t.Errorf("unexpected nombre: %q", u.Nombre)
	}
	if repo.byID[2].PasswordHash != before {
		t.Errorf("empty password must keep the current hash")
	}
	if len(u.DatosAnteriores) == 0 {
		t.Errorf("expected datos_anteriores to be stored")
	}

	if _, err := svc.Update(context.Background(), adminActor, 2, ports.UsuarioInput{Nombre: "Operadora", Email: userActor.Email, Rol: domain.RoleUser, Password: "otraclave"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(repo.byID[2].PasswordHash), []byte("otraclave")) != nil {
		t.Errorf("expected password to be replaced")
	}
}

func TestUsuarioService_SelfOperation(t *testing.T) {
	svc, _ := newUsuarioFixture(t)

	if err := svc.Delete(context.Background(), adminActor, adminActor.UserID); err != domain.ErrSelfOperation {
		t.Errorf("expected ErrSelfOperation on delete, got %v", err)
	}
	if _, err := svc.ToggleActivo(context.Background(), adminActor, adminActor.UserID); err != domain.ErrSelfOperation {
		t.Errorf("expected ErrSelfOperation on toggle, got %v", err)
	}
}

func TestUsuarioService_ToggleAndSearch(t *testing.T) {
	svc, _ := newUsuarioFixture(t)

	u, err := svc.ToggleActivo(context.Background(), adminActor, 2)
	if err != nil || u.Activo {
		t.Fatalf("expected usuario 2 inactive, got %+v (%v)", u, err)
	}

	got, err := svc.Search(context.Background(), "operador")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("inactive usuarios must not be found, got %+v", got)
	}
	if _, err := svc.Search(context.Background(), ""); err != domain.ErrEmptySearch {
		t.Errorf("expected ErrEmptySearch, got %v", err)
	}
}

func TestUsuarioService_Update_PasswordWrittenWithProfile(t *testing.T) {
	svc, repo := newUsuarioFixture(t)
	before := repo.byID[2].PasswordHash

	if _, err := svc.Update(context.Background(), adminActor, 2, ports.UsuarioInput{Nombre: "Operadora", Email: userActor.Email, Rol: domain.RoleUser, Password: "otraclave"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.passwordWrites != 0 {
		t.Errorf("expected the hash to travel with the profile update, got %d separate writes", repo.passwordWrites)
	}

	repo.updateErr = errors.New("deadlock")
	repo.byID[2].PasswordHash = before
	if _, err := svc.Update(context.Background(), adminActor, 2, ports.UsuarioInput{Nombre: "Otra", Email: userActor.Email, Rol: domain.RoleUser, Password: "terceraclave"}); err == nil {
		t.Fatal("expected the update error")
	}
	if repo.byID[2].PasswordHash != before {
		t.Errorf("failed update must not change the password")
	}
}
