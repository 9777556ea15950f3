package service

import (
	"context"
	"strings"
	"sync"

	"github.com/municipio/registro-eventos/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory repositories shared by the service tests.
// ---------------------------------------------------------------------------

type stubUsuarioRepo struct {
	byID   map[int64]*domain.Usuario
	nextID int64

	passwordWrites int
	updateErr      error
}

func newStubUsuarioRepo(users ...*domain.Usuario) *stubUsuarioRepo {
	r := &stubUsuarioRepo{byID: make(map[int64]*domain.Usuario)}
	for _, u := range users {
		r.nextID++
		if u.ID == 0 {
			u.ID = r.nextID
		}
		r.byID[u.ID] = cloneUsuario(u)
	}
	return r
}

func cloneUsuario(u *domain.Usuario) *domain.Usuario {
	c := *u
	return &c
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]domain.Usuario, error) {
	out := make([]domain.Usuario, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id int64) (*domain.Usuario, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUsuario(u), nil
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*domain.Usuario, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUsuario(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUsuarioRepo) Search(_ context.Context, q string) ([]domain.Usuario, error) {
	q = strings.ToLower(q)
	out := []domain.Usuario{}
	for _, u := range r.byID {
		if !u.Activo {
			continue
		}
		if strings.Contains(strings.ToLower(u.Nombre+" "+u.Apellido+" "+u.Email), q) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *domain.Usuario) (int64, error) {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return 0, domain.ErrDuplicateEmail
		}
	}
	r.nextID++
	c := cloneUsuario(u)
	c.ID = r.nextID
	r.byID[c.ID] = c
	return c.ID, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *domain.Usuario) (*domain.Usuario, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	cur, ok := r.byID[u.ID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	prev := cloneUsuario(cur)
	snap, _ := domain.NewSnapshot(prev)
	cur.Nombre, cur.Apellido, cur.Email = u.Nombre, u.Apellido, u.Email
	cur.Rol, cur.SubsecretariaID = u.Rol, u.SubsecretariaID
	cur.DatosAnteriores = snap
	if u.PasswordHash != "" {
		cur.PasswordHash = u.PasswordHash
	}
	return prev, nil
}

func (r *stubUsuarioRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	r.passwordWrites++
	u.PasswordHash = hash
	return nil
}

func (r *stubUsuarioRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubUsuarioRepo) ToggleActivo(_ context.Context, id int64) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Activo = !u.Activo
	return nil
}

type stubVecinoRepo struct {
	byID    map[int64]*domain.Vecino
	nextID  int64
	eventos []domain.EventoRegistrado
}

func newStubVecinoRepo(vecinos ...*domain.Vecino) *stubVecinoRepo {
	r := &stubVecinoRepo{byID: make(map[int64]*domain.Vecino)}
	for _, v := range vecinos {
		r.nextID++
		if v.ID == 0 {
			v.ID = r.nextID
		}
		c := *v
		r.byID[v.ID] = &c
	}
	return r
}

func (r *stubVecinoRepo) List(_ context.Context, activo *bool) ([]domain.Vecino, error) {
	out := []domain.Vecino{}
	for _, v := range r.byID {
		if activo != nil && v.Activo != *activo {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}

func (r *stubVecinoRepo) FindByID(_ context.Context, id int64) (*domain.Vecino, error) {
	v, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrResidentNotFound
	}
	c := *v
	return &c, nil
}

func (r *stubVecinoRepo) FindByDocumento(_ context.Context, documento string) (*domain.Vecino, error) {
	for _, v := range r.byID {
		if v.Documento == documento {
			c := *v
			return &c, nil
		}
	}
	return nil, domain.ErrResidentNotFound
}

func (r *stubVecinoRepo) Search(_ context.Context, q string) ([]domain.Vecino, error) {
	q = strings.ToLower(q)
	out := []domain.Vecino{}
	for _, v := range r.byID {
		if v.Activo && strings.Contains(strings.ToLower(v.Nombre+" "+v.Apellido+" "+v.Documento+" "+v.Email), q) {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *stubVecinoRepo) Create(_ context.Context, v *domain.Vecino) (int64, error) {
	for _, existing := range r.byID {
		if existing.Documento == v.Documento {
			return 0, domain.ErrDuplicateDocumento
		}
	}
	r.nextID++
	c := *v
	c.ID = r.nextID
	r.byID[c.ID] = &c
	return c.ID, nil
}

func (r *stubVecinoRepo) Update(_ context.Context, v *domain.Vecino) (*domain.Vecino, error) {
	cur, ok := r.byID[v.ID]
	if !ok {
		return nil, domain.ErrResidentNotFound
	}
	prev := *cur
	snap, _ := domain.NewSnapshot(prev)
	next := *v
	next.Activo = cur.Activo
	next.DatosAnteriores = snap
	r.byID[v.ID] = &next
	return &prev, nil
}

func (r *stubVecinoRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrResidentNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubVecinoRepo) ToggleActivo(_ context.Context, id int64) error {
	v, ok := r.byID[id]
	if !ok {
		return domain.ErrResidentNotFound
	}
	v.Activo = !v.Activo
	return nil
}

func (r *stubVecinoRepo) ListEventos(_ context.Context, _ int64) ([]domain.EventoRegistrado, error) {
	return append([]domain.EventoRegistrado{}, r.eventos...), nil
}

type stubEventoRepo struct {
	byID   map[int64]*domain.Evento
	nextID int64
}

func newStubEventoRepo(eventos ...*domain.Evento) *stubEventoRepo {
	r := &stubEventoRepo{byID: make(map[int64]*domain.Evento)}
	for _, e := range eventos {
		r.nextID++
		if e.ID == 0 {
			e.ID = r.nextID
		}
		c := *e
		r.byID[e.ID] = &c
	}
	return r
}

func (r *stubEventoRepo) List(_ context.Context, f domain.EventoFilter) ([]domain.Evento, error) {
	out := []domain.Evento{}
	for _, e := range r.byID {
		if f.SubsecretariaID != nil && (e.SubsecretariaID == nil || *e.SubsecretariaID != *f.SubsecretariaID) {
			continue
		}
		if f.Activo != nil && e.Activo != *f.Activo {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubEventoRepo) FindByID(_ context.Context, id int64) (*domain.Evento, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrEventoNotFound
	}
	c := *e
	return &c, nil
}

func (r *stubEventoRepo) Create(_ context.Context, e *domain.Evento) (int64, error) {
	r.nextID++
	c := *e
	c.ID = r.nextID
	r.byID[c.ID] = &c
	return c.ID, nil
}

func (r *stubEventoRepo) Update(_ context.Context, e *domain.Evento) error {
	if _, ok := r.byID[e.ID]; !ok {
		return domain.ErrEventoNotFound
	}
	c := *e
	r.byID[e.ID] = &c
	return nil
}

func (r *stubEventoRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrEventoNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubEventoRepo) ToggleActivo(_ context.Context, id int64) error {
	e, ok := r.byID[id]
	if !ok {
		return domain.ErrEventoNotFound
	}
	e.Activo = !e.Activo
	return nil
}

func (r *stubEventoRepo) ListVecinos(_ context.Context, _ int64) ([]domain.VecinoRegistrado, error) {
	return []domain.VecinoRegistrado{}, nil
}

type stubRegistroRepo struct {
	byID      map[int64]*domain.Registro
	nextID    int64
	existsErr error
}

func newStubRegistroRepo() *stubRegistroRepo {
	return &stubRegistroRepo{byID: make(map[int64]*domain.Registro)}
}

func (r *stubRegistroRepo) List(_ context.Context, f domain.RegistroFilter) ([]domain.RegistroDetalle, error) {
	out := []domain.RegistroDetalle{}
	for _, reg := range r.byID {
		if f.VecinoID != 0 && reg.VecinoID != f.VecinoID {
			continue
		}
		if f.EventoID != 0 && reg.EventoID != f.EventoID {
			continue
		}
		out = append(out, domain.RegistroDetalle{Registro: *reg})
	}
	return out, nil
}

func (r *stubRegistroRepo) FindByID(_ context.Context, id int64) (*domain.RegistroDetalle, error) {
	reg, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRegistroNotFound
	}
	return &domain.RegistroDetalle{Registro: *reg}, nil
}

func (r *stubRegistroRepo) ExistsForPair(_ context.Context, vecinoID, eventoID int64) (bool, error) {
	if r.existsErr != nil {
		return false, r.existsErr
	}
	for _, reg := range r.byID {
		if reg.VecinoID == vecinoID && reg.EventoID == eventoID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubRegistroRepo) Create(_ context.Context, reg *domain.Registro) (int64, error) {
	r.nextID++
	c := *reg
	c.ID = r.nextID
	r.byID[c.ID] = &c
	return c.ID, nil
}

func (r *stubRegistroRepo) UpdateObservaciones(_ context.Context, id int64, obs string) error {
	reg, ok := r.byID[id]
	if !ok {
		return domain.ErrRegistroNotFound
	}
	reg.Observaciones = obs
	return nil
}

func (r *stubRegistroRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrRegistroNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubSubsecretariaRepo struct {
	byID   map[int64]*domain.Subsecretaria
	nextID int64
}

func newStubSubsecretariaRepo(subs ...*domain.Subsecretaria) *stubSubsecretariaRepo {
	r := &stubSubsecretariaRepo{byID: make(map[int64]*domain.Subsecretaria)}
	for _, s := range subs {
		r.nextID++
		if s.ID == 0 {
			s.ID = r.nextID
		}
		c := *s
		r.byID[s.ID] = &c
	}
	return r
}

func (r *stubSubsecretariaRepo) List(_ context.Context) ([]domain.Subsecretaria, error) {
	out := []domain.Subsecretaria{}
	for _, s := range r.byID {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSubsecretariaRepo) FindByID(_ context.Context, id int64) (*domain.Subsecretaria, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSubsecretariaNotFound
	}
	c := *s
	return &c, nil
}

func (r *stubSubsecretariaRepo) Create(_ context.Context, s *domain.Subsecretaria) (int64, error) {
	for _, existing := range r.byID {
		if existing.Nombre == s.Nombre {
			return 0, domain.ErrDuplicateNombre
		}
	}
	r.nextID++
	c := *s
	c.ID = r.nextID
	r.byID[c.ID] = &c
	return c.ID, nil
}

func (r *stubSubsecretariaRepo) Update(_ context.Context, s *domain.Subsecretaria) error {
	if _, ok := r.byID[s.ID]; !ok {
		return domain.ErrSubsecretariaNotFound
	}
	c := *s
	r.byID[s.ID] = &c
	return nil
}

func (r *stubSubsecretariaRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrSubsecretariaNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubSubsecretariaRepo) ToggleActivo(_ context.Context, id int64) error {
	s, ok := r.byID[id]
	if !ok {
		return domain.ErrSubsecretariaNotFound
	}
	s.Activo = !s.Activo
	return nil
}

type stubTipoRepo struct {
	byID     map[int64]*domain.Tipo
	nextID   int64
	subtipos *stubSubtipoRepo
}

func newStubTipoRepo(tipos ...*domain.Tipo) *stubTipoRepo {
	r := &stubTipoRepo{byID: make(map[int64]*domain.Tipo)}
	for _, t := range tipos {
		r.nextID++
		if t.ID == 0 {
			t.ID = r.nextID
		}
		c := *t
		r.byID[t.ID] = &c
	}
	return r
}

func (r *stubTipoRepo) List(_ context.Context) ([]domain.Tipo, error) {
	out := []domain.Tipo{}
	for _, t := range r.byID {
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubTipoRepo) FindByID(_ context.Context, id int64) (*domain.Tipo, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTipoNotFound
	}
	c := *t
	return &c, nil
}

func (r *stubTipoRepo) Create(_ context.Context, t *domain.Tipo) (int64, error) {
	r.nextID++
	c := *t
	c.ID = r.nextID
	r.byID[c.ID] = &c
	return c.ID, nil
}

func (r *stubTipoRepo) Update(_ context.Context, t *domain.Tipo) error {
	if _, ok := r.byID[t.ID]; !ok {
		return domain.ErrTipoNotFound
	}
	c := *t
	r.byID[t.ID] = &c
	return nil
}

// Delete cascades into the linked subtipo repo, mirroring the schema FK.
func (r *stubTipoRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrTipoNotFound
	}
	delete(r.byID, id)
	if r.subtipos != nil {
		for sid, st := range r.subtipos.byID {
			if st.TipoID == id {
				delete(r.subtipos.byID, sid)
			}
		}
	}
	return nil
}

type stubSubtipoRepo struct {
	byID   map[int64]*domain.Subtipo
	nextID int64
}

func newStubSubtipoRepo(subtipos ...*domain.Subtipo) *stubSubtipoRepo {
	r := &stubSubtipoRepo{byID: make(map[int64]*domain.Subtipo)}
	for _, s := range subtipos {
		r.nextID++
		if s.ID == 0 {
			s.ID = r.nextID
		}
		c := *s
		r.byID[s.ID] = &c
	}
	return r
}

func (r *stubSubtipoRepo) List(_ context.Context, tipoID int64) ([]domain.Subtipo, error) {
	out := []domain.Subtipo{}
	for _, s := range r.byID {
		if tipoID != 0 && s.TipoID != tipoID {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSubtipoRepo) FindByID(_ context.Context, id int64) (*domain.Subtipo, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSubtipoNotFound
	}
	c := *s
	return &c, nil
}

func (r *stubSubtipoRepo) Create(_ context.Context, s *domain.Subtipo) (int64, error) {
	r.nextID++
	c := *s
	c.ID = r.nextID
	r.byID[c.ID] = &c
	return c.ID, nil
}

func (r *stubSubtipoRepo) Update(_ context.Context, s *domain.Subtipo) error {
	if _, ok := r.byID[s.ID]; !ok {
		return domain.ErrSubtipoNotFound
	}
	c := *s
	r.byID[s.ID] = &c
	return nil
}

func (r *stubSubtipoRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrSubtipoNotFound
	}
	delete(r.byID, id)
	return nil
}

// recordingAudit keeps every entry it receives.
type recordingAudit struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (a *recordingAudit) Record(e domain.AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, e)
}

func (a *recordingAudit) last() domain.AuditEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.entries) == 0 {
		return domain.AuditEntry{}
	}
	return a.entries[len(a.entries)-1]
}

func ptr[T any](v T) *T { return &v }

var (
	adminActor = domain.Identity{UserID: 1, Email: "admin@municipio.gob.ar", Rol: domain.RoleAdmin, Nombre: "Admin"}
	userActor  = domain.Identity{UserID: 2, Email: "operador@municipio.gob.ar", Rol: domain.RoleUser, Nombre: "Operador"}
)
