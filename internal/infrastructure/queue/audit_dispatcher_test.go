package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/municipio/registro-eventos/internal/core/domain"
)

type memAuditRepo struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
	fail    bool
	done    chan struct{}
	block   chan struct{}
}

func (m *memAuditRepo) Insert(_ context.Context, e *domain.AuditEntry) error {
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done != nil {
		defer func() { m.done <- struct{}{} }()
	}
	if m.fail {
		return errors.New("mongo down")
	}
	m.entries = append(m.entries, *e)
	return nil
}

func (m *memAuditRepo) List(context.Context, domain.AuditFilter) ([]domain.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.AuditEntry(nil), m.entries...), nil
}

func waitFor(t *testing.T, ch <-chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d of %d inserts", i, n)
		}
	}
}

func TestAuditDispatcher_PreservesOrderPerKey(t *testing.T) {
	repo := &memAuditRepo{done: make(chan struct{}, 16)}
	d := NewAuditDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	acciones := []string{domain.AccionCrear, domain.AccionActualizar, domain.AccionToggle, domain.AccionEliminar}
	for _, a := range acciones {
		d.Record(domain.AuditEntry{Entidad: domain.EntidadVecino, EntidadID: 7, Accion: a})
	}
	waitFor(t, repo.done, len(acciones))

	got, _ := repo.List(ctx, domain.AuditFilter{})
	if len(got) != len(acciones) {
		t.Fatalf("expected %d entries, got %d", len(acciones), len(got))
	}
	for i, a := range acciones {
		if got[i].Accion != a {
			t.Fatalf("entry %d: expected %q, got %q", i, a, got[i].Accion)
		}
	}
}

func TestAuditDispatcher_InsertFailureIsSwallowed(t *testing.T) {
	repo := &memAuditRepo{fail: true, done: make(chan struct{}, 1)}
	d := NewAuditDispatcher(1, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Record(domain.AuditEntry{Entidad: domain.EntidadEvento, EntidadID: 1, Accion: domain.AccionCrear})
	waitFor(t, repo.done, 1)

	if got, _ := repo.List(ctx, domain.AuditFilter{}); len(got) != 0 {
		t.Fatalf("expected no stored entries, got %d", len(got))
	}
}

func TestAuditDispatcher_RecordDoesNotBlockWhenFull(t *testing.T) {
	d := NewAuditDispatcher(1, &memAuditRepo{}, zerolog.Nop())

	finished := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Record(domain.AuditEntry{Entidad: domain.EntidadRegistro, EntidadID: int64(i)})
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Record blocked with no running workers")
	}
	if got := len(d.workers[0]); got != channelBuffer {
		t.Fatalf("expected a full channel of %d, got %d", channelBuffer, got)
	}
}

func TestAuditDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewAuditDispatcher(0, &memAuditRepo{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
	key := domain.AuditEntry{Entidad: domain.EntidadUsuario, EntidadID: 3}.Key()
	first := d.shardIndex(key)
	for i := 0; i < 10; i++ {
		if d.shardIndex(key) != first {
			t.Fatal("shard index changed for the same key")
		}
	}
}

func TestAuditDispatcher_StopDrainsQueuedEntries(t *testing.T) {
	repo := &memAuditRepo{}
	d := NewAuditDispatcher(2, repo, zerolog.Nop())

	for i := 0; i < 20; i++ {
		d.Record(domain.AuditEntry{Entidad: domain.EntidadRegistro, EntidadID: int64(i), Accion: domain.AccionCrear})
	}
	d.Start(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := d.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	got, _ := repo.List(ctx, domain.AuditFilter{})
	if len(got) != 20 {
		t.Fatalf("expected 20 persisted entries, got %d", len(got))
	}
}

func TestAuditDispatcher_RecordAfterStopIsDropped(t *testing.T) {
	repo := &memAuditRepo{}
	d := NewAuditDispatcher(1, repo, zerolog.Nop())
	d.Start(context.Background())

	if err := d.Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	d.Record(domain.AuditEntry{Entidad: domain.EntidadVecino, EntidadID: 1, Accion: domain.AccionEliminar})

	if err := d.Stop(context.Background()); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
	if got, _ := repo.List(context.Background(), domain.AuditFilter{}); len(got) != 0 {
		t.Fatalf("expected no stored entries, got %d", len(got))
	}
}

func TestAuditDispatcher_StopHonoursDeadline(t *testing.T) {
	repo := &memAuditRepo{block: make(chan struct{})}
	d := NewAuditDispatcher(1, repo, zerolog.Nop())
	d.Start(context.Background())
	d.Record(domain.AuditEntry{Entidad: domain.EntidadEvento, EntidadID: 2, Accion: domain.AccionCrear})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := d.Stop(ctx)
	close(repo.block)

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
