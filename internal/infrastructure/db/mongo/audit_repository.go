package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/municipio/registro-eventos/internal/core/domain"
	"github.com/municipio/registro-eventos/internal/core/ports"
)

const auditCollection = "auditoria"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

// NewAuditRepository creates a new AuditRepository over the auditoria collection.
func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

// EnsureIndexes creates the indexes List relies on. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(auditCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "entidad", Value: 1}, {Key: "entidad_id", Value: 1}, {Key: "fecha", Value: -1}}},
		{Keys: bson.D{{Key: "fecha", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("audit indexes: %w", err)
	}
	return nil
}

// Insert persists one audit entry.
func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	_, err := r.coll.InsertOne(ctx, entry)
	return err
}

// List returns the newest entries first, narrowed by filter.
func (r *AuditRepository) List(ctx context.Context, f domain.AuditFilter) ([]domain.AuditEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "fecha", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}

	cur, err := r.coll.Find(ctx, auditQuery(f), opts)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	defer cur.Close(ctx)

	entries := make([]domain.AuditEntry, 0)
	if err := cur.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode audit: %w", err)
	}
	return entries, nil
}

func auditQuery(f domain.AuditFilter) bson.M {
	q := bson.M{}
	if f.Entidad != "" {
		q["entidad"] = f.Entidad
	}
	if f.EntidadID != 0 {
		q["entidad_id"] = f.EntidadID
	}
	return q
}
