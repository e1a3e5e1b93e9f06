package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// CreatePermission inserts a new permission record.
// When the record has no ID the role:resource:access composite is used.
// Returns ErrDuplicate if a record with the same ID already exists.
func (s *MongoStore) CreatePermission(ctx context.Context, p *Permission) error {
	if p.ID == "" {
		p.ID = p.DefaultID()
	}
	_, err := s.permissions().InsertOne(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert permission: %w", err)
	}
	return nil
}

// ListPermissions retrieves all permission records.
// Returns an empty slice if none exist (not an error).
func (s *MongoStore) ListPermissions(ctx context.Context) ([]*Permission, error) {
	return s.findPermissions(ctx, bson.M{})
}

// ListPermissionsByRole retrieves the permission records scoped to one role.
func (s *MongoStore) ListPermissionsByRole(ctx context.Context, role string) ([]*Permission, error) {
	return s.findPermissions(ctx, bson.M{"role": role})
}

func (s *MongoStore) findPermissions(ctx context.Context, filter bson.M) ([]*Permission, error) {
	cursor, err := s.permissions().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query permissions: %w", err)
	}
	defer cursor.Close(ctx) //nolint:errcheck

	perms := []*Permission{}
	if err := cursor.All(ctx, &perms); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}
	return perms, nil
}

// DeletePermission removes a permission record by ID.
// Returns ErrNotFound if the record doesn't exist.
func (s *MongoStore) DeletePermission(ctx context.Context, id string) error {
	res, err := s.permissions().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete permission: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
