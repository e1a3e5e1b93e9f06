package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// GetUser retrieves an account by username.
// Returns ErrNotFound if no such account exists.
func (s *MongoStore) GetUser(ctx context.Context, username string) (*User, error) {
	var u User
	err := s.users().FindOne(ctx, bson.M{"_id": username}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}

// CreateUser inserts a new account.
// Returns ErrDuplicate if the username is already taken.
func (s *MongoStore) CreateUser(ctx context.Context, u *User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	_, err := s.users().InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// ListUsers retrieves all accounts.
// Returns an empty slice if none exist (not an error).
func (s *MongoStore) ListUsers(ctx context.Context) ([]*User, error) {
	cursor, err := s.users().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer cursor.Close(ctx) //nolint:errcheck

	users := []*User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// UpdateUserRole changes the role label of an existing account.
// Returns ErrNotFound if the account doesn't exist.
func (s *MongoStore) UpdateUserRole(ctx context.Context, username, role string) error {
	res, err := s.users().UpdateOne(ctx,
		bson.M{"_id": username},
		bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateUserPassword replaces the stored hash and salt of an account.
// The caller supplies a hash computed with a freshly generated salt.
// Returns ErrNotFound if the account doesn't exist.
func (s *MongoStore) UpdateUserPassword(ctx context.Context, username string, hash, salt []byte) error {
	res, err := s.users().UpdateOne(ctx,
		bson.M{"_id": username},
		bson.M{"$set": bson.M{"passwordHash": hash, "salt": salt}})
	if err != nil {
		return fmt.Errorf("failed to update user password: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes an account by username.
// Returns ErrNotFound if the account doesn't exist.
func (s *MongoStore) DeleteUser(ctx context.Context, username string) error {
	res, err := s.users().DeleteOne(ctx, bson.M{"_id": username})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
