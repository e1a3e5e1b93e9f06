package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// configDoc wraps ConsoleConfig with the fixed singleton key.
type configDoc struct {
	ID string `bson:"_id"`
	ConsoleConfig
}

// GetConfig returns the persisted console configuration.
// If no document exists yet the hard-coded defaults are written and
// returned in a single atomic upsert, so concurrent first reads agree.
func (s *MongoStore) GetConfig(ctx context.Context) (*ConsoleConfig, error) {
	def := DefaultConsoleConfig()
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc configDoc
	err := s.config().FindOneAndUpdate(ctx,
		bson.M{"_id": configDocID},
		bson.M{"$setOnInsert": bson.M{
			"companyName":        def.CompanyName,
			"cacheEnabled":       def.CacheEnabled,
			"cacheExpiryMinutes": def.CacheExpiryMinutes,
		}},
		opts).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return &doc.ConsoleConfig, nil
}

// PutConfig replaces the whole configuration document.
// Callers must supply a complete document; there is no field-level merge.
func (s *MongoStore) PutConfig(ctx context.Context, cfg *ConsoleConfig) error {
	doc := configDoc{ID: configDocID, ConsoleConfig: *cfg}
	_, err := s.config().ReplaceOne(ctx,
		bson.M{"_id": configDocID},
		doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
