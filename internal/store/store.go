// Package store persists operator accounts, permission records and the
// console configuration document in MongoDB.
package store

import (
	"context"
	"fmt"
	"time"
)

// User is an operator account. The username is the document key.
type User struct {
	Username     string    `bson:"_id" json:"username"`
	PasswordHash []byte    `bson:"passwordHash" json:"-"`
	Salt         []byte    `bson:"salt" json:"-"`
	Role         string    `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// Permission is a (role, resource, access-level) authorization rule.
// Validate and Filter are stored verbatim and reserved for future
// row-level filtering; no read path interprets them.
type Permission struct {
	ID       string `bson:"_id" json:"_id"`
	Role     string `bson:"role" json:"role"`
	Resource string `bson:"resource" json:"resource"`
	Access   int    `bson:"access" json:"access"`
	Validate bool   `bson:"validate" json:"validate"`
	Filter   string `bson:"filter,omitempty" json:"filter,omitempty"`
}

// DefaultID returns the composite identifier used when a permission is
// created without an explicit one.
func (p *Permission) DefaultID() string {
	return fmt.Sprintf("%s:%s:%d", p.Role, p.Resource, p.Access)
}

// ConsoleConfig is the singleton settings document.
type ConsoleConfig struct {
	CompanyName        string `bson:"companyName" json:"companyName"`
	CacheEnabled       bool   `bson:"cacheEnabled" json:"cacheEnabled"`
	CacheExpiryMinutes int    `bson:"cacheExpiryMinutes" json:"cacheExpiryMinutes"`
}

// DefaultConsoleConfig is written on the first config read when no
// document exists yet.
func DefaultConsoleConfig() *ConsoleConfig {
	return &ConsoleConfig{
		CompanyName:        "ACS Console",
		CacheEnabled:       false,
		CacheExpiryMinutes: 0,
	}
}

// Store defines the persistence operations used by the console.
type Store interface {
	// User operations
	GetUser(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, u *User) error
	ListUsers(ctx context.Context) ([]*User, error)
	UpdateUserRole(ctx context.Context, username, role string) error
	UpdateUserPassword(ctx context.Context, username string, hash, salt []byte) error
	DeleteUser(ctx context.Context, username string) error

	// Permission operations
	CreatePermission(ctx context.Context, p *Permission) error
	ListPermissions(ctx context.Context) ([]*Permission, error)
	ListPermissionsByRole(ctx context.Context, role string) ([]*Permission, error)
	DeletePermission(ctx context.Context, id string) error

	// Console configuration
	GetConfig(ctx context.Context) (*ConsoleConfig, error)
	PutConfig(ctx context.Context, cfg *ConsoleConfig) error

	// Lifecycle
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
