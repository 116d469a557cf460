package neo4j

import (
	"context"
	"errors"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"

	"github.com/graphflix/account-api/internal/core/domain"
)

const constraintViolationTitle = "ConstraintValidationFailed"

// GraphUserRepository persists users as (:User) nodes. Each call opens one
// session scoped to a single managed transaction and releases it via a
// deferred Close before the call returns, success or not.
type GraphUserRepository struct {
	driver   neo4j.DriverWithContext
	database string
}

func NewUserRepository(driver neo4j.DriverWithContext, database string) *GraphUserRepository {
	return &GraphUserRepository{driver: driver, database: database}
}

// EnsureSchema creates the email uniqueness constraint backing
// domain.ErrEmailTaken. Idempotent; call once at startup.
func (r *GraphUserRepository) EnsureSchema(ctx context.Context) error {
	session := r.newSession(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx,
			`CREATE CONSTRAINT user_email_unique IF NOT EXISTS
			 FOR (u:User) REQUIRE u.email IS UNIQUE`, nil)
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("ensure user schema: %w", err)
	}
	return nil
}

func (r *GraphUserRepository) Create(ctx context.Context, user *domain.StoredUser) (*domain.StoredUser, error) {
	session := r.newSession(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	out, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			`CREATE (u:User {userId: $userId, email: $email, name: $name, password: $password})
			 RETURN u`,
			map[string]any{
				"userId":   user.UserID,
				"email":    user.Email,
				"name":     user.Name,
				"password": user.PasswordHash,
			})
		if err != nil {
			return nil, err
		}
		record, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		return userFromRecord(record)
	})
	if err != nil {
		var neoErr *db.Neo4jError
		if errors.As(err, &neoErr) && neoErr.Title() == constraintViolationTitle {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return out.(*domain.StoredUser), nil
}

func (r *GraphUserRepository) FindByEmail(ctx context.Context, email string) (*domain.StoredUser, error) {
	return r.findOne(ctx, `MATCH (u:User {email: $value}) RETURN u LIMIT 1`, email)
}

func (r *GraphUserRepository) FindByID(ctx context.Context, userID string) (*domain.StoredUser, error) {
	return r.findOne(ctx, `MATCH (u:User {userId: $value}) RETURN u LIMIT 1`, userID)
}

// findOne runs a single-record read. The session is closed before the caller
// sees the result, so the returned user is fully materialized and no store
// resource outlives the lookup.
func (r *GraphUserRepository) findOne(ctx context.Context, cypher, value string) (*domain.StoredUser, error) {
	session := r.newSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, map[string]any{"value": value})
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			if err := res.Err(); err != nil {
				return nil, err
			}
			return nil, domain.ErrUserNotFound
		}
		return userFromRecord(res.Record())
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return out.(*domain.StoredUser), nil
}

func (r *GraphUserRepository) newSession(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return r.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: r.database,
	})
}

func userFromRecord(record *db.Record) (*domain.StoredUser, error) {
	val, ok := record.Get("u")
	if !ok {
		return nil, fmt.Errorf("record missing user node")
	}
	node, ok := val.(neo4j.Node)
	if !ok {
		return nil, fmt.Errorf("unexpected record value %T", val)
	}

	return &domain.StoredUser{
		UserID:       stringProp(node.Props, "userId"),
		Email:        stringProp(node.Props, "email"),
		Name:         stringProp(node.Props, "name"),
		PasswordHash: stringProp(node.Props, "password"),
	}, nil
}

func stringProp(props map[string]any, key string) string {
	s, _ := props[key].(string)
	return s
}
