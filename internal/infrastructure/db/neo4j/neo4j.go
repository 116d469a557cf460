package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to reach a Neo4j instance.
type Config struct {
	URI      string
	Username string
	Password string
	Database string
	Timeout  time.Duration
}

// Connect establishes a Neo4j driver and verifies connectivity before
// returning it. The driver is long-lived and pools connections internally;
// sessions are opened per operation by the repositories.
func Connect(ctx context.Context, cfg Config) (neo4j.DriverWithContext, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("neo4j driver: %w", err)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		_ = driver.Close(verifyCtx)
		return nil, fmt.Errorf("neo4j connectivity: %w", err)
	}

	return driver, nil
}
