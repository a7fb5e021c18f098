package pgmeta_test

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
)

var (
	testConnString string
	testConnOnce   sync.Once
)

// getTestConnString starts a single shared postgres container and returns
// its connection string. Tests isolate themselves with unique table names
// rather than separate containers.
func getTestConnString(t *testing.T) string {
	t.Helper()

	testConnOnce.Do(func() {
		ctx := context.Background()

		pg, err := pgcontainer.Run(ctx,
			"postgres:18-alpine",
			pgcontainer.WithDatabase("testdb"),
			pgcontainer.WithUsername("testuser"),
			pgcontainer.WithPassword("testpass"),
			pgcontainer.BasicWaitStrategies(),
		)
		if err != nil {
			t.Fatalf("failed to start postgres container: %v", err)
		}

		connString, err := pg.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			if termErr := testcontainers.TerminateContainer(pg); termErr != nil {
				t.Logf("failed to terminate container: %s", termErr)
			}
			t.Fatalf("failed to get connection string: %v", err)
		}

		testConnString = connString
	})

	return testConnString
}

// getRandomTableName generates a unique table name so tests sharing the
// container do not collide.
func getRandomTableName(t *testing.T) string {
	t.Helper()
	n, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	assert.NoError(t, err, "random table name")
	return fmt.Sprintf("test_%x", n.Int64())
}
