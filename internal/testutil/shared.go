//go:build integration

package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// MongoURIEnv points integration tests at an existing MongoDB instead of
// starting a container.
const MongoURIEnv = "BLEND_TEST_MONGO_URI"

var (
	sharedMu    sync.RWMutex
	sharedURI   string
	sharedMongo *Service
	dbCounter   atomic.Int64
)

// RunWithMongoDB provides one MongoDB to every test in a package. Use it
// from TestMain:
//
//	func TestMain(m *testing.M) { os.Exit(testutil.RunWithMongoDB(m)) }
func RunWithMongoDB(m *testing.M) int {
	ctx := context.Background()

	if uri := os.Getenv(MongoURIEnv); uri != "" {
		setShared(uri, nil)
		return m.Run()
	}

	startCtx, cancel := context.WithTimeout(ctx, 3*time.Minute)
	container, err := SetupMongoDB(startCtx)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "mongodb container: %v\n", err)
		return 1
	}
	setShared(container.Endpoint, container)

	code := m.Run()

	if err := container.Cleanup(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: mongodb container cleanup: %v\n", err)
	}
	setShared("", nil)
	return code
}

func setShared(uri string, container *Service) {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	sharedURI, sharedMongo = uri, container
}

// MongoURI returns the URI of the package MongoDB, failing the test when
// RunWithMongoDB was not used.
func MongoURI(t testing.TB) string {
	t.Helper()
	sharedMu.RLock()
	defer sharedMu.RUnlock()
	if sharedURI == "" {
		t.Fatal("no shared MongoDB: call testutil.RunWithMongoDB from TestMain")
	}
	return sharedURI
}

// DatabaseName derives a database name from the test name that is unique
// within the run and valid for MongoDB (at most 63 bytes, no separators).
func DatabaseName(t testing.TB) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, t.Name())
	if len(clean) > 48 {
		clean = clean[:48]
	}
	return fmt.Sprintf("%s_%d_%d", clean, os.Getpid()%10000, dbCounter.Add(1))
}
