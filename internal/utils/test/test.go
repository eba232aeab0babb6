package testutils

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/dealpipeline/dbinit/internal/mongodb"
)

// MustSkipf skips a test suite, but panics if DBINIT_NO_SKIP_TEST is set
func MustSkipf(t *testing.T, format string, args ...interface{}) {
	if len(os.Getenv("DBINIT_NO_SKIP_TEST")) > 0 {
		panic("test was skipped, but DBINIT_NO_SKIP_TEST is set")
	}
	t.Skipf(format, args...)
}

const (
	defaultMongoURI = "mongodb://localhost:27017"
)

var mongoRunning = false
var mongoNotRunning = false
var skipUnlessMongoCalled = false

// MongoURI returns the MongoDB connection string to use for testing
func MongoURI() string {
	if !skipUnlessMongoCalled {
		panic("testutils.SkipUnlessMongoRunning(t) must be called before testutils.MongoURI()")
	}
	if uri := os.Getenv("DBINIT_TEST_MONGODB_URI"); uri != "" {
		return uri
	}
	return defaultMongoURI
}

// SkipUnlessMongoRunning skips tests if there is no MongoDB server running
// at the configured testing url (see: MongoURI())
var SkipUnlessMongoRunning = func() func(t *testing.T) {
	return func(t *testing.T) {
		if mongoRunning {
			return
		}
		skipUnlessMongoCalled = true
		if mongoNotRunning {
			MustSkipf(t, "MongoDB not running at %s", MongoURI())
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		client, err := mongodb.Connect(ctx, mongodb.ConnectOptions{URI: MongoURI(), ConnectTimeout: 2 * time.Second})
		if err != nil {
			mongoNotRunning = true
			MustSkipf(t, "MongoDB not running at %s", MongoURI())
			return
		}
		_ = client.Disconnect(ctx)
		mongoRunning = true
	}
}()

// ConnectMongo connects to the testing MongoDB server,
// disconnecting once the test completes
func ConnectMongo(t *testing.T) mongodb.Client {
	t.Helper()
	SkipUnlessMongoRunning(t)

	ctx := context.Background()
	client, err := mongodb.Connect(ctx, mongodb.ConnectOptions{URI: MongoURI(), ConnectTimeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("failed to connect to MongoDB: %s", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(ctx) })
	return client
}
