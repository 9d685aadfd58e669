// Package recorder persists description-tree snapshots and tick-transition
// history for audit and replay, backed by MongoDB. It is entirely optional:
// the engine runs fine with a nil *Recorder. SaveSnapshot and
// RecordTransition are no-ops on a nil or unstarted Recorder, and
// LatestSnapshot and TransitionHistory return an error; Start, Stop and
// IsHealthy need a non-nil Recorder. Mirrors the teacher's
// database.DBManager lifecycle (Start(ctx), Stop(), IsHealthy()) exactly.
package recorder

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shaply/automesh/shared"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	snapshotsCollection   = "snapshots"
	transitionsCollection = "transitions"
)

// Recorder owns a persistent MongoDB connection used to record automaton
// snapshots and transitions. The zero value is not usable; construct via
// New and call Start before recording anything.
type Recorder struct {
	client   *mongo.Client
	database *mongo.Database
	ctx      context.Context
	cancel   context.CancelFunc
}

// New returns an unstarted Recorder.
func New() *Recorder {
	return &Recorder{}
}

// Start connects to MongoDB using MONGODB_URI/MONGODB_DATABASE, the same
// environment variables and pool-size tuning the teacher's
// database.MongodbHandler.Start uses.
func (r *Recorder) Start(ctx context.Context) error {
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		return fmt.Errorf("%w: MONGODB_URI environment variable is not set", shared.ErrInvalidInput)
	}
	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "automesh"
	}

	shared.DebugPrint("recorder: connecting to MongoDB at %s", mongoURI)

	r.ctx, r.cancel = context.WithCancel(ctx)

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().
		ApplyURI(mongoURI).
		SetServerAPIOptions(serverAPI).
		SetMaxPoolSize(shared.MONGODB_MAX_POOL_SIZE).
		SetMinPoolSize(shared.MONGODB_MIN_POOL_SIZE).
		SetRetryWrites(true).
		SetRetryReads(true)

	client, err := mongo.Connect(r.ctx, opts)
	if err != nil {
		r.cancel()
		return fmt.Errorf("%w: creating mongo client: %v", shared.ErrSystemError, err)
	}
	if err := client.Ping(r.ctx, readpref.Primary()); err != nil {
		client.Disconnect(r.ctx)
		r.cancel()
		return fmt.Errorf("%w: pinging mongo: %v", shared.ErrSystemError, err)
	}

	r.client = client
	r.database = client.Database(dbName)
	shared.DebugPrint("recorder: connected to database %s", dbName)
	return nil
}

// Stop disconnects from MongoDB and releases the recorder's context.
func (r *Recorder) Stop() error {
	if r.cancel != nil {
		r.cancel()
	}
	if r.client != nil {
		if err := r.client.Disconnect(context.Background()); err != nil {
			return fmt.Errorf("%w: disconnecting mongo: %v", shared.ErrSystemError, err)
		}
	}
	return nil
}

// IsHealthy pings the MongoDB connection with a short timeout.
func (r *Recorder) IsHealthy() bool {
	if r.client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.client.Ping(ctx, readpref.Primary()) == nil
}
