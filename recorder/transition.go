package recorder

import (
	"context"
	"fmt"
	"time"

	"github.com/shaply/automesh/shared"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// transitionDocument records a single fired control-switch transition for
// audit and replay, mirroring the original system's milestone/switch
// history.
type transitionDocument struct {
	AutomatonName string    `bson:"automaton_name"`
	From          string    `bson:"from"`
	To            string    `bson:"to"`
	Tick          float64   `bson:"tick"`
	RecordedAt    time.Time `bson:"recorded_at"`
}

// RecordTransition persists one mode-to-mode transition. A nil Recorder is
// a no-op.
func (r *Recorder) RecordTransition(ctx context.Context, automatonName, from, to string, t float64) error {
	if r == nil || r.database == nil {
		return nil
	}

	doc := transitionDocument{
		AutomatonName: automatonName,
		From:          from,
		To:            to,
		Tick:          t,
		RecordedAt:    time.Now(),
	}

	collection := r.database.Collection(transitionsCollection)
	if _, err := collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("%w: inserting transition %s->%s for %q: %v", shared.ErrSystemError, from, to, automatonName, err)
	}
	return nil
}

// TransitionHistory returns every recorded transition for automatonName,
// oldest first.
func (r *Recorder) TransitionHistory(ctx context.Context, automatonName string) ([]transitionDocument, error) {
	if r == nil || r.database == nil {
		return nil, fmt.Errorf("%w: recorder not started", shared.ErrInvalidInput)
	}

	collection := r.database.Collection(transitionsCollection)
	opts := options.Find().SetSort(bson.D{{Key: "recorded_at", Value: 1}})
	cursor, err := collection.Find(ctx, bson.M{"automaton_name": automatonName}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: querying transitions for %q: %v", shared.ErrSystemError, automatonName, err)
	}
	defer cursor.Close(ctx)

	var docs []transitionDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: decoding transitions for %q: %v", shared.ErrSystemError, automatonName, err)
	}
	return docs, nil
}
