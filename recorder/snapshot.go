package recorder

import (
	"context"
	"fmt"
	"time"

	"github.com/shaply/automesh/shared"
	"github.com/shaply/automesh/tree"

	"go.mongodb.org/mongo-driver/bson"
)

// snapshotDocument is the Mongo document shape for a stored automaton
// snapshot: the description tree, snappy-compressed via tree.Marshal, plus
// enough metadata to query by automaton name and recency.
type snapshotDocument struct {
	AutomatonName string    `bson:"automaton_name"`
	RecordedAt    time.Time `bson:"recorded_at"`
	Tree          []byte    `bson:"tree"`
}

// SaveSnapshot persists node (typically a HybridAutomaton's top-level
// Serialize output) as a new document in the snapshots collection. A nil
// Recorder is a no-op, so callers may record unconditionally.
func (r *Recorder) SaveSnapshot(ctx context.Context, automatonName string, node *tree.Node) error {
	if r == nil || r.database == nil {
		return nil
	}

	payload, err := tree.Marshal(node)
	if err != nil {
		return fmt.Errorf("%w: marshaling snapshot for %q: %v", shared.ErrParseError, automatonName, err)
	}

	doc := snapshotDocument{
		AutomatonName: automatonName,
		RecordedAt:    time.Now(),
		Tree:          payload,
	}

	collection := r.database.Collection(snapshotsCollection)
	if _, err := collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("%w: inserting snapshot for %q: %v", shared.ErrSystemError, automatonName, err)
	}
	return nil
}

// LatestSnapshot retrieves the most recently recorded snapshot for
// automatonName, if any, decoding it back into a *tree.Node.
func (r *Recorder) LatestSnapshot(ctx context.Context, automatonName string) (*tree.Node, error) {
	if r == nil || r.database == nil {
		return nil, fmt.Errorf("%w: recorder not started", shared.ErrInvalidInput)
	}

	collection := r.database.Collection(snapshotsCollection)
	opts := optionsFindOneSortByRecordedAtDesc()

	var doc snapshotDocument
	if err := collection.FindOne(ctx, bson.M{"automaton_name": automatonName}, opts).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: loading snapshot for %q: %v", shared.ErrSystemError, automatonName, err)
	}

	node, err := tree.Unmarshal(doc.Tree)
	if err != nil {
		return nil, fmt.Errorf("%w: unmarshaling snapshot for %q: %v", shared.ErrParseError, automatonName, err)
	}
	return node, nil
}
