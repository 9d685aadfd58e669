package recorder

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// optionsFindOneSortByRecordedAtDesc returns the FindOne options for
// fetching the most recent document by recorded_at, used by
// LatestSnapshot.
func optionsFindOneSortByRecordedAtDesc() *options.FindOneOptions {
	return options.FindOne().SetSort(bson.D{{Key: "recorded_at", Value: -1}})
}
