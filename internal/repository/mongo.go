package repository

import (
	"context"
	"errors"
	"time"

	"github.com/lucasfgaldinos/habitus-api/pkg/cleanup"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	databaseName         = "habitus"
	habitsCollection     = "habits"
	focusTimesCollection = "focustimes"
)

// NewMongoDatabase connects and pings the deployment. The process-wide
// client is closed through the cleanup registry; callers must not start
// serving if an error is returned.
func NewMongoDatabase(ctx context.Context, url string) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(url).
		SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, errors.New("connecting to mongo error: " + err.Error())
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.New("pinging mongo error: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "disconnecting mongo client",
		F: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return client.Disconnect(ctx)
		},
	})
	return client.Database(databaseName), nil
}
