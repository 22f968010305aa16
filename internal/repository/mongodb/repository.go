package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/buildtrack/sitereport/internal/domain/models"
)

// Archiver defines the interface for archiving submitted day reports.
type Archiver interface {
	ArchiveReport(ctx context.Context, report models.ArchivedReport) error
}

// MongoDBRepository implements the Archiver interface for MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "archived_reports",
	}, nil
}

// ArchiveReport upserts the submitted report keyed by its date, so
// re-submitting a day replaces the earlier archive entry.
func (r *MongoDBRepository) ArchiveReport(ctx context.Context, report models.ArchivedReport) error {
	collection := r.client.Database(r.dbName).Collection(r.collName)

	filter := bson.M{"date": report.Date}
	opts := options.Replace().SetUpsert(true)

	if _, err := collection.ReplaceOne(ctx, filter, report, opts); err != nil {
		return fmt.Errorf("failed to archive report for %s: %w", report.Date, err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
