package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kenneldesk/kenneldesk/internal/domain/models"
)

// Repository defines the interface for the analysis report archive.
type Repository interface {
	SaveReport(ctx context.Context, report models.AnalysisReport) error
	ListRecentReports(ctx context.Context, limit int64) ([]models.AnalysisReport, error)
}

// MongoDBRepository implements the Repository interface for MongoDB.
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
		collName: "analysis_reports",
	}, nil
}

// SaveReport archives one generated analysis report.
func (r *MongoDBRepository) SaveReport(ctx context.Context, report models.AnalysisReport) error {
	collection := r.client.Database(r.dbName).Collection(r.collName)
	if _, err := collection.InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to insert analysis report: %w", err)
	}
	return nil
}

// ListRecentReports returns the most recently generated reports, newest first.
func (r *MongoDBRepository) ListRecentReports(ctx context.Context, limit int64) ([]models.AnalysisReport, error) {
	collection := r.client.Database(r.dbName).Collection(r.collName)

	findOptions := options.Find().
		SetSort(bson.D{{Key: "generated_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis reports: %w", err)
	}
	defer cursor.Close(ctx)

	var reports []models.AnalysisReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode analysis reports: %w", err)
	}
	return reports, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
