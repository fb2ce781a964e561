package reconciliation

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"healthbridge-service/internal/app/contracts"
	"healthbridge-service/internal/app/models"
	"healthbridge-service/internal/pkg/constvars"
	"healthbridge-service/internal/pkg/exceptions"
)

type RunMongoRepository struct {
	Collection *mongo.Collection
}

func NewRunMongoRepository(db *mongo.Client, dbName string) contracts.RunRepository {
	return &RunMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionRuns),
	}
}

func (repo *RunMongoRepository) InsertRun(ctx context.Context, run *models.ReconciliationRun) error {
	_, err := repo.Collection.InsertOne(ctx, run)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (repo *RunMongoRepository) FindRunByID(ctx context.Context, runID string) (*models.ReconciliationRun, error) {
	var run models.ReconciliationRun
	err := repo.Collection.FindOne(ctx, bson.M{"run_id": runID}).Decode(&run)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &run, nil
}

func (repo *RunMongoRepository) FindRunsByPatientID(ctx context.Context, patientID string, limit int) ([]models.ReconciliationRun, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := repo.Collection.Find(ctx, bson.M{"patient_id": patientID}, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var runs []models.ReconciliationRun
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return runs, nil
}
