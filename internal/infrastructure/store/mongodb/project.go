package mongodb

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"readmearchitect/internal/domain/entity"
	"readmearchitect/internal/domain/repository"
	"readmearchitect/internal/infrastructure/metrics"
)

const projectsCollection = "projects"

type MongoProjectRepo struct {
	col *mongo.Collection
}

func NewMongoProjectRepo(db *mongo.Database) repository.ProjectRepository {
	col := db.Collection(projectsCollection)

	_, _ = col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{bson.E{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{bson.E{Key: "user_id", Value: 1}, bson.E{Key: "created_at", Value: -1}}},
	})

	return &MongoProjectRepo{
		col: col,
	}
}

func (r *MongoProjectRepo) Save(ctx context.Context, project *entity.Project) error {
	metrics.IncDBOp(projectsCollection, "put")

	_, err := r.col.InsertOne(ctx, project)
	if err != nil {
		metrics.IncError("mongo_project_repo", "save_error")
		return err
	}
	return nil
}

func (r *MongoProjectRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Project, error) {
	metrics.IncDBOp(projectsCollection, "list")

	opts := options.Find().SetSort(bson.D{bson.E{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": ownerID}, opts)
	if err != nil {
		metrics.IncError("mongo_project_repo", "list_error")
		return nil, err
	}
	defer func() {
		err := cur.Close(ctx)
		if err != nil {
			log.Printf("close cursor err: %s", err)
		}
	}()

	projects := make([]*entity.Project, 0)
	for cur.Next(ctx) {
		var p entity.Project
		if err := cur.Decode(&p); err != nil {
			metrics.IncError("mongo_project_repo", "list_decode_error")
			return nil, err
		}
		projects = append(projects, &p)
	}
	if err := cur.Err(); err != nil {
		metrics.IncError("mongo_project_repo", "list_cursor_error")
		return nil, err
	}
	return projects, nil
}
