package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"readmearchitect/internal/domain/entity"
	"readmearchitect/internal/domain/repository"
	"readmearchitect/internal/infrastructure/metrics"
)

const usersCollection = "users"

type MongoUserRepo struct {
	col *mongo.Collection
}

func NewMongoUserRepo(db *mongo.Database) repository.UserRepository {
	col := db.Collection(usersCollection)

	_, _ = col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{bson.E{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{bson.E{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})

	return &MongoUserRepo{
		col: col,
	}
}

func (r *MongoUserRepo) Create(ctx context.Context, user *entity.User) error {
	metrics.IncDBOp(usersCollection, "put")

	_, err := r.col.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicate
	}
	if err != nil {
		metrics.IncError("mongo_user_repo", "create_error")
		return err
	}
	return nil
}

func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepo) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	metrics.IncDBOp(usersCollection, "get")

	var user entity.User
	err := r.col.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		metrics.IncError("mongo_user_repo", "get_error")
		return nil, err
	}
	return &user, nil
}
