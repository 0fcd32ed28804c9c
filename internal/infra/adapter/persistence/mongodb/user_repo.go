package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"news-portal/internal/domain/entity"
	"news-portal/internal/repository"
)

// UserCollection is the collection holding accounts.
const UserCollection = "users"

type UserRepo struct {
	coll *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{coll: db.Collection(UserCollection)}
}

var _ repository.UserRepository = (*UserRepo)(nil)

// EnsureIndexes makes email unique.
func (repo *UserRepo) EnsureIndexes(ctx context.Context) error {
	_, err := repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("EnsureIndexes: %w", err)
	}
	return nil
}

func (repo *UserRepo) Create(ctx context.Context, u *entity.User) error {
	doc := userDoc{
		ID:           primitive.NewObjectID(),
		Name:         u.Name,
		Email:        strings.ToLower(u.Email),
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := repo.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return entity.ErrDuplicateEmail
		}
		return fmt.Errorf("Create: %w", err)
	}
	u.ID = entity.UserID(doc.ID.Hex())
	u.Email = doc.Email
	u.CreatedAt = doc.CreatedAt
	return nil
}

func (repo *UserRepo) FindByID(ctx context.Context, id entity.UserID) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id.String())
	if err != nil {
		return nil, nil
	}
	return repo.findOne(ctx, bson.M{"_id": oid})
}

func (repo *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

func (repo *UserRepo) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc userDoc
	err := repo.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toEntity(), nil
}
