package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"news-portal/internal/domain/entity"
	"news-portal/internal/repository"
)

// ArticleCollection is the collection holding articles.
const ArticleCollection = "articles"

type ArticleRepo struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewArticleRepo(db *mongo.Database) *ArticleRepo {
	return &ArticleRepo{
		coll: db.Collection(ArticleCollection),
		// Mongo stores milliseconds
		now: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

// EnsureIndexes creates the indexes backing the default listing and category filter.
func (repo *ArticleRepo) EnsureIndexes(ctx context.Context) error {
	_, err := repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "createdBy", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("EnsureIndexes: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) Find(ctx context.Context, q repository.Query) ([]*entity.Article, int64, error) {
	if err := q.Validate(); err != nil {
		return nil, 0, err
	}
	filter, err := BuildFilter(q.Filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("Find: Count: %w", err)
	}

	opts := options.Find().SetSort(BuildSort(q.Ordering()))
	if q.Skip > 0 {
		opts.SetSkip(int64(q.Skip))
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cur, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("Find: %w", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	articles := make([]*entity.Article, 0, q.Limit)
	for cur.Next(ctx) {
		var doc articleDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("Find: Decode: %w", err)
		}
		articles = append(articles, doc.toEntity())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("Find: %w", err)
	}
	return articles, total, nil
}

func (repo *ArticleRepo) FindByID(ctx context.Context, id entity.ArticleID) (*entity.Article, error) {
	oid, err := primitive.ObjectIDFromHex(id.String())
	if err != nil {
		return nil, nil
	}
	var doc articleDoc
	err = repo.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByID: %w", err)
	}
	return doc.toEntity(), nil
}

func (repo *ArticleRepo) Create(ctx context.Context, a *entity.Article) error {
	if err := entity.ValidateArticle(a); err != nil {
		return err
	}
	doc, err := toArticleDoc(a)
	if err != nil {
		return err
	}
	now := repo.now()
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := repo.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	a.ID = entity.ArticleID(doc.ID.Hex())
	a.CreatedAt = now
	a.UpdatedAt = now
	return nil
}

func (repo *ArticleRepo) UpdateByID(ctx context.Context, id entity.ArticleID, a *entity.Article) (*entity.Article, error) {
	if err := entity.ValidateArticle(a); err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id.String())
	if err != nil {
		return nil, nil
	}

	update := bson.M{"$set": bson.M{
		"title":     a.Title,
		"summary":   a.Summary,
		"content":   a.Content,
		"category":  a.Category,
		"author":    a.Author,
		"imageUrl":  a.ImageURL,
		"videoUrl":  optional(a.VideoURL),
		"audioUrl":  optional(a.AudioURL),
		"updatedAt": repo.now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc articleDoc
	err = repo.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("UpdateByID: %w", err)
	}
	return doc.toEntity(), nil
}

func (repo *ArticleRepo) DeleteByID(ctx context.Context, id entity.ArticleID) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id.String())
	if err != nil {
		return false, nil
	}
	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("DeleteByID: %w", err)
	}
	return res.DeletedCount > 0, nil
}
