package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"news-portal/internal/domain/entity"
	"news-portal/internal/repository"
)

/* ───────── モックデプロイメント上のリポジトリテスト ───────── */

func articleBSON(id, owner primitive.ObjectID) bson.D {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: "Markets rally"},
		{Key: "summary", Value: "Stocks up"},
		{Key: "content", Value: "<p>...</p>"},
		{Key: "category", Value: "Business"},
		{Key: "author", Value: "Reporter"},
		{Key: "imageUrl", Value: "https://cdn/i.jpg"},
		{Key: "videoUrl", Value: nil},
		{Key: "audioUrl", Value: "https://cdn/a.mp3"},
		{Key: "createdBy", Value: owner},
		{Key: "createdAt", Value: now},
		{Key: "updatedAt", Value: now},
	}
}

func validEntity(owner primitive.ObjectID) *entity.Article {
	return &entity.Article{
		Title:     "Markets rally",
		Summary:   "Stocks up",
		Content:   "<p>...</p>",
		Category:  "Business",
		Author:    "Reporter",
		ImageURL:  "https://cdn/i.jpg",
		CreatedBy: entity.UserID(owner.Hex()),
	}
}

func TestArticleRepo_Mock(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "news.articles"

	mt.Run("FindByID found", func(mt *mtest.T) {
		id, owner := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, articleBSON(id, owner)))

		got, err := NewArticleRepo(mt.DB).FindByID(context.Background(), entity.ArticleID(id.Hex()))
		require.NoError(mt, err)
		require.NotNil(mt, got)
		assert.Equal(mt, entity.ArticleID(id.Hex()), got.ID)
		assert.Equal(mt, "", got.VideoURL)
		assert.Equal(mt, "https://cdn/a.mp3", got.AudioURL)
		assert.Equal(mt, entity.UserID(owner.Hex()), got.CreatedBy)
	})

	mt.Run("FindByID missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		got, err := NewArticleRepo(mt.DB).FindByID(context.Background(), entity.ArticleID(primitive.NewObjectID().Hex()))
		require.NoError(mt, err)
		assert.Nil(mt, got)
	})

	mt.Run("FindByID malformed id skips the server", func(mt *mtest.T) {
		got, err := NewArticleRepo(mt.DB).FindByID(context.Background(), "nope")
		require.NoError(mt, err)
		assert.Nil(mt, got)
	})

	mt.Run("Create assigns id and timestamps", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		a := validEntity(primitive.NewObjectID())
		require.NoError(mt, NewArticleRepo(mt.DB).Create(context.Background(), a))
		assert.NotEmpty(mt, a.ID)
		assert.False(mt, a.CreatedAt.IsZero())
		assert.Equal(mt, a.CreatedAt, a.UpdatedAt)
	})

	mt.Run("Create rejects invalid article", func(mt *mtest.T) {
		a := validEntity(primitive.NewObjectID())
		a.Title = ""
		err := NewArticleRepo(mt.DB).Create(context.Background(), a)
		assert.ErrorIs(mt, err, entity.ErrValidationFailed)
	})

	mt.Run("Find returns page and total", func(mt *mtest.T) {
		owner := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int64(7)}}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
				articleBSON(primitive.NewObjectID(), owner),
				articleBSON(primitive.NewObjectID(), owner)),
		)

		got, total, err := NewArticleRepo(mt.DB).Find(context.Background(), repository.Query{Skip: 2, Limit: 2})
		require.NoError(mt, err)
		assert.Equal(mt, int64(7), total)
		assert.Len(mt, got, 2)
	})

	mt.Run("UpdateByID returns the stored document", func(mt *mtest.T) {
		id, owner := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: articleBSON(id, owner)}))

		got, err := NewArticleRepo(mt.DB).UpdateByID(context.Background(), entity.ArticleID(id.Hex()), validEntity(owner))
		require.NoError(mt, err)
		require.NotNil(mt, got)
		assert.Equal(mt, "Markets rally", got.Title)
	})

	mt.Run("DeleteByID", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(1)}))

		ok, err := NewArticleRepo(mt.DB).DeleteByID(context.Background(), entity.ArticleID(primitive.NewObjectID().Hex()))
		require.NoError(mt, err)
		assert.True(mt, ok)
	})
}

func TestUserRepo_Mock(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Create lowercases email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		u := &entity.User{Name: "Ann", Email: "Ann@Example.com", PasswordHash: "h", Role: entity.RoleUser}
		require.NoError(mt, NewUserRepo(mt.DB).Create(context.Background(), u))
		assert.Equal(mt, "ann@example.com", u.Email)
		assert.NotEmpty(mt, u.ID)
	})

	mt.Run("Create duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "duplicate key error",
		}))

		err := NewUserRepo(mt.DB).Create(context.Background(), &entity.User{Email: "a@b.c"})
		assert.ErrorIs(mt, err, entity.ErrDuplicateEmail)
	})

	mt.Run("FindByEmail", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "news.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Ann"},
			{Key: "email", Value: "ann@example.com"},
			{Key: "password", Value: "hash"},
			{Key: "role", Value: "admin"},
			{Key: "createdAt", Value: time.Now()},
		}))

		u, err := NewUserRepo(mt.DB).FindByEmail(context.Background(), "ANN@example.com")
		require.NoError(mt, err)
		require.NotNil(mt, u)
		assert.Equal(mt, entity.RoleAdmin, u.Role)
		assert.Equal(mt, entity.UserID(id.Hex()), u.ID)
	})
}
