package postgres_test

import (
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"news-portal/internal/domain/entity"
	"news-portal/internal/infra/adapter/persistence/postgres"
	"news-portal/internal/repository"
)

func TestArticleQueryBuilder_BuildWhereClause_Empty(t *testing.T) {
	builder := postgres.NewArticleQueryBuilder()
	clause, args, err := builder.BuildWhereClause(nil)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if clause != "" {
		t.Errorf("clause = %q, want empty", clause)
	}
	if len(args) != 0 {
		t.Errorf("len(args) = %d, want 0", len(args))
	}
}

func TestArticleQueryBuilder_BuildWhereClause_Operators(t *testing.T) {
	builder := postgres.NewArticleQueryBuilder()
	filter := []repository.Condition{
		{Field: "category", Op: repository.OpEq, Values: []string{"Sports"}},
		{Field: "createdAt", Op: repository.OpGte, Values: []string{"2025-01-01"}},
		{Field: "createdAt", Op: repository.OpLt, Values: []string{"2025-02-01T00:00:00Z"}},
		{Field: "author", Op: repository.OpNe, Values: []string{"bot"}},
	}

	clause, args, err := builder.BuildWhereClause(filter)
	if err != nil {
		t.Fatalf("err = %v", err)
	}

	expectedClause := "WHERE category = $1 AND created_at >= $2 AND created_at < $3 AND author <> $4"
	if clause != expectedClause {
		t.Errorf("clause = %q, want %q", clause, expectedClause)
	}
	if len(args) != 4 {
		t.Fatalf("len(args) = %d, want 4", len(args))
	}
	if args[0] != "Sports" {
		t.Errorf("args[0] = %v, want Sports", args[0])
	}
	if got, ok := args[1].(time.Time); !ok || !got.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("args[1] = %v, want 2025-01-01", args[1])
	}
}

func TestArticleQueryBuilder_BuildWhereClause_In(t *testing.T) {
	builder := postgres.NewArticleQueryBuilder()
	clause, args, err := builder.BuildWhereClause([]repository.Condition{
		{Field: "category", Op: repository.OpIn, Values: []string{"Sports", "World"}},
	})
	if err != nil {
		t.Fatalf("err = %v", err)
	}

	if clause != "WHERE category = ANY($1)" {
		t.Errorf("clause = %q", clause)
	}
	valuer, ok := args[0].(driver.Valuer)
	if !ok {
		t.Fatalf("args[0] is %T, want driver.Valuer", args[0])
	}
	v, err := valuer.Value()
	if err != nil {
		t.Fatal(err)
	}
	if v != `{"Sports","World"}` {
		t.Errorf("array value = %v", v)
	}
}

func TestArticleQueryBuilder_BuildWhereClause_RejectsUnknownField(t *testing.T) {
	builder := postgres.NewArticleQueryBuilder()
	_, _, err := builder.BuildWhereClause([]repository.Condition{
		{Field: "password_hash", Op: repository.OpEq, Values: []string{"x"}},
	})

	var verr *entity.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestArticleQueryBuilder_BuildOrderBy(t *testing.T) {
	builder := postgres.NewArticleQueryBuilder()

	tests := []struct {
		name string
		sort []repository.SortField
		want string
	}{
		{name: "default", sort: repository.DefaultSort, want: "ORDER BY created_at DESC, id ASC"},
		{
			name: "multiple fields",
			sort: []repository.SortField{{Field: "category"}, {Field: "updatedAt", Desc: true}},
			want: "ORDER BY category ASC, updated_at DESC, id ASC",
		},
		{name: "unknown field skipped", sort: []repository.SortField{{Field: "nope"}}, want: "ORDER BY id ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := builder.BuildOrderBy(tt.sort); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
