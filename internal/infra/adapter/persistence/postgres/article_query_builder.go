// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"news-portal/internal/repository"
)

// columns maps article wire names to columns.
var columns = map[string]string{
	"title":     "title",
	"summary":   "summary",
	"content":   "content",
	"category":  "category",
	"author":    "author",
	"imageUrl":  "image_url",
	"videoUrl":  "video_url",
	"audioUrl":  "audio_url",
	"createdBy": "created_by",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

var sqlOps = map[repository.Op]string{
	repository.OpEq:  "=",
	repository.OpNe:  "<>",
	repository.OpGt:  ">",
	repository.OpGte: ">=",
	repository.OpLt:  "<",
	repository.OpLte: "<=",
}

// ArticleQueryBuilder builds WHERE and ORDER BY clauses from repository queries.
// The WHERE clause is shared between the COUNT and SELECT statements.
// Placeholders are numbered ($1, $2, ...) starting at 1.
type ArticleQueryBuilder struct{}

// NewArticleQueryBuilder creates a new query builder instance.
func NewArticleQueryBuilder() *ArticleQueryBuilder {
	return &ArticleQueryBuilder{}
}

// BuildWhereClause returns "" and no args for an empty filter.
// OpIn binds a single array parameter compared with = ANY.
func (qb *ArticleQueryBuilder) BuildWhereClause(filter []repository.Condition) (clause string, args []any, err error) {
	conditions := make([]string, 0, len(filter))
	paramIndex := 1

	for _, c := range filter {
		if err := c.Validate(); err != nil {
			return "", nil, err
		}
		col := columns[c.Field]
		kind := repository.Fields[c.Field]

		if c.Op == repository.OpIn {
			values := make([]string, 0, len(c.Values))
			for _, v := range c.Values {
				values = append(values, normalize(kind, v))
			}
			conditions = append(conditions, fmt.Sprintf("%s = ANY($%d)", col, paramIndex))
			args = append(args, pq.Array(values))
			paramIndex++
			continue
		}

		op, ok := sqlOps[c.Op]
		if !ok {
			return "", nil, fmt.Errorf("unsupported operator %q", c.Op)
		}
		conditions = append(conditions, fmt.Sprintf("%s %s $%d", col, op, paramIndex))
		args = append(args, convert(kind, c.Values[0]))
		paramIndex++
	}

	if len(conditions) == 0 {
		return "", nil, nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args, nil
}

// BuildOrderBy renders the ordering; id breaks ties so pages are stable.
func (qb *ArticleQueryBuilder) BuildOrderBy(sort []repository.SortField) string {
	parts := make([]string, 0, len(sort)+1)
	for _, s := range sort {
		col, ok := columns[s.Field]
		if !ok {
			continue
		}
		dir := "ASC"
		if s.Desc {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
	}
	parts = append(parts, "id ASC")
	return "ORDER BY " + strings.Join(parts, ", ")
}

func convert(kind repository.FieldKind, v string) any {
	if kind == repository.KindTime {
		// Validate already checked the syntax
		t, _ := repository.ParseTime(v)
		return t
	}
	return v
}

func normalize(kind repository.FieldKind, v string) string {
	if kind == repository.KindTime {
		t, _ := repository.ParseTime(v)
		return t.Format(time.RFC3339Nano)
	}
	return v
}
