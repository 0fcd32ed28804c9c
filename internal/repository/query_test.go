package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-portal/internal/domain/entity"
)

func TestCondition_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cond    Condition
		wantErr bool
	}{
		{name: "eq on category", cond: Condition{Field: "category", Op: OpEq, Values: []string{"Sports"}}},
		{name: "in with many values", cond: Condition{Field: "category", Op: OpIn, Values: []string{"Sports", "World"}}},
		{name: "gte on date", cond: Condition{Field: "createdAt", Op: OpGte, Values: []string{"2024-01-01"}}},
		{name: "lt on timestamp", cond: Condition{Field: "updatedAt", Op: OpLt, Values: []string{"2024-01-01T10:00:00Z"}}},
		{name: "unknown field", cond: Condition{Field: "password", Op: OpEq, Values: []string{"x"}}, wantErr: true},
		{name: "eq with two values", cond: Condition{Field: "title", Op: OpEq, Values: []string{"a", "b"}}, wantErr: true},
		{name: "no values", cond: Condition{Field: "title", Op: OpIn}, wantErr: true},
		{name: "bad date", cond: Condition{Field: "createdAt", Op: OpGt, Values: []string{"yesterday"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cond.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var verr *entity.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.cond.Field, verr.Field)
		})
	}
}

func TestQuery_Validate(t *testing.T) {
	assert.NoError(t, Query{Sort: []SortField{{Field: "title"}}, Limit: 10}.Validate())
	assert.Error(t, Query{Sort: []SortField{{Field: "nope"}}}.Validate())
	assert.Error(t, Query{Skip: -1}.Validate())
}

func TestQuery_Ordering(t *testing.T) {
	assert.Equal(t, DefaultSort, Query{}.Ordering())

	custom := []SortField{{Field: "title"}}
	assert.Equal(t, custom, Query{Sort: custom}.Ordering())
}

func TestParseOp(t *testing.T) {
	op, ok := ParseOp("gte")
	assert.True(t, ok)
	assert.Equal(t, OpGte, op)

	_, ok = ParseOp("regex")
	assert.False(t, ok)
}

func TestParseTime(t *testing.T) {
	got, err := ParseTime("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseTime("2024-03-05T10:11:12Z")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Hour())
}
