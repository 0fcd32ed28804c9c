package repository

import (
	"fmt"
	"time"

	"news-portal/internal/domain/entity"
)

// Op is a comparison operator of a filter condition.
type Op string

const (
	OpEq  Op = "eq"
	OpNe  Op = "ne"
	OpGt  Op = "gt"
	OpGte Op = "gte"
	OpLt  Op = "lt"
	OpLte Op = "lte"
	OpIn  Op = "in"
)

// ParseOp accepts the operator names used in query strings.
func ParseOp(s string) (Op, bool) {
	switch op := Op(s); op {
	case OpEq, OpNe, OpGt, OpGte, OpLt, OpLte, OpIn:
		return op, true
	}
	return "", false
}

// FieldKind tells adapters how to convert raw condition values.
type FieldKind int

const (
	KindString FieldKind = iota
	KindTime
)

// Fields lists the article fields that can be filtered, sorted and projected,
// keyed by wire name.
var Fields = map[string]FieldKind{
	"title":     KindString,
	"summary":   KindString,
	"content":   KindString,
	"category":  KindString,
	"author":    KindString,
	"imageUrl":  KindString,
	"videoUrl":  KindString,
	"audioUrl":  KindString,
	"createdBy": KindString,
	"createdAt": KindTime,
	"updatedAt": KindTime,
}

// Condition restricts Field with Op. Values holds one value except for OpIn.
type Condition struct {
	Field  string
	Op     Op
	Values []string
}

// Validate checks the field allow-list, the value count and time syntax.
func (c Condition) Validate() error {
	kind, ok := Fields[c.Field]
	if !ok {
		return &entity.ValidationError{Field: c.Field, Message: "field cannot be used as a filter"}
	}
	if len(c.Values) == 0 || (c.Op != OpIn && len(c.Values) != 1) {
		return &entity.ValidationError{Field: c.Field, Message: fmt.Sprintf("operator %s must be given exactly one value", c.Op)}
	}
	if kind == KindTime {
		for _, v := range c.Values {
			if _, err := ParseTime(v); err != nil {
				return &entity.ValidationError{Field: c.Field, Message: "must be an RFC3339 timestamp or YYYY-MM-DD date"}
			}
		}
	}
	return nil
}

// ParseTime accepts RFC3339 timestamps and bare dates.
func ParseTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, v)
}

// SortField orders results by Field.
type SortField struct {
	Field string
	Desc  bool
}

// DefaultSort is newest first.
var DefaultSort = []SortField{{Field: "createdAt", Desc: true}}

// Query selects a page of articles. Limit 0 means no limit.
type Query struct {
	Filter []Condition
	Sort   []SortField
	Skip   int
	Limit  int
}

// Validate checks every condition and sort field.
func (q Query) Validate() error {
	for _, c := range q.Filter {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	for _, s := range q.Sort {
		if _, ok := Fields[s.Field]; !ok {
			return &entity.ValidationError{Field: s.Field, Message: "field cannot be used for sorting"}
		}
	}
	if q.Skip < 0 || q.Limit < 0 {
		return &entity.ValidationError{Field: "page", Message: "must be positive"}
	}
	return nil
}

// Ordering returns Sort, or DefaultSort when none is given.
func (q Query) Ordering() []SortField {
	if len(q.Sort) == 0 {
		return DefaultSort
	}
	return q.Sort
}
