// Package mongodb provides MongoDB implementations of repository interfaces.
package mongodb

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"news-portal/internal/domain/entity"
	"news-portal/internal/repository"
)

var mongoOps = map[repository.Op]string{
	repository.OpEq:  "$eq",
	repository.OpNe:  "$ne",
	repository.OpGt:  "$gt",
	repository.OpGte: "$gte",
	repository.OpLt:  "$lt",
	repository.OpLte: "$lte",
	repository.OpIn:  "$in",
}

// BuildFilter translates conditions into a filter document. Conditions on
// the same field are merged, so createdAt_gte and createdAt_lt form one range.
func BuildFilter(conds []repository.Condition) (bson.M, error) {
	filter := bson.M{}
	for _, c := range conds {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		op, ok := mongoOps[c.Op]
		if !ok {
			return nil, fmt.Errorf("unsupported operator %q", c.Op)
		}

		values := make([]any, 0, len(c.Values))
		for _, raw := range c.Values {
			v, err := convertValue(c.Field, raw)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}

		ops, _ := filter[c.Field].(bson.M)
		if ops == nil {
			ops = bson.M{}
			filter[c.Field] = ops
		}
		if c.Op == repository.OpIn {
			ops[op] = values
		} else {
			ops[op] = values[0]
		}
	}
	return filter, nil
}

func convertValue(field, raw string) (any, error) {
	if repository.Fields[field] == repository.KindTime {
		return repository.ParseTime(raw)
	}
	if field == "createdBy" {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, &entity.ValidationError{Field: field, Message: "must be a valid id"}
		}
		return oid, nil
	}
	return raw, nil
}

// BuildSort renders the ordering; _id breaks ties so pages are stable.
func BuildSort(sort []repository.SortField) bson.D {
	d := make(bson.D, 0, len(sort)+1)
	for _, s := range sort {
		if _, ok := repository.Fields[s.Field]; !ok {
			continue
		}
		dir := 1
		if s.Desc {
			dir = -1
		}
		d = append(d, bson.E{Key: s.Field, Value: dir})
	}
	return append(d, bson.E{Key: "_id", Value: 1})
}
