package db

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FilterType enumerates the supported comparison kinds for a query filter.
type FilterType int

const (
	EqualTo FilterType = iota
	NotEqualTo
	GreaterThan
	GreaterThanOrEqualTo
	LessThan
	LessThanOrEqualTo
	ArrayContains
	ArrayContainsAny
	In
	NotIn
)

type OrderDirection int

const (
	Ascending OrderDirection = iota
	Descending
)

// QueryFilter is one (field, value, comparison) triple.
type QueryFilter struct {
	Field string
	Value any
	Type  FilterType
}

// QueryParams is the declarative description of a single query: filters applied
// in the order given, optional single-field ordering, optional pagination
// cursors on the order field, optional limit.
type QueryParams struct {
	Filters        []QueryFilter
	OrderBy        string
	OrderDirection OrderDirection
	Limit          int64
	StartAfter     any
	EndBefore      any
}

// BuildFilter translates the descriptor's filters (and cursor bounds, which act
// as range conditions on the order field) into a bson document, preserving the
// order the filters were given in.
func BuildFilter(params QueryParams) bson.D {
	filter := bson.D{}

	for _, f := range params.Filters {
		switch f.Type {
		case EqualTo:
			filter = append(filter, bson.E{Key: f.Field, Value: f.Value})
		case NotEqualTo:
			filter = append(filter, bson.E{Key: f.Field, Value: bson.M{"$ne": f.Value}})
		case GreaterThan:
			filter = append(filter, bson.E{Key: f.Field, Value: bson.M{"$gt": f.Value}})
		case GreaterThanOrEqualTo:
			filter = append(filter, bson.E{Key: f.Field, Value: bson.M{"$gte": f.Value}})
		case LessThan:
			filter = append(filter, bson.E{Key: f.Field, Value: bson.M{"$lt": f.Value}})
		case LessThanOrEqualTo:
			filter = append(filter, bson.E{Key: f.Field, Value: bson.M{"$lte": f.Value}})
		case ArrayContains:
			// Matching a single value against an array field is plain equality in Mongo.
			filter = append(filter, bson.E{Key: f.Field, Value: f.Value})
		case ArrayContainsAny, In:
			filter = append(filter, bson.E{Key: f.Field, Value: bson.M{"$in": f.Value}})
		case NotIn:
			filter = append(filter, bson.E{Key: f.Field, Value: bson.M{"$nin": f.Value}})
		}
	}

	// Cursors only make sense relative to an ordering.
	if params.OrderBy != "" {
		if params.StartAfter != nil {
			op := "$gt"
			if params.OrderDirection == Descending {
				op = "$lt"
			}
			filter = append(filter, bson.E{Key: params.OrderBy, Value: bson.M{op: params.StartAfter}})
		}
		if params.EndBefore != nil {
			op := "$lt"
			if params.OrderDirection == Descending {
				op = "$gt"
			}
			filter = append(filter, bson.E{Key: params.OrderBy, Value: bson.M{op: params.EndBefore}})
		}
	}

	return filter
}

// BuildFindOptions translates ordering and limit into driver options.
func BuildFindOptions(params QueryParams) *options.FindOptions {
	opts := options.Find()

	if params.OrderBy != "" {
		dir := 1
		if params.OrderDirection == Descending {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: params.OrderBy, Value: dir}})
	}

	if params.Limit > 0 {
		opts.SetLimit(params.Limit)
	}

	return opts
}
