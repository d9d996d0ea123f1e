package db

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildFilterComparisonKinds(t *testing.T) {
	cases := []struct {
		name   string
		filter QueryFilter
		want   bson.E
	}{
		{"equal", QueryFilter{"status", "PENDING", EqualTo}, bson.E{Key: "status", Value: "PENDING"}},
		{"not equal", QueryFilter{"status", "REJECTED", NotEqualTo}, bson.E{Key: "status", Value: bson.M{"$ne": "REJECTED"}}},
		{"greater", QueryFilter{"views", 10, GreaterThan}, bson.E{Key: "views", Value: bson.M{"$gt": 10}}},
		{"greater or equal", QueryFilter{"views", 10, GreaterThanOrEqualTo}, bson.E{Key: "views", Value: bson.M{"$gte": 10}}},
		{"less", QueryFilter{"views", 10, LessThan}, bson.E{Key: "views", Value: bson.M{"$lt": 10}}},
		{"less or equal", QueryFilter{"views", 10, LessThanOrEqualTo}, bson.E{Key: "views", Value: bson.M{"$lte": 10}}},
		{"array contains", QueryFilter{"participants", "u1", ArrayContains}, bson.E{Key: "participants", Value: "u1"}},
		{"array contains any", QueryFilter{"tags", []string{"a", "b"}, ArrayContainsAny}, bson.E{Key: "tags", Value: bson.M{"$in": []string{"a", "b"}}}},
		{"in", QueryFilter{"_id", []string{"x", "y"}, In}, bson.E{Key: "_id", Value: bson.M{"$in": []string{"x", "y"}}}},
		{"not in", QueryFilter{"category", []string{"pet"}, NotIn}, bson.E{Key: "category", Value: bson.M{"$nin": []string{"pet"}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := BuildFilter(QueryParams{Filters: []QueryFilter{tc.filter}})
			if len(got) != 1 {
				t.Fatalf("expected 1 filter element, got %d", len(got))
			}
			if !reflect.DeepEqual(got[0], tc.want) {
				t.Errorf("got %+v, want %+v", got[0], tc.want)
			}
		})
	}
}

func TestBuildFilterPreservesOrder(t *testing.T) {
	params := QueryParams{
		Filters: []QueryFilter{
			{"listingId", "l1", EqualTo},
			{"clientId", "c1", EqualTo},
			{"status", "PENDING", EqualTo},
		},
	}

	got := BuildFilter(params)
	keys := []string{}
	for _, e := range got {
		keys = append(keys, e.Key)
	}
	want := []string{"listingId", "clientId", "status"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("filter order %v, want %v", keys, want)
	}
}

func TestBuildFilterCursors(t *testing.T) {
	asc := BuildFilter(QueryParams{OrderBy: "createdAt", StartAfter: 100, EndBefore: 200})
	if !reflect.DeepEqual(asc, bson.D{
		{Key: "createdAt", Value: bson.M{"$gt": 100}},
		{Key: "createdAt", Value: bson.M{"$lt": 200}},
	}) {
		t.Errorf("ascending cursor bounds wrong: %+v", asc)
	}

	desc := BuildFilter(QueryParams{OrderBy: "createdAt", OrderDirection: Descending, StartAfter: 200})
	if !reflect.DeepEqual(desc, bson.D{{Key: "createdAt", Value: bson.M{"$lt": 200}}}) {
		t.Errorf("descending start-after wrong: %+v", desc)
	}

	// Without an ordering, cursors are ignored.
	none := BuildFilter(QueryParams{StartAfter: 100})
	if len(none) != 0 {
		t.Errorf("cursor without order should be dropped, got %+v", none)
	}
}

func TestBuildFindOptions(t *testing.T) {
	opts := BuildFindOptions(QueryParams{OrderBy: "views", OrderDirection: Descending, Limit: 8})
	if opts.Limit == nil || *opts.Limit != 8 {
		t.Fatalf("limit not applied: %+v", opts.Limit)
	}
	if !reflect.DeepEqual(opts.Sort, bson.D{{Key: "views", Value: -1}}) {
		t.Errorf("sort wrong: %+v", opts.Sort)
	}

	empty := BuildFindOptions(QueryParams{})
	if empty.Limit != nil || empty.Sort != nil {
		t.Errorf("empty params should produce no sort/limit")
	}
}
