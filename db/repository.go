package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Document CRUD wrappers. Each call is a single round trip; driver errors
// propagate to the caller unmodified.

// GetDocument fetches a single document by id.
func GetDocument(ctx context.Context, coll *mongo.Collection, id string) (bson.M, error) {
	var doc bson.M
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// GetDocumentOrNil is the best-effort read: any fetch error (including
// not-found) yields nil instead of an error.
func GetDocumentOrNil(ctx context.Context, coll *mongo.Collection, id string) bson.M {
	doc, err := GetDocument(ctx, coll, id)
	if err != nil {
		return nil
	}
	return doc
}

// AddDocument inserts a new document under the given id.
func AddDocument(ctx context.Context, coll *mongo.Collection, id string, data map[string]any) error {
	doc := bson.M{"_id": id}
	for k, v := range data {
		doc[k] = v
	}
	_, err := coll.InsertOne(ctx, doc)
	return err
}

// UpdateDocument merges only the supplied fields into an existing document.
func UpdateDocument(ctx context.Context, coll *mongo.Collection, id string, fields map[string]any) error {
	_, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return err
}

// DeleteDocument removes a single document by id.
func DeleteDocument(ctx context.Context, coll *mongo.Collection, id string) error {
	_, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// QueryDocuments executes a declarative query once and returns the full result
// page. There is no streaming and no automatic re-paging.
func QueryDocuments(ctx context.Context, coll *mongo.Collection, params QueryParams) ([]bson.M, error) {
	cur, err := coll.Find(ctx, BuildFilter(params), BuildFindOptions(params))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// RunTransaction hands the caller a session-bound context; reads and writes
// issued against it commit or abort together. No retry or conflict handling is
// added beyond what the driver's transaction primitive provides.
func RunTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	session, err := Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	return err
}
