package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/convoyhq/convoy/pkg/errors"
	"github.com/convoyhq/convoy/pkg/plan"
)

const plansCollection = "plans"

// MongoStore is a MongoDB-backed plan archive for shared deployments,
// where multiple planners and the diagnostics server see one history.
type MongoStore struct {
	client *mongo.Client
	plans  *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongodb")
	}
	return &MongoStore{
		client: client,
		plans:  client.Database(database).Collection(plansCollection),
	}, nil
}

// Save upserts the plan document keyed by plan ID.
func (s *MongoStore) Save(ctx context.Context, p *plan.Plan) error {
	_, err := s.plans.ReplaceOne(ctx,
		bson.M{"_id": p.ID},
		p,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save plan %s", p.ID)
	}
	return nil
}

// Get retrieves a plan by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*plan.Plan, error) {
	var p plan.Plan
	err := s.plans.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodePlanNotFound, "plan %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "get plan %s", id)
	}
	return &p, nil
}

// List returns summaries of archived plans, newest first.
func (s *MongoStore) List(ctx context.Context) ([]Summary, error) {
	cursor, err := s.plans.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list plans")
	}
	defer cursor.Close(ctx)

	var summaries []Summary
	for cursor.Next(ctx) {
		var p plan.Plan
		if err := cursor.Decode(&p); err != nil {
			continue // skip corrupt documents
		}
		summaries = append(summaries, summarize(&p))
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list plans")
	}
	return summaries, nil
}

// Delete removes a plan document. A missing document is not an error.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.plans.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete plan %s", id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
