package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vipuljat/ProjectBasedLearning/pkg/cache"
	"github.com/vipuljat/ProjectBasedLearning/pkg/diagram"
	apperrors "github.com/vipuljat/ProjectBasedLearning/pkg/errors"
)

// Defaults for MongoConfig.
const (
	DefaultDatabase   = "projectBasedLearning"
	DefaultCollection = "projectDiagrams"
)

const titleField = "project_title"

// MongoConfig configures a Mongo store.
type MongoConfig struct {
	URI        string
	Database   string        // defaults to DefaultDatabase
	Collection string        // defaults to DefaultCollection
	Timeout    time.Duration // per-operation timeout, defaults to 10s
}

func (c *MongoConfig) applyDefaults() {
	if c.Database == "" {
		c.Database = DefaultDatabase
	}
	if c.Collection == "" {
		c.Collection = DefaultCollection
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
}

// Mongo stores documents in a MongoDB collection keyed by a unique index on
// project_title.
type Mongo struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
	now     func() time.Time
}

// NewMongo connects to MongoDB, pings it with retries and ensures the title
// index exists.
func NewMongo(ctx context.Context, cfg MongoConfig) (*Mongo, error) {
	if cfg.URI == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidConfig, "mongo: uri is required")
	}
	cfg.applyDefaults()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetTimeout(cfg.Timeout))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "mongo: connect")
	}

	err = cache.RetryWithBackoff(ctx, func() error {
		pctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
		if err := client.Ping(pctx, nil); err != nil {
			return cache.Retryable(fmt.Errorf("%w: mongo ping: %v", cache.ErrNetwork, err))
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, apperrors.Wrap(apperrors.ErrCodeNetwork, err, "mongo: unreachable")
	}

	m := &Mongo{
		client:  client,
		coll:    client.Database(cfg.Database).Collection(cfg.Collection),
		timeout: cfg.Timeout,
		now:     time.Now,
	}
	if err := m.ensureIndex(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return m, nil
}

func (m *Mongo) ensureIndex(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	_, err := m.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: titleField, Value: 1}},
		Options: options.Index().SetUnique(true).SetName("project_title_unique"),
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "mongo: create index")
	}
	return nil
}

func (m *Mongo) Put(ctx context.Context, doc *diagram.Document) error {
	if err := prepare(doc, m.now()); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	// Keep the existing _id so that the replacement does not change it.
	var existing struct {
		ID string `bson:"_id"`
	}
	err := m.coll.FindOne(ctx, bson.M{titleField: doc.ProjectTitle},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Decode(&existing)
	switch {
	case err == nil:
		doc.ID = existing.ID
	case !errors.Is(err, mongo.ErrNoDocuments):
		return mongoErr("find", err)
	}

	_, err = m.coll.ReplaceOne(ctx, bson.M{titleField: doc.ProjectTitle}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return mongoErr("replace", err)
	}
	return nil
}

func (m *Mongo) Get(ctx context.Context, title string) (*diagram.Document, error) {
	if err := apperrors.ValidateProjectTitle(title); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	var doc diagram.Document
	err := m.coll.FindOne(ctx, bson.M{titleField: title}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(title)
	}
	if err != nil {
		return nil, mongoErr("find", err)
	}
	return &doc, nil
}

func (m *Mongo) List(ctx context.Context) ([]Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	cur, err := m.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: titleField, Value: 1}}))
	if err != nil {
		return nil, mongoErr("find", err)
	}
	defer cur.Close(ctx)

	var out []Summary
	for cur.Next(ctx) {
		var doc diagram.Document
		if err := cur.Decode(&doc); err != nil {
			return nil, mongoErr("decode", err)
		}
		out = append(out, Summarize(&doc))
	}
	if err := cur.Err(); err != nil {
		return nil, mongoErr("cursor", err)
	}
	if out == nil {
		out = []Summary{}
	}
	return out, nil
}

func (m *Mongo) Delete(ctx context.Context, title string) error {
	if err := apperrors.ValidateProjectTitle(title); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	res, err := m.coll.DeleteOne(ctx, bson.M{titleField: title})
	if err != nil {
		return mongoErr("delete", err)
	}
	if res.DeletedCount == 0 {
		return notFound(title)
	}
	return nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func mongoErr(op string, err error) error {
	if mongo.IsTimeout(err) {
		return apperrors.Wrap(apperrors.ErrCodeTimeout, err, "mongo %s", op)
	}
	if mongo.IsNetworkError(err) {
		return apperrors.Wrap(apperrors.ErrCodeNetwork, err, "mongo %s", op)
	}
	return apperrors.Wrap(apperrors.ErrCodeInternal, err, "mongo %s", op)
}

var _ Store = (*Mongo)(nil)
