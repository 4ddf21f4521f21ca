package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"workskill/internal/config"
	"workskill/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

func Connect(ctx context.Context, cfg config.MongoConfig) (database.DB, error) {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return nil, fmt.Errorf("empty mongo uri")
	}
	name := strings.TrimSpace(cfg.Database)
	if name == "" {
		return nil, fmt.Errorf("empty mongo database name")
	}

	opts := options.Client().ApplyURI(uri)
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
		opts.SetServerSelectionTimeout(cfg.ConnectTimeout)
	}

	c, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	if err := c.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = c.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Client{client: c, db: c.Database(name)}, nil
}

func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("nil db")
	}
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

func (c *Client) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

func (c *Client) EnsureIndexes(ctx context.Context) error {
	specs := map[string][]mongo.IndexModel{
		database.CollectionStudents: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		database.CollectionProfiles: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		database.CollectionUserSkills: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "name", Value: 1}}},
		},
		database.CollectionSkillGapAnalyses: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "analyzed_at", Value: -1}}},
		},
		database.CollectionResumes: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "uploadDate", Value: -1}}},
		},
		database.CollectionCourseRecommendations: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "generatedAt", Value: -1}}},
		},
		database.CollectionCourseActions: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}

	for coll, models := range specs {
		if _, err := c.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

var _ database.DB = (*Client)(nil)
