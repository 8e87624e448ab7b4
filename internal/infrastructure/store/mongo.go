package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smart-pantry-chef/internal/core/auth"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const usersCollection = "users"

// MongoStore MongoDB user store
type MongoStore struct {
	client *mongo.Client
	users  *mongo.Collection
}

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// NewMongoStore connects to uri and ensures the unique email index.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	s := &MongoStore{
		client: client,
		users:  client.Database(database).Collection(usersCollection),
	}

	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return s, nil
}

// EnsureIndexes creates the unique index on email
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}
	return nil
}

// Create inserts user and sets its ID
func (s *MongoStore) Create(ctx context.Context, user *auth.User) error {
	now := time.Now().UTC()
	doc := userDocument{
		Name:      user.Name,
		Email:     user.Email,
		Password:  user.PasswordHash,
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := s.users.InsertOne(ctx, doc)
	if err != nil {
		return mapMongoError(err)
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id.Hex()
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

// FindByEmail returns the user with email
func (s *MongoStore) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	var doc userDocument
	if err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return doc.toUser(), nil
}

// Ping checks the primary is reachable
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (d *userDocument) toUser() *auth.User {
	return &auth.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func mapMongoError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", auth.ErrDuplicateEmail, err)
	}
	return fmt.Errorf("failed to insert user: %w", err)
}
