package auth

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrAdminNotFound is returned when the token subject has no admin account.
	ErrAdminNotFound = errors.New("not authorized as admin")
	// ErrAdminInactive is returned for deactivated admin accounts.
	ErrAdminInactive = errors.New("admin account is inactive")
)

// Admin is the identity attached to an authenticated request.
type Admin struct {
	ID       string `bson:"-" json:"id"`
	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	Role     string `bson:"role" json:"role"`
	IsActive bool   `bson:"isActive" json:"-"`
}

// AdminFinder looks up the admin behind a token subject.
type AdminFinder interface {
	FindAdmin(ctx context.Context, id string) (*Admin, error)
}

// MongoAdminStore reads admins from the admins collection.
type MongoAdminStore struct {
	coll *mongo.Collection
}

// NewMongoAdminStore creates an admin finder over db.admins.
func NewMongoAdminStore(db *mongo.Database) *MongoAdminStore {
	return &MongoAdminStore{coll: db.Collection("admins")}
}

// FindAdmin resolves the admin by ObjectID and checks it is active.
func (s *MongoAdminStore) FindAdmin(ctx context.Context, id string) (*Admin, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrAdminNotFound
	}

	var doc struct {
		ID    primitive.ObjectID `bson:"_id"`
		Admin `bson:",inline"`
	}
	opts := options.FindOne().SetProjection(bson.M{"password": 0})
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to load admin: %w", err)
	}

	if !doc.IsActive {
		return nil, ErrAdminInactive
	}

	admin := doc.Admin
	admin.ID = doc.ID.Hex()
	return &admin, nil
}
