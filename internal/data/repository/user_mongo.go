package repository

import (
	"context"
	"errors"
	"time"

	"book-review/internal/data/entity"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type userMongo struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func (ur *userMongo) Create(ctx context.Context, user *entity.User) error {
	if _, err := ur.coll.InsertOne(ctx, userToDoc(user)); err != nil {
		err = mongoError("create user "+user.Email, err)
		if !errors.Is(err, ErrConflict) {
			ur.log.Error("Failed to create user",
				zap.Error(err),
				zap.String("email", user.Email),
				zap.String("username", user.Username),
			)
		}
		return err
	}
	return nil
}

func (ur *userMongo) findOne(ctx context.Context, op string, filter any) (*entity.User, error) {
	var doc userDoc
	if err := ur.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		err = mongoError(op, err)
		if !errors.Is(err, ErrNotFound) {
			ur.log.Error("Failed to "+op, zap.Error(err))
		}
		return nil, err
	}
	return doc.toEntity()
}

func (ur *userMongo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return ur.findOne(ctx, "find user by ID", bson.M{"_id": id.String()})
}

func (ur *userMongo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return ur.findOne(ctx, "find user by email", bson.M{"email": email})
}

func (ur *userMongo) FindByEmailOrUsername(ctx context.Context, email, username string) (*entity.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"username": username},
	}}
	return ur.findOne(ctx, "find user by email or username", filter)
}

func (ur *userMongo) UpdateRole(ctx context.Context, id uuid.UUID, role entity.UserRole) (*entity.User, error) {
	update := bson.M{"$set": bson.M{
		"role":      string(role),
		"updatedAt": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDoc
	err := ur.coll.FindOneAndUpdate(ctx, bson.M{"_id": id.String()}, update, opts).Decode(&doc)
	if err != nil {
		err = mongoError("update user role", err)
		if !errors.Is(err, ErrNotFound) {
			ur.log.Error("Failed to update user role",
				zap.Error(err),
				zap.String("user_id", id.String()),
				zap.String("role", string(role)),
			)
		}
		return nil, err
	}
	return doc.toEntity()
}
