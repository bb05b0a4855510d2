package repository

import (
	"context"
	"errors"

	"book-review/internal/data/entity"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type reviewMongo struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func (r *reviewMongo) Create(ctx context.Context, review *entity.Review) error {
	if _, err := r.coll.InsertOne(ctx, reviewToDoc(review)); err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", review.UserID.String()),
			zap.String("book_id", review.BookID.String()),
		)
		return mongoError("create review", err)
	}
	return nil
}

func (r *reviewMongo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	var doc reviewDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		err = mongoError("find review by ID", err)
		if !errors.Is(err, ErrNotFound) {
			r.log.Error("Failed to find review by ID", zap.Error(err), zap.String("review_id", id.String()))
		}
		return nil, err
	}
	return doc.toEntity()
}

func (r *reviewMongo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		r.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", id.String()))
		return mongoError("delete review", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	r.log.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}
