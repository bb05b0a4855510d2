package repository

import (
	"context"
	"errors"

	"book-review/internal/data/entity"
	"book-review/pkg/database"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type bookMongo struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func (r *bookMongo) Create(ctx context.Context, book *entity.Book) error {
	if _, err := r.coll.InsertOne(ctx, bookToDoc(book)); err != nil {
		r.log.Error("Failed to create book",
			zap.Error(err),
			zap.String("added_by", book.AddedBy.String()),
		)
		return mongoError("create book", err)
	}
	return nil
}

func (r *bookMongo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	var doc bookDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		err = mongoError("find book by ID", err)
		if !errors.Is(err, ErrNotFound) {
			r.log.Error("Failed to find book by ID", zap.Error(err), zap.String("book_id", id.String()))
		}
		return nil, err
	}
	return doc.toEntity()
}

func (r *bookMongo) FindDetail(ctx context.Context, id uuid.UUID) (*entity.BookDetail, error) {
	match := bson.D{{Key: "$match", Value: bson.M{"_id": id.String()}}}

	details, err := r.aggregate(ctx, "find book detail", append(mongo.Pipeline{match}, detailStages()...))
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, ErrNotFound
	}
	return details[0], nil
}

// FindAllDetails expands owners and reviews in a single aggregation.
func (r *bookMongo) FindAllDetails(ctx context.Context) ([]*entity.BookDetail, error) {
	sort := bson.D{{Key: "$sort", Value: bson.D{
		{Key: "createdAt", Value: 1},
		{Key: "_id", Value: 1},
	}}}

	return r.aggregate(ctx, "list books", append(mongo.Pipeline{sort}, detailStages()...))
}

func (r *bookMongo) aggregate(ctx context.Context, op string, pipeline mongo.Pipeline) ([]*entity.BookDetail, error) {
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err))
		return nil, mongoError(op, err)
	}

	var docs []bookDetailDoc
	if err := cursor.All(ctx, &docs); err != nil {
		r.log.Error("Failed to decode books", zap.Error(err))
		return nil, mongoError(op, err)
	}

	details := make([]*entity.BookDetail, 0, len(docs))
	for _, doc := range docs {
		d, err := doc.toEntity()
		if err != nil {
			r.log.Error("Malformed book document", zap.Error(err), zap.String("book_id", doc.Book.ID))
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

// detailStages joins the owner and the author-expanded reviews onto each book.
// Unwinds keep documents whose user is missing so toEntity can fail the whole
// read instead of dropping the book.
func detailStages() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.UsersCollection},
			{Key: "localField", Value: "addedBy"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$owner"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.ReviewsCollection},
			{Key: "let", Value: bson.D{{Key: "bookId", Value: "$_id"}}},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{
					{Key: "$eq", Value: bson.A{"$bookId", "$$bookId"}},
				}}}}},
				bson.D{{Key: "$sort", Value: bson.D{
					{Key: "createdAt", Value: 1},
					{Key: "_id", Value: 1},
				}}},
				bson.D{{Key: "$lookup", Value: bson.D{
					{Key: "from", Value: database.UsersCollection},
					{Key: "localField", Value: "userId"},
					{Key: "foreignField", Value: "_id"},
					{Key: "as", Value: "author"},
				}}},
				bson.D{{Key: "$unwind", Value: bson.D{
					{Key: "path", Value: "$author"},
					{Key: "preserveNullAndEmptyArrays", Value: true},
				}}},
			}},
			{Key: "as", Value: "reviews"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "owner.password", Value: 0},
			{Key: "reviews.author.password", Value: 0},
		}}},
	}
}
