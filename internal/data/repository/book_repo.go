package repository

import (
	"context"
	"errors"

	"book-review/internal/data/entity"
	"book-review/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const bookDetailQuery = `
	SELECT b.id, b.title, b.author, b.description, b.added_by, b.created_at,
	       u.id, u.username, u.email, u.role, u.created_at, u.updated_at
	FROM books b
	JOIN users u ON u.id = b.added_by
`

const reviewDetailQuery = `
	SELECT r.id, r.book_id, r.user_id, r.rating, r.comment, r.created_at,
	       u.id, u.username, u.email, u.role, u.created_at, u.updated_at
	FROM reviews r
	JOIN users u ON u.id = r.user_id
	WHERE r.book_id = ANY($1)
	ORDER BY r.created_at, r.id
`

type bookRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookRepository(db database.PgxIface, log *zap.Logger) BookRepository {
	return &bookRepository{
		db:  db,
		log: log.With(zap.String("repository", "book")),
	}
}

func (r *bookRepository) Create(ctx context.Context, book *entity.Book) error {
	query := `
		INSERT INTO books (id, title, author, description, added_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.Description,
		book.AddedBy,
		book.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create book",
			zap.Error(err),
			zap.String("added_by", book.AddedBy.String()),
		)
		return pgError("create book "+book.ID.String(), err)
	}

	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	query := `
		SELECT id, title, author, description, added_by, created_at
		FROM books
		WHERE id = $1
	`

	var book entity.Book
	err := r.db.QueryRow(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Description,
		&book.AddedBy,
		&book.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to find book by ID",
			zap.Error(err),
			zap.String("book_id", id.String()),
		)
		return nil, pgError("find book by ID "+id.String(), err)
	}

	return &book, nil
}

func (r *bookRepository) FindDetail(ctx context.Context, id uuid.UUID) (*entity.BookDetail, error) {
	detail, err := scanBookDetail(r.db.QueryRow(ctx, bookDetailQuery+` WHERE b.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to find book detail",
			zap.Error(err),
			zap.String("book_id", id.String()),
		)
		return nil, pgError("find book detail "+id.String(), err)
	}

	if err := r.attachReviews(ctx, []*entity.BookDetail{detail}); err != nil {
		return nil, err
	}

	return detail, nil
}

// FindAllDetails loads every book with two queries: books joined with owners,
// then all of their reviews joined with authors.
func (r *bookRepository) FindAllDetails(ctx context.Context) ([]*entity.BookDetail, error) {
	rows, err := r.db.Query(ctx, bookDetailQuery+` ORDER BY b.created_at, b.id`)
	if err != nil {
		r.log.Error("Failed to list books", zap.Error(err))
		return nil, pgError("list books", err)
	}
	defer rows.Close()

	books := []*entity.BookDetail{}
	for rows.Next() {
		detail, err := scanBookDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan book row", zap.Error(err))
			return nil, pgError("scan book row", err)
		}
		books = append(books, detail)
	}
	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, pgError("iterate book rows", err)
	}

	if err := r.attachReviews(ctx, books); err != nil {
		return nil, err
	}

	return books, nil
}

func (r *bookRepository) attachReviews(ctx context.Context, books []*entity.BookDetail) error {
	if len(books) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(books))
	byID := make(map[uuid.UUID]*entity.BookDetail, len(books))
	for i, b := range books {
		ids[i] = b.ID
		byID[b.ID] = b
		b.Reviews = []entity.ReviewDetail{}
	}

	rows, err := r.db.Query(ctx, reviewDetailQuery, ids)
	if err != nil {
		r.log.Error("Failed to load reviews", zap.Error(err), zap.Int("books", len(books)))
		return pgError("load reviews", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rd entity.ReviewDetail
		err := rows.Scan(
			&rd.ID,
			&rd.BookID,
			&rd.UserID,
			&rd.Rating,
			&rd.Comment,
			&rd.CreatedAt,
			&rd.Author.ID,
			&rd.Author.Username,
			&rd.Author.Email,
			&rd.Author.Role,
			&rd.Author.CreatedAt,
			&rd.Author.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return pgError("scan review row", err)
		}
		if b, ok := byID[rd.BookID]; ok {
			b.Reviews = append(b.Reviews, rd)
		}
	}
	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return pgError("iterate review rows", err)
	}

	return nil
}

func scanBookDetail(row pgx.Row) (*entity.BookDetail, error) {
	var d entity.BookDetail
	err := row.Scan(
		&d.ID,
		&d.Title,
		&d.Author,
		&d.Description,
		&d.AddedBy,
		&d.CreatedAt,
		&d.Owner.ID,
		&d.Owner.Username,
		&d.Owner.Email,
		&d.Owner.Role,
		&d.Owner.CreatedAt,
		&d.Owner.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
