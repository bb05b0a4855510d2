package usecase

import (
	"context"
	"testing"

	"book-review/internal/dto/request"
	"book-review/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddReviewRatingBounds(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	caller := env.register(t, "critic")
	bookID := env.addBook(t, caller, "Dune")

	for _, rating := range []int{0, 6, -1, 100} {
		_, err := env.service.Review.AddReview(ctx, caller, &request.AddReviewRequest{BookID: bookID, Rating: rating, Comment: "x"})
		requireCode(t, err, utils.CodeBadUserInput, MsgInvalidRating)
	}

	book, err := env.service.Book.GetBook(ctx, bookID)
	require.NoError(t, err)
	assert.Empty(t, book.Reviews, "rejected ratings must not persist")

	for rating := 1; rating <= 5; rating++ {
		review, err := env.service.Review.AddReview(ctx, caller, &request.AddReviewRequest{BookID: bookID, Rating: rating, Comment: "x"})
		require.NoError(t, err)
		assert.Equal(t, rating, review.Rating)
	}
}

func TestAddReviewChecks(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	caller := env.register(t, "critic")
	bookID := env.addBook(t, caller, "Dune")

	tests := []struct {
		name   string
		caller *utils.Principal
		req    request.AddReviewRequest
		code   utils.ErrorCode
		msg    string
	}{
		{"anonymous", nil, request.AddReviewRequest{BookID: bookID, Rating: 3}, utils.CodeUnauthenticated, MsgAddReviewLogin},
		{"unknown book", caller, request.AddReviewRequest{BookID: uuid.NewString(), Rating: 3}, utils.CodeBadUserInput, MsgBookNotFound},
		{"malformed book id", caller, request.AddReviewRequest{BookID: "nope", Rating: 3}, utils.CodeBadUserInput, MsgBookNotFound},
		// the book lookup runs before the rating check
		{"unknown book and bad rating", caller, request.AddReviewRequest{BookID: uuid.NewString(), Rating: 9}, utils.CodeBadUserInput, MsgBookNotFound},
		{"anonymous and bad rating", nil, request.AddReviewRequest{BookID: bookID, Rating: 9}, utils.CodeUnauthenticated, MsgAddReviewLogin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.service.Review.AddReview(ctx, tt.caller, &tt.req)
			requireCode(t, err, tt.code, tt.msg)
		})
	}
}

func TestAddReviewRoundTrip(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.register(t, "owner")
	critic := env.register(t, "critic")
	bookID := env.addBook(t, owner, "Dune")

	review, err := env.service.Review.AddReview(ctx, critic, &request.AddReviewRequest{
		BookID:  bookID,
		Rating:  4,
		Comment: "Spice must flow",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, "Spice must flow", review.Comment)
	assert.Equal(t, critic.ID.String(), review.User.ID)
	assert.False(t, review.CreatedAt.IsZero())

	require.NotNil(t, review.Book)
	assert.Equal(t, bookID, review.Book.ID)
	assert.Equal(t, "owner", review.Book.AddedBy.Username)

	book, err := env.service.Book.GetBook(ctx, bookID)
	require.NoError(t, err)
	require.Len(t, book.Reviews, 1)
	assert.Equal(t, review.ID, book.Reviews[0].ID)
	assert.Equal(t, "critic", book.Reviews[0].User.Username)
}

func TestDeleteReviewAuthorization(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		caller  func(t *testing.T, env *testEnv, author *utils.Principal) *utils.Principal
		code    utils.ErrorCode
		msg     string
		deleted bool
	}{
		{
			name:    "author",
			caller:  func(_ *testing.T, _ *testEnv, author *utils.Principal) *utils.Principal { return author },
			deleted: true,
		},
		{
			name:    "admin",
			caller:  func(t *testing.T, env *testEnv, _ *utils.Principal) *utils.Principal { return env.admin(t, "moderator") },
			deleted: true,
		},
		{
			name:   "other user",
			caller: func(t *testing.T, env *testEnv, _ *utils.Principal) *utils.Principal { return env.register(t, "stranger") },
			code:   utils.CodeForbidden,
			msg:    MsgDeleteForbidden,
		},
		{
			name:   "anonymous",
			caller: func(*testing.T, *testEnv, *utils.Principal) *utils.Principal { return nil },
			code:   utils.CodeUnauthenticated,
			msg:    MsgDeleteReviewLogin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			author := env.register(t, "author")
			bookID := env.addBook(t, author, "Dune")
			review, err := env.service.Review.AddReview(ctx, author, &request.AddReviewRequest{BookID: bookID, Rating: 3, Comment: "ok"})
			require.NoError(t, err)

			ok, err := env.service.Review.DeleteReview(ctx, tt.caller(t, env, author), review.ID)

			book, getErr := env.service.Book.GetBook(ctx, bookID)
			require.NoError(t, getErr)

			if tt.deleted {
				require.NoError(t, err)
				assert.True(t, ok)
				assert.Empty(t, book.Reviews)
				return
			}
			assert.False(t, ok)
			requireCode(t, err, tt.code, tt.msg)
			assert.Len(t, book.Reviews, 1)
		})
	}
}

func TestDeleteReviewNotFound(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	caller := env.register(t, "someone")

	for _, id := range []string{uuid.NewString(), "bogus"} {
		ok, err := env.service.Review.DeleteReview(ctx, caller, id)
		assert.False(t, ok)
		requireCode(t, err, utils.CodeBadUserInput, MsgReviewNotFound)
	}
}

func TestDeleteReviewTwice(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	caller := env.register(t, "someone")
	bookID := env.addBook(t, caller, "Dune")
	review, err := env.service.Review.AddReview(ctx, caller, &request.AddReviewRequest{BookID: bookID, Rating: 1, Comment: ""})
	require.NoError(t, err)

	ok, err := env.service.Review.DeleteReview(ctx, caller, review.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = env.service.Review.DeleteReview(ctx, caller, review.ID)
	requireCode(t, err, utils.CodeBadUserInput, MsgReviewNotFound)
}
