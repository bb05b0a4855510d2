package adaptor

import (
	"time"

	"book-review/internal/dto/response"

	graphql "github.com/graph-gophers/graphql-go"
)

// Field resolvers only reshape values the services already expanded.

type userResolver struct {
	u response.UserResponse
}

func (r *userResolver) ID() graphql.ID   { return graphql.ID(r.u.ID) }
func (r *userResolver) Username() string { return r.u.Username }
func (r *userResolver) Email() string    { return r.u.Email }
func (r *userResolver) Role() string     { return string(r.u.Role) }

type authPayloadResolver struct {
	a *response.AuthResponse
}

func (r *authPayloadResolver) Token() string { return r.a.Token }

func (r *authPayloadResolver) User() *userResolver {
	return &userResolver{u: r.a.User}
}

type bookResolver struct {
	b *response.BookResponse
}

func (r *bookResolver) ID() graphql.ID      { return graphql.ID(r.b.ID) }
func (r *bookResolver) Title() string       { return r.b.Title }
func (r *bookResolver) Author() string      { return r.b.Author }
func (r *bookResolver) Description() string { return r.b.Description }

func (r *bookResolver) AddedBy() *userResolver {
	return &userResolver{u: r.b.AddedBy}
}

func (r *bookResolver) Reviews() []*reviewResolver {
	out := make([]*reviewResolver, len(r.b.Reviews))
	for i, rev := range r.b.Reviews {
		out[i] = &reviewResolver{r: rev}
	}
	return out
}

type reviewResolver struct {
	r *response.ReviewResponse
}

func (r *reviewResolver) ID() graphql.ID  { return graphql.ID(r.r.ID) }
func (r *reviewResolver) Rating() int32   { return int32(r.r.Rating) }
func (r *reviewResolver) Comment() string { return r.r.Comment }

func (r *reviewResolver) User() *userResolver {
	return &userResolver{u: r.r.User}
}

func (r *reviewResolver) Book() *bookResolver {
	return &bookResolver{b: r.r.Book}
}

// CreatedAt is RFC 3339 in UTC.
func (r *reviewResolver) CreatedAt() string {
	return r.r.CreatedAt.UTC().Format(time.RFC3339)
}

func wrapBooks(books []*response.BookResponse) []*bookResolver {
	out := make([]*bookResolver, len(books))
	for i, b := range books {
		out[i] = &bookResolver{b: b}
	}
	return out
}
