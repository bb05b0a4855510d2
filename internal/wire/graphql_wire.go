package wire

import (
	"book-review/internal/adaptor"
	"book-review/pkg/middleware"
	"book-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireGraphQL(
	r chi.Router,
	handler *adaptor.Handler,
	tokens *utils.JWTManager,
	log *zap.Logger,
) {
	// Authentication only attaches the caller; access rules live in the services.
	r.With(middleware.Authenticate(tokens, log)).Handle(GraphQLPath, handler.GraphQL)
}
