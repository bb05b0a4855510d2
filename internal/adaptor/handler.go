package adaptor

import (
	"context"
	_ "embed"
	"fmt"

	"book-review/internal/usecase"
	"book-review/pkg/utils"

	graphql "github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

//go:embed schema.graphql
var schemaSDL string

// MaxQueryDepth bounds nested selections; Book and Review reference each other.
const MaxQueryDepth = 12

// Resolver is the graphql-go root resolver for both Query and Mutation.
type Resolver struct {
	*AuthHandler
	*BookHandler
	*ReviewHandler
	*UserHandler
}

type Handler struct {
	Resolver *Resolver
	Schema   *graphql.Schema
	GraphQL  *GraphQLHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger, reg prometheus.Registerer) (*Handler, error) {
	obs, err := newObserver(log, reg)
	if err != nil {
		return nil, err
	}

	resolver := &Resolver{
		AuthHandler:   NewAuthHandler(service.Auth, obs),
		BookHandler:   NewBookHandler(service.Book, obs),
		ReviewHandler: NewReviewHandler(service.Review, obs),
		UserHandler:   NewUserHandler(service.User, obs),
	}

	panics := &panicLogger{log: log}
	schema, err := graphql.ParseSchema(schemaSDL, resolver,
		graphql.MaxDepth(MaxQueryDepth),
		graphql.Logger(panics),
		graphql.PanicHandler(panics),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse graphql schema: %w", err)
	}

	return &Handler{
		Resolver: resolver,
		Schema:   schema,
		GraphQL:  NewGraphQLHandler(schema, log),
	}, nil
}

// observer records the outcome of every resolver call.
type observer struct {
	log     *zap.Logger
	results *prometheus.CounterVec
}

func newObserver(log *zap.Logger, reg prometheus.Registerer) (*observer, error) {
	results := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "graphql_operations_total",
		Help: "GraphQL root field executions by operation and result code.",
	}, []string{"operation", "code"})
	if err := reg.Register(results); err != nil {
		return nil, fmt.Errorf("failed to register graphql metrics: %w", err)
	}
	return &observer{log: log.With(zap.String("handler", "graphql")), results: results}, nil
}

// done classifies err for the client. Causes of internal errors are logged
// here and never leave the process.
func (o *observer) done(op string, err error) error {
	if err == nil {
		o.results.WithLabelValues(op, "OK").Inc()
		return nil
	}

	appErr := utils.Classify(err, "Internal server error")
	o.results.WithLabelValues(op, string(appErr.Code)).Inc()

	if appErr.Code == utils.CodeInternal {
		o.log.Error(op+" failed",
			zap.Error(appErr.Err),
			zap.String("operation", op))
	} else {
		o.log.Debug(op+" rejected",
			zap.String("code", string(appErr.Code)),
			zap.String("message", appErr.Message),
			zap.String("operation", op))
	}
	return appErr
}

// panicLogger logs resolver panics and answers them as INTERNAL_SERVER_ERROR.
// graphql-go calls LogPanic and then MakePanicError for the same value.
type panicLogger struct {
	log *zap.Logger
}

func (l *panicLogger) LogPanic(_ context.Context, value interface{}) {
	l.log.Error("panic in graphql resolver", zap.Any("panic", value), zap.Stack("stack"))
}

// MakePanicError returns a new error per call; the executor sets its path.
func (l *panicLogger) MakePanicError(_ context.Context, _ interface{}) *gqlerrors.QueryError {
	internal := utils.Internal("Internal server error", nil)
	return &gqlerrors.QueryError{
		Message:    internal.Message,
		Extensions: internal.Extensions(),
	}
}
