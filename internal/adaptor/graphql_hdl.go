package adaptor

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"book-review/pkg/utils"

	graphql "github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type GraphQLHandler struct {
	schema *graphql.Schema
	log    *zap.Logger
}

func NewGraphQLHandler(schema *graphql.Schema, log *zap.Logger) *GraphQLHandler {
	return &GraphQLHandler{
		schema: schema,
		log:    log.With(zap.String("handler", "graphql_http")),
	}
}

type graphQLRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// ServeHTTP handles POST /graphql
func (h *GraphQLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		utils.ResponseError(w, http.StatusMethodNotAllowed, utils.BadUserInput("Only POST requests are supported"))
		return
	}

	// A JSON content type cannot be sent cross-site without a CORS preflight.
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		utils.ResponseError(w, http.StatusUnsupportedMediaType, utils.BadUserInput("Content-Type must be application/json"))
		return
	}

	var req graphQLRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.log.Debug("Invalid graphql request body", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		utils.ResponseBadRequest(w, "Must provide query string")
		return
	}

	resp := h.schema.Exec(r.Context(), req.Query, req.OperationName, req.Variables)
	utils.ResponseJSON(w, http.StatusOK, resp)
}
