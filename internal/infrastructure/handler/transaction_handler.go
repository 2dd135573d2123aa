package handler

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ichikawacraice/dt-money/internal/application/form"
	"github.com/ichikawacraice/dt-money/internal/application/service"
	"github.com/ichikawacraice/dt-money/internal/domain/entity"
	"github.com/ichikawacraice/dt-money/internal/domain/repository"
	"github.com/ichikawacraice/dt-money/internal/infrastructure/logger"
	"github.com/ichikawacraice/dt-money/internal/infrastructure/middleware"
)

// TransactionHandler serves the new transaction and search forms over HTTP
type TransactionHandler struct {
	service *service.TransactionService
	logger  logger.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(service *service.TransactionService, log logger.Logger) *TransactionHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &TransactionHandler{
		service: service,
		logger:  log,
	}
}

// requestStore adapts the service for one request, remembering what the
// form's submission produced
type requestStore struct {
	svc     *service.TransactionService
	created *entity.Transaction
	fetched []entity.Transaction
}

func (s *requestStore) CreateTransaction(ctx context.Context, draft entity.TransactionDraft) error {
	tx, err := s.svc.Create(ctx, draft)
	s.created = tx
	return err
}

func (s *requestStore) FetchTransactions(ctx context.Context, query string) error {
	list, err := s.svc.Fetch(ctx, query)
	s.fetched = list
	return err
}

// CreateTransaction binds the request to a new transaction form and submits it
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	values, err := decodeTransactionValues(r)
	if err != nil {
		h.logger.Warn("Invalid request body", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid request body",
			"The request body could not be parsed", http.StatusBadRequest, requestID)
		return
	}

	store := &requestStore{svc: h.service}
	f := form.NewTransactionForm(store, h.logger)
	f.SetValues(values)

	err = f.Submit(r.Context())

	var verrs entity.ValidationErrors
	switch {
	case err == nil:
	case errors.As(err, &verrs):
		h.logger.Warn("Transaction form rejected", map[string]interface{}{
			"request_id": requestID,
			"fields":     verrs.Map(),
		})
		sendValidationErrorResponse(w, h.logger, verrs, requestID)
		return
	default:
		h.logger.Error("Unexpected error in create transaction", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Internal server error",
			"An unexpected error occurred while creating the transaction",
			http.StatusInternalServerError, requestID)
		return
	}

	h.logger.Info("Transaction created successfully", map[string]interface{}{
		"request_id": requestID,
		"id":         store.created.ID,
	})

	sendJSON(w, http.StatusCreated, newTransactionResponse(*store.created))
}

// SearchTransactions binds the q parameter to a search form and submits it
func (h *TransactionHandler) SearchTransactions(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	store := &requestStore{svc: h.service}
	f := form.NewSearchForm(store, h.logger)
	f.SetQuery(r.URL.Query().Get("q"))

	if err := f.Submit(r.Context()); err != nil {
		h.logger.Error("Unexpected error in search transactions", map[string]interface{}{
			"request_id": requestID,
			"query":      f.Query(),
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Internal server error",
			"An unexpected error occurred while fetching transactions",
			http.StatusInternalServerError, requestID)
		return
	}

	resp := make([]TransactionResponse, 0, len(store.fetched))
	for _, tx := range store.fetched {
		resp = append(resp, newTransactionResponse(tx))
	}

	sendJSON(w, http.StatusOK, resp)
}

// GetTransaction handles retrieving a transaction by ID
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	tx, err := h.service.GetTransaction(r.Context(), id)
	if errors.Is(err, repository.ErrTransactionNotFound) {
		h.logger.Warn("Transaction not found", map[string]interface{}{
			"request_id": requestID,
			"id":         id,
		})
		sendErrorResponse(w, h.logger, "Transaction not found",
			"The requested transaction could not be found", http.StatusNotFound, requestID)
		return
	}
	if err != nil {
		h.logger.Error("Unexpected error in get transaction", map[string]interface{}{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Internal server error",
			"An unexpected error occurred while retrieving the transaction",
			http.StatusInternalServerError, requestID)
		return
	}

	sendJSON(w, http.StatusOK, newTransactionResponse(*tx))
}

// GetSummary returns the totals of the current transaction list
func (h *TransactionHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, newSummaryResponse(h.service.Summary()))
}

// RegisterRoutes registers the transaction handler routes
func (h *TransactionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/transactions", h.CreateTransaction).Methods(http.MethodPost)
	router.HandleFunc("/transactions", h.SearchTransactions).Methods(http.MethodGet)
	router.HandleFunc("/transactions/{id}", h.GetTransaction).Methods(http.MethodGet)
	router.HandleFunc("/summary", h.GetSummary).Methods(http.MethodGet)

	h.logger.Info("Transaction routes registered", map[string]interface{}{
		"routes": []string{
			"POST /transactions",
			"GET /transactions",
			"GET /transactions/{id}",
			"GET /summary",
		},
	})
}

// NewRouter builds the router with the request middleware chain applied
func NewRouter(h *TransactionHandler, log logger.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(
		middleware.RequestIDMiddleware,
		middleware.LoggingMiddleware(log),
		middleware.RecoveryMiddleware(log),
	)
	h.RegisterRoutes(router)
	return router
}

func decodeTransactionValues(r *http.Request) (form.TransactionValues, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(1 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return form.TransactionValues{}, err
		}
		values := form.TransactionValues{
			Description: r.PostFormValue("description"),
			Price:       r.PostFormValue("price"),
			Category:    r.PostFormValue("category"),
			Type:        r.PostFormValue("type"),
		}
		if values.Type == "" {
			values.Type = entity.DefaultTransactionType.String()
		}
		return values, nil
	}

	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return form.TransactionValues{}, err
	}

	values := form.TransactionValues{
		Description: req.Description,
		Price:       string(req.Price),
		Category:    req.Category,
		Type:        req.Type,
	}
	if values.Type == "" {
		values.Type = entity.DefaultTransactionType.String()
	}
	return values, nil
}

func sendJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// sendErrorResponse sends a standardized error response
func sendErrorResponse(w http.ResponseWriter, log logger.Logger, message, description string, statusCode int, requestID string) {
	log.Debug("Sending error response", map[string]interface{}{
		"request_id":  requestID,
		"status_code": statusCode,
		"message":     message,
	})

	sendJSON(w, statusCode, ErrorResponse{
		Error:       message,
		Status:      statusCode,
		Description: description,
		RequestID:   requestID,
	})
}

func sendValidationErrorResponse(w http.ResponseWriter, log logger.Logger, verrs entity.ValidationErrors, requestID string) {
	log.Debug("Sending validation error response", map[string]interface{}{
		"request_id": requestID,
		"fields":     verrs.Map(),
	})

	sendJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Error:       "Validation failed",
		Status:      http.StatusUnprocessableEntity,
		Description: verrs.Error(),
		RequestID:   requestID,
		Fields:      verrs.Map(),
	})
}
