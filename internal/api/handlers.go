// Package api exposes the account service over HTTP. Handlers translate
// domain errors into status codes; store failures are logged here and never
// described to the client.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/punchamoorthee/walletops/internal/domain"
	"github.com/punchamoorthee/walletops/internal/service"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "walletops_http_requests_total",
		Help: "Total HTTP requests processed, labeled by status code",
	}, []string{"method", "endpoint", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "walletops_http_request_duration_seconds",
		Help:    "Latency distribution of HTTP requests",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "endpoint"})
)

type Handler struct {
	service *service.AccountService
	log     zerolog.Logger
}

func NewHandler(svc *service.AccountService, log zerolog.Logger) *Handler {
	return &Handler{service: svc, log: log}
}

// Register attaches all account routes to the router.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/accounts", h.CreateAccount).Methods("POST")
	r.HandleFunc("/accounts", h.ListAccounts).Methods("GET")
	r.HandleFunc("/accounts/{id}", h.GetAccount).Methods("GET")
	r.HandleFunc("/accounts/{id}", h.DeleteAccount).Methods("DELETE")
	r.HandleFunc("/accounts/{id}/deposit", h.Deposit).Methods("POST")
	r.HandleFunc("/accounts/{id}/withdraw", h.Withdraw).Methods("POST")
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/accounts"
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("POST", endpoint))
	defer timer.ObserveDuration()

	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Malformed JSON body", "POST", endpoint)
		return
	}
	if req.Name == "" {
		h.respondError(w, http.StatusBadRequest, "Account name is required", "POST", endpoint)
		return
	}

	account, err := h.service.Create(r.Context(), req.Name, req.Currency)
	if err != nil {
		h.respondServiceError(w, err, "POST", endpoint)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/accounts/%s", account.ID))
	h.respond(w, http.StatusCreated, newAccountResponse(account), "POST", endpoint)
}

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/accounts"
	accounts, err := h.service.List(r.Context())
	if err != nil {
		h.respondServiceError(w, err, "GET", endpoint)
		return
	}
	h.respond(w, http.StatusOK, newAccountListResponse(accounts), "GET", endpoint)
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/accounts/{id}"
	id, ok := h.accountID(w, r, "GET", endpoint)
	if !ok {
		return
	}

	account, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, "GET", endpoint)
		return
	}
	h.respond(w, http.StatusOK, newAccountResponse(account), "GET", endpoint)
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/accounts/{id}"
	id, ok := h.accountID(w, r, "DELETE", endpoint)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, err, "DELETE", endpoint)
		return
	}
	h.respond(w, http.StatusOK, map[string]string{"message": "Account deleted"}, "DELETE", endpoint)
}

func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/accounts/{id}/deposit"
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("POST", endpoint))
	defer timer.ObserveDuration()

	id, ok := h.accountID(w, r, "POST", endpoint)
	if !ok {
		return
	}
	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Malformed JSON body", "POST", endpoint)
		return
	}

	account, err := h.service.Deposit(r.Context(), id, req.Amount)
	if err != nil {
		h.respondServiceError(w, err, "POST", endpoint)
		return
	}
	h.respond(w, http.StatusOK, newAccountResponse(account), "POST", endpoint)
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/accounts/{id}/withdraw"
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("POST", endpoint))
	defer timer.ObserveDuration()

	id, ok := h.accountID(w, r, "POST", endpoint)
	if !ok {
		return
	}
	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Malformed JSON body", "POST", endpoint)
		return
	}

	account, err := h.service.Withdraw(r.Context(), id, req.Amount)
	if err != nil {
		h.respondServiceError(w, err, "POST", endpoint)
		return
	}
	h.respond(w, http.StatusOK, newAccountResponse(account), "POST", endpoint)
}

// accountID parses the {id} path variable, responding 400 on garbage input.
func (h *Handler) accountID(w http.ResponseWriter, r *http.Request, method, endpoint string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid account id", method, endpoint)
		return uuid.Nil, false
	}
	return id, true
}

// respondServiceError maps domain errors onto status codes. Anything that is
// not a domain error is a store failure: log the detail, answer with a
// generic 500.
func (h *Handler) respondServiceError(w http.ResponseWriter, err error, method, endpoint string) {
	var (
		notFound     *domain.NotFoundError
		exists       *domain.AlreadyExistsError
		insufficient *domain.InsufficientFundsError
	)
	switch {
	case errors.As(err, &notFound):
		h.respondError(w, http.StatusNotFound, notFound.Error(), method, endpoint)
	case errors.As(err, &exists):
		h.respondError(w, http.StatusConflict,
			fmt.Sprintf("Account '%s' already exists", exists.Name), method, endpoint)
	case errors.As(err, &insufficient):
		h.respondError(w, http.StatusBadRequest,
			fmt.Sprintf("Insufficient funds: available %.2f, requested %.2f",
				float64(insufficient.Available)/100, float64(insufficient.Requested)/100),
			method, endpoint)
	case errors.Is(err, domain.ErrInvalidAmount):
		h.respondError(w, http.StatusBadRequest, "Amount must be positive", method, endpoint)
	default:
		h.log.Error().Err(err).Str("endpoint", endpoint).Msg("store failure")
		h.respondError(w, http.StatusInternalServerError, "Internal server error", method, endpoint)
	}
}

func (h *Handler) respond(w http.ResponseWriter, code int, payload any, method, endpoint string) {
	httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(code)).Inc()
	respondWithJSON(w, code, payload)
}

func (h *Handler) respondError(w http.ResponseWriter, code int, message, method, endpoint string) {
	h.respond(w, code, map[string]string{"error": message}, method, endpoint)
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}
