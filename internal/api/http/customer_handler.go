package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Kavin001K/fabzclean-backend/internal/domain"
	"github.com/Kavin001K/fabzclean-backend/internal/service"
)

type CustomerHandler struct {
	customerSvc service.CustomerService
}

func NewCustomerHandler(customerSvc service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerSvc: customerSvc}
}

type createCustomerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	FranchiseID *int32 `json:"franchise_id,omitempty"`
}

func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}
	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	customer := &domain.Customer{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		FranchiseID: req.FranchiseID,
	}
	if err := h.customerSvc.CreateCustomer(r.Context(), actor, customer); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid customer id"})
		return
	}
	customer, err := h.customerSvc.GetCustomer(r.Context(), actor, int32(id))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 50)

	customers, total, err := h.customerSvc.ListCustomers(r.Context(), actor, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	if customers == nil {
		customers = []domain.Customer{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"customers": customers, "total_count": total})
}

func queryInt32(r *http.Request, name string, fallback int32) int32 {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil || n <= 0 {
		return fallback
	}
	return int32(n)
}
