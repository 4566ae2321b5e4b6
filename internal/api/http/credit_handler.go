package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Kavin001K/fabzclean-backend/internal/domain"
	"github.com/Kavin001K/fabzclean-backend/internal/service"
)

type CreditHandler struct {
	creditSvc service.CreditService
	reportSvc service.ReportService
}

func NewCreditHandler(creditSvc service.CreditService, reportSvc service.ReportService) *CreditHandler {
	return &CreditHandler{creditSvc: creditSvc, reportSvc: reportSvc}
}

type paymentRequest struct {
	CustomerID      int32  `json:"customer_id"`
	AmountCents     int64  `json:"amount_cents"`
	Method          string `json:"method"`
	ReferenceNumber string `json:"reference_number,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

func (h *CreditHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	txn, err := h.creditSvc.RecordPayment(r.Context(), actor, req.CustomerID, req.AmountCents, req.Method, req.ReferenceNumber, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, txn)
}

type adjustmentRequest struct {
	CustomerID  int32  `json:"customer_id"`
	AmountCents int64  `json:"amount_cents"`
	Reason      string `json:"reason"`
	Notes       string `json:"notes,omitempty"`
}

func (h *CreditHandler) RecordAdjustment(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}
	var req adjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	reason := req.Reason
	if req.Notes != "" {
		reason = fmt.Sprintf("%s (%s)", req.Reason, req.Notes)
	}
	txn, err := h.creditSvc.RecordAdjustment(r.Context(), actor, req.CustomerID, req.AmountCents, reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, txn)
}

type addCreditRequest struct {
	CustomerID  int32  `json:"customer_id"`
	AmountCents int64  `json:"amount_cents"`
	Reason      string `json:"reason"`
	OrderID     string `json:"order_id,omitempty"`
}

func (h *CreditHandler) RecordCredit(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}
	var req addCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	txn, err := h.creditSvc.RecordCredit(r.Context(), actor, req.CustomerID, req.AmountCents, req.Reason, req.OrderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, txn)
}

type depositRequest struct {
	CustomerID      int32  `json:"customer_id"`
	AmountCents     int64  `json:"amount_cents"`
	ReferenceNumber string `json:"reference_number,omitempty"`
}

func (h *CreditHandler) RecordDeposit(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}
	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	txn, err := h.creditSvc.RecordDeposit(r.Context(), actor, req.CustomerID, req.AmountCents, req.ReferenceNumber)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, txn)
}

type usageRequest struct {
	CustomerID  int32  `json:"customer_id"`
	AmountCents int64  `json:"amount_cents"`
	OrderID     string `json:"order_id"`
}

func (h *CreditHandler) RecordUsage(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}
	var req usageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	txn, err := h.creditSvc.RecordUsage(r.Context(), actor, req.CustomerID, req.AmountCents, req.OrderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, txn)
}

type statsResponse struct {
	TotalOutstanding        int64                   `json:"total_outstanding"`
	ActiveCustomers         int32                   `json:"active_customers"`
	MonthlyCreditGiven      int64                   `json:"monthly_credit_given"`
	MonthlyPaymentsReceived int64                   `json:"monthly_payments_received"`
	FranchiseBreakdown      []domain.FranchiseStats `json:"franchise_breakdown"`
}

func (h *CreditHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}

	outstanding, err := h.reportSvc.Outstanding(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	period, err := h.reportSvc.PeriodStats(r.Context(), actor, monthStart, monthEnd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		TotalOutstanding:        outstanding.TotalOutstanding,
		ActiveCustomers:         outstanding.ActiveCustomers,
		MonthlyCreditGiven:      period.CreditGivenCents,
		MonthlyPaymentsReceived: period.PaymentsReceivedCents,
		FranchiseBreakdown:      period.FranchiseBreakdown,
	})
}

func (h *CreditHandler) SearchTransactions(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}

	var txType domain.TransactionType
	if typeParam := r.URL.Query().Get("type"); typeParam != "" {
		parsed, ok := domain.ParseTransactionType(typeParam)
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("unknown transaction type %q", typeParam)})
			return
		}
		txType = parsed
	}

	txs, err := h.reportSvc.SearchTransactions(r.Context(), actor, r.URL.Query().Get("search"), txType)
	if err != nil {
		writeError(w, err)
		return
	}
	if txs == nil {
		txs = []domain.CreditTransaction{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": txs})
}

func (h *CreditHandler) GetOutstandingReport(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}
	report, err := h.reportSvc.Outstanding(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	if report.Customers == nil {
		report.Customers = []domain.OutstandingAccount{}
	}
	writeJSON(w, http.StatusOK, report)
}

type customerLedgerResponse struct {
	Account *domain.CreditAccount      `json:"account"`
	History []domain.CreditTransaction `json:"history"`
	Summary *domain.WeeklyTrend        `json:"summary"`
}

func (h *CreditHandler) GetCustomerLedger(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}
	customerID, err := strconv.ParseInt(mux.Vars(r)["customerId"], 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid customer id"})
		return
	}

	account, history, summary, err := h.creditSvc.GetCustomerLedger(r.Context(), actor, int32(customerID))
	if err != nil {
		writeError(w, err)
		return
	}
	if history == nil {
		history = []domain.CreditTransaction{}
	}
	writeJSON(w, http.StatusOK, customerLedgerResponse{Account: account, History: history, Summary: summary})
}
