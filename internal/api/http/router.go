package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Kavin001K/fabzclean-backend/internal/repository"
	"github.com/Kavin001K/fabzclean-backend/internal/security"
	"github.com/Kavin001K/fabzclean-backend/internal/service"
)

// NewRouter wires the API surface. Login and health are public; everything
// else sits behind the auth middleware, and mutating credit routes
// additionally pass through the idempotency middleware.
func NewRouter(
	tokenManager security.TokenManager,
	idempotencyRepo repository.IdempotencyRepository,
	authSvc service.AuthService,
	creditSvc service.CreditService,
	reportSvc service.ReportService,
	customerSvc service.CustomerService,
) *mux.Router {
	authHandler := NewAuthHandler(authSvc)
	creditHandler := NewCreditHandler(creditSvc, reportSvc)
	customerHandler := NewCustomerHandler(customerSvc)

	router := mux.NewRouter()
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(tokenManager))

	mutations := authed.NewRoute().Subrouter()
	mutations.Use(IdempotencyMiddleware(idempotencyRepo))
	mutations.HandleFunc("/credits/payment", creditHandler.RecordPayment).Methods("POST")
	mutations.HandleFunc("/credits/adjustment", creditHandler.RecordAdjustment).Methods("POST")
	mutations.HandleFunc("/credits/add", creditHandler.RecordCredit).Methods("POST")
	mutations.HandleFunc("/credits/deposit", creditHandler.RecordDeposit).Methods("POST")
	mutations.HandleFunc("/credits/usage", creditHandler.RecordUsage).Methods("POST")
	mutations.HandleFunc("/customers", customerHandler.CreateCustomer).Methods("POST")

	authed.HandleFunc("/credits/stats", creditHandler.GetStats).Methods("GET")
	authed.HandleFunc("/credits/transactions", creditHandler.SearchTransactions).Methods("GET")
	authed.HandleFunc("/credits/report/outstanding", creditHandler.GetOutstandingReport).Methods("GET")
	authed.HandleFunc("/credits/{customerId:[0-9]+}", creditHandler.GetCustomerLedger).Methods("GET")
	authed.HandleFunc("/customers", customerHandler.ListCustomers).Methods("GET")
	authed.HandleFunc("/customers/{id:[0-9]+}", customerHandler.GetCustomer).Methods("GET")

	return router
}
