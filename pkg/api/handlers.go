package api

import (
	"encoding/json"
	"net/http"
	"time"

	"bank-ledger/pkg/ledger"

	"github.com/gorilla/mux"
)

// dateLayout is the calendar-date format used for statement windows and
// card expirations at the API boundary.
const dateLayout = "2006-01-02"

// Amounts cross the API in minor currency units (cents).

type customerResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Surname    string   `json:"surname"`
	Age        int      `json:"age"`
	AccountIDs []string `json:"accountIds"`
}

type accountResponse struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	OwnerID      string   `json:"ownerId"`
	Balance      int64    `json:"balance"`
	InterestRate float64  `json:"interestRate,omitempty"`
	CardNumbers  []string `json:"cardNumbers"`
}

type transactionResponse struct {
	ID        string `json:"id"`
	AccountID string `json:"accountId"`
	Type      string `json:"type"`
	Amount    int64  `json:"amount"`
	Timestamp string `json:"timestamp"`
}

type cardResponse struct {
	Number     string `json:"number"`
	AccountID  string `json:"accountId"`
	Expiration string `json:"expiration"`
	Blocked    bool   `json:"blocked"`
}

type statementResponse struct {
	ID             string                `json:"id"`
	AccountID      string                `json:"accountId"`
	Start          string                `json:"start"`
	End            string                `json:"end"`
	Transactions   []transactionResponse `json:"transactions"`
	ClosingBalance int64                 `json:"closingBalance"`
	GeneratedAt    string                `json:"generatedAt"`
}

func toCustomerResponse(c ledger.Customer) customerResponse {
	return customerResponse{
		ID:         c.ID,
		Name:       c.Name,
		Surname:    c.Surname,
		Age:        c.Age,
		AccountIDs: c.AccountIDs,
	}
}

func toAccountResponse(a ledger.Account) accountResponse {
	return accountResponse{
		ID:           a.ID,
		Type:         string(a.Type),
		OwnerID:      a.OwnerID,
		Balance:      a.Balance,
		InterestRate: a.InterestRate,
		CardNumbers:  a.CardNumbers,
	}
}

func toTransactionResponse(t ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:        t.ID,
		AccountID: t.AccountID,
		Type:      string(t.Type),
		Amount:    t.Amount,
		Timestamp: t.Timestamp.Format(time.RFC3339),
	}
}

func toCardResponse(c ledger.Card) cardResponse {
	return cardResponse{
		Number:     c.Number,
		AccountID:  c.AccountID,
		Expiration: c.Expiration.Format(dateLayout),
		Blocked:    c.Blocked,
	}
}

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Surname string `json:"surname"`
		Age     int    `json:"age"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	id := s.ledger.CreateCustomer(req.Name, req.Surname, req.Age)
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers := s.ledger.Customers()
	out := make([]customerResponse, len(customers))
	for i, c := range customers {
		out[i] = toCustomerResponse(c)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := s.ledger.CustomerByID(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponse(c))
}

func (s *Server) handleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Surname string `json:"surname"`
		Age     int    `json:"age"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if err := s.ledger.UpdateCustomer(mux.Vars(r)["id"], req.Name, req.Surname, req.Age); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteCustomer(mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCustomerAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.ledger.AccountsByCustomer(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]accountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = toAccountResponse(a)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerID string `json:"customerId"`
		Type       string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	kind, err := ledger.ParseAccountType(req.Type)
	if err != nil {
		s.writeError(w, err)
		return
	}

	id, err := s.ledger.CreateAccount(req.CustomerID, kind)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts := s.ledger.Accounts()
	out := make([]accountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = toAccountResponse(a)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	a, err := s.ledger.AccountByID(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResponse(a))
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteAccount(mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type amountRequest struct {
	Amount int64 `json:"amount"`
}

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if err := s.ledger.Deposit(mux.Vars(r)["id"], req.Amount); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if err := s.ledger.Withdraw(mux.Vars(r)["id"], req.Amount); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FromAccountID string `json:"fromAccountId"`
		ToAccountID   string `json:"toAccountId"`
		Amount        int64  `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if err := s.ledger.Transfer(req.FromAccountID, req.ToAccountID, req.Amount); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleApplyInterest(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.ApplyInterest(mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetInterestRate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rate float64 `json:"rate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if err := s.ledger.SetInterestRate(mux.Vars(r)["id"], req.Rate); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStatement(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")
	if startStr == "" || endStr == "" {
		badRequest(w, "start and end query parameters are required (yyyy-MM-dd)")
		return
	}

	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		badRequest(w, "invalid start date")
		return
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		badRequest(w, "invalid end date")
		return
	}
	// The end bound is inclusive through the whole calendar day.
	end = end.Add(24*time.Hour - time.Nanosecond)

	st, err := s.ledger.GenerateStatement(mux.Vars(r)["id"], start, end)
	if err != nil {
		s.writeError(w, err)
		return
	}

	txs := make([]transactionResponse, len(st.Transactions))
	for i, tx := range st.Transactions {
		txs[i] = toTransactionResponse(tx)
	}
	writeJSON(w, http.StatusOK, statementResponse{
		ID:             st.ID,
		AccountID:      st.AccountID,
		Start:          st.Start.Format(dateLayout),
		End:            st.End.Format(dateLayout),
		Transactions:   txs,
		ClosingBalance: st.ClosingBalance,
		GeneratedAt:    st.GeneratedAt.Format(time.RFC3339),
	})
}

func (s *Server) handleAccountTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.ledger.TransactionsByAccount(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		out[i] = toTransactionResponse(tx)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAccountCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.ledger.CardsByAccount(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]cardResponse, len(cards))
	for i, c := range cards {
		out[i] = toCardResponse(c)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Number     string `json:"number"`
		Expiration string `json:"expiration"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	expiration, err := time.Parse(dateLayout, req.Expiration)
	if err != nil {
		badRequest(w, "invalid expiration date")
		return
	}

	if err := s.ledger.AddCard(mux.Vars(r)["id"], req.Number, expiration); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleRemoveCard(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.RemoveCard(mux.Vars(r)["number"]); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBlockCard(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.BlockCard(mux.Vars(r)["number"]); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUnblockCard(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.UnblockCard(mux.Vars(r)["number"]); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
