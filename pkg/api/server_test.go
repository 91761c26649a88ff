package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bank-ledger/pkg/ledger"
	"bank-ledger/pkg/logging"
)

func newTestServer(t *testing.T) (*Server, *ledger.Ledger) {
	t.Helper()
	logging.SetGlobal(logging.NewNopLogger())
	l := ledger.New(ledger.Config{Logger: logging.NewNopLogger()})
	return NewServer(l, DefaultServerConfig()), l
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestServer_Health(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doJSON(t, server.Handler(), http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}

func TestServer_CustomerLifecycle(t *testing.T) {
	server, _ := newTestServer(t)
	h := server.Handler()

	rec := doJSON(t, h, http.MethodPost, "/customers", map[string]interface{}{
		"name": "Ann", "surname": "Lee", "age": 28,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	decode(t, rec, &created)
	if created.ID == "" {
		t.Fatal("Expected customer id in response")
	}

	rec = doJSON(t, h, http.MethodGet, "/customers/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var got struct {
		Name    string `json:"name"`
		Surname string `json:"surname"`
		Age     int    `json:"age"`
	}
	decode(t, rec, &got)
	if got.Name != "Ann" || got.Surname != "Lee" || got.Age != 28 {
		t.Errorf("Unexpected customer: %+v", got)
	}

	rec = doJSON(t, h, http.MethodPut, "/customers/"+created.ID, map[string]interface{}{
		"name": "Anne", "surname": "Leigh", "age": 29,
	})
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodDelete, "/customers/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/customers/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", rec.Code)
	}
}

func TestServer_DepositWithdrawTransfer(t *testing.T) {
	server, l := newTestServer(t)
	h := server.Handler()

	customerID := l.CreateCustomer("Ann", "Lee", 28)
	fromID, _ := l.CreateAccount(customerID, ledger.Primary)
	toID, _ := l.CreateAccount(customerID, ledger.Savings)

	rec := doJSON(t, h, http.MethodPost, "/accounts/"+fromID+"/deposit", map[string]int64{"amount": 10000})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("Deposit: expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, "/accounts/"+fromID+"/withdraw", map[string]int64{"amount": 4000})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("Withdraw: expected 204, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/transfers", map[string]interface{}{
		"fromAccountId": fromID, "toAccountId": toID, "amount": 6000,
	})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("Transfer: expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodGet, "/accounts/"+toID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var account struct {
		Balance int64  `json:"balance"`
		Type    string `json:"type"`
	}
	decode(t, rec, &account)
	if account.Balance != 6000 || account.Type != "SAVINGS" {
		t.Errorf("Unexpected account: %+v", account)
	}
}

func TestServer_ErrorStatusMapping(t *testing.T) {
	server, l := newTestServer(t)
	h := server.Handler()

	customerID := l.CreateCustomer("Ann", "Lee", 28)
	accountID, _ := l.CreateAccount(customerID, ledger.Primary)
	l.Deposit(accountID, 100)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"unknown account", http.MethodGet, "/accounts/missing", nil, http.StatusNotFound},
		{"unknown customer", http.MethodGet, "/customers/missing", nil, http.StatusNotFound},
		{"overdraw", http.MethodPost, "/accounts/" + accountID + "/withdraw", map[string]int64{"amount": 500}, http.StatusUnprocessableEntity},
		{"non-positive amount", http.MethodPost, "/accounts/" + accountID + "/deposit", map[string]int64{"amount": 0}, http.StatusBadRequest},
		{"delete non-empty account", http.MethodDelete, "/accounts/" + accountID, nil, http.StatusConflict},
		{"delete customer with accounts", http.MethodDelete, "/customers/" + customerID, nil, http.StatusConflict},
		{"transfer to self", http.MethodPost, "/transfers", map[string]interface{}{
			"fromAccountId": accountID, "toAccountId": accountID, "amount": 10,
		}, http.StatusBadRequest},
		{"invalid account type", http.MethodPost, "/accounts", map[string]interface{}{
			"customerId": customerID, "type": "CHECKING",
		}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := doJSON(t, h, tt.method, tt.path, tt.body)
		if rec.Code != tt.want {
			t.Errorf("%s: expected %d, got %d: %s", tt.name, tt.want, rec.Code, rec.Body.String())
		}
	}
}

func TestServer_Statement(t *testing.T) {
	server, l := newTestServer(t)
	h := server.Handler()

	customerID := l.CreateCustomer("Ann", "Lee", 28)
	accountID, _ := l.CreateAccount(customerID, ledger.Primary)
	l.Deposit(accountID, 10000)
	l.Withdraw(accountID, 4000)

	path := fmt.Sprintf("/accounts/%s/statement?start=2020-01-01&end=2099-12-31", accountID)
	rec := doJSON(t, h, http.MethodGet, path, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var statement struct {
		AccountID    string `json:"accountId"`
		Transactions []struct {
			Type   string `json:"type"`
			Amount int64  `json:"amount"`
		} `json:"transactions"`
		ClosingBalance int64 `json:"closingBalance"`
	}
	decode(t, rec, &statement)
	if statement.AccountID != accountID {
		t.Errorf("Expected account %s, got %s", accountID, statement.AccountID)
	}
	if len(statement.Transactions) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(statement.Transactions))
	}
	if statement.ClosingBalance != 6000 {
		t.Errorf("Expected closing balance 6000, got %d", statement.ClosingBalance)
	}

	// Missing window parameters
	rec = doJSON(t, h, http.MethodGet, "/accounts/"+accountID+"/statement", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without window, got %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, "/accounts/"+accountID+"/statement?start=notadate&end=2099-12-31", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad date, got %d", rec.Code)
	}
}

func TestServer_Cards(t *testing.T) {
	server, l := newTestServer(t)
	h := server.Handler()

	customerID := l.CreateCustomer("Ann", "Lee", 28)
	accountID, _ := l.CreateAccount(customerID, ledger.Primary)

	rec := doJSON(t, h, http.MethodPost, "/accounts/"+accountID+"/cards", map[string]string{
		"number": "4000123412341234", "expiration": "2029-08-31",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("AddCard: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, "/cards/4000123412341234/block", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("BlockCard: expected 204, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/accounts/"+accountID+"/cards", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ListCards: expected 200, got %d", rec.Code)
	}
	var cards []struct {
		Number  string `json:"number"`
		Blocked bool   `json:"blocked"`
	}
	decode(t, rec, &cards)
	if len(cards) != 1 || cards[0].Number != "4000123412341234" || !cards[0].Blocked {
		t.Errorf("Unexpected cards: %+v", cards)
	}

	rec = doJSON(t, h, http.MethodDelete, "/cards/4000123412341234", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("RemoveCard: expected 204, got %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodDelete, "/cards/4000123412341234", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for removed card, got %d", rec.Code)
	}

	// Malformed card number
	rec = doJSON(t, h, http.MethodPost, "/accounts/"+accountID+"/cards", map[string]string{
		"number": "1234", "expiration": "2029-08-31",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed number, got %d", rec.Code)
	}
}

func TestServer_MalformedBody(t *testing.T) {
	server, _ := newTestServer(t)
	h := server.Handler()

	req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed body, got %d", rec.Code)
	}
}
