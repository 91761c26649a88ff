// Package ledger implements the in-memory bank ledger: customers, their
// primary and savings accounts, the cards attached to accounts, and the
// append-only transaction history backing each balance.
//
// A single mutex serializes every operation, so no caller ever observes a
// partially applied mutation; transfers hold it across both legs. After
// each successful mutation the ledger hands a persistence snapshot of the
// affected collections plus an audit record to its side-effect queue.
// Those effects are fire-and-forget: their failures are logged and never
// roll back in-memory state.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"bank-ledger/pkg/audit"
	"bank-ledger/pkg/logging"
	"bank-ledger/pkg/metrics"
	"bank-ledger/pkg/storage"
	"bank-ledger/pkg/writer"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Collection names used when snapshotting state for persistence.
const (
	colCustomers    = "customers"
	colAccounts     = "accounts"
	colTransactions = "transactions"
	colCards        = "cards"
)

// Config holds the ledger's collaborators. All fields are optional: a
// zero Config yields a fully in-memory ledger with no persistence, no
// audit trail, and no metrics.
type Config struct {
	// Store receives a snapshot of the affected collections after each
	// mutation and provides the collections loaded at startup.
	Store storage.Store

	// Audit receives the canonical name of each successful mutating
	// operation.
	Audit audit.Recorder

	// Effects, when set, applies persistence and audit side effects
	// asynchronously in mutation order. When nil, effects run inline.
	Effects *writer.Queue

	// Logger defaults to the global logger named "ledger".
	Logger *logging.Logger

	// Metrics defaults to a no-op collector.
	Metrics metrics.Collector
}

// Ledger is the authoritative in-memory store of customers, accounts,
// cards, and transactions, and the sole writer of transaction history.
type Ledger struct {
	mu        sync.Mutex
	customers map[string]*customer
	accounts  map[string]account
	cards     map[string]*card

	store   storage.Store
	audit   audit.Recorder
	effects *writer.Queue
	logger  *logging.Logger
	metrics metrics.Collector

	// Hooks for tests
	now   func() time.Time
	newID func() string
}

// New creates an empty ledger with the given collaborators.
func New(config Config) *Ledger {
	logger := config.Logger
	if logger == nil {
		logger = logging.Global().Named("ledger")
	}
	collector := config.Metrics
	if collector == nil {
		collector = metrics.NoOpCollector{}
	}
	recorder := config.Audit
	if recorder == nil {
		recorder = audit.NopRecorder{}
	}

	return &Ledger{
		customers: make(map[string]*customer),
		accounts:  make(map[string]account),
		cards:     make(map[string]*card),
		store:     config.Store,
		audit:     recorder,
		effects:   config.Effects,
		logger:    logger,
		metrics:   collector,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// observe reports an operation's outcome to metrics.
func (l *Ledger) observe(op string, start time.Time, err error) {
	l.metrics.RecordOperation(op, err == nil, time.Since(start))
	if err != nil {
		l.metrics.RecordOperationError(op, Classify(err))
	}
}

// CreateCustomer registers a new customer and returns its id. It always
// succeeds.
func (l *Ledger) CreateCustomer(name, surname string, age int) string {
	start := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.newID()
	l.customers[id] = &customer{id: id, name: name, surname: surname, age: age}
	l.commit("createCustomer", colCustomers)

	l.logger.Info("customer created", zap.String("customer_id", id))
	l.observe("createCustomer", start, nil)
	return id
}

// CreateAccount opens an account of the given type for an existing
// customer and returns the new account id. Savings accounts start at the
// default interest rate.
func (l *Ledger) CreateAccount(customerID string, kind AccountType) (id string, err error) {
	start := time.Now()
	defer func() { l.observe("createAccount", start, err) }()

	l.mu.Lock()
	defer l.mu.Unlock()

	owner, ok := l.customers[customerID]
	if !ok {
		return "", fmt.Errorf("%w: customer %s", ErrCustomerNotFound, customerID)
	}

	id = l.newID()
	var acct account
	switch kind {
	case Primary:
		acct = newPrimaryAccount(id, owner)
	case Savings:
		acct = newSavingsAccount(id, owner, DefaultInterestRate)
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAccountType, kind)
	}

	l.accounts[id] = acct
	owner.addAccount(acct)
	l.commit("createAccount", colAccounts)

	l.logger.Info("account created",
		zap.String("account_id", id),
		zap.String("type", string(kind)),
		zap.String("customer_id", customerID),
	)
	return id, nil
}

// Deposit credits amount to an account and records a DEPOSIT transaction.
func (l *Ledger) Deposit(accountID string, amount int64) (err error) {
	start := time.Now()
	defer func() { l.observe("deposit", start, err) }()

	if amount <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	acct, ok := l.accounts[accountID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}

	tx := acct.base().deposit(amount, l.now())
	l.commit("deposit", colAccounts, colTransactions)

	l.logger.Debug("deposit recorded",
		zap.String("account_id", accountID),
		zap.Int64("amount", amount),
		zap.String("transaction_id", tx.ID),
	)
	return nil
}

// Withdraw debits amount from an account and records a WITHDRAWAL
// transaction, failing with ErrInsufficientFunds when the balance does not
// cover it.
func (l *Ledger) Withdraw(accountID string, amount int64) (err error) {
	start := time.Now()
	defer func() { l.observe("withdraw", start, err) }()

	if amount <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	acct, ok := l.accounts[accountID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}

	tx, err := acct.base().withdraw(amount, l.now())
	if err != nil {
		return err
	}
	l.commit("withdraw", colAccounts, colTransactions)

	l.logger.Debug("withdrawal recorded",
		zap.String("account_id", accountID),
		zap.Int64("amount", amount),
		zap.String("transaction_id", tx.ID),
	)
	return nil
}

// Transfer atomically moves amount between two accounts: the balance check
// precedes any mutation, both legs happen inside one critical section, and
// exactly two transactions are recorded (WITHDRAWAL on the source, DEPOSIT
// on the destination) or none at all.
func (l *Ledger) Transfer(fromID, toID string, amount int64) (err error) {
	start := time.Now()
	defer func() { l.observe("transfer", start, err) }()

	if amount <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	if fromID == toID {
		return fmt.Errorf("%w: %s", ErrSameAccount, fromID)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	from, ok := l.accounts[fromID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, fromID)
	}
	to, ok := l.accounts[toID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, toID)
	}
	if from.base().balance < amount {
		return fmt.Errorf("%w: account %s balance %d, requested %d",
			ErrInsufficientFunds, fromID, from.base().balance, amount)
	}

	now := l.now()
	if _, err := from.base().withdraw(amount, now); err != nil {
		return err
	}
	to.base().deposit(amount, now)
	l.commit("transfer", colAccounts, colTransactions)

	l.logger.Info("transfer completed",
		zap.String("from", fromID),
		zap.String("to", toID),
		zap.Int64("amount", amount),
	)
	return nil
}

// ApplyInterest credits a savings account with balance*rate/100, recorded
// as a DEPOSIT transaction. It fails on primary accounts.
func (l *Ledger) ApplyInterest(accountID string) (err error) {
	start := time.Now()
	defer func() { l.observe("applyInterest", start, err) }()

	l.mu.Lock()
	defer l.mu.Unlock()

	acct, ok := l.accounts[accountID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	sav, ok := acct.(*savingsAccount)
	if !ok {
		return fmt.Errorf("%w: account %s is not a savings account", ErrInvalidAccountType, accountID)
	}

	tx, applied := sav.applyInterest(l.now())
	if !applied {
		return nil
	}
	l.commit("applyInterest", colAccounts, colTransactions)

	l.logger.Info("interest applied",
		zap.String("account_id", accountID),
		zap.Float64("rate", sav.rate),
		zap.Int64("interest", tx.Amount),
	)
	return nil
}

// SetInterestRate changes a savings account's interest rate. The rate is a
// percentage and must be non-negative.
func (l *Ledger) SetInterestRate(accountID string, rate float64) (err error) {
	start := time.Now()
	defer func() { l.observe("setInterestRate", start, err) }()

	if rate < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	acct, ok := l.accounts[accountID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	sav, ok := acct.(*savingsAccount)
	if !ok {
		return fmt.Errorf("%w: account %s is not a savings account", ErrInvalidAccountType, accountID)
	}

	sav.rate = rate
	l.commit("setInterestRate", colAccounts)
	return nil
}

// UpdateCustomer overwrites an existing customer's name, surname, and age.
// It is idempotent.
func (l *Ledger) UpdateCustomer(id, name, surname string, age int) (err error) {
	start := time.Now()
	defer func() { l.observe("updateCustomer", start, err) }()

	l.mu.Lock()
	defer l.mu.Unlock()

	cust, ok := l.customers[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCustomerNotFound, id)
	}

	cust.name = name
	cust.surname = surname
	cust.age = age
	l.commit("updateCustomer", colCustomers)
	return nil
}

// DeleteCustomer removes a customer. Deletion is refused while the
// customer still owns accounts, so accounts are never silently orphaned.
func (l *Ledger) DeleteCustomer(id string) (err error) {
	start := time.Now()
	defer func() { l.observe("deleteCustomer", start, err) }()

	l.mu.Lock()
	defer l.mu.Unlock()

	cust, ok := l.customers[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCustomerNotFound, id)
	}
	if len(cust.accounts) > 0 {
		return fmt.Errorf("%w: customer %s owns %d account(s)",
			ErrCustomerHasAccounts, id, len(cust.accounts))
	}

	delete(l.customers, id)
	l.commit("deleteCustomer", colCustomers)

	l.logger.Info("customer deleted", zap.String("customer_id", id))
	return nil
}

// DeleteAccount removes an account. Deletion is refused while the balance
// is non-zero or cards remain attached. On success the account also
// disappears from its owner's account list.
func (l *Ledger) DeleteAccount(id string) (err error) {
	start := time.Now()
	defer func() { l.observe("deleteAccount", start, err) }()

	l.mu.Lock()
	defer l.mu.Unlock()

	acct, ok := l.accounts[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}
	base := acct.base()
	if base.balance != 0 {
		return fmt.Errorf("%w: account %s balance %d", ErrAccountNotEmpty, id, base.balance)
	}
	if len(base.cards) > 0 {
		return fmt.Errorf("%w: account %s has %d card(s)", ErrAccountHasCards, id, len(base.cards))
	}

	delete(l.accounts, id)
	base.owner.removeAccount(id)
	l.commit("deleteAccount", colAccounts)

	l.logger.Info("account deleted", zap.String("account_id", id))
	return nil
}

// AddCard attaches a new card to a primary account. The number must be a
// unique 16-digit numeric string.
func (l *Ledger) AddCard(accountID, number string, expiration time.Time) (err error) {
	start := time.Now()
	defer func() { l.observe("addCard", start, err) }()

	if !validCardNumber(number) {
		return fmt.Errorf("%w: %q", ErrInvalidCardNumber, number)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	acct, ok := l.accounts[accountID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	if acct.base().kind != Primary {
		return fmt.Errorf("%w: account %s is %s", ErrCardNotAllowed, accountID, acct.base().kind)
	}
	if _, exists := l.cards[number]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCard, number)
	}

	c := &card{number: number, accountID: accountID, expiration: expiration}
	l.cards[number] = c
	acct.base().attachCard(c)
	l.commit("addCard", colCards)

	l.logger.Info("card added",
		zap.String("account_id", accountID),
		zap.String("card", number),
	)
	return nil
}

// RemoveCard detaches a card from its account and drops it from the card
// index.
func (l *Ledger) RemoveCard(number string) (err error) {
	start := time.Now()
	defer func() { l.observe("removeCard", start, err) }()

	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.cards[number]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCardNotFound, number)
	}

	delete(l.cards, number)
	if acct, ok := l.accounts[c.accountID]; ok {
		acct.base().detachCard(number)
	}
	l.commit("removeCard", colCards)

	l.logger.Info("card removed", zap.String("card", number))
	return nil
}

// BlockCard marks a card as blocked.
func (l *Ledger) BlockCard(number string) error {
	return l.setCardBlocked("blockCard", number, true)
}

// UnblockCard clears a card's blocked flag.
func (l *Ledger) UnblockCard(number string) error {
	return l.setCardBlocked("unblockCard", number, false)
}

func (l *Ledger) setCardBlocked(action, number string, blocked bool) (err error) {
	start := time.Now()
	defer func() { l.observe(action, start, err) }()

	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.cards[number]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCardNotFound, number)
	}

	c.blocked = blocked
	l.commit(action, colCards)

	l.logger.Info("card block flag set",
		zap.String("card", number),
		zap.Bool("blocked", blocked),
	)
	return nil
}

// CustomerByID returns a snapshot of one customer.
func (l *Ledger) CustomerByID(id string) (Customer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cust, ok := l.customers[id]
	if !ok {
		return Customer{}, fmt.Errorf("%w: %s", ErrCustomerNotFound, id)
	}
	return cust.snapshot(), nil
}

// Customers returns snapshots of all customers, in no particular order.
func (l *Ledger) Customers() []Customer {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Customer, 0, len(l.customers))
	for _, c := range l.customers {
		out = append(out, c.snapshot())
	}
	return out
}

// AccountByID returns a snapshot of one account.
func (l *Ledger) AccountByID(id string) (Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct, ok := l.accounts[id]
	if !ok {
		return Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}
	return acct.snapshot(), nil
}

// Accounts returns snapshots of all accounts, in no particular order.
func (l *Ledger) Accounts() []Account {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Account, 0, len(l.accounts))
	for _, a := range l.accounts {
		out = append(out, a.snapshot())
	}
	return out
}

// AccountsByCustomer returns snapshots of one customer's accounts in
// creation order.
func (l *Ledger) AccountsByCustomer(customerID string) ([]Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cust, ok := l.customers[customerID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCustomerNotFound, customerID)
	}

	out := make([]Account, len(cust.accounts))
	for i, a := range cust.accounts {
		out[i] = a.snapshot()
	}
	return out, nil
}

// Balance returns an account's current balance.
func (l *Ledger) Balance(accountID string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct, ok := l.accounts[accountID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	return acct.base().balance, nil
}

// TransactionsByAccount returns a copy of an account's append-only
// transaction history in recording order.
func (l *Ledger) TransactionsByAccount(accountID string) ([]Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct, ok := l.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}

	base := acct.base()
	out := make([]Transaction, len(base.transactions))
	copy(out, base.transactions)
	return out, nil
}

// CardsByAccount returns snapshots of an account's cards.
func (l *Ledger) CardsByAccount(accountID string) ([]Card, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct, ok := l.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}

	base := acct.base()
	out := make([]Card, len(base.cards))
	for i, c := range base.cards {
		out[i] = c.snapshot()
	}
	return out, nil
}

// CardByNumber returns a snapshot of one card.
func (l *Ledger) CardByNumber(number string) (Card, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.cards[number]
	if !ok {
		return Card{}, fmt.Errorf("%w: %s", ErrCardNotFound, number)
	}
	return c.snapshot(), nil
}

// commit snapshots the named collections and hands the saves plus the
// audit record to the side-effect queue (or applies them inline when no
// queue is configured). Caller holds the ledger lock, which is what keeps
// enqueue order equal to mutation order.
func (l *Ledger) commit(action string, collections ...string) {
	type save struct {
		collection string
		run        func() error
	}

	var saves []save
	if l.store != nil {
		for _, collection := range collections {
			switch collection {
			case colCustomers:
				records := l.customerRecords()
				saves = append(saves, save{collection, func() error { return l.store.SaveCustomers(records) }})
			case colAccounts:
				records := l.accountRecords()
				saves = append(saves, save{collection, func() error { return l.store.SaveAccounts(records) }})
			case colTransactions:
				records := l.transactionRecords()
				saves = append(saves, save{collection, func() error { return l.store.SaveTransactions(records) }})
			case colCards:
				records := l.cardRecords()
				saves = append(saves, save{collection, func() error { return l.store.SaveCards(records) }})
			}
		}
	}

	job := writer.Job{
		Name: action,
		Run: func() error {
			var errs error
			for _, s := range saves {
				start := time.Now()
				err := s.run()
				l.metrics.RecordSave(s.collection, err == nil, time.Since(start))
				errs = multierr.Append(errs, err)
			}
			auditErr := l.audit.LogAction(action)
			l.metrics.RecordAudit(auditErr == nil)
			return multierr.Append(errs, auditErr)
		},
	}

	if l.effects != nil {
		if err := l.effects.Enqueue(job); err != nil {
			l.logger.Warn("side effects not enqueued",
				zap.String("action", action),
				zap.Error(err),
			)
		}
		return
	}

	// No queue configured: apply inline, still swallowing failures.
	if err := job.Run(); err != nil {
		l.logger.Error("side effects failed",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// customerRecords flattens the customer index. Caller holds the ledger lock.
func (l *Ledger) customerRecords() []storage.CustomerRecord {
	out := make([]storage.CustomerRecord, 0, len(l.customers))
	for _, c := range l.customers {
		out = append(out, storage.CustomerRecord{
			ID:      c.id,
			Name:    c.name,
			Surname: c.surname,
			Age:     c.age,
		})
	}
	return out
}

// accountRecords flattens the account index. Caller holds the ledger lock.
func (l *Ledger) accountRecords() []storage.AccountRecord {
	out := make([]storage.AccountRecord, 0, len(l.accounts))
	for _, a := range l.accounts {
		base := a.base()
		out = append(out, storage.AccountRecord{
			ID:      base.id,
			Type:    string(base.kind),
			OwnerID: base.owner.id,
			Balance: base.balance,
		})
	}
	return out
}

// transactionRecords flattens every account's history. Caller holds the
// ledger lock.
func (l *Ledger) transactionRecords() []storage.TransactionRecord {
	var out []storage.TransactionRecord
	for _, a := range l.accounts {
		for _, tx := range a.base().transactions {
			out = append(out, storage.TransactionRecord{
				ID:        tx.ID,
				AccountID: tx.AccountID,
				Type:      string(tx.Type),
				Amount:    tx.Amount,
				Timestamp: tx.Timestamp,
			})
		}
	}
	return out
}

// cardRecords flattens the card index. Caller holds the ledger lock.
func (l *Ledger) cardRecords() []storage.CardRecord {
	out := make([]storage.CardRecord, 0, len(l.cards))
	for _, c := range l.cards {
		out = append(out, storage.CardRecord{
			Number:     c.number,
			AccountID:  c.accountID,
			Expiration: c.expiration,
			Blocked:    c.blocked,
		})
	}
	return out
}

// Load replaces the ledger's state with the collections read from the
// store. Accounts referencing unknown owners, and transactions or cards
// referencing unknown accounts, are skipped with a warning.
func (l *Ledger) Load() error {
	if l.store == nil {
		return nil
	}

	start := time.Now()
	customers, err := l.store.LoadCustomers()
	l.metrics.RecordLoad(colCustomers, err == nil, time.Since(start))
	if err != nil {
		return fmt.Errorf("load customers: %w", err)
	}

	start = time.Now()
	accounts, err := l.store.LoadAccounts()
	l.metrics.RecordLoad(colAccounts, err == nil, time.Since(start))
	if err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}

	start = time.Now()
	transactions, err := l.store.LoadTransactions()
	l.metrics.RecordLoad(colTransactions, err == nil, time.Since(start))
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}

	start = time.Now()
	cards, err := l.store.LoadCards()
	l.metrics.RecordLoad(colCards, err == nil, time.Since(start))
	if err != nil {
		return fmt.Errorf("load cards: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.customers = make(map[string]*customer, len(customers))
	l.accounts = make(map[string]account, len(accounts))
	l.cards = make(map[string]*card, len(cards))

	for _, rec := range customers {
		l.customers[rec.ID] = &customer{
			id:      rec.ID,
			name:    rec.Name,
			surname: rec.Surname,
			age:     rec.Age,
		}
	}

	for _, rec := range accounts {
		owner, ok := l.customers[rec.OwnerID]
		if !ok {
			l.logger.Warn("skipping account with unknown owner",
				zap.String("account_id", rec.ID),
				zap.String("owner_id", rec.OwnerID),
			)
			continue
		}
		var acct account
		switch AccountType(rec.Type) {
		case Primary:
			acct = newPrimaryAccount(rec.ID, owner)
		case Savings:
			acct = newSavingsAccount(rec.ID, owner, DefaultInterestRate)
		default:
			l.logger.Warn("skipping account with unknown type",
				zap.String("account_id", rec.ID),
				zap.String("type", rec.Type),
			)
			continue
		}
		acct.base().balance = rec.Balance
		l.accounts[rec.ID] = acct
		owner.addAccount(acct)
	}

	for _, rec := range transactions {
		acct, ok := l.accounts[rec.AccountID]
		if !ok {
			l.logger.Warn("skipping transaction with unknown account",
				zap.String("transaction_id", rec.ID),
				zap.String("account_id", rec.AccountID),
			)
			continue
		}
		kind, err := ParseTransactionType(rec.Type)
		if err != nil {
			l.logger.Warn("skipping transaction with unknown type",
				zap.String("transaction_id", rec.ID),
				zap.String("type", rec.Type),
			)
			continue
		}
		base := acct.base()
		base.transactions = append(base.transactions, Transaction{
			ID:        rec.ID,
			AccountID: rec.AccountID,
			Type:      kind,
			Amount:    rec.Amount,
			Timestamp: rec.Timestamp,
		})
	}

	for _, rec := range cards {
		acct, ok := l.accounts[rec.AccountID]
		if !ok {
			l.logger.Warn("skipping card with unknown account",
				zap.String("card", rec.Number),
				zap.String("account_id", rec.AccountID),
			)
			continue
		}
		c := &card{
			number:     rec.Number,
			accountID:  rec.AccountID,
			expiration: rec.Expiration,
			blocked:    rec.Blocked,
		}
		l.cards[rec.Number] = c
		acct.base().attachCard(c)
	}

	l.logger.Info("ledger loaded",
		zap.Int("customers", len(l.customers)),
		zap.Int("accounts", len(l.accounts)),
		zap.Int("cards", len(l.cards)),
	)
	return nil
}
