// Package csv implements storage.Store on top of line-oriented
// comma-separated files, one entity per line, one file per collection.
//
// Loading is forgiving: lines with the wrong field count or unparsable
// values are skipped with a warning instead of failing the whole load.
// Saving replaces the collection file atomically (write to a temp file,
// then rename).
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"bank-ledger/pkg/logging"
	"bank-ledger/pkg/storage"

	"go.uber.org/zap"
)

// DateLayout is the calendar-date format used for timestamps at the
// persistence boundary.
const DateLayout = "2006-01-02"

const (
	customersFile    = "customers.csv"
	accountsFile     = "accounts.csv"
	transactionsFile = "transactions.csv"
	cardsFile        = "cards.csv"
)

// FileStore reads and writes the four collection files under one directory.
type FileStore struct {
	dir    string
	logger *logging.Logger
}

// NewFileStore creates a store rooted at dir, creating the directory if
// needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{
		dir:    dir,
		logger: logging.Global().Named("storage"),
	}, nil
}

// LoadCustomers reads customers.csv: (id, name, surname, age).
func (s *FileStore) LoadCustomers() ([]storage.CustomerRecord, error) {
	rows, err := s.readAll(customersFile)
	if err != nil {
		return nil, err
	}

	out := make([]storage.CustomerRecord, 0, len(rows))
	for _, row := range rows {
		if len(row) != 4 {
			s.skip(customersFile, row)
			continue
		}
		age, err := strconv.Atoi(row[3])
		if err != nil {
			s.skip(customersFile, row)
			continue
		}
		out = append(out, storage.CustomerRecord{
			ID:      row[0],
			Name:    row[1],
			Surname: row[2],
			Age:     age,
		})
	}
	return out, nil
}

// LoadAccounts reads accounts.csv: (id, type, ownerId, balance).
func (s *FileStore) LoadAccounts() ([]storage.AccountRecord, error) {
	rows, err := s.readAll(accountsFile)
	if err != nil {
		return nil, err
	}

	out := make([]storage.AccountRecord, 0, len(rows))
	for _, row := range rows {
		if len(row) != 4 {
			s.skip(accountsFile, row)
			continue
		}
		balance, err := strconv.ParseInt(row[3], 10, 64)
		if err != nil {
			s.skip(accountsFile, row)
			continue
		}
		out = append(out, storage.AccountRecord{
			ID:      row[0],
			Type:    row[1],
			OwnerID: row[2],
			Balance: balance,
		})
	}
	return out, nil
}

// LoadTransactions reads transactions.csv:
// (id, accountId, type, amount, timestamp).
func (s *FileStore) LoadTransactions() ([]storage.TransactionRecord, error) {
	rows, err := s.readAll(transactionsFile)
	if err != nil {
		return nil, err
	}

	out := make([]storage.TransactionRecord, 0, len(rows))
	for _, row := range rows {
		if len(row) != 5 {
			s.skip(transactionsFile, row)
			continue
		}
		amount, err := strconv.ParseInt(row[3], 10, 64)
		if err != nil {
			s.skip(transactionsFile, row)
			continue
		}
		ts, err := time.Parse(DateLayout, row[4])
		if err != nil {
			s.skip(transactionsFile, row)
			continue
		}
		out = append(out, storage.TransactionRecord{
			ID:        row[0],
			AccountID: row[1],
			Type:      row[2],
			Amount:    amount,
			Timestamp: ts,
		})
	}
	return out, nil
}

// LoadCards reads cards.csv: (cardNumber, accountId, expiration, blocked).
func (s *FileStore) LoadCards() ([]storage.CardRecord, error) {
	rows, err := s.readAll(cardsFile)
	if err != nil {
		return nil, err
	}

	out := make([]storage.CardRecord, 0, len(rows))
	for _, row := range rows {
		if len(row) != 4 {
			s.skip(cardsFile, row)
			continue
		}
		expiration, err := time.Parse(DateLayout, row[2])
		if err != nil {
			s.skip(cardsFile, row)
			continue
		}
		blocked, err := strconv.ParseBool(row[3])
		if err != nil {
			s.skip(cardsFile, row)
			continue
		}
		out = append(out, storage.CardRecord{
			Number:     row[0],
			AccountID:  row[1],
			Expiration: expiration,
			Blocked:    blocked,
		})
	}
	return out, nil
}

// SaveCustomers writes customers.csv.
func (s *FileStore) SaveCustomers(records []storage.CustomerRecord) error {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{r.ID, r.Name, r.Surname, strconv.Itoa(r.Age)}
	}
	return s.writeAll(customersFile, rows)
}

// SaveAccounts writes accounts.csv.
func (s *FileStore) SaveAccounts(records []storage.AccountRecord) error {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{r.ID, r.Type, r.OwnerID, strconv.FormatInt(r.Balance, 10)}
	}
	return s.writeAll(accountsFile, rows)
}

// SaveTransactions writes transactions.csv.
func (s *FileStore) SaveTransactions(records []storage.TransactionRecord) error {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			r.ID,
			r.AccountID,
			r.Type,
			strconv.FormatInt(r.Amount, 10),
			r.Timestamp.Format(DateLayout),
		}
	}
	return s.writeAll(transactionsFile, rows)
}

// SaveCards writes cards.csv.
func (s *FileStore) SaveCards(records []storage.CardRecord) error {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			r.Number,
			r.AccountID,
			r.Expiration.Format(DateLayout),
			strconv.FormatBool(r.Blocked),
		}
	}
	return s.writeAll(cardsFile, rows)
}

// readAll reads every row of one collection file. A missing file is an
// empty collection, not an error.
func (s *FileStore) readAll(name string) ([][]string, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// Field counts are validated per line so malformed lines can be
	// skipped instead of failing the load.
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return rows, nil
}

// writeAll atomically replaces one collection file.
func (s *FileStore) writeAll(name string, rows [][]string) error {
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", name, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}

	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) skip(file string, row []string) {
	s.logger.Warn("skipping malformed line",
		zap.String("file", file),
		zap.Int("fields", len(row)),
	)
}
