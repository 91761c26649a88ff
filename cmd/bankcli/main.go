// Command bankcli is an interactive console front end over the ledger.
// It runs against the same CSV data directory as bankd, loading state on
// start and flushing pending side effects on exit.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"bank-ledger/pkg/audit"
	"bank-ledger/pkg/ledger"
	"bank-ledger/pkg/logging"
	"bank-ledger/pkg/storage/csv"
	"bank-ledger/pkg/writer"
)

const dateLayout = "2006-01-02"

func main() {
	logger, err := logging.NewLogger(logging.Config{Level: "error", Format: "console"})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	logging.SetGlobal(logger)

	dataDir := getEnv("BANKD_DATA_DIR", "data")

	store, err := csv.NewFileStore(dataDir)
	if err != nil {
		log.Fatalf("Failed to open data directory: %v", err)
	}
	effects := writer.New(writer.Config{})

	bank := ledger.New(ledger.Config{
		Store:   store,
		Audit:   audit.NewFileRecorder(filepath.Join(dataDir, "audit.csv")),
		Effects: effects,
		Logger:  logger,
	})
	if err := bank.Load(); err != nil {
		log.Fatalf("Failed to load ledger state: %v", err)
	}

	cli := &cli{bank: bank, in: bufio.NewScanner(os.Stdin)}
	cli.run()

	if err := effects.Flush(5 * time.Second); err != nil {
		fmt.Println("warning: some changes may not have been saved")
	}
	effects.Close()
}

type cli struct {
	bank *ledger.Ledger
	in   *bufio.Scanner
}

func (c *cli) run() {
	for {
		fmt.Println()
		fmt.Println("1.  Create customer")
		fmt.Println("2.  Create account")
		fmt.Println("3.  Deposit")
		fmt.Println("4.  Withdraw")
		fmt.Println("5.  Transfer")
		fmt.Println("6.  Show balance")
		fmt.Println("7.  Show transactions")
		fmt.Println("8.  Generate statement")
		fmt.Println("9.  Apply interest")
		fmt.Println("10. Add card")
		fmt.Println("11. Block/unblock card")
		fmt.Println("12. List customers")
		fmt.Println("0.  Exit")

		switch c.prompt("Choose an option: ") {
		case "1":
			c.createCustomer()
		case "2":
			c.createAccount()
		case "3":
			c.deposit()
		case "4":
			c.withdraw()
		case "5":
			c.transfer()
		case "6":
			c.showBalance()
		case "7":
			c.showTransactions()
		case "8":
			c.generateStatement()
		case "9":
			c.applyInterest()
		case "10":
			c.addCard()
		case "11":
			c.toggleCard()
		case "12":
			c.listCustomers()
		case "0":
			return
		default:
			fmt.Println("Unknown option")
		}
	}
}

func (c *cli) prompt(label string) string {
	fmt.Print(label)
	if !c.in.Scan() {
		os.Exit(0)
	}
	return strings.TrimSpace(c.in.Text())
}

func (c *cli) promptAmount(label string) (int64, bool) {
	v, err := strconv.ParseFloat(c.prompt(label), 64)
	if err != nil {
		fmt.Println("Invalid amount")
		return 0, false
	}
	return int64(v * 100), true
}

func (c *cli) createCustomer() {
	name := c.prompt("Name: ")
	surname := c.prompt("Surname: ")
	age, err := strconv.Atoi(c.prompt("Age: "))
	if err != nil {
		fmt.Println("Invalid age")
		return
	}
	id := c.bank.CreateCustomer(name, surname, age)
	fmt.Printf("Created customer %s\n", id)
}

func (c *cli) createAccount() {
	customerID := c.prompt("Customer id: ")
	kind, err := ledger.ParseAccountType(c.prompt("Type (PRIMARY/SAVINGS): "))
	if err != nil {
		fmt.Println("Invalid account type")
		return
	}
	id, err := c.bank.CreateAccount(customerID, kind)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("Created account %s\n", id)
}

func (c *cli) deposit() {
	id := c.prompt("Account id: ")
	amount, ok := c.promptAmount("Amount: ")
	if !ok {
		return
	}
	if err := c.bank.Deposit(id, amount); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Done")
}

func (c *cli) withdraw() {
	id := c.prompt("Account id: ")
	amount, ok := c.promptAmount("Amount: ")
	if !ok {
		return
	}
	if err := c.bank.Withdraw(id, amount); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Done")
}

func (c *cli) transfer() {
	from := c.prompt("From account id: ")
	to := c.prompt("To account id: ")
	amount, ok := c.promptAmount("Amount: ")
	if !ok {
		return
	}
	if err := c.bank.Transfer(from, to, amount); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Done")
}

func (c *cli) showBalance() {
	balance, err := c.bank.Balance(c.prompt("Account id: "))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("Balance: %s\n", formatAmount(balance))
}

func (c *cli) showTransactions() {
	transactions, err := c.bank.TransactionsByAccount(c.prompt("Account id: "))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(transactions) == 0 {
		fmt.Println("No transactions")
		return
	}
	for _, tx := range transactions {
		fmt.Printf("%s  %-10s %12s  %s\n",
			tx.Timestamp.Format(dateLayout), tx.Type, formatAmount(tx.Amount), tx.ID)
	}
}

func (c *cli) generateStatement() {
	id := c.prompt("Account id: ")
	start, err := time.Parse(dateLayout, c.prompt("Start date (YYYY-MM-DD): "))
	if err != nil {
		fmt.Println("Invalid date")
		return
	}
	end, err := time.Parse(dateLayout, c.prompt("End date (YYYY-MM-DD): "))
	if err != nil {
		fmt.Println("Invalid date")
		return
	}
	end = end.Add(24*time.Hour - time.Nanosecond)

	statement, err := c.bank.GenerateStatement(id, start, end)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("Statement %s for account %s (%s to %s)\n",
		statement.ID, statement.AccountID,
		statement.Start.Format(dateLayout), statement.End.Format(dateLayout))
	for _, tx := range statement.Transactions {
		fmt.Printf("  %s  %-10s %12s\n",
			tx.Timestamp.Format(dateLayout), tx.Type, formatAmount(tx.Amount))
	}
	fmt.Printf("Closing balance: %s\n", formatAmount(statement.ClosingBalance))
}

func (c *cli) applyInterest() {
	if err := c.bank.ApplyInterest(c.prompt("Savings account id: ")); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Done")
}

func (c *cli) addCard() {
	accountID := c.prompt("Account id: ")
	number := c.prompt("Card number (16 digits): ")
	expiration, err := time.Parse(dateLayout, c.prompt("Expiration (YYYY-MM-DD): "))
	if err != nil {
		fmt.Println("Invalid date")
		return
	}
	if err := c.bank.AddCard(accountID, number, expiration); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Done")
}

func (c *cli) toggleCard() {
	number := c.prompt("Card number: ")
	card, err := c.bank.CardByNumber(number)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if card.Blocked {
		err = c.bank.UnblockCard(number)
	} else {
		err = c.bank.BlockCard(number)
	}
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if card.Blocked {
		fmt.Println("Card unblocked")
	} else {
		fmt.Println("Card blocked")
	}
}

func (c *cli) listCustomers() {
	customers := c.bank.Customers()
	if len(customers) == 0 {
		fmt.Println("No customers")
		return
	}
	for _, customer := range customers {
		fmt.Printf("%s  %s %s (age %d, %d accounts)\n",
			customer.ID, customer.Name, customer.Surname, customer.Age, len(customer.AccountIDs))
	}
}

func formatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
