package ledger

// customer is the in-memory customer entity. Its account list is the
// authoritative membership view for "does this customer have accounts" and
// is kept in sync with the ledger's account index inside the same critical
// section as every account create/delete.
type customer struct {
	id       string
	name     string
	surname  string
	age      int
	accounts []account
}

// addAccount appends an account to the membership list. Caller holds the
// ledger lock.
func (c *customer) addAccount(a account) {
	c.accounts = append(c.accounts, a)
}

// removeAccount drops an account from the membership list, preserving
// order. Caller holds the ledger lock.
func (c *customer) removeAccount(id string) {
	for i, a := range c.accounts {
		if a.base().id == id {
			c.accounts = append(c.accounts[:i], c.accounts[i+1:]...)
			return
		}
	}
}

// snapshot copies the customer into its exported form. Caller holds the
// ledger lock.
func (c *customer) snapshot() Customer {
	ids := make([]string, len(c.accounts))
	for i, a := range c.accounts {
		ids[i] = a.base().id
	}
	return Customer{
		ID:         c.id,
		Name:       c.name,
		Surname:    c.surname,
		Age:        c.age,
		AccountIDs: ids,
	}
}

// Customer is a point-in-time copy of a customer, safe to hold outside the
// ledger's lock. AccountIDs lists the customer's accounts in creation order.
type Customer struct {
	ID         string
	Name       string
	Surname    string
	Age        int
	AccountIDs []string
}
