package customer

import "github.com/google/uuid"

// Create constructs a customer with a freshly generated id and no address.
func Create(name string) (*Customer, error) {
	return New(uuid.New().String(), name)
}

// CreateWithAddress constructs a customer with a fresh id and the given address.
func CreateWithAddress(name string, a Address) (*Customer, error) {
	c, err := Create(name)
	if err != nil {
		return nil, err
	}
	c.ChangeAddress(a)
	return c, nil
}
