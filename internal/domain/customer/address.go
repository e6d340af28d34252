package customer

import "fmt"

// Address is a postal address value. Two addresses with identical fields are
// interchangeable and compare equal with ==.
type Address struct {
	street string
	number int
	zip    string
	city   string
}

// NewAddress returns an Address. Fields are not validated.
func NewAddress(street string, number int, zip, city string) Address {
	return Address{street: street, number: number, zip: zip, city: city}
}

func (a Address) Street() string { return a.street }
func (a Address) Number() int    { return a.number }
func (a Address) Zip() string    { return a.zip }
func (a Address) City() string   { return a.city }

func (a Address) String() string {
	return fmt.Sprintf("%s, %d, %s %s", a.street, a.number, a.zip, a.city)
}
