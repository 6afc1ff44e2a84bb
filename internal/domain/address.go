package domain

// Address — почтовый адрес клиента. Workflow не разбирает его,
// а лишь передаёт в счёт как есть.
type Address struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
}

// NewAddress собирает адрес в порядке полей почтового бланка.
func NewAddress(street, number, complement, city, state, zipCode string) Address {
	return Address{
		Street:     street,
		Number:     number,
		Complement: complement,
		City:       city,
		State:      state,
		ZipCode:    zipCode,
	}
}
