package domain

// Equipment is one line of the studio inventory. Names need not be unique.
type Equipment struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}
