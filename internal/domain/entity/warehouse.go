package entity

// Warehouse representa una bodega donde se recibe mercancía.
type Warehouse struct {
	ID      int
	Name    string
	Address string
}
