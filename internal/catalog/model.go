package catalog

// Product is a catalog entry. The catalog is read-only at runtime; cart lines
// snapshot these fields at add-time and never dereference back.
type Product struct {
	ID    int64  `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"not null;index" json:"name"`
	Price int64  `gorm:"not null" json:"price"`
	Image string `gorm:"not null" json:"image"`
}

func (Product) TableName() string {
	return "products"
}
