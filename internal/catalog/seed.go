package catalog

// DefaultProducts is the storefront's fixed four-product assortment. Prices
// are VND in the smallest unit.
func DefaultProducts() []Product {
	return []Product{
		{ID: 1, Name: "Áo thun nam", Price: 199000, Image: "images/product1.jpg"},
		{ID: 2, Name: "Quần jean", Price: 299000, Image: "images/product2.jpg"},
		{ID: 3, Name: "Giày thể thao", Price: 499000, Image: "images/product3.jpg"},
		{ID: 4, Name: "Áo khoác", Price: 599000, Image: "images/product4.jpg"},
	}
}
