package cart

// LineItem is one cart line. Name, Price and Image are snapshots of the
// catalog product taken at add-time; later catalog changes never touch them.
// The JSON tags are the persisted slot wire format and must stay stable.
type LineItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Image    string `json:"image"`
	Quantity int64  `json:"quantity"`
}

// Cart is the ordered sequence of line items, unique by product id.
// Insertion order is the display order.
type Cart []LineItem

func (c Cart) IsEmpty() bool {
	return len(c) == 0
}

// ItemCount is the count-badge number: the sum of all quantities.
func (c Cart) ItemCount() int64 {
	var count int64
	for _, item := range c {
		count += item.Quantity
	}
	return count
}

// Subtotal sums price times quantity over all lines.
func (c Cart) Subtotal() int64 {
	var subtotal int64
	for _, item := range c {
		subtotal += item.Price * item.Quantity
	}
	return subtotal
}

func (c Cart) indexOf(productID int64) int {
	for i, item := range c {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

// Totals is the summary panel data, all amounts in the smallest currency unit.
type Totals struct {
	Subtotal int64
	Tax      int64
	Total    int64
}
