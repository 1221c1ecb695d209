package components

import "github.com/Veraticus/pricelist/internal/model"

// ProductSelectedMsg asks for the product under the cursor to be added to the cart.
type ProductSelectedMsg struct {
	Product model.Product
	Index   int
}

// CartActionMsg requests a change to one cart line.
type CartActionMsg struct {
	Code   string
	Action CartAction
}

// CartAction is an operation on a single cart line.
type CartAction int

// Cart actions.
const (
	CartIncrement CartAction = iota
	CartDecrement
	CartRemove
	CartEditQuantity
)

// BackToListMsg returns focus to the catalog list.
type BackToListMsg struct{}
