package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrCartLineIsNotConstructed = errors.New("CartLine must be created via NewCartLine constructor")

// CartLine is one resolved line of a customer's cart: how many units of a
// seller's product to buy, at which unit price.
type CartLine struct {
	productID     kernel.UUID
	sellerID      kernel.UUID
	quantity      int
	unitPrice     kernel.Money
	isConstructed bool
}

func NewCartLine(productID, sellerID kernel.UUID, quantity int, unitPrice kernel.Money) (CartLine, error) {
	if err := errors.Join(
		productID.Validate(),
		sellerID.Validate(),
		validatePositiveQuantity(quantity),
		unitPrice.Validate(),
	); err != nil {
		return CartLine{}, err
	}

	return CartLine{
		productID:     productID,
		sellerID:      sellerID,
		quantity:      quantity,
		unitPrice:     unitPrice,
		isConstructed: true,
	}, nil
}

func (l CartLine) ProductID() kernel.UUID {
	return l.productID
}

func (l CartLine) SellerID() kernel.UUID {
	return l.sellerID
}

func (l CartLine) Quantity() int {
	return l.quantity
}

func (l CartLine) UnitPrice() kernel.Money {
	return l.unitPrice
}

func (l CartLine) Validate() error {
	if !l.isConstructed {
		return ErrCartLineIsNotConstructed
	}
	return nil
}

// MergeCartLines folds lines for the same (seller, product) into one, summing
// quantities and keeping the first price. Order of first appearance is kept.
func MergeCartLines(lines []CartLine) []CartLine {
	type key struct{ seller, product kernel.UUID }

	merged := make([]CartLine, 0, len(lines))
	index := make(map[key]int, len(lines))

	for _, line := range lines {
		k := key{seller: line.sellerID, product: line.productID}
		if i, ok := index[k]; ok {
			merged[i].quantity += line.quantity
			continue
		}
		index[k] = len(merged)
		merged = append(merged, line)
	}

	return merged
}

func validatePositiveQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return nil
}
