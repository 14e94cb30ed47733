package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophdiner/internal/client/services"
)

// ShowCart reloads the cart and prints it. On failure the last known lines
// are still shown.
func (a *App) ShowCart(ctx context.Context) error {
	err := a.cart.Refresh(ctx)
	a.printCart()
	return err
}

func (a *App) printCart() {
	v := a.cart.View()
	switch {
	case v.State == services.CartFailed && services.IsConfigurationError(v.Err):
		printlnFn("Cart is not available:", v.Err.Error())
		return
	case len(v.Items) == 0:
		printlnFn(fmt.Sprintf("Cart for order %s is empty.", a.cart.OrderID()))
		return
	}

	printlnFn(fmt.Sprintf("Cart for order %s:", a.cart.OrderID()))
	for _, l := range v.Items {
		printlnFn(fmt.Sprintf("  %3d x %s (item %d)", l.Quantity, l.Name, l.MenuItemID))
	}
	if v.State == services.CartFailed {
		printlnFn("(showing last known contents)")
	}
}
