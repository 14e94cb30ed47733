package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/gophdiner/internal/client/models"
)

var errUsage = errors.New("usage")

// Menu lists the menu, optionally filtered by search, and remembers the
// items so "add" can find their price and name.
func (a *App) Menu(ctx context.Context, search string) error {
	items, err := a.backend.ListMenu(ctx, search)
	if err != nil {
		printlnFn("Could not load menu:", err.Error())
		return err
	}

	a.mu.Lock()
	for _, it := range items {
		a.menu[it.ID] = it
	}
	a.mu.Unlock()

	if len(items) == 0 {
		printlnFn("Nothing on the menu matches.")
		return nil
	}
	for _, it := range items {
		line := fmt.Sprintf("%4d  %-30s %10s", it.ID, it.Name, formatPrice(it.Price))
		if !it.Available {
			line += "  (unavailable)"
		}
		printlnFn(line)
	}
	return nil
}

// AddToCart handles "add <id> [qty]".
func (a *App) AddToCart(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		printlnFn("Usage: add <menu item id> [quantity]")
		return errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Menu item id must be a number")
		return errUsage
	}
	qty := 0
	if len(args) == 2 {
		if qty, err = strconv.Atoi(args[1]); err != nil {
			printlnFn("Quantity must be a number")
			return errUsage
		}
	}

	item, err := a.lookupMenuItem(ctx, id)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := a.cart.AddItem(ctx, models.AddItemRequest{
		MenuItemID: item.ID, Quantity: qty, Price: item.Price, Name: item.Name,
	}); err != nil {
		return err
	}
	a.printCart()
	return nil
}

func (a *App) lookupMenuItem(ctx context.Context, id int64) (models.MenuItem, error) {
	a.mu.Lock()
	item, ok := a.menu[id]
	a.mu.Unlock()
	if ok {
		return item, nil
	}

	items, err := a.backend.ListMenu(ctx, "")
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("could not load menu: %w", err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, it := range items {
		a.menu[it.ID] = it
	}
	if item, ok = a.menu[id]; !ok {
		return models.MenuItem{}, fmt.Errorf("no menu item with id %d", id)
	}
	return item, nil
}

func formatPrice(minor int64) string {
	return fmt.Sprintf("%d.%02d", minor/100, minor%100)
}
