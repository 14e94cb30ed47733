package services

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophdiner/internal/client/models"
	"github.com/dmitrijs2005/gophdiner/internal/client/notify"
	"github.com/dmitrijs2005/gophdiner/internal/logging"
)

type CartState int

const (
	CartIdle CartState = iota
	CartLoading
	CartReady
	CartFailed
)

func (s CartState) String() string {
	switch s {
	case CartIdle:
		return "idle"
	case CartLoading:
		return "loading"
	case CartReady:
		return "ready"
	case CartFailed:
		return "failed"
	default:
		return fmt.Sprintf("CartState(%d)", int(s))
	}
}

// CartView is the local projection of the server cart. Items always come from
// the last successful read; Err is the last refresh failure, if any.
type CartView struct {
	State CartState
	Items []models.CartLine
	Err   error
}

// CartService keeps a local view of the server-held cart for one order id.
// The view is only ever replaced by a fresh server read; writes are never
// applied locally.
type CartService struct {
	client   CartClient
	orderID  string
	notifier notify.Notifier
	log      logging.Logger

	mu   sync.Mutex
	gen  uint64
	view CartView
}

func NewCartService(client CartClient, orderID string, notifier notify.Notifier, logger logging.Logger) *CartService {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &CartService{
		client:   client,
		orderID:  strings.TrimSpace(orderID),
		notifier: notifier,
		log:      logger.With("component", "cart", "order_id", orderID),
	}
}

func (s *CartService) OrderID() string {
	return s.orderID
}

// View returns a copy of the current view.
func (s *CartService) View() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.view
	out.Items = append([]models.CartLine(nil), s.view.Items...)
	return out
}

// Refresh reloads the cart from the server, replacing the whole view. On
// failure the previous items are kept, the state becomes CartFailed and an
// error notification is emitted.
func (s *CartService) Refresh(ctx context.Context) error {
	if err := s.refresh(ctx); err != nil {
		s.notifier.Error("Could not load cart", err.Error())
		return err
	}
	return nil
}

func (s *CartService) refresh(ctx context.Context) error {
	if s.orderID == "" {
		s.mu.Lock()
		s.gen++
		s.view.State = CartFailed
		s.view.Err = ErrMissingOrderID
		s.mu.Unlock()
		return ErrMissingOrderID
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.view.State = CartLoading
	s.mu.Unlock()

	dto, err := s.client.GetCartByOrderID(ctx, s.orderID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.log.Debug(ctx, "discarding superseded cart read", "gen", gen, "latest", s.gen)
		return err
	}

	if err != nil {
		s.view.State = CartFailed
		s.view.Err = err
		s.log.Warn(ctx, "cart refresh failed", "error", err)
		return err
	}

	items := make([]models.CartLine, 0, len(dto.Items))
	for _, it := range dto.Items {
		items = append(items, it.Line())
	}
	s.view = CartView{State: CartReady, Items: items}
	s.log.Debug(ctx, "cart refreshed", "lines", len(items))
	return nil
}

// AddItem adds req to the cart. If the current view already has a line for
// the menu item, that line's quantity is increased; otherwise a new line is
// created. The cart is re-read after every successful write. Exactly one
// notification is emitted per call.
func (s *CartService) AddItem(ctx context.Context, req models.AddItemRequest) error {
	err := s.addItem(ctx, req)
	if err != nil {
		s.notifier.Error("Could not add to cart", err.Error())
		return err
	}

	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	s.notifier.Success("Added to cart", fmt.Sprintf("%d x %s", qty, displayName(req)))
	return nil
}

func (s *CartService) addItem(ctx context.Context, req models.AddItemRequest) error {
	if req.Quantity < 0 {
		return ErrInvalidQuantity
	}
	if s.orderID == "" {
		return ErrMissingOrderID
	}

	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}

	if line, ok := s.findLine(req.MenuItemID); ok {
		newQty := line.Quantity + qty
		s.log.Debug(ctx, "merging into existing line", "line_id", line.ID, "quantity", newQty)
		if err := s.client.UpdateCartItemQuantity(ctx, s.orderID, line.ID, newQty); err != nil {
			return err
		}
	} else {
		meta := make(map[string]any, len(req.Meta)+1)
		maps.Copy(meta, req.Meta)
		if req.Name != "" {
			meta["name"] = req.Name
		}
		item := models.NewCartItem{MenuItemID: req.MenuItemID, Quantity: qty, Price: req.Price, Meta: meta}
		s.log.Debug(ctx, "adding new line", "menu_item_id", req.MenuItemID, "quantity", qty)
		if err := s.client.AddCartItem(ctx, s.orderID, item); err != nil {
			return err
		}
	}

	return s.refresh(ctx)
}

// findLine looks in the current local view, not on the server.
func (s *CartService) findLine(menuItemID int64) (models.CartLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.view.Items {
		if l.MenuItemID == menuItemID {
			return l, true
		}
	}
	return models.CartLine{}, false
}

func displayName(req models.AddItemRequest) string {
	if req.Name != "" {
		return req.Name
	}
	return fmt.Sprintf("item #%d", req.MenuItemID)
}
