package client

import (
	"context"

	"github.com/dmitrijs2005/gophdiner/internal/client/models"
)

// Client is the storefront backend as the client core sees it. It carries no
// way to change the Authorization header; see TokenHolder.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
	Register(ctx context.Context, payload models.RegisterPayload) (*models.AuthResult, error)

	ListMenu(ctx context.Context, search string) ([]models.MenuItem, error)

	GetCartByOrderID(ctx context.Context, orderID string) (*models.CartDTO, error)
	AddCartItem(ctx context.Context, orderID string, item models.NewCartItem) error
	UpdateCartItemQuantity(ctx context.Context, orderID string, lineID int64, quantity int) error

	GetAvailableTables(ctx context.Context, q models.AvailabilityQuery) ([]models.TableCandidate, error)
	CreateReservation(ctx context.Context, r models.ReservationRequest) (*models.Reservation, error)
}

// TokenHolder is the write side of the process-wide Authorization state.
// Only the session store is handed one.
type TokenHolder interface {
	SetToken(token string)
	ClearToken()
}
