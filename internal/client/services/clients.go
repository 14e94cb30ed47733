package services

import (
	"context"

	"github.com/dmitrijs2005/gophdiner/internal/client/models"
)

// AuthClient is the auth collaborator used by SessionStore.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
	Register(ctx context.Context, payload models.RegisterPayload) (*models.AuthResult, error)
}

// CartClient is the cart collaborator used by CartService.
type CartClient interface {
	GetCartByOrderID(ctx context.Context, orderID string) (*models.CartDTO, error)
	AddCartItem(ctx context.Context, orderID string, item models.NewCartItem) error
	UpdateCartItemQuantity(ctx context.Context, orderID string, lineID int64, quantity int) error
}

// AvailabilityClient is the lookup collaborator used by AvailabilityResolver.
type AvailabilityClient interface {
	GetAvailableTables(ctx context.Context, q models.AvailabilityQuery) ([]models.TableCandidate, error)
}

// ReservationClient creates bookings.
type ReservationClient interface {
	CreateReservation(ctx context.Context, r models.ReservationRequest) (*models.Reservation, error)
}
