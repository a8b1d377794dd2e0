package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Astemirdum/venue-reservation/pkg/auth"
	"github.com/Astemirdum/venue-reservation/reservation/internal/repository"
)

// Notifier delivers reservation events. Implementations must not block the
// caller and must not report delivery failures back.
type Notifier interface {
	ReservationCreated(ctx context.Context, reservationID int)
	ReservationConfirmed(ctx context.Context, reservationID int)
}

type TokenIssuer interface {
	Issue(id auth.Identity) (string, time.Time, error)
}

type Service struct {
	repo       repository.Repository
	notifier   Notifier
	tokens     TokenIssuer
	bcryptCost int
	log        *zap.Logger
}

type Option func(*Service)

func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

func NewService(repo repository.Repository, notifier Notifier, tokens TokenIssuer, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		notifier:   notifier,
		tokens:     tokens,
		bcryptCost: bcrypt.DefaultCost,
		log:        log.Named("svc"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
