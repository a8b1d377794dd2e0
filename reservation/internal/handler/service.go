package handler

import (
	"context"

	"github.com/Astemirdum/venue-reservation/pkg/auth"
	"github.com/Astemirdum/venue-reservation/reservation/internal/model"
	"github.com/Astemirdum/venue-reservation/reservation/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type ReservationService interface {
	Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error)
	Register(ctx context.Context, req model.RegisterRequest) (model.User, error)
	GetProfile(ctx context.Context, caller auth.Identity) (model.User, error)
	UpdateProfile(ctx context.Context, caller auth.Identity, req model.UpdateProfileRequest) (model.User, error)

	ListUsers(ctx context.Context) ([]model.User, error)
	ListClients(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id int) (model.User, error)
	CreateUser(ctx context.Context, req model.CreateUserRequest) (model.User, error)
	UpdateUser(ctx context.Context, id int, req model.UpdateUserRequest) (model.User, error)
	DeleteUser(ctx context.Context, id int, caller auth.Identity) error

	ListVenues(ctx context.Context) ([]model.Venue, error)
	GetVenue(ctx context.Context, id int) (model.Venue, error)
	CreateVenue(ctx context.Context, req model.VenueRequest) (model.Venue, error)
	UpdateVenue(ctx context.Context, id int, req model.VenueRequest) (model.Venue, error)
	DeleteVenue(ctx context.Context, id int) error

	ListAddons(ctx context.Context) ([]model.Addon, error)
	GetAddon(ctx context.Context, id int) (model.Addon, error)
	CreateAddon(ctx context.Context, req model.AddonRequest) (model.Addon, error)
	UpdateAddon(ctx context.Context, id int, req model.AddonRequest) (model.Addon, error)
	DeleteAddon(ctx context.Context, id int) error

	ListSlots(ctx context.Context) ([]model.Slot, error)
	GetSlot(ctx context.Context, id int) (model.Slot, error)
	CreateSlot(ctx context.Context, req model.SlotRequest) (model.Slot, error)
	UpdateSlot(ctx context.Context, id int, req model.SlotRequest) (model.Slot, error)
	DeleteSlot(ctx context.Context, id int) error

	ListReservations(ctx context.Context, caller auth.Identity) ([]model.ReservationDetail, error)
	GetReservation(ctx context.Context, id int, caller auth.Identity) (model.ReservationDetail, error)
	IsAvailable(ctx context.Context, date model.Date, venueID, slotID, excludeID int) (bool, error)
	ComputeTotal(ctx context.Context, venueID int, selections []model.ServiceSelection) (model.Quote, error)
	CreateReservation(ctx context.Context, req model.CreateReservationRequest) (model.CreateReservationResponse, error)
	UpdateReservation(ctx context.Context, id int, req model.UpdateReservationRequest) error
	DeleteReservation(ctx context.Context, id int) (bool, error)

	Stats(ctx context.Context) (model.Stats, error)
	ReportCSV(ctx context.Context) ([]byte, error)
	ReportPDF(ctx context.Context) ([]byte, error)
}

var _ ReservationService = (*service.Service)(nil)
