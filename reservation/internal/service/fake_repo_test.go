package service

import (
	"context"
	"sort"
	"sync"

	"github.com/Astemirdum/venue-reservation/pkg/auth"
	"github.com/Astemirdum/venue-reservation/reservation/internal/errs"
	"github.com/Astemirdum/venue-reservation/reservation/internal/model"
	"github.com/Astemirdum/venue-reservation/reservation/internal/repository"
)

// memRepo is an in-memory repository.Repository for service tests.
type memRepo struct {
	mu sync.Mutex

	users        map[int]model.User
	venues       map[int]model.Venue
	addons       map[int]model.Addon
	slots        map[int]model.Slot
	reservations map[int]model.Reservation
	lines        map[int]model.ReservationService
	nextID       int

	availabilityChecks int
	// failAddService makes AddReservationService fail when set.
	failAddService error

	total    int
	perMonth []model.MonthCount
	popular  []model.VenuePopularity
	revenue  float64
}

var _ repository.Repository = (*memRepo)(nil)

func newMemRepo() *memRepo {
	return &memRepo{
		users:        map[int]model.User{},
		venues:       map[int]model.Venue{},
		addons:       map[int]model.Addon{},
		slots:        map[int]model.Slot{},
		reservations: map[int]model.Reservation{},
		lines:        map[int]model.ReservationService{},
	}
}

func (m *memRepo) id() int {
	m.nextID++
	return m.nextID
}

// WithTx restores every table to its state before fn when fn fails.
func (m *memRepo) WithTx(_ context.Context, fn func(repo repository.Repository) error) error {
	users, venues, addons := clone(m.users), clone(m.venues), clone(m.addons)
	slots, reservations, lines := clone(m.slots), clone(m.reservations), clone(m.lines)
	if err := fn(m); err != nil {
		m.users, m.venues, m.addons = users, venues, addons
		m.slots, m.reservations, m.lines = slots, reservations, lines
		return err
	}
	return nil
}

func clone[V any](src map[int]V) map[int]V {
	dst := make(map[int]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (m *memRepo) addVenue(title string, price float64) int {
	id := m.id()
	m.venues[id] = model.Venue{ID: id, Title: title, Address: "Calle 123", Capacity: 50, Price: price, Active: true}
	return id
}

func (m *memRepo) addAddon(desc string, price float64) int {
	id := m.id()
	m.addons[id] = model.Addon{ID: id, Description: desc, Price: price, Active: true}
	return id
}

func (m *memRepo) addSlot(from, to string) int {
	id := m.id()
	m.slots[id] = model.Slot{ID: id, Order: len(m.slots) + 1, StartsAt: from, EndsAt: to, Active: true}
	return id
}

func (m *memRepo) addUser(name string, role auth.Role) int {
	id := m.id()
	m.users[id] = model.User{ID: id, FirstName: name, LastName: "Test", UserName: name + "@mail.com", Role: role, Active: true}
	return id
}

func (m *memRepo) activeReservations() int {
	n := 0
	for _, r := range m.reservations {
		if r.Active {
			n++
		}
	}
	return n
}

func (m *memRepo) linesOf(reservationID int) []model.ReservationService {
	var out []model.ReservationService
	for _, l := range m.lines {
		if l.ReservationID == reservationID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// users

func (m *memRepo) ListUsers(_ context.Context, role auth.Role) ([]model.User, error) {
	var out []model.User
	for _, u := range m.users {
		if u.Active && (role == 0 || u.Role == role) {
			u.Password = ""
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) GetUser(_ context.Context, id int) (model.User, error) {
	u, ok := m.users[id]
	if !ok || !u.Active {
		return model.User{}, errs.ErrUserNotFound
	}
	u.Password = ""
	return u, nil
}

func (m *memRepo) GetUserByUserName(_ context.Context, userName string) (model.User, error) {
	for _, u := range m.users {
		if u.UserName == userName && u.Active {
			return u, nil
		}
	}
	return model.User{}, errs.ErrUserNotFound
}

func (m *memRepo) CreateUser(_ context.Context, u model.User) (int, error) {
	for _, existing := range m.users {
		if existing.UserName == u.UserName {
			return 0, errs.ErrLoginTaken
		}
	}
	u.ID = m.id()
	u.Active = true
	m.users[u.ID] = u
	return u.ID, nil
}

func (m *memRepo) UpdateUser(_ context.Context, u model.User) error {
	current, ok := m.users[u.ID]
	if !ok {
		return errs.ErrUserNotFound
	}
	for _, existing := range m.users {
		if existing.ID != u.ID && existing.UserName == u.UserName {
			return errs.ErrLoginTaken
		}
	}
	if u.Password == "" {
		u.Password = current.Password
	}
	m.users[u.ID] = u
	return nil
}

func (m *memRepo) DeleteUser(_ context.Context, id int) (bool, error) {
	u, ok := m.users[id]
	if !ok || !u.Active {
		return false, nil
	}
	u.Active = false
	m.users[id] = u
	return true, nil
}

func (m *memRepo) ListAdminEmails(_ context.Context) ([]string, error) {
	var out []string
	for _, u := range m.users {
		if u.Active && u.Role == auth.RoleAdmin {
			out = append(out, u.UserName)
		}
	}
	sort.Strings(out)
	return out, nil
}

// catalog

func (m *memRepo) ListVenues(context.Context) ([]model.Venue, error) {
	var out []model.Venue
	for _, v := range m.venues {
		if v.Active {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memRepo) GetVenue(_ context.Context, id int) (model.Venue, error) {
	v, ok := m.venues[id]
	if !ok || !v.Active {
		return model.Venue{}, errs.ErrVenueNotFound
	}
	return v, nil
}

func (m *memRepo) CreateVenue(_ context.Context, req model.VenueRequest) (int, error) {
	return m.addVenue(req.Title, req.Price), nil
}

func (m *memRepo) UpdateVenue(_ context.Context, id int, req model.VenueRequest) error {
	v, ok := m.venues[id]
	if !ok || !v.Active {
		return errs.ErrVenueNotFound
	}
	v.Title, v.Address, v.Capacity, v.Price = req.Title, req.Address, req.Capacity, req.Price
	m.venues[id] = v
	return nil
}

func (m *memRepo) DeleteVenue(_ context.Context, id int) (bool, error) {
	v, ok := m.venues[id]
	if !ok || !v.Active {
		return false, nil
	}
	v.Active = false
	m.venues[id] = v
	return true, nil
}

func (m *memRepo) ListAddons(context.Context) ([]model.Addon, error) {
	var out []model.Addon
	for _, a := range m.addons {
		if a.Active {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memRepo) GetAddon(_ context.Context, id int) (model.Addon, error) {
	a, ok := m.addons[id]
	if !ok || !a.Active {
		return model.Addon{}, errs.ErrServiceNotFound
	}
	return a, nil
}

func (m *memRepo) CreateAddon(_ context.Context, req model.AddonRequest) (int, error) {
	return m.addAddon(req.Description, req.Price), nil
}

func (m *memRepo) UpdateAddon(_ context.Context, id int, req model.AddonRequest) error {
	a, ok := m.addons[id]
	if !ok || !a.Active {
		return errs.ErrServiceNotFound
	}
	a.Description, a.Price = req.Description, req.Price
	m.addons[id] = a
	return nil
}

func (m *memRepo) DeleteAddon(_ context.Context, id int) (bool, error) {
	a, ok := m.addons[id]
	if !ok || !a.Active {
		return false, nil
	}
	a.Active = false
	m.addons[id] = a
	return true, nil
}

func (m *memRepo) ListSlots(context.Context) ([]model.Slot, error) {
	var out []model.Slot
	for _, s := range m.slots {
		if s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memRepo) GetSlot(_ context.Context, id int) (model.Slot, error) {
	s, ok := m.slots[id]
	if !ok || !s.Active {
		return model.Slot{}, errs.ErrSlotNotFound
	}
	return s, nil
}

func (m *memRepo) CreateSlot(_ context.Context, req model.SlotRequest) (int, error) {
	return m.addSlot(req.StartsAt, req.EndsAt), nil
}

func (m *memRepo) UpdateSlot(_ context.Context, id int, req model.SlotRequest) error {
	s, ok := m.slots[id]
	if !ok || !s.Active {
		return errs.ErrSlotNotFound
	}
	s.Order, s.StartsAt, s.EndsAt = req.Order, req.StartsAt, req.EndsAt
	m.slots[id] = s
	return nil
}

func (m *memRepo) DeleteSlot(_ context.Context, id int) (bool, error) {
	s, ok := m.slots[id]
	if !ok || !s.Active {
		return false, nil
	}
	s.Active = false
	m.slots[id] = s
	return true, nil
}

// reservations

func (m *memRepo) detail(r model.Reservation) model.ReservationDetail {
	u := m.users[r.UserID]
	s := m.slots[r.SlotID]
	return model.ReservationDetail{
		Reservation: r,
		VenueTitle:  m.venues[r.VenueID].Title,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		StartsAt:    s.StartsAt,
		EndsAt:      s.EndsAt,
	}
}

func (m *memRepo) ListReservations(_ context.Context, ownerID int) ([]model.ReservationDetail, error) {
	var out []model.ReservationDetail
	for _, r := range m.reservations {
		if r.Active && (ownerID == 0 || r.UserID == ownerID) {
			out = append(out, m.detail(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) GetReservation(_ context.Context, id, ownerID int) (model.ReservationDetail, error) {
	r, ok := m.reservations[id]
	if !ok || !r.Active || (ownerID != 0 && r.UserID != ownerID) {
		return model.ReservationDetail{}, errs.ErrReservationNotFound
	}
	return m.detail(r), nil
}

func (m *memRepo) IsAvailable(_ context.Context, date model.Date, venueID, slotID, excludeID int) (bool, error) {
	m.availabilityChecks++
	for _, r := range m.reservations {
		if r.Active && r.ID != excludeID && r.Date.Equal(date) && r.VenueID == venueID && r.SlotID == slotID {
			return false, nil
		}
	}
	return true, nil
}

func (m *memRepo) CreateReservation(_ context.Context, rsv model.Reservation) (int, error) {
	rsv.ID = m.id()
	rsv.Active = true
	m.reservations[rsv.ID] = rsv
	return rsv.ID, nil
}

func (m *memRepo) UpdateReservation(_ context.Context, rsv model.Reservation) error {
	current, ok := m.reservations[rsv.ID]
	if !ok || !current.Active {
		return errs.ErrReservationNotFound
	}
	current.Date, current.VenueID, current.SlotID = rsv.Date, rsv.VenueID, rsv.SlotID
	current.Theme, current.Photo = rsv.Theme, rsv.Photo
	m.reservations[rsv.ID] = current
	return nil
}

func (m *memRepo) UpdateReservationPrices(_ context.Context, id int, venuePrice, total float64) error {
	r, ok := m.reservations[id]
	if !ok || !r.Active {
		return errs.ErrReservationNotFound
	}
	r.VenuePrice, r.TotalPrice = venuePrice, total
	m.reservations[id] = r
	return nil
}

func (m *memRepo) DeleteReservation(_ context.Context, id int) (bool, error) {
	r, ok := m.reservations[id]
	if !ok || !r.Active {
		return false, nil
	}
	r.Active = false
	m.reservations[id] = r
	return true, nil
}

func (m *memRepo) ListReservationServices(_ context.Context, reservationIDs ...int) ([]model.ReservationService, error) {
	var out []model.ReservationService
	for _, id := range reservationIDs {
		out = append(out, m.linesOf(id)...)
	}
	return out, nil
}

func (m *memRepo) AddReservationService(_ context.Context, reservationID, serviceID int, price float64) error {
	if m.failAddService != nil {
		return m.failAddService
	}
	id := m.id()
	m.lines[id] = model.ReservationService{
		ID:            id,
		ReservationID: reservationID,
		ServiceID:     serviceID,
		Description:   m.addons[serviceID].Description,
		Price:         price,
	}
	return nil
}

func (m *memRepo) DeleteReservationServices(_ context.Context, reservationID int) error {
	for id, l := range m.lines {
		if l.ReservationID == reservationID {
			delete(m.lines, id)
		}
	}
	return nil
}

func (m *memRepo) summary(r model.Reservation) model.ReservationSummary {
	d := m.detail(r)
	return model.ReservationSummary{
		ID:          r.ID,
		Date:        r.Date,
		ClientID:    r.UserID,
		ClientName:  d.FirstName + " " + d.LastName,
		ClientEmail: m.users[r.UserID].UserName,
		VenueTitle:  d.VenueTitle,
		StartsAt:    d.StartsAt,
		EndsAt:      d.EndsAt,
		Theme:       r.Theme,
		VenuePrice:  r.VenuePrice,
		TotalPrice:  r.TotalPrice,
	}
}

func (m *memRepo) ListReservationSummaries(context.Context) ([]model.ReservationSummary, error) {
	var out []model.ReservationSummary
	for _, r := range m.reservations {
		if r.Active {
			out = append(out, m.summary(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) GetReservationSummary(_ context.Context, id int) (model.ReservationSummary, error) {
	r, ok := m.reservations[id]
	if !ok || !r.Active {
		return model.ReservationSummary{}, errs.ErrReservationNotFound
	}
	return m.summary(r), nil
}

// stats

func (m *memRepo) TotalReservations(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total, nil
}

func (m *memRepo) ReservationsPerMonth(context.Context) ([]model.MonthCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.perMonth, nil
}

func (m *memRepo) PopularVenues(context.Context) ([]model.VenuePopularity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.popular, nil
}

func (m *memRepo) Revenue(context.Context) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revenue, nil
}
