package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Astemirdum/venue-reservation/pkg/auth"
	"github.com/Astemirdum/venue-reservation/reservation/internal/errs"
	"github.com/Astemirdum/venue-reservation/reservation/internal/model"
)

func (s *Service) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	u, err := s.repo.GetUserByUserName(ctx, strings.TrimSpace(req.UserName))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.LoginResponse{}, errs.ErrInvalidCredentials
		}
		return model.LoginResponse{}, err
	}
	if err = bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return model.LoginResponse{}, errs.ErrInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(u.Identity())
	if err != nil {
		return model.LoginResponse{}, errors.Wrap(err, "issue token")
	}
	u.Password = ""
	return model.LoginResponse{Token: token, ExpiresAt: exp, User: u}, nil
}

// Register signs up a client. Staff accounts are created by administrators.
func (s *Service) Register(ctx context.Context, req model.RegisterRequest) (model.User, error) {
	return s.createUser(ctx, req, auth.RoleClient, nil)
}

func (s *Service) CreateUser(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	if !req.Role.Valid() {
		return model.User{}, errs.Validation("tipo_usuario debe ser 1, 2 o 3")
	}
	return s.createUser(ctx, req.RegisterRequest, req.Role, req.Photo)
}

func (s *Service) createUser(ctx context.Context, req model.RegisterRequest, role auth.Role, photo *string) (model.User, error) {
	hash, err := s.hash(req.Password)
	if err != nil {
		return model.User{}, err
	}
	id, err := s.repo.CreateUser(ctx, model.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		UserName:  strings.TrimSpace(req.UserName),
		Password:  hash,
		Role:      role,
		Phone:     req.Phone,
		Photo:     photo,
	})
	if err != nil {
		return model.User{}, err
	}
	s.log.Info("user created", zap.Int("usuario_id", id), zap.Stringer("role", role))
	return s.repo.GetUser(ctx, id)
}

// EnsureAdmin creates the first administrator when none is active.
func (s *Service) EnsureAdmin(ctx context.Context, userName, password string) error {
	if userName == "" || password == "" {
		return nil
	}
	admins, err := s.repo.ListAdminEmails(ctx)
	if err != nil {
		return err
	}
	if len(admins) > 0 {
		return nil
	}
	_, err = s.createUser(ctx, model.RegisterRequest{
		FirstName: "Admin",
		LastName:  "Sistema",
		UserName:  userName,
		Password:  password,
	}, auth.RoleAdmin, nil)
	if errors.Is(err, errs.ErrLoginTaken) {
		s.log.Warn("bootstrap admin login is taken by a non admin user", zap.String("nombre_usuario", userName))
		return nil
	}
	return err
}

func (s *Service) GetProfile(ctx context.Context, caller auth.Identity) (model.User, error) {
	return s.repo.GetUser(ctx, caller.UserID)
}

func (s *Service) UpdateProfile(ctx context.Context, caller auth.Identity, req model.UpdateProfileRequest) (model.User, error) {
	return s.UpdateUser(ctx, caller.UserID, model.UpdateUserRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Photo:     req.Photo,
	})
}

func (s *Service) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.ListUsers(ctx, 0)
}

func (s *Service) ListClients(ctx context.Context) ([]model.User, error) {
	return s.repo.ListUsers(ctx, auth.RoleClient)
}

func (s *Service) GetUser(ctx context.Context, id int) (model.User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *Service) UpdateUser(ctx context.Context, id int, req model.UpdateUserRequest) (model.User, error) {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.UserName != nil {
		u.UserName = strings.TrimSpace(*req.UserName)
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return model.User{}, errs.Validation("tipo_usuario debe ser 1, 2 o 3")
		}
		u.Role = *req.Role
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.Photo != nil {
		u.Photo = req.Photo
	}
	if req.Active != nil {
		u.Active = *req.Active
	}
	if req.Password != nil {
		if u.Password, err = s.hash(*req.Password); err != nil {
			return model.User{}, err
		}
	}
	if err = s.repo.UpdateUser(ctx, u); err != nil {
		return model.User{}, err
	}
	if !u.Active {
		u.Password = ""
		return u, nil
	}
	return s.repo.GetUser(ctx, id)
}

// DeleteUser soft deletes a user. Callers cannot delete themselves.
func (s *Service) DeleteUser(ctx context.Context, id int, caller auth.Identity) error {
	if id == caller.UserID {
		return errs.ErrSelfDelete
	}
	ok, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrUserNotFound
	}
	s.log.Info("user deleted", zap.Int("usuario_id", id), zap.Int("by", caller.UserID))
	return nil
}

func (s *Service) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(b), nil
}
