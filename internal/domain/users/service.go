package users

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"doggy-daycare/internal/platform/apperr"
	"doggy-daycare/internal/platform/validation"
	"doggy-daycare/internal/ports/auth"
	"doggy-daycare/internal/ports/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const errPermission = auth.PermissionDenied

type Service struct {
	repo     Repository
	now      func() time.Time
	hashCost int
}

// NewService con hashCost <= 0 usa bcrypt.DefaultCost.
func NewService(repo Repository, now func() time.Time, hashCost int) *Service {
	if now == nil {
		now = time.Now
	}
	if hashCost <= 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:     repo,
		now:      now,
		hashCost: hashCost,
	}
}

type RegisterInput struct {
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=8"`
	Role       Role    `json:"role" validate:"required,oneof=admin manager staff client"`
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	LocationID *string `json:"location_id"`
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Struct(in); err != nil {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return User{}, err
	}
	apiKey, err := newAPIKey()
	if err != nil {
		return User{}, err
	}

	u := User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: string(hash),
		APIKey:       apiKey,
		Role:         in.Role,
		LocationID:   trimOptional(in.LocationID),
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
		Active:       true,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return User{}, apperr.FieldValidation("email", "Email already registered")
		}
		return User{}, err
	}
	return s.Get(ctx, u.ID)
}

// EnsureManager registra un manager con ese email si todavía no existe.
// created indica si hubo alta.
func (s *Service) EnsureManager(ctx context.Context, email, password string) (u User, created bool, err error) {
	existing, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return User{}, false, err
	}
	u, err = s.Register(ctx, RegisterInput{
		Email:    email,
		Password: password,
		Role:     RoleManager,
		Name:     "Manager",
	})
	if err != nil {
		return User{}, false, err
	}
	return u, true, nil
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	u, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return User{}, apperr.NotFound("User")
		}
		return User{}, err
	}
	return u, nil
}

// Login valida email + password de un usuario activo.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return LoginResult{}, apperr.Authorization("Invalid credentials")
		}
		return LoginResult{}, err
	}
	if !u.Active {
		return LoginResult{}, apperr.Authorization("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, apperr.Authorization("Invalid credentials")
	}
	return LoginResult{UserID: u.ID, APIKey: u.APIKey, Role: u.Role}, nil
}

func (s *Service) List(ctx context.Context, locationID *string) ([]User, error) {
	return s.repo.List(ctx, trimOptional(locationID))
}

// RequireRole resuelve la API key y exige que el rol esté en allowed. Es la
// entrada de la fachada para llamadores sin HTTP; en la API el mismo control
// lo hacen ResolveAPIKey más middleware.RequireRoles, con el mismo mensaje.
func (s *Service) RequireRole(ctx context.Context, apiKey string, allowed ...Role) (User, error) {
	u, err := s.byAPIKey(ctx, apiKey)
	if err != nil {
		return User{}, err
	}
	if !u.Role.In(allowed...) {
		return User{}, apperr.Authorization(errPermission)
	}
	return u, nil
}

// ResolveAPIKey implementa auth.APIKeyResolver para el middleware.
func (s *Service) ResolveAPIKey(ctx context.Context, apiKey string) (auth.Claims, error) {
	u, err := s.byAPIKey(ctx, apiKey)
	if err != nil {
		return auth.Claims{}, err
	}
	return u.Claims(), nil
}

func (s *Service) byAPIKey(ctx context.Context, apiKey string) (User, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return User{}, apperr.Authorization(errPermission)
	}
	u, err := s.repo.GetByAPIKey(ctx, apiKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return User{}, apperr.Authorization(errPermission)
		}
		return User{}, err
	}
	if !u.Active {
		return User{}, apperr.Authorization(errPermission)
	}
	return u, nil
}

// newAPIKey: 16 bytes aleatorios => 32 caracteres hex.
func newAPIKey() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
