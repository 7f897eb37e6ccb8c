package user

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/iterator"
)

type Service interface {
	// Register validates the input, hashes the password, and stores a
	// new user with an empty rides list.
	Register(ctx context.Context, input RegisterInput) (*User, error)
	// Authenticate checks the username/password pair. Returns
	// ErrInvalidCredentials for a missing user or a bad password.
	Authenticate(ctx context.Context, username, password string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, username string, update ProfileUpdate) error
	// AppendRide adds the route id to the user's rides list. The append
	// is unconditional: repeated joins grow the list, matching the
	// documents already in the store. The route-side toggle is the
	// deduplicated half of the pair.
	AppendRide(ctx context.Context, username, routeID string) (string, error)
}

type service struct {
	db *firestore.Client
}

var _ Service = (*service)(nil)

const collection = "userData"

func NewService(db *firestore.Client) Service {
	return &service{
		db: db,
	}
}

var (
	NotFound              = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

func (s *service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if err := ValidateEmailDomain(input.Email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	if err := s.validateUniqueUsername(ctx, input.Username); err != nil {
		return nil, err
	}
	if err := s.validateUniqueUnityID(ctx, input.UnityID); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Username:       input.Username,
		UnityID:        input.UnityID,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Password:       string(hashed),
		Phone:          input.Phone,
		ProfilePicture: input.ProfilePicture,
		Rides:          []string{},
	}

	ref := s.db.Collection(collection).NewDoc()
	u.ID = ref.ID
	if _, err := ref.Set(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to store user: %w", err)
	}
	log.Info().Str("username", u.Username).Msg("user registered")
	return u, nil
}

func (s *service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := s.GetByUsername(ctx, username)
	if errors.Is(err, NotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *service) GetByUsername(ctx context.Context, username string) (*User, error) {
	iter := s.db.Collection(collection).
		Where("username", "==", username).
		Limit(1).
		Documents(ctx)
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		u := &User{}
		if err := doc.DataTo(u); err != nil {
			return nil, err
		}
		return u, nil
	}
	return nil, NotFound
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	iter := s.db.Collection(collection).
		Where("id", "==", id).
		Limit(1).
		Documents(ctx)
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		u := &User{}
		if err := doc.DataTo(u); err != nil {
			return nil, err
		}
		return u, nil
	}
	return nil, NotFound
}

func (s *service) UpdateProfile(ctx context.Context, username string, update ProfileUpdate) error {
	u, err := s.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	fields := map[string]any{
		"fname": update.FirstName,
		"lname": update.LastName,
		"phone": update.Phone,
	}
	if update.ProfilePicture != "" {
		fields["pfp"] = update.ProfilePicture
	}
	if _, err := s.db.Collection(collection).Doc(u.ID).Set(ctx, fields, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

func (s *service) AppendRide(ctx context.Context, username, routeID string) (string, error) {
	u, err := s.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	rides := append(u.Rides, routeID)
	_, err = s.db.Collection(collection).Doc(u.ID).Set(ctx, map[string]any{
		"rides": rides,
	}, firestore.MergeAll)
	if err != nil {
		return "", fmt.Errorf("failed to update user rides: %w", err)
	}
	return u.ID, nil
}
