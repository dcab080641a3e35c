package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/theleywin/Backend-DevTinder/src/common"
	"github.com/theleywin/Backend-DevTinder/src/lib"
	"github.com/theleywin/Backend-DevTinder/src/logging"
	"github.com/theleywin/Backend-DevTinder/src/models"
	"github.com/theleywin/Backend-DevTinder/src/store"
)

type SignupInput struct {
	FirstName string   `json:"firstName" validate:"required,min=2,max=50"`
	LastName  string   `json:"lastName" validate:"max=50"`
	Email     string   `json:"emailId" validate:"required,email"`
	Password  string   `json:"password" validate:"required,strongpassword"`
	Age       int      `json:"age" validate:"omitempty,gte=18,lte=120"`
	Gender    string   `json:"gender" validate:"omitempty,oneof=male female other"`
	PhotoURL  string   `json:"photoUrl" validate:"omitempty,url"`
	Bio       string   `json:"bio" validate:"max=500"`
	Skills    []string `json:"skills" validate:"max=20,dive,min=1,max=50"`
}

func (in *SignupInput) normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = models.NormalizeEmail(in.Email)
	in.Gender = strings.ToLower(strings.TrimSpace(in.Gender))
	in.PhotoURL = strings.TrimSpace(in.PhotoURL)
}

// Authenticator is the part of lib.Credentials the user service needs.
type Authenticator interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
	IssueToken(userID string) (string, error)
}

// UserService covers signup, login and the viewer's own profile.
type UserService struct {
	users    store.UserRepository
	creds    Authenticator
	validate *validator.Validate
	log      logging.Logger
}

func NewUserService(users store.UserRepository, creds Authenticator, validate *validator.Validate, log logging.Logger) *UserService {
	return &UserService{users: users, creds: creds, validate: validate, log: log.With("module", "users")}
}

func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	in.normalize()
	if err := s.validate.Struct(in); err != nil {
		return nil, invalid(err)
	}

	hash, err := s.creds.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  hash,
		Age:       in.Age,
		Gender:    in.Gender,
		PhotoURL:  in.PhotoURL,
		Bio:       in.Bio,
		Skills:    in.Skills,
	}
	if u.PhotoURL == "" {
		u.PhotoURL = models.DefaultPhotoURL
	}
	if u.Skills == nil {
		u.Skills = []string{}
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, err
		}
		return nil, unexpected("create user", err)
	}
	s.log.Info(ctx, "user signed up", "user_id", u.ID)
	return u, nil
}

// Login returns a session token. Unknown e-mail and wrong password fail the
// same way.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = models.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", nil, common.ErrUnauthorized
		}
		return "", nil, unexpected("find user", err)
	}
	if !s.creds.Verify(password, u.Password) {
		return "", nil, common.ErrUnauthorized
	}

	token, err := s.creds.IssueToken(u.ID)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *UserService) Profile(ctx context.Context, id string) (*models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr("find user", err)
	}
	return u, nil
}

// UpdateProfile applies a partial update to the user's own profile.
func (s *UserService) UpdateProfile(ctx context.Context, id string, patch models.ProfilePatch) (*models.User, error) {
	if patch.Empty() {
		return nil, fmt.Errorf("%w: nothing to update", common.ErrValidation)
	}
	if patch.Gender != nil {
		g := strings.ToLower(strings.TrimSpace(*patch.Gender))
		patch.Gender = &g
	}
	if patch.Email != nil {
		e := models.NormalizeEmail(*patch.Email)
		patch.Email = &e
	}
	if err := s.validate.Struct(patch); err != nil {
		return nil, invalid(err)
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr("find user", err)
	}
	if patch.Password != nil {
		hash, err := s.creds.Hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		patch.Password = &hash
	}
	patch.Apply(u)

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, common.ErrConflict) || errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, unexpected("update user", err)
	}
	s.log.Info(ctx, "profile updated", "user_id", u.ID)
	return u, nil
}

// Delete removes the user and every request and notification they are part of.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return lookupErr("delete user", err)
	}
	s.log.Info(ctx, "user deleted", "user_id", id)
	return nil
}

func invalid(err error) error {
	return fmt.Errorf("%w: %s", common.ErrValidation, lib.ValidationMessage(err))
}
