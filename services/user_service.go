package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Iamjava/nutritionist/models"
	"github.com/Iamjava/nutritionist/store"
)

// Identity is the already-validated claim set handed over by the auth layer.
type Identity struct {
	Username string
	Name     string
	Email    string
	Role     models.RoleKind
}

type UserService struct {
	store *store.Store
}

func NewUserService(s *store.Store) *UserService {
	return &UserService{store: s}
}

// EnsureUser creates the user on first login, otherwise refreshes name, email
// and role kind from the claims. A nutritionist's delegated list is app data
// and survives the refresh.
func (s *UserService) EnsureUser(ctx context.Context, id Identity) (*models.User, error) {
	role := id.Role
	if role == "" {
		role = models.RolePlain
	}

	var user models.User
	err := s.store.Fetch(ctx, models.UserCollection, id.Username, &user)
	if errors.Is(err, store.ErrNotFound) {
		user = models.User{
			ID:    id.Username,
			Name:  id.Name,
			Email: id.Email,
			Role:  models.Role{Kind: role},
		}
		if err := s.store.Save(ctx, &user); err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err != nil {
		return nil, err
	}

	user.Name = id.Name
	user.Email = id.Email
	if user.Role.Kind != role {
		delegated := user.Role.Delegated
		if role != models.RoleNutritionist {
			delegated = nil
		}
		user.Role = models.Role{Kind: role, Delegated: delegated}
	}
	if err := s.store.Save(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.store.Fetch(ctx, models.UserCollection, id, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListAll enumerates every known user. Full-scan; intended for the admin
// directory on small personal deployments only.
func (s *UserService) ListAll(ctx context.Context) ([]models.User, error) {
	return store.List[models.User](ctx, s.store, models.UserCollection)
}

// Delegate grants a nutritionist read access to owner's meals.
func (s *UserService) Delegate(ctx context.Context, nutritionistID, owner string) error {
	user, err := s.Get(ctx, nutritionistID)
	if err != nil {
		return err
	}
	if user.Role.Kind != models.RoleNutritionist {
		return fmt.Errorf("user %s is not a nutritionist", nutritionistID)
	}
	for _, id := range user.Role.Delegated {
		if id == owner {
			return nil
		}
	}
	user.Role.Delegated = append(user.Role.Delegated, owner)
	return s.store.Save(ctx, user)
}
