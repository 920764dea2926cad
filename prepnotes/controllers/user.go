// prepnotes/controllers/user.go
package controllers

import (
	"context"

	"github.com/google/uuid"

	"prepnotes/prepnotes/auth"
	"prepnotes/prepnotes/sources/psql/dao"
	"prepnotes/prepnotes/sources/psql/models"
	"prepnotes/prepnotes/types"
	"prepnotes/prepnotes/utils/apperrors"
)

type UserController struct {
	dao      *dao.UserDAO
	authCtrl *AuthController
}

func NewUserController(userDAO *dao.UserDAO, authCtrl *AuthController) *UserController {
	return &UserController{dao: userDAO, authCtrl: authCtrl}
}

// ProfileResult is the profile read payload; Created marks rows that were
// auto-provisioned on this request.
type ProfileResult struct {
	User    *models.User `json:"user"`
	Created bool         `json:"created,omitempty"`
}

// GetProfile returns the caller's own row, creating it from the identity
// when it does not exist yet.
func (c *UserController) GetProfile(ctx context.Context, ident *auth.Identity) (*ProfileResult, error) {
	user, created, err := c.authCtrl.EnsureUser(ctx, ident)
	if err != nil {
		return nil, err
	}
	return &ProfileResult{User: user, Created: created}, nil
}

// GetUser reads a user row by id. Callers may only read themselves.
func (c *UserController) GetUser(ctx context.Context, ident *auth.Identity, id string) (*models.User, error) {
	if err := requireIdentity(ident); err != nil {
		return nil, err
	}
	if id != ident.ID {
		return nil, apperrors.New(apperrors.ErrForbidden, "cannot access another user's profile")
	}
	user, err := c.dao.GetUserByID(ctx, id)
	if err != nil {
		return nil, apperrors.Newf(apperrors.ErrDatabase, "fetching user: %v", err)
	}
	if user == nil {
		return nil, apperrors.New(apperrors.ErrNotFound, "user not found")
	}
	return user, nil
}

// UpdateProfile applies a partial merge to the caller's own row.
func (c *UserController) UpdateProfile(ctx context.Context, ident *auth.Identity, req types.UpdateUserRequest) (*models.User, error) {
	user, _, err := c.authCtrl.EnsureUser(ctx, ident)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		user.Name = req.Name
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if err := c.dao.UpdateUser(ctx, user); err != nil {
		return nil, apperrors.Newf(apperrors.ErrDatabase, "updating user: %v", err)
	}
	return user, nil
}

// CreateUser is the admin-style create path. Rows without a provider id
// get a generated one.
func (c *UserController) CreateUser(ctx context.Context, ident *auth.Identity, req types.CreateUserRequest) (*models.User, error) {
	if err := requireIdentity(ident); err != nil {
		return nil, err
	}
	id := req.ID
	if id == "" {
		id = uuid.New().String()
	}
	user := &models.User{ID: id, Name: req.Name, Email: req.Email}
	if err := c.dao.CreateUser(ctx, user); err != nil {
		return nil, apperrors.Newf(apperrors.ErrDatabase, "creating user: %v", err)
	}
	return user, nil
}

// DeleteProfile removes the caller's own row.
func (c *UserController) DeleteProfile(ctx context.Context, ident *auth.Identity) error {
	if err := requireIdentity(ident); err != nil {
		return err
	}
	rows, err := c.dao.DeleteUser(ctx, ident.ID)
	if err != nil {
		return apperrors.Newf(apperrors.ErrDatabase, "deleting user: %v", err)
	}
	if rows == 0 {
		return apperrors.New(apperrors.ErrNotFound, "user not found")
	}
	return nil
}
