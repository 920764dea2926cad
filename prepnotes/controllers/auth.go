// prepnotes/controllers/auth.go
package controllers

import (
	"context"

	"prepnotes/prepnotes/auth"
	"prepnotes/prepnotes/sources/psql/dao"
	"prepnotes/prepnotes/sources/psql/models"
	"prepnotes/prepnotes/types"
	"prepnotes/prepnotes/utils/apperrors"
	"prepnotes/prepnotes/utils/validate"
)

// AuthController bridges the external auth provider into local user rows.
type AuthController struct {
	userDAO *dao.UserDAO
}

func NewAuthController(userDAO *dao.UserDAO) *AuthController {
	return &AuthController{userDAO: userDAO}
}

// SyncResult reports whether the sync created or refreshed the local row.
type SyncResult struct {
	Status string       `json:"status"`
	UserID string       `json:"user_id"`
	User   *models.User `json:"user"`
}

// SyncUser upserts the provider identity into the users table. The
// client-supplied user id must match the token subject. Repeated calls
// with unchanged profile data only touch updated_at.
func (c *AuthController) SyncUser(ctx context.Context, ident *auth.Identity, req types.SyncRequest) (*SyncResult, error) {
	if err := requireIdentity(ident); err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		return nil, apperrors.New(apperrors.ErrValidation, err.Error())
	}
	if req.UserID != ident.ID {
		return nil, apperrors.New(apperrors.ErrUnauthenticated, "user id mismatch")
	}

	name := req.Name
	if name == "" {
		name = ident.Name
	}
	email := req.Email
	if email == "" {
		email = ident.Email
	}

	existing, err := c.userDAO.GetUserByID(ctx, ident.ID)
	if err != nil {
		return nil, apperrors.Newf(apperrors.ErrDatabase, "looking up user: %v", err)
	}

	if existing == nil {
		user := &models.User{ID: ident.ID}
		if name != "" {
			user.Name = &name
		}
		if email != "" {
			user.Email = &email
		}
		if err := c.userDAO.CreateUser(ctx, user); err != nil {
			return nil, apperrors.Newf(apperrors.ErrDatabase, "creating user: %v", err)
		}
		return &SyncResult{Status: "created", UserID: ident.ID, User: user}, nil
	}

	// Non-empty provider fields win; blanks never clobber stored values.
	if name != "" {
		existing.Name = &name
	}
	if email != "" {
		existing.Email = &email
	}
	if err := c.userDAO.UpdateUser(ctx, existing); err != nil {
		return nil, apperrors.Newf(apperrors.ErrDatabase, "updating user: %v", err)
	}
	return &SyncResult{Status: "updated", UserID: ident.ID, User: existing}, nil
}

// EnsureUser provisions a local row for the identity if absent. Used by
// profile reads so a first authenticated request always has a user row.
func (c *AuthController) EnsureUser(ctx context.Context, ident *auth.Identity) (*models.User, bool, error) {
	if err := requireIdentity(ident); err != nil {
		return nil, false, err
	}
	existing, err := c.userDAO.GetUserByID(ctx, ident.ID)
	if err != nil {
		return nil, false, apperrors.Newf(apperrors.ErrDatabase, "looking up user: %v", err)
	}
	if existing != nil {
		return existing, false, nil
	}
	user := &models.User{ID: ident.ID}
	if ident.Name != "" {
		user.Name = &ident.Name
	}
	if ident.Email != "" {
		user.Email = &ident.Email
	}
	if err := c.userDAO.CreateUser(ctx, user); err != nil {
		return nil, false, apperrors.Newf(apperrors.ErrDatabase, "creating user: %v", err)
	}
	return user, true, nil
}
