package services

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/pentlavallir/Landscaping-US/internal/constants"
	"github.com/pentlavallir/Landscaping-US/internal/dtos"
	"github.com/pentlavallir/Landscaping-US/internal/models"
	"github.com/pentlavallir/Landscaping-US/internal/repositories"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

// UserService manages login accounts. Owner accounts must be linked to a
// property; admin accounts never are.
type UserService struct {
	userRepo repositories.UserRepository
	propRepo repositories.PropertyRepository
}

func NewUserService(userRepo repositories.UserRepository, propRepo repositories.PropertyRepository) *UserService {
	return &UserService{userRepo: userRepo, propRepo: propRepo}
}

func (s *UserService) Create(ctx context.Context, req *dtos.CreateUserRequest) (*models.User, error) {
	propertyID, err := s.resolvePropertyLink(ctx, req.Role, req.PropertyID)
	if err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         req.Role,
		Email:        req.Email,
		Phone:        req.Phone,
		PropertyID:   propertyID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	utils.Logger.WithFields(map[string]any{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User created")
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.ListAll(ctx)
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.ErrNotFound
	}
	return user, nil
}

// Update changes profile fields and, when a new password is supplied,
// rotates the hash. Usernames are immutable.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req *dtos.UpdateUserRequest) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	propertyID, err := s.resolvePropertyLink(ctx, req.Role, req.PropertyID)
	if err != nil {
		return nil, err
	}

	user.FullName = req.FullName
	user.Role = req.Role
	user.Email = req.Email
	user.Phone = req.Phone
	user.PropertyID = propertyID
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		if err := s.userRepo.UpdatePasswordHash(ctx, id, hash); err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	return user, nil
}

// Delete removes an account. The seeded admin account and the caller's
// own account are protected.
func (s *UserService) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if user.Username == "admin" {
		return &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    "The built-in admin account cannot be deleted",
		}
	}
	if id == callerID {
		return &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    "You cannot delete your own account",
		}
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	utils.Logger.WithField("user_id", id).Info("User deleted")
	return nil
}

// resolvePropertyLink enforces the role and property pairing: owners
// need an existing property, admins carry none.
func (s *UserService) resolvePropertyLink(ctx context.Context, role string, propertyID *uuid.UUID) (*uuid.UUID, error) {
	if role != constants.RoleOwner {
		return nil, nil
	}
	if propertyID == nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    "Owner accounts must be linked to a property",
		}
	}
	prop, err := s.propRepo.GetByID(ctx, *propertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    "Linked property does not exist",
		}
	}
	return propertyID, nil
}
