package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pentlavallir/Landscaping-US/internal/constants"
	"github.com/pentlavallir/Landscaping-US/internal/dtos"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

func TestUserServiceCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewUserService(env.users, env.props)

	prop := seedTestProperty(t, env, "Green Acres")

	owner, err := svc.Create(ctx, &dtos.CreateUserRequest{
		Username:   "owner1",
		Password:   "owner123",
		FullName:   "Green Acres Owner",
		Role:       constants.RoleOwner,
		Email:      "o1@example.com",
		PropertyID: &prop.ID,
	})
	require.NoError(t, err)
	require.Equal(t, prop.ID, *owner.PropertyID)
	require.True(t, utils.CheckPasswordHash("owner123", owner.PasswordHash))

	admin, err := svc.Create(ctx, &dtos.CreateUserRequest{
		Username:   "ops",
		Password:   "ops12345",
		Role:       constants.RoleAdmin,
		PropertyID: &prop.ID,
	})
	require.NoError(t, err)
	require.Nil(t, admin.PropertyID, "admins never carry a property link")

	_, err = svc.Create(ctx, &dtos.CreateUserRequest{
		Username: "owner2",
		Password: "owner123",
		Role:     constants.RoleOwner,
	})
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "Owner accounts must be linked to a property", appErr.Message)

	missing := uuid.New()
	_, err = svc.Create(ctx, &dtos.CreateUserRequest{
		Username:   "owner2",
		Password:   "owner123",
		Role:       constants.RoleOwner,
		PropertyID: &missing,
	})
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "Linked property does not exist", appErr.Message)

	_, err = svc.Create(ctx, &dtos.CreateUserRequest{
		Username:   "owner1",
		Password:   "owner123",
		Role:       constants.RoleOwner,
		PropertyID: &prop.ID,
	})
	require.ErrorIs(t, err, utils.ErrUsernameExists)
}

func TestUserServiceUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewUserService(env.users, env.props)

	prop := seedTestProperty(t, env, "Green Acres")
	owner, err := svc.Create(ctx, &dtos.CreateUserRequest{
		Username:   "owner1",
		Password:   "owner123",
		Role:       constants.RoleOwner,
		PropertyID: &prop.ID,
	})
	require.NoError(t, err)
	originalHash := owner.PasswordHash

	updated, err := svc.Update(ctx, owner.ID, &dtos.UpdateUserRequest{
		FullName:   "Renamed Owner",
		Role:       constants.RoleOwner,
		Email:      "new@example.com",
		PropertyID: &prop.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "Renamed Owner", updated.FullName)

	reloaded, err := svc.Get(ctx, owner.ID)
	require.NoError(t, err)
	require.Equal(t, originalHash, reloaded.PasswordHash, "blank password keeps the stored hash")

	_, err = svc.Update(ctx, owner.ID, &dtos.UpdateUserRequest{
		Role:       constants.RoleOwner,
		Password:   "newpass99",
		PropertyID: &prop.ID,
	})
	require.NoError(t, err)

	reloaded, err = svc.Get(ctx, owner.ID)
	require.NoError(t, err)
	require.True(t, utils.CheckPasswordHash("newpass99", reloaded.PasswordHash))
	require.False(t, utils.CheckPasswordHash("owner123", reloaded.PasswordHash))
}

func TestUserServiceDeleteGuards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewUserService(env.users, env.props)

	builtin, err := svc.Create(ctx, &dtos.CreateUserRequest{
		Username: "admin",
		Password: "admin123",
		Role:     constants.RoleAdmin,
	})
	require.NoError(t, err)
	second, err := svc.Create(ctx, &dtos.CreateUserRequest{
		Username: "ops",
		Password: "ops12345",
		Role:     constants.RoleAdmin,
	})
	require.NoError(t, err)

	err = svc.Delete(ctx, builtin.ID, second.ID)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "The built-in admin account cannot be deleted", appErr.Message)

	err = svc.Delete(ctx, second.ID, second.ID)
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "You cannot delete your own account", appErr.Message)

	require.NoError(t, svc.Delete(ctx, second.ID, builtin.ID))
	_, err = svc.Get(ctx, second.ID)
	require.ErrorIs(t, err, utils.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, uuid.New(), builtin.ID), utils.ErrNotFound)
}
