package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Interreferences/NoWayDpl-back/internal/constants"
	"github.com/Interreferences/NoWayDpl-back/internal/domain"
)

func TestUserService_RegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	in := UserInput{Login: "alice1", Nickname: "Alice", Password: "secret123"}

	user, err := f.cat.Users.RegisterUser(f.ctx, in)
	require.NoError(t, err)
	require.NotNil(t, user.Role)
	assert.Equal(t, constants.RoleUser, user.Role.Title)
	assert.NotEqual(t, "secret123", user.Password)

	_, err = f.cat.Users.RegisterUser(f.ctx, in)
	assert.True(t, errors.Is(err, domain.ErrConflict), err)
	_, err = f.cat.Users.RegisterAdmin(f.ctx, in)
	assert.True(t, errors.Is(err, domain.ErrConflict), err)

	_, err = f.cat.Users.Login(f.ctx, "alice1", "wrong")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	_, err = f.cat.Users.Login(f.ctx, "nobody", "secret123")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	logged, err := f.cat.Users.Login(f.ctx, "alice1", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	require.NotNil(t, logged.Role)
	assert.Equal(t, constants.RoleUser, logged.Role.Title)
}

func TestUserService_RegisterAdmin(t *testing.T) {
	f := newFixture(t)

	admin, err := f.cat.Users.RegisterAdmin(f.ctx, UserInput{Login: "root", Nickname: "Root", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, constants.RoleAdmin, admin.Role.Title)
}

func TestUserService_RegisterValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.cat.Users.RegisterUser(f.ctx, UserInput{Login: " "})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 3)
}

func TestRoleService_FindAll(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cat.Bootstrap(f.ctx), "bootstrap is repeatable")

	roles, err := f.cat.Roles.FindAll(f.ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 2)
}
