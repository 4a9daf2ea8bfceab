package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/moneymate/pkg/api"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	env := setupTestServer(t, nil)
	ctx := context.Background()

	registered, err := env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email:       "Dana@Example.com",
		DisplayName: "Dana",
		Password:    "password123",
	}))
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", registered.Msg.User.Email)
	assert.NotEmpty(t, registered.Msg.Token)

	loggedIn, err := env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "dana@example.com", Password: "password123"}))
	require.NoError(t, err)
	assert.Equal(t, registered.Msg.User.ID, loggedIn.Msg.User.ID)

	me, err := env.auth.GetCurrentUser(ctx, authed(&api.GetCurrentUserRequest{}, loggedIn.Msg.Token))
	require.NoError(t, err)
	assert.Equal(t, "Dana", me.Msg.User.DisplayName)
	assert.Equal(t, "dana@example.com", me.Msg.User.Email)
}

func TestAuthService_Errors(t *testing.T) {
	env := setupTestServer(t, nil)
	ctx := context.Background()
	env.registerUser(t, "erin@example.com")

	_, err := env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{Email: "erin@example.com", Password: "password123"}))
	requireCode(t, err, connect.CodeAlreadyExists)

	_, err = env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{Email: "frank@example.com", Password: "short"}))
	requireCode(t, err, connect.CodeInvalidArgument)

	_, err = env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "erin@example.com", Password: "wrong-password"}))
	requireCode(t, err, connect.CodeUnauthenticated)

	_, err = env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "erin@example.com"}))
	requireCode(t, err, connect.CodeInvalidArgument)

	_, err = env.auth.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
	requireCode(t, err, connect.CodeUnauthenticated)

	_, err = env.auth.GetCurrentUser(ctx, authed(&api.GetCurrentUserRequest{}, "not-a-token"))
	requireCode(t, err, connect.CodeUnauthenticated)
}
