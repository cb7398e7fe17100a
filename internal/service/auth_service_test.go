package service

import (
	"context"
	"testing"

	"coreclad-be/internal/dto"
	"coreclad-be/pkg/admin/credential"
	"coreclad-be/pkg/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthLoginAndLogout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.client(t, "browser-a")

	res := f.auth.Session(ctx, c)
	assert.Equal(t, "unauthenticated", res.State)
	assert.Nil(t, res.Identity)

	id, err := f.auth.Login(ctx, c, &dto.LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, testEmail, id.Email)
	assert.Equal(t, "admin", id.Role)

	res = f.auth.Session(ctx, c)
	assert.Equal(t, "authenticated", res.State)
	assert.False(t, res.Loading)
	require.NotNil(t, res.Identity)
	assert.Equal(t, id.Id, res.Identity.Id)
	assert.Len(t, f.publisher.logins, 1)

	require.NoError(t, f.auth.Logout(ctx, c))
	assert.Equal(t, session.Unauthenticated, c.Store.State())
	assert.Len(t, f.publisher.logouts, 1)

	// logging out twice is a no-op and publishes nothing
	require.NoError(t, f.auth.Logout(ctx, c))
	assert.Len(t, f.publisher.logouts, 1)
}

func TestAuthLoginRejectsBadPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.client(t, "browser-a")

	_, err := f.auth.Login(ctx, c, &dto.LoginRequest{Email: testEmail, Password: "wrong-password"})
	assert.ErrorIs(t, err, credential.ErrInvalidCredentials)
	assert.Equal(t, session.Unauthenticated, c.Store.State())
	assert.Empty(t, f.publisher.logins)
}

func TestAuthLoginResetsProductView(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.client(t, "browser-a")

	_, err := f.products.AdminList(ctx, c, dto.ProductFilter{Search: strPtr("roof")})
	require.NoError(t, err)
	assert.Equal(t, "roof", c.View.SearchTerm())

	_, err = f.auth.Login(ctx, c, &dto.LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	assert.Empty(t, c.View.SearchTerm())
}

func TestAuthEventsOutliveRequestContext(t *testing.T) {
	f := newFixture(t)
	c := f.client(t, "browser-a")

	loginCtx, cancelLogin := context.WithCancel(context.Background())
	_, err := f.auth.Login(loginCtx, c, &dto.LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	cancelLogin()

	logoutCtx, cancelLogout := context.WithCancel(context.Background())
	require.NoError(t, f.auth.Logout(logoutCtx, c))
	cancelLogout()

	require.Len(t, f.publisher.eventCtxs, 2)
	for _, ctx := range f.publisher.eventCtxs {
		assert.NoError(t, ctx.Err())
	}
}
