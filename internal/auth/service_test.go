package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/bioprephq/bioprep/internal/auth"
	"github.com/bioprephq/bioprep/internal/domain"
)

func TestService_Login(t *testing.T) {
	type (
		inputs struct {
			email    string
			password string
		}

		outputs struct {
			result auth.LoginResult
		}
	)

	tests := map[string]struct {
		arrange func() inputs
		assert  func(t *testing.T, out outputs)
	}{
		"should succeed with the fixed credential pair": {
			arrange: func() inputs {
				return inputs{email: "admin@test.com", password: "1234"}
			},

			assert: func(t *testing.T, out outputs) {
				require.True(t, out.result.Success)
				require.Empty(t, out.result.Message)
				require.NotEmpty(t, out.result.Token)
				require.NotNil(t, out.result.User)
				require.Equal(t, "Admin User", out.result.User.Name)
				require.Equal(t, "admin@test.com", out.result.User.Email)
			},
		},

		"should fail with a required-fields message when either field is empty": {
			arrange: func() inputs {
				return inputs{email: "admin@test.com", password: ""}
			},

			assert: func(t *testing.T, out outputs) {
				require.False(t, out.result.Success)
				require.Equal(t, "Email and password are required", out.result.Message)
				require.Empty(t, out.result.Token)
			},
		},

		"should fail with a required-fields message when both fields are empty": {
			arrange: func() inputs {
				return inputs{}
			},

			assert: func(t *testing.T, out outputs) {
				require.False(t, out.result.Success)
				require.Equal(t, "Email and password are required", out.result.Message)
			},
		},

		"should fail with an invalid-credentials message on a wrong password": {
			arrange: func() inputs {
				return inputs{email: "admin@test.com", password: "12345"}
			},

			assert: func(t *testing.T, out outputs) {
				require.False(t, out.result.Success)
				require.Equal(t, "Invalid email or password", out.result.Message)
			},
		},

		"should fail with an invalid-credentials message on an unknown email": {
			arrange: func() inputs {
				return inputs{email: "someone@test.com", password: "1234"}
			},

			assert: func(t *testing.T, out outputs) {
				require.False(t, out.result.Success)
				require.Equal(t, "Invalid email or password", out.result.Message)
			},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			in := tt.arrange()
			s := makeService(t)

			result := s.Login(context.Background(), in.email, in.password)

			tt.assert(t, outputs{result: result})
		})
	}
}

func TestService_Register(t *testing.T) {
	s := makeService(t)

	result := s.Register(context.Background())

	require.False(t, result.Success)
	require.Equal(t, "Registration is disabled. Use fixed login credentials.", result.Message)
}

func TestService_Authorized(t *testing.T) {
	s := makeService(t)

	result := s.Login(context.Background(), "admin@test.com", "1234")
	require.True(t, result.Success)

	user, ok := s.Authorized(context.Background(), result.Token)
	require.True(t, ok)
	require.Equal(t, "1", user.ID)

	_, ok = s.Authorized(context.Background(), "not-a-token")
	require.False(t, ok)

	_, ok = s.Authorized(context.Background(), "")
	require.False(t, ok)
}

func TestService_Logout(t *testing.T) {
	s := makeService(t)

	result := s.Login(context.Background(), "admin@test.com", "1234")
	require.True(t, result.Success)

	require.NoError(t, s.Logout(context.Background(), result.Token))

	_, ok := s.Authorized(context.Background(), result.Token)
	require.False(t, ok, "a logged-out token must no longer authorize")

	require.NoError(t, s.Logout(context.Background(), "garbage"),
		"an unparseable token logs out as a no-op")
}

func TestService_TokenOfAnotherSecret(t *testing.T) {
	a := makeService(t)
	b := makeService(t, withSecret("other-secret"))

	result := a.Login(context.Background(), "admin@test.com", "1234")
	require.True(t, result.Success)

	_, ok := b.Authorized(context.Background(), result.Token)
	require.False(t, ok, "a token signed with another secret must not authorize")
}

func TestRedisStore(t *testing.T) {
	rs := miniredis.RunT(t)
	rc := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: []string{rs.Addr()},
	})

	store := auth.NewRedisStore(rc, "test")
	ctx := context.Background()

	u := domain.User{ID: "1", Name: "Admin User"}
	require.NoError(t, store.Put(ctx, "k1", u, time.Minute))

	got, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	require.Equal(t, &u, got)

	got, err = store.Get(ctx, "absent")
	require.NoError(t, err)
	require.Nil(t, got, "absence is logged-out, not an error")

	rs.FastForward(2 * time.Minute)
	got, err = store.Get(ctx, "k1")
	require.NoError(t, err)
	require.Nil(t, got, "expired sessions read as logged-out")

	require.NoError(t, store.Put(ctx, "k2", u, time.Minute))
	require.NoError(t, store.Delete(ctx, "k2"))
	got, err = store.Get(ctx, "k2")
	require.NoError(t, err)
	require.Nil(t, got)
}

func makeService(t *testing.T, opts ...options) *auth.Service {
	rs := miniredis.RunT(t)
	rc := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: []string{rs.Addr()},
	})

	c := auth.Config{
		Credentials: auth.Credentials{
			Email:    "admin@test.com",
			Password: "1234",
		},
		TokenSecret: "test-secret",
		Sessions:    auth.NewRedisStore(rc, "test"),
	}

	for _, opt := range opts {
		opt(&c)
	}

	return auth.NewService(c)
}

type options func(c *auth.Config)

func withSecret(secret string) options {
	return func(c *auth.Config) {
		c.TokenSecret = secret
	}
}
