package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/amirhosseinghanipour/userorg/internal/domain/errors"
	"github.com/amirhosseinghanipour/userorg/internal/infrastructure/auth"
	"github.com/amirhosseinghanipour/userorg/internal/infrastructure/http/middleware"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newValidator(t *testing.T) (*middleware.AuthValidator, *auth.TokenService, *clock) {
	t.Helper()
	c := &clock{now: time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)}
	ts := auth.NewTokenService("gate-secret", auth.WithClock(c.Now))
	return middleware.NewAuthValidator(ts), ts, c
}

func TestAuthenticateDistinguishesFailures(t *testing.T) {
	v, ts, c := newValidator(t)
	userID := uuid.NewString()
	token, err := ts.Issue(userID)
	require.NoError(t, err)

	req := func(header string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		return r
	}

	got, err := v.Authenticate(req("Bearer " + token))
	require.NoError(t, err)
	assert.Equal(t, userID, got.String())

	_, err = v.Authenticate(req(""))
	assert.ErrorIs(t, err, domerrors.ErrMissingToken)
	_, err = v.Authenticate(req("Bearer "))
	assert.ErrorIs(t, err, domerrors.ErrMissingToken)

	_, err = v.Authenticate(req("Bearer " + token[:len(token)-4] + "abcd"))
	assert.ErrorIs(t, err, domerrors.ErrInvalidToken)

	c.now = c.now.Add(auth.DefaultTokenTTL + time.Second)
	_, err = v.Authenticate(req("Bearer " + token))
	assert.ErrorIs(t, err, domerrors.ErrExpiredToken)
}

func TestAuthenticateRejectsNonUUIDSubject(t *testing.T) {
	v, ts, _ := newValidator(t)
	token, err := ts.Issue("not-a-uuid")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	_, err = v.Authenticate(r)
	assert.ErrorIs(t, err, domerrors.ErrInvalidToken)
}

func TestAuthHandlerResponses(t *testing.T) {
	v, ts, c := newValidator(t)
	userID := uuid.NewString()
	token, err := ts.Issue(userID)
	require.NoError(t, err)

	var seen string
	h := v.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.UserIDFromContext(r.Context())
		require.True(t, ok)
		seen = id.String()
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(header string) (int, string) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		var body struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(rec.Body.Bytes(), &body)
		return rec.Code, body.Message
	}

	code, _ := call("Bearer " + token)
	assert.Equal(t, http.StatusNoContent, code)
	assert.Equal(t, userID, seen)

	code, msg := call("")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, middleware.MsgTokenRequired, msg)

	code, msg = call("Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, middleware.MsgUnauthorized, msg)

	c.now = c.now.Add(91 * 24 * time.Hour)
	code, msg = call("Bearer " + token)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, middleware.MsgTokenExpired, msg)
}
