package middleware_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/userorg/internal/infrastructure/http/middleware"
	"github.com/amirhosseinghanipour/userorg/internal/infrastructure/persistence/sqlite"
	"github.com/amirhosseinghanipour/userorg/internal/infrastructure/persistence/storetest"
)

const signupBody = `{"firstName":"Ada","lastName":"Lovelace","email":"%s","password":"password123","phone":"0800"}`

func newGate(t *testing.T) *middleware.UniqueEmailGate {
	t.Helper()
	store, err := sqlite.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Stores().Users.Create(context.Background(), storetest.NewUser("taken@example.com")))
	return middleware.NewUniqueEmailGate(store.Stores().Users)
}

func TestUniqueEmailGate(t *testing.T) {
	gate := newGate(t)
	var forwarded string
	h := gate.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		forwarded = string(b)
		w.WriteHeader(http.StatusCreated)
	}))

	post := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body)))
		return rec
	}

	fresh := strings.Replace(signupBody, "%s", "fresh@example.com", 1)
	rec := post(fresh)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, fresh, forwarded)

	rec = post(strings.Replace(signupBody, "%s", "taken@example.com", 1))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var dup struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dup))
	assert.Equal(t, middleware.MsgEmailInUse, dup.Message)

	rec = post(`{"email":"bad"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var invalid struct {
		Errors []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &invalid))
	assert.NotEmpty(t, invalid.Errors)

	rec = post(`{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
