package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizeSuccess(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"success":"welcome back"}`))
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL).Authorize(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "welcome back", res.message)
	assert.Empty(t, res.serviceLink)

	assert.Equal(t, "a@b.c", gotBody["email"])
	assert.Equal(t, "pw", gotBody["password"])
	assert.Equal(t, "autorization", gotBody["metod"])
	_, hasPhone := gotBody["phone"]
	assert.False(t, hasPhone, "login omits the phone field")
}

func TestAuthorizeServiceLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Service-Link", "https://follow.example/cb")
		w.Write([]byte(`{"success":"ok"}`))
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL).Authorize(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "https://follow.example/cb", res.serviceLink)
}

func TestRegisterSendsPhone(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"success":"created"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Register(context.Background(), "a@b.c", "+46701234567", "pw")
	require.NoError(t, err)
	assert.Equal(t, "registration", gotBody["metod"])
	assert.Equal(t, "+46701234567", gotBody["phone"])
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"invalid credentials", `{"error":"Invalid email or password"}`, ErrInvalidCredentials},
		{"invalid credentials wrapped", `{"error":"Error: Invalid email or password!"}`, ErrInvalidCredentials},
		{"duplicate account", `{"error":"user already exists"}`, ErrUserExists},
		{"anything else", `{"error":"database on fire"}`, ErrUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).Authorize(context.Background(), "a@b.c", "pw")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMalformedReply(t *testing.T) {
	t.Run("not json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>gateway error</html>"))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).Authorize(context.Background(), "a@b.c", "pw")
		assert.ErrorIs(t, err, ErrParse)
		assert.ErrorIs(t, err, ErrUnknown, "parse failures fold into the unknown class")
	})

	t.Run("neither success nor error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).Authorize(context.Background(), "a@b.c", "pw")
		assert.ErrorIs(t, err, ErrParse)
	})
}

func TestNon200Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Authorize(context.Background(), "a@b.c", "pw")
	assert.ErrorIs(t, err, ErrUnknown)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := NewClient(srv.URL).Authorize(context.Background(), "a@b.c", "pw")
	assert.ErrorIs(t, err, ErrUnknown)
}

func TestCompleteRegistration(t *testing.T) {
	var gotQuery map[string][]string
	var gotBody callbackEnvelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"client_id":"c-42","response":"done"}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).CompleteRegistration(context.Background(), srv.URL+"/cb?token=x", CallbackParams{
		PushToken:   "apns-token",
		ClientID:    "c-old",
		PushID:      "p-1",
		DeepLink:    true,
		Attribution: map[string]string{"campaign": "summer"},
		IDFA:        "ABCD-1234",
	})
	require.NoError(t, err)
	assert.Equal(t, "c-42", resp.ClientID)
	require.NotNil(t, resp.Response)
	assert.Equal(t, "done", *resp.Response)

	assert.Equal(t, "apns-token", gotQuery["apns_push_token"][0])
	assert.Equal(t, "c-old", gotQuery["client_id"][0])
	assert.Equal(t, "p-1", gotQuery["push_id"][0])
	assert.Equal(t, "true", gotQuery["exp_1"][0])
	assert.Equal(t, "x", gotQuery["token"][0], "existing link params survive")

	assert.Equal(t, map[string]string{"campaign": "summer"}, gotBody.Conversion)
	assert.Equal(t, "ABCD-1234", gotBody.IDFA)
}

func TestCompleteRegistrationOmitsEmptyParams(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"client_id":"c-1"}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).CompleteRegistration(context.Background(), srv.URL, CallbackParams{PushToken: "tok"})
	require.NoError(t, err)
	assert.Nil(t, resp.Response)

	assert.Equal(t, "tok", gotQuery["apns_push_token"][0])
	_, ok := gotQuery["client_id"]
	assert.False(t, ok)
	_, ok = gotQuery["push_id"]
	assert.False(t, ok)
	_, ok = gotQuery["exp_1"]
	assert.False(t, ok)
}

func TestCompleteRegistrationMissingClientID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":"done"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).CompleteRegistration(context.Background(), srv.URL, CallbackParams{})
	assert.ErrorIs(t, err, ErrParse)
}
