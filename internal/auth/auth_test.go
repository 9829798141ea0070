package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/vendas/internal/auth"
)

func TestAuthenticator_RoundTrip(t *testing.T) {
	a := auth.New("secret", "vendas")

	token, err := a.IssueToken("company-1")
	require.NoError(t, err)

	got, err := a.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "company-1", got)
}

func TestAuthenticator_Verify_Rejects(t *testing.T) {
	issued, err := auth.New("other-secret", "vendas").IssueToken("company-1")
	require.NoError(t, err)

	wrongIssuer, err := auth.New("secret", "someone-else").IssueToken("company-1")
	require.NoError(t, err)

	noCompany, err := auth.New("secret", "vendas").IssueToken("")
	require.NoError(t, err)

	a := auth.New("secret", "vendas")

	type testCase struct {
		name  string
		token string
	}

	tests := []testCase{
		{"WrongSecret", issued},
		{"WrongIssuer", wrongIssuer},
		{"Garbage", "not.a.token"},
		{"NoCompany", noCompany},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Verify(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestAuthenticator_Middleware(t *testing.T) {
	a := auth.New("secret", "vendas")

	token, err := a.IssueToken("company-1")
	require.NoError(t, err)

	var seen string

	h := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = auth.CompanyFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	type testCase struct {
		name       string
		header     string
		wantStatus int
		wantSeen   string
	}

	tests := []testCase{
		{"Valid", "Bearer " + token, http.StatusNoContent, "company-1"},
		{"LowerCaseScheme", "bearer " + token, http.StatusNoContent, "company-1"},
		{"Missing", "", http.StatusUnauthorized, ""},
		{"Basic", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, ""},
		{"Invalid", "Bearer nope", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantSeen, seen)
		})
	}
}
