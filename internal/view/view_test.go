package view

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-dealership/internal/model"
)

func TestFormatUSD(t *testing.T) {
	cases := map[float64]string{
		0:        "$0.00",
		5:        "$5.00",
		999.99:   "$999.99",
		1000:     "$1,000.00",
		28045:    "$28,045.00",
		28045.5:  "$28,045.50",
		1234567:  "$1,234,567.00",
		19999.95: "$19,999.95",
	}

	for amount, want := range cases {
		assert.Equal(t, want, FormatUSD(amount))
	}
}

func TestFormatCommas(t *testing.T) {
	cases := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		101617:   "101,617",
		1000000:  "1,000,000",
		-4500:    "-4,500",
		12345678: "12,345,678",
	}

	for n, want := range cases {
		assert.Equal(t, want, FormatCommas(n))
	}
}

func TestNew_ParsesEveryPage(t *testing.T) {
	r, err := New("Redline Motors")
	require.NoError(t, err)

	for _, page := range []string{
		"home", "classification", "detail", "error",
		"login", "register", "account", "account_update",
		"review_edit", "review_delete",
		"inv_management", "inv_add_classification", "inv_add_vehicle",
		"inv_edit_vehicle", "inv_delete_vehicle",
	} {
		_, ok := r.pages[page]
		assert.True(t, ok, "missing page template %q", page)
	}
}

func TestRender_SharedChrome(t *testing.T) {
	r, err := New("Redline Motors")
	require.NoError(t, err)

	identity := model.AccountIdentity{
		AccountID: 3,
		FirstName: "Iris",
		LastName:  "Okafor",
		Email:     "iris@example.com",
		Type:      model.AccountTypeClient,
	}

	rec := httptest.NewRecorder()
	r.Render(rec, http.StatusOK, "home", Data{
		Title:    "Home",
		Nav:      []model.Classification{{ID: 1, Name: "Sedan"}},
		Flash:    "Welcome back, Iris.",
		Identity: &identity,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, "<title>Home | Redline Motors</title>")
	assert.Contains(t, body, `/inv/type/1`)
	assert.Contains(t, body, "Welcome back, Iris.")
	assert.Contains(t, body, "Welcome Iris")
	assert.Contains(t, body, "/account/logout")
	assert.NotContains(t, body, "Sign in")
}

func TestRender_AnonymousChrome(t *testing.T) {
	r, err := New("Redline Motors")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	r.Render(rec, http.StatusOK, "home", Data{Title: "Home"})

	body := rec.Body.String()
	assert.Contains(t, body, "Sign in")
	assert.Contains(t, body, "Register")
	assert.NotContains(t, body, "Logout")
}

func TestRender_EscapesContent(t *testing.T) {
	r, err := New("Redline Motors")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	r.Render(rec, http.StatusNotFound, "error", Data{
		Title:   "404 Not Found",
		Content: map[string]any{"message": `<script>alert("x")</script>`},
	})

	body := rec.Body.String()
	assert.NotContains(t, body, `<script>alert`)
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestRender_UnknownPageIs500(t *testing.T) {
	r, err := New("Redline Motors")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	r.Render(rec, http.StatusOK, "no-such-page", Data{})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
