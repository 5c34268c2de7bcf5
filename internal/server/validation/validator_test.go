package validation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emailSet map[string]bool

func (s emailSet) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return s[email], nil
}

type failingChecker struct{}

func (failingChecker) ExistsByEmail(context.Context, string) (bool, error) {
	return false, errors.New("db down")
}

func TestValidateRegister_OK(t *testing.T) {
	v := New(emailSet{})
	errs, err := v.ValidateRegister(context.Background(), models.RegisterRequest{
		Name: "Ann", Email: "ann@x.com", Password: "Abcd1234",
	})
	require.NoError(t, err)
	assert.True(t, errs.Empty())
}

func TestValidateRegister_Required(t *testing.T) {
	v := New(emailSet{})
	errs, err := v.ValidateRegister(context.Background(), models.RegisterRequest{Name: "  "})
	require.NoError(t, err)

	assert.Equal(t, Errors{
		"name":     {"The name field is required."},
		"email":    {"The email field is required."},
		"password": {"The password field is required."},
	}, errs)
}

func TestValidateRegister_CollectsEveryRule(t *testing.T) {
	v := New(emailSet{})
	errs, err := v.ValidateRegister(context.Background(), models.RegisterRequest{
		Name:     strings.Repeat("n", 256),
		Email:    "not-an-email",
		Password: "abc",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"The name field must not be greater than 255 characters."}, errs["name"])
	assert.Equal(t, []string{"The email field must be a valid email address."}, errs["email"])
	assert.Equal(t, []string{
		"The password field must be at least 8 characters.",
		"The password field format is invalid.",
	}, errs["password"])
	assert.Equal(t, []string{"name", "email", "password"}, errs.Fields())
}

func TestValidateRegister_PasswordComposition(t *testing.T) {
	v := New(emailSet{})
	cases := map[string]bool{
		"Abcd1234":  true,
		"abcd1234":  false,
		"ABCD1234":  false,
		"Abcdefgh":  false,
		"Ab1":       false,
		"Пароль123": false,
		"Пароль1Zz": true,
	}
	for pw, ok := range cases {
		errs, err := v.ValidateRegister(context.Background(), models.RegisterRequest{
			Name: "Ann", Email: "ann@x.com", Password: pw,
		})
		require.NoError(t, err)
		assert.Equal(t, ok, errs.Empty(), pw)
	}
}

func TestValidateRegister_NameLengthCountsRunes(t *testing.T) {
	v := New(emailSet{})
	errs, err := v.ValidateRegister(context.Background(), models.RegisterRequest{
		Name: strings.Repeat("ж", 255), Email: "ann@x.com", Password: "Abcd1234",
	})
	require.NoError(t, err)
	assert.True(t, errs.Empty())
}

func TestValidateRegister_EmailTaken(t *testing.T) {
	v := New(emailSet{"ann@x.com": true})
	errs, err := v.ValidateRegister(context.Background(), models.RegisterRequest{
		Name: "Ann", Email: "ann@x.com", Password: "Abcd1234",
	})
	require.NoError(t, err)
	assert.Equal(t, Errors{"email": {"The email has already been taken."}}, errs)
}

func TestValidateRegister_CheckerFailure(t *testing.T) {
	v := New(failingChecker{})
	_, err := v.ValidateRegister(context.Background(), models.RegisterRequest{
		Name: "Ann", Email: "ann@x.com", Password: "Abcd1234",
	})
	assert.ErrorContains(t, err, "db down")
}

func TestValidateRegister_SkipsLookupForBadEmail(t *testing.T) {
	v := New(failingChecker{})
	errs, err := v.ValidateRegister(context.Background(), models.RegisterRequest{
		Name: "Ann", Email: "nope", Password: "Abcd1234",
	})
	require.NoError(t, err)
	assert.Contains(t, errs, "email")
}

func TestValidateLogin(t *testing.T) {
	v := New(nil)

	assert.True(t, v.ValidateLogin(models.LoginRequest{Email: "ann@x.com", Password: "Abcd1234"}).Empty())

	errs := v.ValidateLogin(models.LoginRequest{Email: "ann", Password: "legacypw"})
	assert.Equal(t, Errors{
		"email":    {"The email field must be a valid email address."},
		"password": {"The password field format is invalid."},
	}, errs)

	errs = v.ValidateLogin(models.LoginRequest{})
	assert.Equal(t, []string{"The email field is required."}, errs["email"])
	assert.Equal(t, []string{"The password field is required."}, errs["password"])
}

func TestErrorsAdd_Dedupes(t *testing.T) {
	e := Errors{}
	e.Add("email", "x")
	e.Add("email", "x")
	e.Add("email", "y")
	assert.Equal(t, []string{"x", "y"}, e["email"])
}

func TestMessageHelpers(t *testing.T) {
	assert.Equal(t, "The name field must be a string.", NotString("name"))
	assert.Equal(t, "The email has already been taken.", Taken("email"))
}

func TestValidateRegister_EmailSyntax(t *testing.T) {
	v := New(emailSet{})

	tests := []struct {
		email string
		ok    bool
	}{
		{"ann@x.com", true},
		{"ann.o+tag@sub.example.org", true},
		{"ann", false},
		{"ann@", false},
		{"@x.com", false},
		{"ann@@x.com", false},
		{"ann smith@x.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			errs, err := v.ValidateRegister(context.Background(), models.RegisterRequest{
				Name: "Ann", Email: tt.email, Password: "Abcd1234",
			})
			require.NoError(t, err)
			if tt.ok {
				assert.True(t, errs.Empty(), errs)
			} else {
				assert.Equal(t, []string{"The email field must be a valid email address."}, errs["email"])
			}
		})
	}
}
