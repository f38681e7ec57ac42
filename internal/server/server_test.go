package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasnim.dev/orgctl/internal/provision"
)

type stubVendor struct {
	err      error
	lastRole string
}

func (s *stubVendor) Provision(ctx context.Context, roleName string) (*provision.CredentialSet, error) {
	s.lastRole = roleName
	if s.err != nil {
		return nil, s.err
	}
	return &provision.CredentialSet{
		RoleName:        roleName,
		RoleARN:         "arn:aws:iam::123456789012:role/" + roleName,
		AccountID:       "123456789012",
		OrganizationID:  "o-abc123",
		AccessKeyID:     "ASIAEXAMPLE",
		SecretAccessKey: "secret",
		SessionToken:    "token",
		Region:          "us-east-1",
		ExpiresAt:       "2026-08-28T12:00:00Z",
	}, nil
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealth(t *testing.T) {
	app := New(&stubVendor{}, zerolog.Nop())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decodeBody(t, resp)["status"])
}

func TestGetCreds_MissingRoleName(t *testing.T) {
	app := New(&stubVendor{}, zerolog.Nop())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/get-aws-creds", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "role_name is required", decodeBody(t, resp)["error"])
}

func TestGetCreds_QueryParam(t *testing.T) {
	vendor := &stubVendor{}
	app := New(vendor, zerolog.Nop())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/get-aws-creds?role_name=OrgAdminRole", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OrgAdminRole", vendor.lastRole)

	body := decodeBody(t, resp)
	assert.Equal(t, "ASIAEXAMPLE", body["access_key_id"])
	assert.Equal(t, "secret", body["secret_access_key"])
	assert.Equal(t, "token", body["session_token"])
	assert.Equal(t, "2026-08-28T12:00:00Z", body["expires_at"])
	assert.Equal(t, "123456789012", body["account_id"])
}

func TestGetCreds_JSONBody(t *testing.T) {
	vendor := &stubVendor{}
	app := New(vendor, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/get-aws-creds",
		strings.NewReader(`{"role_name": "CustomRole"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "CustomRole", vendor.lastRole)
}

func TestGetCreds_BodyWinsOverQuery(t *testing.T) {
	vendor := &stubVendor{}
	app := New(vendor, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/get-aws-creds?role_name=FromQuery",
		strings.NewReader(`{"role_name": "FromBody"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "FromBody", vendor.lastRole)
}

func TestGetCreds_PermissionDenied(t *testing.T) {
	vendor := &stubVendor{err: &provision.PermissionError{Msg: "run this from the management account"}}
	app := New(vendor, zerolog.Nop())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/get-aws-creds?role_name=OrgAdminRole", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "run this from the management account", decodeBody(t, resp)["error"])
}

func TestGetCreds_InternalErrorIsOpaque(t *testing.T) {
	vendor := &stubVendor{err: errors.New("iam: CreateRole throttled")}
	app := New(vendor, zerolog.Nop())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/get-aws-creds?role_name=OrgAdminRole", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal server error", decodeBody(t, resp)["error"])
}
