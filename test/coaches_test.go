//go:build e2e_test || all_tests

package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/2beens/gymreports/internal/coaches"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestCoaches() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	email := gofakeit.Email()
	payload := fmt.Sprintf(`{"name": %q, "email": %q, "phone": %q}`, gofakeit.Name(), email, gofakeit.Phone())

	status, _, body := s.doRequest(ctx, "POST", "/api/coaches", payload, nil)
	require.Equal(t, http.StatusCreated, status, string(body))
	var added coaches.AddResponse
	require.NoError(t, json.Unmarshal(body, &added))
	assert.Equal(t, coaches.MsgCoachAdded, added.Message)

	status, _, body = s.doRequest(ctx, "POST", "/api/coaches", payload, nil)
	require.Equal(t, http.StatusConflict, status)
	assert.JSONEq(t, `{"error":"此Email已被註冊"}`, string(body))

	var count int
	require.NoError(t, s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM coaches WHERE email = $1`, email).Scan(&count))
	assert.Equal(t, 1, count)

	status, _, body = s.doRequest(ctx, "POST", "/api/coaches", `{"name": "no email"}`, nil)
	require.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"姓名和Email為必填項"}`, string(body))

	status, _, body = s.doRequest(ctx, "GET", "/api/coaches", "", nil)
	require.Equal(t, http.StatusOK, status)
	var list []coaches.Coach
	require.NoError(t, json.Unmarshal(body, &list))
	found := false
	for _, c := range list {
		if c.Email == email {
			found = true
			assert.Equal(t, added.ID, c.ID)
		}
	}
	assert.True(t, found)
}

func (s *IntegrationTestSuite) TestCors() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	status, headers, _ := s.doRequest(ctx, "GET", "/version", "", map[string]string{"Origin": "https://gym.example.com"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "https://gym.example.com", headers.Get("Access-Control-Allow-Origin"))

	status, _, _ = s.doRequest(ctx, "GET", "/version", "", map[string]string{"Origin": "https://evil.example.com"})
	assert.Equal(t, http.StatusForbidden, status)
}
