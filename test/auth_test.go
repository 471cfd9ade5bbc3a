//go:build integration_test || all_tests

package test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/2beens/gymtrack/internal/gymtrack/cloud"
)

func (s *IntegrationTestSuite) TestHealthAndVersion() {
	resp, err := s.httpClient.Get(serverEndpoint + "/health")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var health map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&health))
	s.Equal("ok", health["status"])
	s.NotEmpty(health["timestamp"])

	versionResp, err := s.httpClient.Get(serverEndpoint + "/version")
	s.Require().NoError(err)
	defer versionResp.Body.Close()
	s.Equal(http.StatusOK, versionResp.StatusCode)
}

func (s *IntegrationTestSuite) TestRegisterLoginLogout() {
	ctx := context.Background()
	email := gofakeit.Email()
	anon := cloud.NewClient(serverEndpoint, "", s.httpClient)

	registered, err := anon.Register(ctx, email, testPassword, "Lifter")
	s.Require().NoError(err)
	s.Equal(email, registered.User.Email)
	s.Equal("Lifter", registered.User.Name)

	_, err = anon.Register(ctx, email, testPassword, "Again")
	s.Require().Error(err)
	var statusErr *cloud.StatusError
	s.Require().ErrorAs(err, &statusErr)
	s.Equal(http.StatusConflict, statusErr.StatusCode)

	_, err = anon.Register(ctx, gofakeit.Email(), "short", "")
	s.Require().ErrorAs(err, &statusErr)
	s.Equal(http.StatusBadRequest, statusErr.StatusCode)

	_, err = anon.Login(ctx, email, "wrong-password")
	s.ErrorIs(err, cloud.ErrUnauthorized)

	session, err := anon.Login(ctx, email, testPassword)
	s.Require().NoError(err)
	s.NotEqual(registered.Token, session.Token)

	client := anon.WithToken(session.Token)
	me, err := client.Me(ctx)
	s.Require().NoError(err)
	s.Equal(registered.User.ID, me.ID)
	s.Equal(email, me.Email)

	// the token from registration is a separate session and stays valid
	_, err = anon.WithToken(registered.Token).Me(ctx)
	s.NoError(err)

	s.Require().NoError(client.Logout(ctx))
	_, err = client.Me(ctx)
	s.ErrorIs(err, cloud.ErrUnauthorized)
}

func (s *IntegrationTestSuite) TestProtectedRoutesNeedToken() {
	ctx := context.Background()
	anon := cloud.NewClient(serverEndpoint, "", s.httpClient)

	_, err := anon.Workouts(ctx)
	s.ErrorIs(err, cloud.ErrUnauthorized)
	_, err = anon.Routines(ctx)
	s.ErrorIs(err, cloud.ErrUnauthorized)
	_, err = anon.Stats(ctx, "")
	s.ErrorIs(err, cloud.ErrUnauthorized)
	_, err = anon.WithToken("made-up-token").Export(ctx)
	s.ErrorIs(err, cloud.ErrUnauthorized)
}
