package acceptance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jobtrail/jobtrail/internal/dto"
)

func (s *Suite) callbackURL(provider string) string {
	return s.BaseURL + "/api/v1/auth/callback/" + provider
}

// loginCallback posts a provider payload to the login path and returns the
// decoded auth response plus the raw response for cookie access.
func (s *Suite) loginCallback(provider string, payload map[string]any) (dto.AuthResponse, *http.Response) {
	body, _ := json.Marshal(payload)

	resp, err := http.Post(s.callbackURL(provider), "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Require().Equal(http.StatusOK, resp.StatusCode, "Login callback should succeed")

	var authResp dto.AuthResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&authResp))

	return authResp, resp
}

func (s *Suite) linkCallback(provider string, payload map[string]any, accessToken string) *http.Response {
	body, _ := json.Marshal(payload)

	req, _ := http.NewRequest("POST", s.callbackURL(provider)+"?mode=link", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)

	return resp
}

func (s *Suite) TestLoginCallback_FirstLogin() {
	authResp, resp := s.loginCallback("github", map[string]any{
		"id":    "gh-1001",
		"email": "first@example.com",
	})

	s.NotEmpty(authResp.AccessToken)
	s.Equal("Bearer", authResp.TokenType)
	s.NotZero(authResp.ExpiresIn)
	s.NotEmpty(authResp.Account.ID)
	s.True(authResp.Account.GitHubLinked)
	s.False(authResp.Account.GoogleLinked)

	s.NotEmpty(resp.Cookies(), "Should have refresh token cookie")
}

func (s *Suite) TestLoginCallback_ReturningLogin() {
	first, _ := s.loginCallback("github", map[string]any{
		"id":    "gh-1002",
		"email": "returning@example.com",
	})

	second, _ := s.loginCallback("github", map[string]any{
		"id":    "gh-1002",
		"email": "returning@example.com",
	})

	s.Equal(first.Account.ID, second.Account.ID, "Same credential must resolve to the same account")
}

func (s *Suite) TestLoginCallback_UnsupportedProvider() {
	body, _ := json.Marshal(map[string]any{"id": "x"})

	resp, err := http.Post(s.callbackURL("linkedin"), "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestLoginCallback_MissingProviderID() {
	body, _ := json.Marshal(map[string]any{"email": "no-id@example.com"})

	resp, err := http.Post(s.callbackURL("github"), "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestLink_Success() {
	authResp, _ := s.loginCallback("github", map[string]any{
		"id":    "gh-2001",
		"email": "linker@example.com",
	})

	resp := s.linkCallback("google", map[string]any{
		"sub":   "go-2001",
		"email": "linker@gmail.com",
	}, authResp.AccessToken)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var status dto.AuthStatusResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&status))

	s.True(status.Authenticated)
	s.Equal(authResp.Account.ID, status.ID)
	s.True(status.GitHubLinked)
	s.True(status.GoogleLinked)

	// The linked credential now logs into the same account.
	googleLogin, _ := s.loginCallback("google", map[string]any{
		"sub":   "go-2001",
		"email": "linker@gmail.com",
	})
	s.Equal(authResp.Account.ID, googleLogin.Account.ID)
}

func (s *Suite) TestLink_Conflict() {
	owner, _ := s.loginCallback("google", map[string]any{
		"sub":   "go-3001",
		"email": "owner@gmail.com",
	})

	claimer, _ := s.loginCallback("github", map[string]any{
		"id":    "gh-3001",
		"email": "claimer@example.com",
	})

	resp := s.linkCallback("google", map[string]any{
		"sub":   "go-3001",
		"email": "claimer@gmail.com",
	}, claimer.AccessToken)
	defer resp.Body.Close()

	s.Equal(http.StatusConflict, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&errResp))
	s.Equal("Conflict", errResp.Error)

	// The credential still belongs to its original account.
	again, _ := s.loginCallback("google", map[string]any{
		"sub":   "go-3001",
		"email": "owner@gmail.com",
	})
	s.Equal(owner.Account.ID, again.Account.ID)
}

func (s *Suite) TestLink_Idempotent() {
	authResp, _ := s.loginCallback("github", map[string]any{
		"id":    "gh-4001",
		"email": "relink@example.com",
	})

	payload := map[string]any{"sub": "go-4001", "email": "relink@gmail.com"}

	resp1 := s.linkCallback("google", payload, authResp.AccessToken)
	resp1.Body.Close()
	s.Equal(http.StatusOK, resp1.StatusCode)

	resp2 := s.linkCallback("google", payload, authResp.AccessToken)
	defer resp2.Body.Close()

	s.Equal(http.StatusOK, resp2.StatusCode)

	var status dto.AuthStatusResponse
	s.Require().NoError(json.NewDecoder(resp2.Body).Decode(&status))
	s.True(status.GoogleLinked)
}

func (s *Suite) TestLink_Unauthenticated() {
	resp := s.linkCallback("google", map[string]any{
		"sub":   "go-5001",
		"email": "anon@gmail.com",
	}, "")
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestGetMe_Authenticated() {
	authResp, _ := s.loginCallback("github", map[string]any{
		"id":    "gh-6001",
		"email": "me@example.com",
	})

	req, _ := http.NewRequest("GET", s.BaseURL+"/api/v1/auth/me", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", authResp.AccessToken))

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var status dto.AuthStatusResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&status))

	s.True(status.Authenticated)
	s.Equal(authResp.Account.ID, status.ID)
	s.True(status.GitHubLinked)
	s.False(status.GoogleLinked)
}

func (s *Suite) TestGetMe_Anonymous() {
	resp, err := http.Get(s.BaseURL + "/api/v1/auth/me")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var status dto.AuthStatusResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&status))

	s.False(status.Authenticated)
	s.Empty(status.ID)
}

func (s *Suite) TestRefresh_Success() {
	_, loginResp := s.loginCallback("github", map[string]any{
		"id":    "gh-7001",
		"email": "refresh@example.com",
	})

	cookies := loginResp.Cookies()
	s.Require().NotEmpty(cookies)

	req, _ := http.NewRequest("POST", s.BaseURL+"/api/v1/auth/refresh", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var authResp dto.AuthResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&authResp))

	s.NotEmpty(authResp.AccessToken)
	s.Equal("Bearer", authResp.TokenType)
}

func (s *Suite) TestRefresh_NoCookie() {
	resp, err := http.Post(s.BaseURL+"/api/v1/auth/refresh", "application/json", nil)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestLogout_Success() {
	authResp, _ := s.loginCallback("github", map[string]any{
		"id":    "gh-8001",
		"email": "logout@example.com",
	})

	req, _ := http.NewRequest("POST", s.BaseURL+"/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", authResp.AccessToken))

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var successResp dto.SuccessResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&successResp))
	s.Equal("Logged out successfully", successResp.Message)
}

func (s *Suite) TestLogout_NoToken() {
	resp, err := http.Post(s.BaseURL+"/api/v1/auth/logout", "application/json", nil)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestCompleteFlow() {
	authResp, loginResp := s.loginCallback("github", map[string]any{
		"id":         "gh-9001",
		"email":      "complete@example.com",
		"name":       "Complete Flow",
		"avatar_url": "https://avatars.example.com/complete",
	})

	linkResp := s.linkCallback("google", map[string]any{
		"sub":   "go-9001",
		"email": "complete@gmail.com",
	}, authResp.AccessToken)
	linkResp.Body.Close()
	s.Equal(http.StatusOK, linkResp.StatusCode)

	refreshReq, _ := http.NewRequest("POST", s.BaseURL+"/api/v1/auth/refresh", nil)
	for _, cookie := range loginResp.Cookies() {
		refreshReq.AddCookie(cookie)
	}
	refreshResp, err := http.DefaultClient.Do(refreshReq)
	s.Require().NoError(err)
	defer refreshResp.Body.Close()
	s.Equal(http.StatusOK, refreshResp.StatusCode)

	var newAuthResp dto.AuthResponse
	s.Require().NoError(json.NewDecoder(refreshResp.Body).Decode(&newAuthResp))

	meReq, _ := http.NewRequest("GET", s.BaseURL+"/api/v1/auth/me", nil)
	meReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", newAuthResp.AccessToken))
	meResp, err := http.DefaultClient.Do(meReq)
	s.Require().NoError(err)
	defer meResp.Body.Close()
	s.Equal(http.StatusOK, meResp.StatusCode)

	var status dto.AuthStatusResponse
	s.Require().NoError(json.NewDecoder(meResp.Body).Decode(&status))
	s.True(status.GitHubLinked)
	s.True(status.GoogleLinked)

	logoutReq, _ := http.NewRequest("POST", s.BaseURL+"/api/v1/auth/logout", nil)
	logoutReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", newAuthResp.AccessToken))
	logoutResp, err := http.DefaultClient.Do(logoutReq)
	s.Require().NoError(err)
	defer logoutResp.Body.Close()
	s.Equal(http.StatusOK, logoutResp.StatusCode)
}
