package acceptance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jobtrail/jobtrail/internal/dto"
)

func (s *Suite) getProfile(accessToken string) (dto.ProfileResponse, int) {
	req, _ := http.NewRequest("GET", s.BaseURL+"/api/v1/profile", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var profile dto.ProfileResponse
	if resp.StatusCode == http.StatusOK {
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(&profile))
	}

	return profile, resp.StatusCode
}

func (s *Suite) patchProfile(accessToken string, update dto.UpdateProfileRequest) *http.Response {
	body, _ := json.Marshal(update)

	req, _ := http.NewRequest("PATCH", s.BaseURL+"/api/v1/profile", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)

	return resp
}

func (s *Suite) TestGetProfile_SeededFromProvider() {
	authResp, _ := s.loginCallback("github", map[string]any{
		"id":         "gh-p1",
		"email":      "profile@example.com",
		"avatar_url": "https://avatars.example.com/p1",
	})

	profile, status := s.getProfile(authResp.AccessToken)
	s.Equal(http.StatusOK, status)

	s.Equal(authResp.Account.ID, profile.AccountID)
	s.Equal("profile@example.com", profile.PrimaryEmail)
	s.Nil(profile.DisplayName, "Display name starts unset")
	s.Require().NotNil(profile.AvatarURL)
	s.Equal("https://avatars.example.com/p1", *profile.AvatarURL)
	s.Require().NotNil(profile.GitHubEmail)
	s.Equal("profile@example.com", *profile.GitHubEmail)
	s.Nil(profile.GoogleEmail)
}

func (s *Suite) TestGetProfile_Unauthenticated() {
	resp, err := http.Get(s.BaseURL + "/api/v1/profile")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestUpdateProfile_DisplayName() {
	authResp, _ := s.loginCallback("github", map[string]any{
		"id":    "gh-p2",
		"email": "rename@example.com",
	})

	name := "job-hunter"
	resp := s.patchProfile(authResp.AccessToken, dto.UpdateProfileRequest{DisplayName: &name})
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var profile dto.ProfileResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&profile))
	s.Require().NotNil(profile.DisplayName)
	s.Equal("job-hunter", *profile.DisplayName)
}

func (s *Suite) TestUpdateProfile_DuplicateDisplayName() {
	first, _ := s.loginCallback("github", map[string]any{
		"id":    "gh-p3",
		"email": "taken@example.com",
	})

	name := "unique-handle"
	resp := s.patchProfile(first.AccessToken, dto.UpdateProfileRequest{DisplayName: &name})
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	second, _ := s.loginCallback("github", map[string]any{
		"id":    "gh-p4",
		"email": "wants-taken@example.com",
	})

	resp = s.patchProfile(second.AccessToken, dto.UpdateProfileRequest{DisplayName: &name})
	defer resp.Body.Close()

	s.Equal(http.StatusConflict, resp.StatusCode)
}

func (s *Suite) TestUpdateProfile_DuplicatePrimaryEmail() {
	s.loginCallback("github", map[string]any{
		"id":    "gh-p5",
		"email": "owner-email@example.com",
	})

	second, _ := s.loginCallback("github", map[string]any{
		"id":    "gh-p6",
		"email": "second-email@example.com",
	})

	email := "owner-email@example.com"
	resp := s.patchProfile(second.AccessToken, dto.UpdateProfileRequest{PrimaryEmail: &email})
	defer resp.Body.Close()

	s.Equal(http.StatusConflict, resp.StatusCode)
}

func (s *Suite) TestUpdateProfile_InvalidEmail() {
	authResp, _ := s.loginCallback("github", map[string]any{
		"id":    "gh-p7",
		"email": "valid@example.com",
	})

	email := "not-an-email"
	resp := s.patchProfile(authResp.AccessToken, dto.UpdateProfileRequest{PrimaryEmail: &email})
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestUpdateProfile_LinkFillsProviderEmail() {
	authResp, _ := s.loginCallback("github", map[string]any{
		"id":    "gh-p8",
		"email": "multi@example.com",
	})

	linkResp := s.linkCallback("google", map[string]any{
		"sub":   "go-p8",
		"email": "multi@gmail.com",
	}, authResp.AccessToken)
	linkResp.Body.Close()
	s.Equal(http.StatusOK, linkResp.StatusCode)

	profile, status := s.getProfile(authResp.AccessToken)
	s.Equal(http.StatusOK, status)

	s.Equal("multi@example.com", profile.PrimaryEmail, "Linking must not change the primary email")
	s.Require().NotNil(profile.GoogleEmail)
	s.Equal("multi@gmail.com", *profile.GoogleEmail)
}
