package delivery

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	authdomain "mindmaker-backend/internal/auth/domain"
	"mindmaker-backend/internal/auth/identity"
	"mindmaker-backend/internal/profile/domain"
	"mindmaker-backend/internal/profile/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProfiles struct {
	gotUsername string
	gotAvatar   []byte
	err         error
	getErr      error
}

func (s *stubProfiles) Get(_ context.Context, who identity.Identity) (*domain.Profile, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if !who.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	return &domain.Profile{ID: who.UserID, Username: "ann"}, nil
}

func (s *stubProfiles) Update(_ context.Context, who identity.Identity, username string, avatar usecase.Avatar) (*domain.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.gotUsername = username
	if avatar.Body != nil {
		data, err := io.ReadAll(avatar.Body)
		if err != nil {
			return nil, err
		}
		s.gotAvatar = data
	}
	return &domain.Profile{ID: who.UserID, Username: username}, nil
}

func newProfileRouter(uc usecase.ProfileUsecase, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if userID != "" {
		r.Use(func(c *gin.Context) {
			c.Set("user", &authdomain.User{ID: userID})
			c.Next()
		})
	}
	h := NewProfileHandler(uc)
	r.GET("/api/profile", h.GetProfile)
	r.PUT("/api/profile", h.UpdateProfile)
	return r
}

func multipartBody(t *testing.T, username string, avatar []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("username", username))
	if avatar != nil {
		part, err := mw.CreateFormFile("avatar", "me.png")
		require.NoError(t, err)
		_, err = part.Write(avatar)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestGetProfileRequiresIdentity(t *testing.T) {
	w := httptest.NewRecorder()
	newProfileRouter(&stubProfiles{}, "").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/profile", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	newProfileRouter(&stubProfiles{}, "u1").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/profile", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"ann"`)
}

func TestGetProfileFailure(t *testing.T) {
	w := httptest.NewRecorder()
	newProfileRouter(&stubProfiles{getErr: errors.New("db down")}, "u1").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/profile", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"failed to load profile"}`, w.Body.String())
}

func TestUpdateProfileWithAvatar(t *testing.T) {
	stub := &stubProfiles{}
	body, contentType := multipartBody(t, "ann", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPut, "/api/profile", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	newProfileRouter(stub, "u1").ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ann", stub.gotUsername)
	assert.Equal(t, "png-bytes", string(stub.gotAvatar))
}

func TestUpdateProfileErrors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrEmptyUsername, http.StatusBadRequest},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		body, contentType := multipartBody(t, " ", nil)
		req := httptest.NewRequest(http.MethodPut, "/api/profile", body)
		req.Header.Set("Content-Type", contentType)

		w := httptest.NewRecorder()
		newProfileRouter(&stubProfiles{err: tc.err}, "u1").ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code, tc.err.Error())
		if tc.want == http.StatusInternalServerError {
			assert.JSONEq(t, `{"error":"failed to update profile"}`, w.Body.String())
		}
	}
}
