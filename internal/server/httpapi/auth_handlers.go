package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type loginResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

func (s *HTTPServer) handleRegister(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid request body"})
	}

	if err := s.users.Register(c.Request().Context(), req.Email, req.Password); err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: "user created successfully"})
}

func (s *HTTPServer) handleLogin(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid request body"})
	}

	pair, err := s.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, loginResponse{
		Message:      "login successful",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *HTTPServer) handleRefresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid request body"})
	}

	access, err := s.users.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, refreshResponse{AccessToken: access})
}

func (s *HTTPServer) handleLogout(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid request body"})
	}

	if err := s.users.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "logged out successfully"})
}
