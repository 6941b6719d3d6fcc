package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/nehruadmin/internal/common"
)

type userReply struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type loginReply struct {
	Access  string    `json:"access"`
	Refresh string    `json:"refresh"`
	User    userReply `json:"user"`
}

func (s *RESTServer) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	pair, u, err := s.svc.Users.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, common.ErrorUnauthorized) {
		s.logger.Warn(r.Context(), "login rejected", "email", req.Email)
		writeDetail(w, http.StatusUnauthorized, "No active account found with the given credentials", "")
		return
	}
	if err != nil {
		s.fail(w, r, "User", err)
		return
	}

	s.logger.Info(r.Context(), "login", "user_id", u.ID)
	writeJSON(w, http.StatusOK, loginReply{
		Access:  pair.AccessToken,
		Refresh: pair.RefreshToken,
		User:    userReply{ID: u.ID, Email: u.Email, Username: u.Username},
	})
}

func (s *RESTServer) refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Refresh == "" {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"refresh": {"This field is required."}})
		return
	}

	access, err := s.svc.Users.Refresh(r.Context(), req.Refresh)
	if errors.Is(err, common.ErrInvalidToken) || errors.Is(err, common.ErrTokenExpired) {
		writeDetail(w, http.StatusUnauthorized, "Token is invalid or expired", "token_not_valid")
		return
	}
	if err != nil {
		s.fail(w, r, "User", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"access": access})
}
