package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/roboarchive/roboarchive-backend/auth"
	"github.com/roboarchive/roboarchive-backend/database"
	"github.com/roboarchive/roboarchive-backend/errs"
	"github.com/roboarchive/roboarchive-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	members   database.MemberStore
	tokens    *auth.Service
}

func newAuthHandler(members database.MemberStore, tokens *auth.Service) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		members:   members,
		tokens:    tokens,
	}
}

// register creates a new member account with the standard privilege
// level. A duplicate email maps to Conflict via the store's unique
// constraint.
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("registration request"))
			return
		}

		if req.Email == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email"))
			return
		}
		if req.Password == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("password"))
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("hashing password", err))
			return
		}

		member := models.Member{
			Name:           req.Name,
			Email:          req.Email,
			Password:       hash,
			Role:           req.Role,
			JoinYear:       req.JoinYear,
			GraduationYear: req.GraduationYear,
			IsActive:       true,
			PrivilegeLevel: models.PrivilegeStandard,
		}

		if err := h.members.Create(r.Context(), &member); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "member", err))
			return
		}

		h.logger.Info().Uint("member_id", member.ID).Str("email", member.Email).Msg("member registered")

		h.responder.WriteStatusJSON(w, http.StatusCreated, map[string]interface{}{
			"message": "Member registered successfully",
			"member":  summarize(&member),
		})
	}
}

// login verifies credentials and issues a signed identity token. An
// unknown email and a wrong password return the same response so
// callers cannot tell which accounts exist.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("login request"))
			return
		}

		member, err := h.members.FindByEmail(r.Context(), req.Email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewInvalidCredentialsError())
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("find", "member", err))
			return
		}

		if !auth.CheckPassword(member.Password, req.Password) {
			h.logger.Warn().Str("email", req.Email).Msg("login failed")
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}

		token, err := h.tokens.IssueToken(member)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("issuing token", err))
			return
		}

		h.logger.Info().Uint("member_id", member.ID).Msg("login ok")

		h.responder.WriteJSON(w, loginResponse{
			Token:  token,
			Member: summarize(member),
		})
	}
}
