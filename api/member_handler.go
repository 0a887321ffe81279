package api

import (
	"encoding/json"
	"net/http"

	"github.com/roboarchive/roboarchive-backend/database"
	"github.com/roboarchive/roboarchive-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type memberHandler struct {
	responder Responder
	logger    zerolog.Logger
	members   database.MemberStore
}

func newMemberHandler(members database.MemberStore) memberHandler {
	logger := log.With().Str("handlerName", "memberHandler").Logger()

	return memberHandler{
		responder: NewResponder(logger),
		logger:    logger,
		members:   members,
	}
}

// getAllMembers retrieves the full roster, newest first
func (h memberHandler) getAllMembers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := h.members.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "members", err))
			return
		}

		h.responder.WriteJSON(w, members)
	}
}

// getMember retrieves a single member by ID
func (h memberHandler) getMember() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "memberID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		member, err := h.members.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "member", err))
			return
		}

		h.responder.WriteJSON(w, member)
	}
}

// getMemberStats returns the member's contribution counters. Counts
// are zero-valued, never null, when nothing matches.
func (h memberHandler) getMemberStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "memberID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		stats, err := h.members.Stats(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("aggregate", "member stats", err))
			return
		}

		h.responder.WriteJSON(w, stats)
	}
}

// updateMember applies a partial update; absent fields keep their
// stored values. Admin-only (enforced by middleware).
func (h memberHandler) updateMember() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "memberID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req memberUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("member update request"))
			return
		}

		member, err := h.members.Update(r.Context(), id, database.MemberChanges{
			Name:           req.Name,
			Role:           req.Role,
			GraduationYear: req.GraduationYear,
			IsActive:       req.IsActive,
			PrivilegeLevel: req.PrivilegeLevel,
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "member", err))
			return
		}

		h.responder.WriteJSON(w, member)
	}
}

// deleteMember removes a member. Admin-only (enforced by middleware).
func (h memberHandler) deleteMember() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "memberID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.members.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "member", err))
			return
		}

		h.logger.Info().Uint("member_id", id).Msg("member deleted")

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "member deleted successfully",
		})
	}
}
