package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/roboarchive/roboarchive-backend/auth"
	"github.com/roboarchive/roboarchive-backend/database"
	"github.com/roboarchive/roboarchive-backend/errs"
	"github.com/roboarchive/roboarchive-backend/storage"
	"github.com/rs/zerolog/log"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, tokens *auth.Service, attachments storage.Store, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		healthHandler:  newHealthHandler(startupTime),
		authHandler:    newAuthHandler(database.MemberRepo(), tokens),
		memberHandler:  newMemberHandler(database.MemberRepo()),
		taskHandler:    newTaskHandler(database.TaskRepo()),
		articleHandler: newArticleHandler(database.ArticleRepo(), attachments),
		robotHandler:   newRobotHandler(database.RobotRepo(), attachments),
	}
}

type healthHandler struct {
	responder   Responder
	startupTime time.Time
}

func newHealthHandler(startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()
	return healthHandler{
		responder:   NewResponder(logger),
		startupTime: startupTime,
	}
}

func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]interface{}{
			"status":    "Server is running",
			"timestamp": time.Now(),
			"uptime":    time.Since(h.startupTime).String(),
		})
	}
}

// pathID parses a numeric route parameter into a record id
func pathID(r *http.Request, param string) (uint, error) {
	raw := chi.URLParam(r, param)
	if raw == "" {
		return 0, errs.NewBadRequestError("missing " + param)
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errs.NewBadRequestError("invalid " + param)
	}
	return uint(id), nil
}
