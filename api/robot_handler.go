package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/roboarchive/roboarchive-backend/database"
	"github.com/roboarchive/roboarchive-backend/errs"
	"github.com/roboarchive/roboarchive-backend/models"
	"github.com/roboarchive/roboarchive-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type robotHandler struct {
	responder   Responder
	logger      zerolog.Logger
	robots      database.RobotStore
	attachments storage.Store
}

func newRobotHandler(robots database.RobotStore, attachments storage.Store) robotHandler {
	logger := log.With().Str("handlerName", "robotHandler").Logger()

	return robotHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		robots:      robots,
		attachments: attachments,
	}
}

// getAllRobots lists the robot archive, most recent competition year
// first; year and search narrow the result conjunctively.
func (h robotHandler) getAllRobots() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := database.RobotFilter{
			Search: r.URL.Query().Get("search"),
		}
		if year := r.URL.Query().Get("year"); year != "" {
			y, err := strconv.Atoi(year)
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("year", "expected an integer"))
				return
			}
			filter.Year = y
		}

		robots, err := h.robots.FindAll(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "robots", err))
			return
		}

		h.responder.WriteJSON(w, robots)
	}
}

// getRobot retrieves one robot by ID
func (h robotHandler) getRobot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "robotID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		robot, err := h.robots.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "robot", err))
			return
		}

		h.responder.WriteJSON(w, robot)
	}
}

// createRobot archives a new robot project, with an optional
// attachment (multipart "file" part, 100MB cap). The team lead, when
// set, is credited in the same transaction.
func (h robotHandler) createRobot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, filePath, err := h.readPayload(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if payload.Name == nil || *payload.Name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}

		robot := models.Robot{
			Name:             *payload.Name,
			CompetitionYear:  payload.CompetitionYear,
			TeamLeadID:       payload.TeamLeadID,
			Specifications:   toJSON(payload.Specifications),
			PerformanceNotes: payload.PerformanceNotes,
			FinalRank:        payload.FinalRank,
			FilePath:         filePath,
		}

		if err := h.robots.Create(r.Context(), &robot); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "robot", err))
			return
		}

		h.responder.WriteStatusJSON(w, http.StatusCreated, robot)
	}
}

// updateRobot applies a partial update; a new attachment replaces the
// stored path, the previous blob is only reclaimed on delete.
func (h robotHandler) updateRobot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "robotID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		payload, filePath, err := h.readPayload(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		robot, err := h.robots.Update(r.Context(), id, database.RobotChanges{
			Name:             payload.Name,
			CompetitionYear:  payload.CompetitionYear,
			TeamLeadID:       payload.TeamLeadID,
			Specifications:   toJSON(payload.Specifications),
			PerformanceNotes: payload.PerformanceNotes,
			FinalRank:        payload.FinalRank,
			FilePath:         filePath,
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "robot", err))
			return
		}

		h.responder.WriteJSON(w, robot)
	}
}

// deleteRobot removes a robot and its attachment blob
func (h robotHandler) deleteRobot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "robotID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		robot, err := h.robots.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "robot", err))
			return
		}

		if err := h.robots.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "robot", err))
			return
		}

		if robot.FilePath != nil {
			if err := h.attachments.Remove(r.Context(), *robot.FilePath); err != nil {
				h.logger.Warn().Err(err).Str("file_path", *robot.FilePath).Msg("failed to remove attachment blob")
			}
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "robot deleted successfully",
		})
	}
}

// readPayload decodes the robot fields from either a multipart form
// (with optional attachment) or a JSON body.
func (h robotHandler) readPayload(w http.ResponseWriter, r *http.Request) (robotPayload, *string, error) {
	var payload robotPayload
	var filePath *string

	if isMultipart(r) {
		if err := parseUploadForm(w, r, maxRobotUpload); err != nil {
			return payload, nil, err
		}

		payload.Name = formString(r, "name")
		payload.PerformanceNotes = formString(r, "performance_notes")
		if specs := formString(r, "specifications"); specs != nil {
			payload.Specifications = *specs
		}
		year, err := formInt(r, "competition_year")
		if err != nil {
			return payload, nil, err
		}
		payload.CompetitionYear = year
		rank, err := formInt(r, "final_rank")
		if err != nil {
			return payload, nil, err
		}
		payload.FinalRank = rank
		lead, err := formUint(r, "team_lead_id")
		if err != nil {
			return payload, nil, err
		}
		payload.TeamLeadID = lead

		if file, header, ok := formFile(r); ok {
			defer file.Close()
			path, err := h.attachments.Put(r.Context(), storage.KindRobots, header.Filename, file)
			if err != nil {
				return payload, nil, errs.NewInternalErrorWithCause("storing attachment", err)
			}
			filePath = &path
		}
		return payload, filePath, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRobotUpload)
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return payload, nil, errs.Malformed("robot request")
	}
	return payload, nil, nil
}

// toJSON stores the specifications value as a JSON column. Raw strings
// that are not valid JSON are stored as JSON strings, so free-text
// spec sheets round-trip.
func toJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		if json.Valid([]byte(s)) {
			return datatypes.JSON(s)
		}
		quoted, _ := json.Marshal(s)
		return datatypes.JSON(quoted)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
