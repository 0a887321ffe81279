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
)

type articleHandler struct {
	responder   Responder
	logger      zerolog.Logger
	articles    database.ArticleStore
	attachments storage.Store
}

func newArticleHandler(articles database.ArticleStore, attachments storage.Store) articleHandler {
	logger := log.With().Str("handlerName", "articleHandler").Logger()

	return articleHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		articles:    articles,
		attachments: attachments,
	}
}

// getAllArticles lists articles; type, category, year and search query
// parameters narrow the result conjunctively.
func (h articleHandler) getAllArticles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := database.ArticleFilter{
			Type:     r.URL.Query().Get("type"),
			Category: r.URL.Query().Get("category"),
			Search:   r.URL.Query().Get("search"),
		}
		if year := r.URL.Query().Get("year"); year != "" {
			y, err := strconv.Atoi(year)
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("year", "expected an integer"))
				return
			}
			filter.Year = y
		}

		articles, err := h.articles.FindAll(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "articles", err))
			return
		}

		h.responder.WriteJSON(w, articles)
	}
}

// getArticle reads one article and bumps its view counter
func (h articleHandler) getArticle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "articleID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		article, err := h.articles.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "article", err))
			return
		}

		h.responder.WriteJSON(w, article)
	}
}

// createArticle stores a new article authored by the caller, with an
// optional attachment (multipart "file" part, 50MB cap).
func (h articleHandler) createArticle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromContext(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		payload, filePath, err := h.readPayload(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if payload.Title == nil || *payload.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}

		article := models.Article{
			Title:           *payload.Title,
			Content:         payload.Content,
			AuthorID:        claims.MemberID,
			Category:        payload.Category,
			CompetitionYear: payload.CompetitionYear,
			FilePath:        filePath,
		}
		if payload.Type != nil {
			article.Type = models.ArticleType(*payload.Type)
		}

		if err := h.articles.Create(r.Context(), &article); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "article", err))
			return
		}

		h.responder.WriteStatusJSON(w, http.StatusCreated, article)
	}
}

// updateArticle applies a partial update. A newly uploaded attachment
// replaces the stored path; the previous blob is only reclaimed on
// delete.
func (h articleHandler) updateArticle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "articleID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		payload, filePath, err := h.readPayload(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		changes := database.ArticleChanges{
			Title:           payload.Title,
			Content:         payload.Content,
			Category:        payload.Category,
			CompetitionYear: payload.CompetitionYear,
			FilePath:        filePath,
		}
		if payload.Type != nil {
			articleType := models.ArticleType(*payload.Type)
			changes.Type = &articleType
		}

		article, err := h.articles.Update(r.Context(), id, changes)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "article", err))
			return
		}

		h.responder.WriteJSON(w, article)
	}
}

// deleteArticle removes an article and its attachment blob. Only the
// author or an administrator may delete.
func (h articleHandler) deleteArticle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromContext(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		id, err := pathID(r, "articleID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		article, err := h.articles.Lookup(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "article", err))
			return
		}

		if article.AuthorID != claims.MemberID && !claims.PrivilegeLevel.AtLeast(models.PrivilegeAdministrator) {
			h.responder.WriteError(w, errs.NewForbiddenError("only the author or an administrator can delete an article"))
			return
		}

		if err := h.articles.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "article", err))
			return
		}

		// The row is gone; a failed blob removal only leaks the blob.
		if article.FilePath != nil {
			if err := h.attachments.Remove(r.Context(), *article.FilePath); err != nil {
				h.logger.Warn().Err(err).Str("file_path", *article.FilePath).Msg("failed to remove attachment blob")
			}
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "article deleted successfully",
		})
	}
}

// readPayload decodes the article fields from either a multipart form
// (with optional attachment) or a JSON body.
func (h articleHandler) readPayload(w http.ResponseWriter, r *http.Request) (articlePayload, *string, error) {
	var payload articlePayload
	var filePath *string

	if isMultipart(r) {
		if err := parseUploadForm(w, r, maxArticleUpload); err != nil {
			return payload, nil, err
		}

		payload.Title = formString(r, "title")
		payload.Content = formString(r, "content")
		payload.Type = formString(r, "type")
		payload.Category = formString(r, "category")
		year, err := formInt(r, "competition_year")
		if err != nil {
			return payload, nil, err
		}
		payload.CompetitionYear = year

		if file, header, ok := formFile(r); ok {
			defer file.Close()
			path, err := h.attachments.Put(r.Context(), storage.KindArticles, header.Filename, file)
			if err != nil {
				return payload, nil, errs.NewInternalErrorWithCause("storing attachment", err)
			}
			filePath = &path
		}
		return payload, filePath, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxArticleUpload)
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return payload, nil, errs.Malformed("article request")
	}
	return payload, nil, nil
}
