package main

import (
	"errors"
	"net/http"

	"github.com/payday-community/riskengine/risk"
	"github.com/payday-community/riskengine/risk/queue"
	"github.com/payday-community/riskengine/store"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	slogecho "github.com/samber/slog-echo"
)

// Admin and integration API. Content-creating services call the evaluate
// endpoint after writing a post or comment; administrators manage the
// sensitive-word list and work the manual review queue.
func (s *Server) buildAdminAPI() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(slogecho.New(s.logger))
	e.Use(middleware.Recover())
	e.Use(echoprometheus.NewMiddleware("riskd"))

	e.POST("/evaluate/:kind/:id", s.handleEnqueueEvaluation)

	e.GET("/admin/words", s.handleListWords)
	e.POST("/admin/words", s.handleCreateWord)
	e.PUT("/admin/words/:id", s.handleUpdateWord)
	e.DELETE("/admin/words/:id", s.handleDeleteWord)

	e.GET("/admin/review/pending", s.handlePendingReview)
	e.POST("/admin/review/:kind/:id", s.handleResolveReview)

	return e
}

func (s *Server) handleEnqueueEvaluation(c echo.Context) error {
	kind, err := risk.ParseContentKind(c.Param("kind"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	task := queue.Task{Kind: kind, ContentID: c.Param("id")}
	if err := s.queue.Enqueue(c.Request().Context(), task); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "enqueue failed")
	}
	return c.JSON(http.StatusAccepted, map[string]string{"status": "queued"})
}

func (s *Server) handleListWords(c echo.Context) error {
	var isActive *bool
	switch c.QueryParam("active") {
	case "true":
		v := true
		isActive = &v
	case "false":
		v := false
		isActive = &v
	}
	words, err := s.wordStore.ListWords(c.Request().Context(), c.QueryParam("category"), isActive)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "listing words failed")
	}
	return c.JSON(http.StatusOK, words)
}

type wordCreateBody struct {
	Word     string `json:"word"`
	Category string `json:"category"`
}

func (s *Server) handleCreateWord(c echo.Context) error {
	var body wordCreateBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if body.Word == "" || body.Category == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "word and category are required")
	}
	word, err := s.wordStore.CreateWord(c.Request().Context(), body.Word, body.Category)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateWord) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "creating word failed")
	}
	s.purgeWordCache(c)
	return c.JSON(http.StatusCreated, word)
}

type wordUpdateBody struct {
	Word     *string `json:"word"`
	Category *string `json:"category"`
	IsActive *bool   `json:"is_active"`
}

func (s *Server) handleUpdateWord(c echo.Context) error {
	var body wordUpdateBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	word, err := s.wordStore.UpdateWord(c.Request().Context(), c.Param("id"), body.Word, body.Category, body.IsActive)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "word not found")
		}
		if errors.Is(err, store.ErrDuplicateWord) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "updating word failed")
	}
	s.purgeWordCache(c)
	return c.JSON(http.StatusOK, word)
}

func (s *Server) handleDeleteWord(c echo.Context) error {
	if err := s.wordStore.DeleteWord(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "word not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "deleting word failed")
	}
	s.purgeWordCache(c)
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handlePendingReview(c echo.Context) error {
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
	}
	items, err := s.content.PendingManual(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "listing pending review failed")
	}
	return c.JSON(http.StatusOK, items)
}

type reviewBody struct {
	Approved bool   `json:"approved"`
	Reason   string `json:"reason"`
}

func (s *Server) handleResolveReview(c echo.Context) error {
	kind, err := risk.ParseContentKind(c.Param("kind"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	var body reviewBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	err = s.content.ResolveManual(c.Request().Context(), kind, c.Param("id"), body.Approved, body.Reason)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "content not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "resolving review failed")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "resolved"})
}

func (s *Server) purgeWordCache(c echo.Context) {
	if err := s.words.Purge(c.Request().Context()); err != nil {
		s.logger.Warn("purging word cache failed", "err", err)
	}
}
