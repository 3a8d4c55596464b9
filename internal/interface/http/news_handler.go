package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-news-api/internal/application"
	"github.com/oksasatya/go-news-api/internal/interface/middleware"
	"github.com/oksasatya/go-news-api/pkg/response"
	"github.com/oksasatya/go-news-api/pkg/validation"
)

type NewsHandler struct {
	Svc    *application.ArticleService
	Logger *logrus.Logger
}

func NewNewsHandler(svc *application.ArticleService, logger *logrus.Logger) *NewsHandler {
	return &NewsHandler{Svc: svc, Logger: logger}
}

type createArticleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// editArticleRequest uses pointers so an omitted field is
// distinguishable from an explicit empty string.
type editArticleRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func articleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid article id", nil)
		return 0, false
	}
	return id, true
}

func (h *NewsHandler) respondError(c *gin.Context, id int64, err error) {
	switch {
	case errors.Is(err, application.ErrArticleNotFound):
		response.Error[any](c, http.StatusNotFound, fmt.Sprintf("No article found for id %d", id), nil)
	case errors.Is(err, application.ErrNotArticleAuthor):
		response.Error[any](c, http.StatusForbidden, "You are not authorized to do this action", nil)
	default:
		h.Logger.WithError(err).WithField("article_id", id).Error("article operation failed")
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}

// Index handles GET /api/news
func (h *NewsHandler) Index(c *gin.Context) {
	records, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list articles failed")
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.Success(c, http.StatusOK, records, "news", nil)
}

// Latest handles GET /api/latest_news
func (h *NewsHandler) Latest(c *gin.Context) {
	records, err := h.Svc.Latest(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("latest articles failed")
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.Success(c, http.StatusOK, records, "latest news", nil)
}

// Show handles GET /api/news/:id
func (h *NewsHandler) Show(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}
	record, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, id, err)
		return
	}
	response.Success(c, http.StatusOK, record, "news", nil)
}

// Create handles POST /api/news. The current user is optional: an
// unauthenticated request produces an anonymous article.
func (h *NewsHandler) Create(c *gin.Context) {
	var req createArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	id, err := h.Svc.Create(c.Request.Context(), application.CreateArticleInput{
		Title:   req.Title,
		Content: req.Content,
	}, middleware.CurrentUserID(c))
	if err != nil {
		h.Logger.WithError(err).Error("create article failed")
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id},
		fmt.Sprintf("Created new article (news) successfully with id %d", id), nil)
}

// Edit handles PATCH /api/news/:id (auth required)
func (h *NewsHandler) Edit(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}
	var req editArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	err := h.Svc.Update(c.Request.Context(), id, application.UpdateArticleInput{
		Title:   req.Title,
		Content: req.Content,
	}, middleware.CurrentUserID(c))
	if err != nil {
		h.respondError(c, id, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id},
		fmt.Sprintf("article (news) with id %d edited successfully", id), nil)
}

// Delete handles DELETE /api/news/:id (auth required)
func (h *NewsHandler) Delete(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id, middleware.CurrentUserID(c)); err != nil {
		h.respondError(c, id, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id},
		fmt.Sprintf("Deleted a news article successfully with id %d", id), nil)
}
