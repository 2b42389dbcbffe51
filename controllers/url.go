package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"goshorturl/models"
	"goshorturl/repository"
	"goshorturl/shortener"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultExpirationDays = 30
	maxExpirationDays     = 36500
)

var (
	errInvalidURL        = errors.New("invalid URL")
	errInvalidExpiration = errors.New("invalid expiration_days")
)

type shortenReqData struct {
	Url            string `json:"url" binding:"required"`
	ExpirationDays *int   `json:"expiration_days"`
}

// parseAndValidate checks that Url is an absolute http(s) URL with a host and
// that ExpirationDays, when given, is within range.
//
// Return non-nil error if validation failed.
func (s *shortenReqData) parseAndValidate() error {
	u, err := url.ParseRequestURI(s.Url)
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", errInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", errInvalidURL)
	}

	if s.ExpirationDays == nil {
		return nil
	}
	if days := *s.ExpirationDays; days < 1 || days > maxExpirationDays {
		return fmt.Errorf("%w: %d", errInvalidExpiration, days)
	}
	return nil
}

func (s *shortenReqData) expirationDays() int {
	if s.ExpirationDays == nil {
		return defaultExpirationDays
	}
	return *s.ExpirationDays
}

type shortenResp struct {
	ShortUrl   string `json:"short_url"`
	Expiration string `json:"expiration"`
}

type statsResp struct {
	Clicks    int64  `json:"clicks"`
	CreatedAt string `json:"created_at"`
	ExpiresAt string `json:"expires_at"`
}

type UrlController struct {
	DB  repository.Repository
	Log *zap.Logger
	// RedirectOrigin is prefixed to "/r/<id>" in shorten responses.
	RedirectOrigin string
	// AtomicClicks makes Redirect use the store's atomic increment when the
	// store has one.
	AtomicClicks bool

	NewID func() string
	Now   func() time.Time
}

func (u UrlController) newID() string {
	if u.NewID != nil {
		return u.NewID()
	}
	return shortener.Generate()
}

func (u UrlController) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

func (u UrlController) Shorten(c *gin.Context) {
	var req shortenReqData
	if err := c.ShouldBindJSON(&req); err != nil {
		u.Log.Warn("invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := req.parseAndValidate(); err != nil {
		u.Log.Warn("invalid shorten data", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	createdAt := u.now().UTC().Truncate(time.Millisecond)
	link := models.ShortLink{
		ID:          u.newID(),
		OriginalURL: req.Url,
		CreatedAt:   createdAt,
		ExpiresAt:   createdAt.Add(time.Duration(req.expirationDays()) * 24 * time.Hour),
		Clicks:      0,
	}
	if err := u.DB.Upsert(c.Request.Context(), &link); err != nil {
		u.Log.Error("failed to store link", zap.String("id", link.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	u.Log.Debug("link created", zap.String("id", link.ID), zap.String("url", link.OriginalURL))

	c.JSON(http.StatusCreated, shortenResp{
		ShortUrl:   fmt.Sprintf("%s/r/%s", u.RedirectOrigin, link.ID),
		Expiration: link.ExpiresAt.Format(time.RFC3339Nano),
	})
}

func (u UrlController) Redirect(c *gin.Context) {
	id := c.Param("short_code")
	if err := shortener.Validate(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "short URL not found"})
		return
	}

	link, err := u.countClick(c, id)
	if err != nil {
		u.respondLookupError(c, id, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, link.OriginalURL)
}

// countClick adds one click to the link. Without an atomic store primitive the
// read-increment-write below can lose increments under concurrent redirects.
func (u UrlController) countClick(c *gin.Context, id string) (*models.ShortLink, error) {
	ctx := c.Request.Context()
	if incr, ok := u.DB.(repository.ClickIncrementer); ok && u.AtomicClicks {
		return incr.IncrementClicks(ctx, id)
	}

	link, err := u.DB.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	link.Clicks++
	if err := u.DB.Upsert(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (u UrlController) Stats(c *gin.Context) {
	id := c.Param("short_code")
	if err := shortener.Validate(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "short URL not found"})
		return
	}

	link, err := u.DB.Get(c.Request.Context(), id)
	if err != nil {
		u.respondLookupError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, statsResp{
		Clicks:    link.Clicks,
		CreatedAt: link.CreatedAt.UTC().Format(time.RFC3339Nano),
		ExpiresAt: link.ExpiresAt.UTC().Format(time.RFC3339Nano),
	})
}

func (u UrlController) respondLookupError(c *gin.Context, id string, err error) {
	if errors.Is(err, repository.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "short URL not found"})
		return
	}
	u.Log.Error("store failure", zap.String("id", id), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
}
