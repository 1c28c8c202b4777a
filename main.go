package main

import (
	"errors"
	"html/template"
	"net/http"
	"os"
	"strconv"
	"strings"

	"shortlink/config"
	"shortlink/db"
	_ "shortlink/docs" // Import docs for Swagger
	"shortlink/pkg/logger"
	"shortlink/pkg/qr"
	"shortlink/shortener"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Shortlink API
// @version 1.0
// @description Service for shortening URLs with optional expiration and use limits
// @host localhost:8080
// @BasePath /
// @schemes http

type server struct {
	svc *shortener.Service
	cfg *config.Config
}

func (s *server) shortLink(code string) string {
	return s.cfg.BaseURL + "/api/" + code
}

// @Summary Create a new short URL
// @Description Shortens a URL with optional use limit, expiration and custom alias
// @ID createShortURL
// @Accept x-www-form-urlencoded
// @Produce html
// @Param url formData string true "URL to shorten"
// @Param use formData string false "Number of allowed uses (positive integer)"
// @Param date_valid formData string false "Expiration date (YYYY-MM-DD)"
// @Param time_valid formData string false "Expiration time (HH:MM)"
// @Param domain formData string false "Custom alias"
// @Success 200 "Rendered page with the short link"
// @Router /api [post]
// @Tags shortlink
func (s *server) createShortURL(c *gin.Context) {
	rec, err := s.svc.Create(shortener.CreateRequest{
		URL:   c.PostForm("url"),
		Uses:  c.PostForm("use"),
		Date:  c.PostForm("date_valid"),
		Time:  c.PostForm("time_valid"),
		Alias: c.PostForm("domain"),
	})
	if err != nil {
		s.renderCreateError(c, err)
		return
	}

	link := s.shortLink(rec.ShortCode)

	qrURI, err := qr.DataURI(link, 256)
	if err != nil {
		// The link is still usable without the image.
		logger.Warn().Err(err).Str("link", link).Msg("QR code generation failed")
	}

	c.HTML(http.StatusOK, "result.html", gin.H{
		"Title":    "The Shortened URL is",
		"ShortURL": link,
		// template.URL keeps the data URI from being sanitized to #ZgotmplZ.
		"QRCode": template.URL(qrURI),
	})
}

// renderCreateError maps engine errors to the shared result page. The family
// convention is HTTP 200 with a human-readable message.
func (s *server) renderCreateError(c *gin.Context, err error) {
	var message, correction string
	switch {
	case errors.Is(err, shortener.ErrInvalidURL):
		message = "Invalid URL Input"
		correction = "Go back & ensure that your URL is properly entered"
	case errors.Is(err, shortener.ErrInvalidUseCount):
		message = "Invalid number of uses"
		correction = "The use count must be a positive whole number"
	case errors.Is(err, shortener.ErrInvalidExpiration):
		message = "Invalid expiration input"
		correction = "Use YYYY-MM-DD for the date and HH:MM for the time"
	case errors.Is(err, shortener.ErrPastExpiration):
		message = "Expiration is in the past"
		correction = "Pick a date and time after the current moment"
	case errors.Is(err, shortener.ErrAliasConflict):
		message = "That alias is already taken"
		correction = "Choose a different custom alias"
	case errors.Is(err, shortener.ErrGenerationExhausted):
		message = "Could not generate a short link"
		correction = "Please try again"
	default:
		logger.Error().Err(err).Msg("create failed")
		c.HTML(http.StatusInternalServerError, "result.html", gin.H{
			"Title":      "500 Error!!",
			"Message":    "Something went wrong on our side",
			"Correction": "Please try again later",
		})
		return
	}
	c.HTML(http.StatusOK, "result.html", gin.H{
		"Title":      "400 Error!!",
		"Message":    message,
		"Correction": correction,
	})
}

// @Summary Redirect to original URL
// @Description Consumes one use of the short link and redirects to its target
// @ID resolveShortURL
// @Param id path string true "Short code"
// @Success 302 "Redirect to original URL"
// @Failure 404 "Short URL not found or expired"
// @Router /api/{id} [get]
// @Tags shortlink
func (s *server) resolveShortURL(c *gin.Context) {
	target, err := s.svc.Resolve(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, shortener.ErrNotFound):
			c.HTML(http.StatusNotFound, "notfound.html", gin.H{
				"Message": "Short URL not found",
			})
		case errors.Is(err, shortener.ErrExpired):
			c.HTML(http.StatusNotFound, "notfound.html", gin.H{
				"Message": "This short URL has expired",
			})
		default:
			logger.Error().Err(err).Str("code", c.Param("id")).Msg("resolve failed")
			c.HTML(http.StatusInternalServerError, "result.html", gin.H{
				"Title":      "500 Error!!",
				"Message":    "Something went wrong on our side",
				"Correction": "Please try again later",
			})
		}
		return
	}

	c.Redirect(http.StatusFound, target)
}

// @Summary Check remaining uses
// @Description Reports remaining uses and expiry status without consuming a use
// @ID checkShortURL
// @Accept x-www-form-urlencoded
// @Produce html
// @Param shorturl formData string true "Full short URL issued by this service"
// @Success 200 "Rendered page with the usage summary"
// @Router /use [post]
// @Tags shortlink
func (s *server) checkShortURL(c *gin.Context) {
	shortURL := strings.TrimSpace(c.PostForm("shorturl"))
	prefix := s.cfg.BaseURL + "/api/"
	if !strings.HasPrefix(shortURL, prefix) {
		c.HTML(http.StatusOK, "use.html", gin.H{
			"Result": "That link was not issued by this service",
		})
		return
	}

	summary, err := s.svc.Inspect(strings.TrimPrefix(shortURL, prefix))
	if err != nil {
		switch {
		case errors.Is(err, shortener.ErrNotFound):
			c.HTML(http.StatusOK, "use.html", gin.H{
				"Result": "Short URL not found",
			})
		default:
			logger.Error().Err(err).Msg("inspect failed")
			c.HTML(http.StatusInternalServerError, "result.html", gin.H{
				"Title":      "500 Error!!",
				"Message":    "Something went wrong on our side",
				"Correction": "Please try again later",
			})
		}
		return
	}

	var result string
	switch {
	case summary.Expired:
		result = "This short URL has expired"
	case summary.Unlimited:
		result = "This short URL has unlimited uses"
	default:
		result = "Remaining uses: " + strconv.Itoa(summary.RemainingUses)
	}
	c.HTML(http.StatusOK, "use.html", gin.H{"Result": result})
}

func (s *server) useForm(c *gin.Context) {
	c.HTML(http.StatusOK, "use.html", gin.H{})
}

func (s *server) landing(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", nil)
}

func (s *server) notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "notfound.html", gin.H{
		"Message": "Page not found",
	})
}

func newRouter(s *server) *gin.Engine {
	r := gin.Default()

	r.Use(cors.Default())

	r.LoadHTMLGlob("templates/*")
	r.Static("/public", "./public")

	// Add Swagger documentation route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/api", s.createShortURL)
	r.POST("/api/shorturl", s.createShortURL)
	r.GET("/api/:id", s.resolveShortURL)
	r.GET("/use", s.useForm)
	r.POST("/use", s.checkShortURL)
	r.GET("/", s.landing)
	r.NoRoute(s.notFound)

	return r
}

func main() {
	dotenvErr := godotenv.Load()

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	if dotenvErr != nil {
		logger.Warn().Msg(".env file not found, using environment variables")
	}

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg := config.FromEnv()

	database, err := db.InitDB()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer database.Close()

	logger.Info().Msg("connected to PostgreSQL database")

	svc := shortener.NewService(database, shortener.Policy{
		CodeLength:            cfg.Shortener.CodeLength,
		MaxGenerateAttempts:   cfg.Shortener.MaxGenerateAttempts,
		DedupByURL:            cfg.Shortener.DedupByURL,
		CoerceNonPositiveUses: cfg.Shortener.CoerceNonPositiveUses,
	})

	r := newRouter(&server{svc: svc, cfg: cfg})

	logger.Info().Str("port", cfg.Port).Msg("server is running")
	logger.Info().Msg("Swagger documentation available at: " + cfg.BaseURL + "/swagger/index.html")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
