package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkwell/inkwell/internal/api/http/handler"
	"github.com/inkwell/inkwell/internal/api/http/middleware"
	"github.com/inkwell/inkwell/internal/config"
	"github.com/inkwell/inkwell/internal/logger"
	"github.com/inkwell/inkwell/internal/model"
)

// Router wires the page handlers, session resolution and request logging
// into a gin engine.
type Router struct {
	authService  handler.AuthService
	postService  handler.PostService
	sessionStore model.SessionStore
	tokenManager model.TokenManager
	config       *config.Config
	logger       *logger.Logger
}

// New creates a new Router instance.
func New(
	authService handler.AuthService,
	postService handler.PostService,
	sessionStore model.SessionStore,
	tokenManager model.TokenManager,
	config *config.Config,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:  authService,
		postService:  postService,
		sessionStore: sessionStore,
		tokenManager: tokenManager,
		config:       config,
		logger:       logger,
	}
}

// Register builds the engine with all middleware and routes. Templates are
// loaded from the configured glob; an empty glob skips loading so callers can
// install their own template set.
func (r *Router) Register() *gin.Engine {
	gin.SetMode(r.config.HTTP.Mode)

	engine := gin.New()
	engine.Use(gin.Recovery())

	logging := middleware.NewLogging(r.logger)
	session := middleware.NewSession(
		r.sessionStore,
		r.tokenManager,
		r.config.Session.CookieName,
		r.config.Session.CookieSecure,
		r.logger,
	)
	engine.Use(logging.Handle, session.Handle)

	if r.config.HTTP.TemplatesGlob != "" {
		engine.LoadHTMLGlob(r.config.HTTP.TemplatesGlob)
	}

	engine.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/posts")
	})

	r.registerAuthRoutes(engine)
	r.registerPostRoutes(engine)

	return engine
}

func (r *Router) registerAuthRoutes(engine *gin.Engine) {
	authHandler := handler.NewAuth(r.authService, r.sessionStore, r.logger)

	engine.GET("/signup", authHandler.SignupForm)
	engine.POST("/signup", authHandler.Signup)
	engine.GET("/signin", authHandler.SigninForm)
	engine.POST("/signin", authHandler.Signin)
	engine.GET("/signout", authHandler.Signout)
	engine.GET("/avatars/:ref", authHandler.Avatar)
}

func (r *Router) registerPostRoutes(engine *gin.Engine) {
	postHandler := handler.NewPost(r.postService, r.sessionStore, r.logger)

	engine.GET("/posts", postHandler.List)
	engine.GET("/posts/create", postHandler.CreateForm)
	engine.POST("/posts/create", postHandler.Create)
	engine.GET("/posts/:postID", postHandler.View)
	engine.GET("/posts/:postID/edit", postHandler.EditFormPage)
	engine.POST("/posts/:postID/edit", postHandler.Edit)
	engine.GET("/posts/:postID/remove", postHandler.Remove)
}
