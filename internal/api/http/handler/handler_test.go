package handler

import (
	"context"
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/inkwell/internal/api/http/middleware"
	"github.com/inkwell/inkwell/internal/model"
	"github.com/inkwell/inkwell/internal/service"
	"github.com/inkwell/inkwell/internal/session"
	"github.com/inkwell/inkwell/internal/testutil"
	"github.com/inkwell/inkwell/internal/token"
)

const testTemplates = `
{{define "posts.html"}}posts:{{len .Posts}}{{end}}
{{define "post.html"}}post:{{.Post.Title}}{{end}}
{{define "create.html"}}create{{end}}
{{define "edit.html"}}edit:{{.Post.Title}}{{end}}
{{define "signup.html"}}signup{{end}}
{{define "signin.html"}}signin{{end}}
{{define "error.html"}}error:{{.Message}}{{end}}
`

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, params service.RegisterParams) (model.AccountSummary, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.AccountSummary), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, params service.LoginParams) (model.AccountSummary, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.AccountSummary), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockAuthService) Avatar(ctx context.Context, ref string) (io.ReadCloser, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// MockPostService mocks the PostService interface
type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) Create(ctx context.Context, session model.Session, params model.CreatePostParams) (model.Post, error) {
	args := m.Called(ctx, session, params)
	return args.Get(0).(model.Post), args.Error(1)
}

func (m *MockPostService) View(ctx context.Context, id uuid.UUID) (model.PostWithAuthor, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.PostWithAuthor), args.Error(1)
}

func (m *MockPostService) List(ctx context.Context, authorID *uuid.UUID) ([]model.PostWithAuthor, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).([]model.PostWithAuthor), args.Error(1)
}

func (m *MockPostService) EditForm(ctx context.Context, session model.Session, id uuid.UUID) (model.Post, error) {
	args := m.Called(ctx, session, id)
	return args.Get(0).(model.Post), args.Error(1)
}

func (m *MockPostService) Edit(ctx context.Context, session model.Session, id uuid.UUID, params model.UpdatePostParams) error {
	args := m.Called(ctx, session, id, params)
	return args.Error(0)
}

func (m *MockPostService) Remove(ctx context.Context, session model.Session, id uuid.UUID) error {
	args := m.Called(ctx, session, id)
	return args.Error(0)
}

// fixture wires the handlers behind the real session middleware so requests
// carry a live session and flashes can be asserted on.
type fixture struct {
	engine   *gin.Engine
	sessions *session.Manager
	cookie   *http.Cookie
	session  model.Session
}

func newFixture(t *testing.T, authService AuthService, postService PostService, account *model.AccountSummary) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	log := testutil.MakeNoopLogger()
	sessions := session.NewManager(0)
	tokens := token.NewJWT("test-secret")

	sess, err := sessions.Create(ctx)
	require.NoError(t, err)
	if account != nil {
		require.NoError(t, sessions.SetAccount(ctx, sess.ID, *account))
		sess, err = sessions.Get(ctx, sess.ID)
		require.NoError(t, err)
	}

	cookieValue, err := tokens.GenerateSessionToken(sess.ID)
	require.NoError(t, err)

	engine := gin.New()
	engine.SetHTMLTemplate(template.Must(template.New("").Parse(testTemplates)))
	engine.Use(middleware.NewSession(sessions, tokens, "inkwell_session", false, log).Handle)

	authHandler := NewAuth(authService, sessions, log)
	postHandler := NewPost(postService, sessions, log)

	engine.GET("/posts", postHandler.List)
	engine.GET("/posts/create", postHandler.CreateForm)
	engine.POST("/posts/create", postHandler.Create)
	engine.GET("/posts/:postID", postHandler.View)
	engine.GET("/posts/:postID/edit", postHandler.EditFormPage)
	engine.POST("/posts/:postID/edit", postHandler.Edit)
	engine.GET("/posts/:postID/remove", postHandler.Remove)
	engine.GET("/signup", authHandler.SignupForm)
	engine.POST("/signup", authHandler.Signup)
	engine.GET("/signin", authHandler.SigninForm)
	engine.POST("/signin", authHandler.Signin)
	engine.GET("/signout", authHandler.Signout)
	engine.GET("/avatars/:ref", authHandler.Avatar)

	return &fixture{
		engine:   engine,
		sessions: sessions,
		cookie:   &http.Cookie{Name: "inkwell_session", Value: cookieValue},
		session:  sess,
	}
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	req.AddCookie(f.cookie)
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *fixture) flashes(t *testing.T) []model.Flash {
	t.Helper()
	flashes, err := f.sessions.ConsumeFlashes(context.Background(), f.session.ID)
	require.NoError(t, err)
	return flashes
}
