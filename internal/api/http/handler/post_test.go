package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/inkwell/internal/model"
)

func TestPostHandler_List(t *testing.T) {
	t.Run("renders the index", func(t *testing.T) {
		postService := &MockPostService{}
		postService.On("List", mock.Anything, (*uuid.UUID)(nil)).Return([]model.PostWithAuthor{
			{Post: model.Post{Title: "one"}},
			{Post: model.Post{Title: "two"}},
		}, nil)

		f := newFixture(t, &MockAuthService{}, postService, nil)
		w := f.do(httptest.NewRequest(http.MethodGet, "/posts", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "posts:2", w.Body.String())
	})

	t.Run("filters by author", func(t *testing.T) {
		authorID := uuid.New()

		postService := &MockPostService{}
		postService.On("List", mock.Anything, &authorID).Return([]model.PostWithAuthor{
			{Post: model.Post{AuthorID: authorID}},
		}, nil)

		f := newFixture(t, &MockAuthService{}, postService, nil)
		w := f.do(httptest.NewRequest(http.MethodGet, "/posts?author="+authorID.String(), nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "posts:1", w.Body.String())
		postService.AssertExpectations(t)
	})

	t.Run("unparseable author is a 404", func(t *testing.T) {
		postService := &MockPostService{}

		f := newFixture(t, &MockAuthService{}, postService, nil)
		w := f.do(httptest.NewRequest(http.MethodGet, "/posts?author=nobody", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		postService.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}

func TestPostHandler_View(t *testing.T) {
	postID := uuid.New()

	t.Run("renders the post", func(t *testing.T) {
		postService := &MockPostService{}
		postService.On("View", mock.Anything, postID).Return(model.PostWithAuthor{
			Post: model.Post{ID: postID, Title: "hello"},
		}, nil)

		f := newFixture(t, &MockAuthService{}, postService, nil)
		w := f.do(httptest.NewRequest(http.MethodGet, "/posts/"+postID.String(), nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "post:hello", w.Body.String())
	})

	t.Run("missing post is a 404 page", func(t *testing.T) {
		postService := &MockPostService{}
		postService.On("View", mock.Anything, postID).Return(model.PostWithAuthor{}, model.ErrNotFound)

		f := newFixture(t, &MockAuthService{}, postService, nil)
		w := f.do(httptest.NewRequest(http.MethodGet, "/posts/"+postID.String(), nil))

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Cannot find the post")
	})

	t.Run("unparseable id is a 404", func(t *testing.T) {
		postService := &MockPostService{}

		f := newFixture(t, &MockAuthService{}, postService, nil)
		w := f.do(httptest.NewRequest(http.MethodGet, "/posts/not-an-id", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		postService.AssertNotCalled(t, "View", mock.Anything, mock.Anything)
	})
}

func TestPostHandler_Create(t *testing.T) {
	account := model.AccountSummary{ID: uuid.New(), Name: "bob"}
	fields := url.Values{"title": {"hello"}, "content": {"world"}}

	t.Run("form renders for signed-in accounts", func(t *testing.T) {
		f := newFixture(t, &MockAuthService{}, &MockPostService{}, &account)
		w := f.do(httptest.NewRequest(http.MethodGet, "/posts/create", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "create", w.Body.String())
	})

	t.Run("form sends anonymous visitors to sign in", func(t *testing.T) {
		f := newFixture(t, &MockAuthService{}, &MockPostService{}, nil)
		w := f.do(httptest.NewRequest(http.MethodGet, "/posts/create", nil))

		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/signin", w.Header().Get("Location"))

		flashes := f.flashes(t)
		require.Len(t, flashes, 1)
		assert.Equal(t, "user did not login", flashes[0].Message)
	})

	t.Run("successful creation redirects to the post", func(t *testing.T) {
		postID := uuid.New()

		postService := &MockPostService{}
		postService.On("Create", mock.Anything, mock.MatchedBy(func(s model.Session) bool {
			return s.Authenticated() && s.Account.ID == account.ID
		}), model.CreatePostParams{Title: "hello", Content: "world"}).
			Return(model.Post{ID: postID, AuthorID: account.ID, Title: "hello"}, nil)

		f := newFixture(t, &MockAuthService{}, postService, &account)
		w := f.do(formRequest("/posts/create", fields))

		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/posts/"+postID.String(), w.Header().Get("Location"))

		flashes := f.flashes(t)
		require.Len(t, flashes, 1)
		assert.Equal(t, "posted", flashes[0].Message)
	})

	t.Run("empty title goes back with a flash", func(t *testing.T) {
		postService := &MockPostService{}
		postService.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(model.Post{}, model.NewValidationError("need title"))

		f := newFixture(t, &MockAuthService{}, postService, &account)
		req := formRequest("/posts/create", url.Values{"title": {""}, "content": {"world"}})
		req.Header.Set("Referer", "/posts/create")
		w := f.do(req)

		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/posts/create", w.Header().Get("Location"))

		flashes := f.flashes(t)
		require.Len(t, flashes, 1)
		assert.Equal(t, "need title", flashes[0].Message)
	})

	t.Run("anonymous post is sent to sign in", func(t *testing.T) {
		postService := &MockPostService{}
		postService.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(model.Post{}, model.ErrAuthenticationRequired)

		f := newFixture(t, &MockAuthService{}, postService, nil)
		w := f.do(formRequest("/posts/create", fields))

		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/signin", w.Header().Get("Location"))
	})
}

func TestPostHandler_Edit(t *testing.T) {
	account := model.AccountSummary{ID: uuid.New(), Name: "bob"}
	postID := uuid.New()
	fields := url.Values{"title": {"new"}, "content": {"newer"}}

	t.Run("form renders the raw post", func(t *testing.T) {
		postService := &MockPostService{}
		postService.On("EditForm", mock.Anything, mock.Anything, postID).
			Return(model.Post{ID: postID, Title: "draft"}, nil)

		f := newFixture(t, &MockAuthService{}, postService, &account)
		w := f.do(httptest.NewRequest(http.MethodGet, "/posts/"+postID.String()+"/edit", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "edit:draft", w.Body.String())
	})

	t.Run("successful edit redirects to the post", func(t *testing.T) {
		postService := &MockPostService{}
		postService.On("Edit", mock.Anything, mock.Anything, postID, model.UpdatePostParams{Title: "new", Content: "newer"}).
			Return(nil)

		f := newFixture(t, &MockAuthService{}, postService, &account)
		w := f.do(formRequest("/posts/"+postID.String()+"/edit", fields))

		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/posts/"+postID.String(), w.Header().Get("Location"))

		flashes := f.flashes(t)
		require.Len(t, flashes, 1)
		assert.Equal(t, "post edited", flashes[0].Message)
	})

	t.Run("non-owner gets a 403 page", func(t *testing.T) {
		postService := &MockPostService{}
		postService.On("Edit", mock.Anything, mock.Anything, postID, mock.Anything).
			Return(model.ErrNotAuthorized)

		f := newFixture(t, &MockAuthService{}, postService, &account)
		w := f.do(formRequest("/posts/"+postID.String()+"/edit", fields))

		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "No authorization")
	})

	t.Run("missing post gets a 404 page", func(t *testing.T) {
		postService := &MockPostService{}
		postService.On("Edit", mock.Anything, mock.Anything, postID, mock.Anything).
			Return(model.ErrNotFound)

		f := newFixture(t, &MockAuthService{}, postService, &account)
		w := f.do(formRequest("/posts/"+postID.String()+"/edit", fields))

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Cannot find the post")
	})
}

func TestPostHandler_Remove(t *testing.T) {
	account := model.AccountSummary{ID: uuid.New(), Name: "bob"}
	postID := uuid.New()

	t.Run("successful removal redirects to the index", func(t *testing.T) {
		postService := &MockPostService{}
		postService.On("Remove", mock.Anything, mock.Anything, postID).Return(nil)

		f := newFixture(t, &MockAuthService{}, postService, &account)
		w := f.do(httptest.NewRequest(http.MethodGet, "/posts/"+postID.String()+"/remove", nil))

		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/posts", w.Header().Get("Location"))

		flashes := f.flashes(t)
		require.Len(t, flashes, 1)
		assert.Equal(t, "post deleted", flashes[0].Message)
	})

	t.Run("non-owner gets a 403 page", func(t *testing.T) {
		postService := &MockPostService{}
		postService.On("Remove", mock.Anything, mock.Anything, postID).Return(model.ErrNotAuthorized)

		f := newFixture(t, &MockAuthService{}, postService, &account)
		w := f.do(httptest.NewRequest(http.MethodGet, "/posts/"+postID.String()+"/remove", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
