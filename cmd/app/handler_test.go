package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	status, _, body := ts.get(t, "/healthcheck", nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "available", body["status"])
	assert.Equal(t, app.config.Environment, body["environment"])
}

func TestSignupSigninFlow(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	signup := map[string]string{
		"fullname": "Jane Doe",
		"email":    "jane@x.com",
		"password": "Abcdef1",
	}

	status, _, body := ts.post(t, "/signup", signup, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["access_token"])
	assert.Equal(t, "Jane Doe", body["fullname"])
	assert.Equal(t, "jane", body["username"])

	t.Run("duplicate email", func(t *testing.T) {
		status, _, body := ts.post(t, "/signup", signup, nil)
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "Email already exists", body["error"])
	})

	t.Run("signin with the same credentials", func(t *testing.T) {
		status, _, signinBody := ts.post(t, "/signin", map[string]string{
			"email":    "jane@x.com",
			"password": "Abcdef1",
		}, nil)

		assert.Equal(t, http.StatusOK, status)
		assert.NotEmpty(t, signinBody["access_token"])
		assert.Equal(t, body["fullname"], signinBody["fullname"])
		assert.Equal(t, body["username"], signinBody["username"])
		assert.Equal(t, body["profile_img"], signinBody["profile_img"])
	})

	t.Run("signin with the wrong password", func(t *testing.T) {
		status, _, body := ts.post(t, "/signin", map[string]string{
			"email":    "jane@x.com",
			"password": "Abcdef2",
		}, nil)

		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "Password is incorrect", body["error"])
	})

	t.Run("signin with an unknown email", func(t *testing.T) {
		status, _, body := ts.post(t, "/signin", map[string]string{
			"email":    "nobody@x.com",
			"password": "Abcdef1",
		}, nil)

		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "No such email found!", body["error"])
	})
}

func TestSignupValidation(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	t.Run("short fullname", func(t *testing.T) {
		status, _, body := ts.post(t, "/signup", map[string]string{
			"fullname": "Ja",
			"email":    "ja@x.com",
			"password": "Abcdef1",
		}, nil)

		assert.Equal(t, http.StatusForbidden, status)

		msg, ok := body["error"].(string)
		assert.True(t, ok, "error must be a string, got %T", body["error"])
		assert.Equal(t, "fullname must be at least 3 characters long", msg)
	})

	t.Run("several failing fields join into one message", func(t *testing.T) {
		status, _, body := ts.post(t, "/signup", map[string]string{
			"fullname": "Ja",
			"email":    "not-an-email",
			"password": "Abcdef1",
		}, nil)

		assert.Equal(t, http.StatusForbidden, status)

		msg, ok := body["error"].(string)
		assert.True(t, ok, "error must be a string, got %T", body["error"])
		assert.Equal(t, "email must be a valid email address; fullname must be at least 3 characters long", msg)
	})
}

func TestBlogFlow(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, _, body := ts.post(t, "/signup", map[string]string{
		"fullname": "John Writer",
		"email":    "john@x.com",
		"password": "Abcdef1",
	}, nil)
	token := body["access_token"].(string)

	blog := map[string]any{
		"title":  "My First Blog",
		"des":    "a short description",
		"banner": "https://example.com/banner.jpeg",
		"content": map[string]any{
			"blocks": []map[string]any{
				{"type": "paragraph", "data": map[string]any{"text": "hello world"}},
			},
		},
		"tags":  []string{"go"},
		"draft": false,
	}

	status, _, created := ts.post(t, "/create-blog", blog, strptr(token))
	assert.Equal(t, http.StatusOK, status)
	slug := created["id"].(string)
	assert.NotEmpty(t, slug)

	t.Run("create without a token", func(t *testing.T) {
		status, _, body := ts.post(t, "/create-blog", blog, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "No access token", body["error"])
	})

	t.Run("create with an invalid token", func(t *testing.T) {
		status, _, body := ts.post(t, "/create-blog", blog, strptr("garbage"))
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "Access token is invalid", body["error"])
	})

	t.Run("get the published blog", func(t *testing.T) {
		status, _, body := ts.post(t, "/get-blog", map[string]any{
			"blog_id": slug,
			"draft":   false,
			"mode":    "",
		}, nil)

		assert.Equal(t, http.StatusOK, status)
		got := body["blog"].(map[string]any)
		assert.Equal(t, "My First Blog", got["title"])
	})

	t.Run("draft blog is gated", func(t *testing.T) {
		draft := map[string]any{
			"title": "Unfinished Thoughts",
			"draft": true,
		}
		status, _, created := ts.post(t, "/create-blog", draft, strptr(token))
		assert.Equal(t, http.StatusOK, status)
		draftSlug := created["id"].(string)

		status, _, body := ts.post(t, "/get-blog", map[string]any{
			"blog_id": draftSlug,
			"draft":   false,
			"mode":    "",
		}, nil)

		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "Draft blogs are not accessible", body["error"])
	})
}

func TestLikeFlow(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, _, body := ts.post(t, "/signup", map[string]string{
		"fullname": "Liker Person",
		"email":    "liker@x.com",
		"password": "Abcdef1",
	}, nil)
	token := body["access_token"].(string)

	_, _, created := ts.post(t, "/create-blog", map[string]any{
		"title":  "Likeable",
		"des":    "a short description",
		"banner": "https://example.com/banner.jpeg",
		"content": map[string]any{
			"blocks": []map[string]any{
				{"type": "paragraph", "data": map[string]any{"text": "hi"}},
			},
		},
		"tags": []string{"go"},
	}, strptr(token))
	slug := created["id"].(string)

	_, _, got := ts.post(t, "/get-blog", map[string]any{"blog_id": slug, "mode": "edit"}, nil)
	blogID := got["blog"].(map[string]any)["_id"].(string)

	status, _, body := ts.post(t, "/like-blog", map[string]any{"_id": blogID}, strptr(token))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["liked_by_user"])

	status, _, body = ts.post(t, "/isliked-by-user", map[string]any{"_id": blogID}, strptr(token))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["result"])

	status, _, body = ts.post(t, "/like-blog", map[string]any{"_id": blogID}, strptr(token))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["liked_by_user"])

	status, _, body = ts.post(t, "/isliked-by-user", map[string]any{"_id": blogID}, strptr(token))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["result"])
}
