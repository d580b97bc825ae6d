package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthCheckHandler)

	// user service
	router.HandlerFunc(http.MethodPost, "/signup", app.signupHandler)
	router.HandlerFunc(http.MethodPost, "/signin", app.signinHandler)
	router.HandlerFunc(http.MethodPost, "/google-auth", app.googleAuthHandler)
	router.HandlerFunc(http.MethodPost, "/search-users", app.searchUsersHandler)
	router.HandlerFunc(http.MethodPost, "/get-profile", app.getProfileHandler)

	// blog service
	router.HandlerFunc(http.MethodPost, "/create-blog", app.requireAuth(app.createBlogHandler))
	router.HandlerFunc(http.MethodPost, "/get-blog", app.getBlogHandler)
	router.HandlerFunc(http.MethodPost, "/latest-blogs", app.latestBlogsHandler)
	router.HandlerFunc(http.MethodPost, "/all-latest-blogs-count", app.latestBlogsCountHandler)
	router.HandlerFunc(http.MethodGet, "/trending-blogs", app.trendingBlogsHandler)
	router.HandlerFunc(http.MethodPost, "/search-blogs", app.searchBlogsHandler)
	router.HandlerFunc(http.MethodPost, "/search-blogs-count", app.searchBlogsCountHandler)

	// engagement service
	router.HandlerFunc(http.MethodPost, "/like-blog", app.requireAuth(app.likeBlogHandler))
	router.HandlerFunc(http.MethodPost, "/isliked-by-user", app.requireAuth(app.isLikedByUserHandler))

	// media service
	router.HandlerFunc(http.MethodGet, "/get-upload-url", app.getUploadURLHandler)

	return app.recoverPanic(app.rateLimit(app.logRequest(router)))
}
