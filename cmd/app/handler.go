package main

import (
	"errors"
	"net/http"

	"github.com/hustleworks/hustleblog/internal/blogservice"
	"github.com/hustleworks/hustleblog/internal/common"
	"github.com/hustleworks/hustleblog/internal/engagementservice"
	"github.com/hustleworks/hustleblog/internal/userservice"
)

type signupRequest struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (app *application) signupHandler(w http.ResponseWriter, r *http.Request) {
	var input signupRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	result, err := app.userService.SignUp(r.Context(), input.Fullname, input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrDuplicateEmail):
			app.writeErrorResponse(w, r, http.StatusInternalServerError, "Email already exists")
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, result, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (app *application) signinHandler(w http.ResponseWriter, r *http.Request) {
	var input signinRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	result, err := app.userService.SignIn(r.Context(), input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrNotFound):
			app.writeErrorResponse(w, r, http.StatusForbidden, "No such email found!")
		case errors.Is(err, userservice.ErrInvalidCredentials):
			app.writeErrorResponse(w, r, http.StatusForbidden, "Password is incorrect")
		case errors.Is(err, userservice.ErrFederatedAccount):
			app.writeErrorResponse(w, r, http.StatusForbidden, "Account already registered. Kindly login with Google")
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, result, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type googleAuthRequest struct {
	AccessToken string `json:"access_token"`
}

func (app *application) googleAuthHandler(w http.ResponseWriter, r *http.Request) {
	var input googleAuthRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	result, err := app.userService.GoogleAuth(r.Context(), input.AccessToken)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrInvalidAssertion):
			app.writeErrorResponse(w, r, http.StatusInternalServerError, "Authentication failed")
		case errors.Is(err, userservice.ErrLocalAccount):
			app.writeErrorResponse(w, r, http.StatusForbidden, "Something went wrong, kindly enter email and password")
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, result, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type searchUsersRequest struct {
	Query string `json:"query"`
}

func (app *application) searchUsersHandler(w http.ResponseWriter, r *http.Request) {
	var input searchUsersRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	users, err := app.userService.SearchUsers(r.Context(), input.Query)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"users": users}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type getProfileRequest struct {
	Username string `json:"username"`
}

func (app *application) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	var input getProfileRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user, err := app.userService.GetProfile(r.Context(), input.Username)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrNotFound):
			app.writeErrorResponse(w, r, http.StatusNotFound, "User not found")
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, user, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) createBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input blogservice.SaveBlogRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	slug, err := app.blogService.SaveBlog(r.Context(), app.getUserContext(r), &input)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.writeErrorResponse(w, r, http.StatusInternalServerError, "blog not found")
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"id": slug}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type getBlogRequest struct {
	BlogID string `json:"blog_id"`
	Draft  bool   `json:"draft"`
	Mode   string `json:"mode"`
}

func (app *application) getBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input getBlogRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blog, err := app.blogService.GetBlog(r.Context(), input.BlogID, input.Draft, input.Mode)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrDraftBlog):
			app.writeErrorResponse(w, r, http.StatusInternalServerError, "Draft blogs are not accessible")
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.writeErrorResponse(w, r, http.StatusInternalServerError, "blog not found")
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blog": blog}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type latestBlogsRequest struct {
	Page int `json:"page"`
}

func (app *application) latestBlogsHandler(w http.ResponseWriter, r *http.Request) {
	var input latestBlogsRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blogs, err := app.blogService.LatestBlogs(r.Context(), input.Page)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blogs": blogs}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) latestBlogsCountHandler(w http.ResponseWriter, r *http.Request) {
	count, err := app.blogService.PublishedCount(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"totalDocs": count}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) trendingBlogsHandler(w http.ResponseWriter, r *http.Request) {
	blogs, err := app.blogService.TrendingBlogs(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blogs": blogs}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) searchBlogsHandler(w http.ResponseWriter, r *http.Request) {
	var input blogservice.SearchQuery

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blogs, err := app.blogService.SearchBlogs(r.Context(), &input)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blogs": blogs}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) searchBlogsCountHandler(w http.ResponseWriter, r *http.Request) {
	var input blogservice.SearchQuery

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	count, err := app.blogService.SearchCount(r.Context(), &input)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"totalDocs": count}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type likeBlogRequest struct {
	ID string `json:"_id"`

	// sent by older clients; the server derives the current state itself
	IsLikedByUser bool `json:"isLikedByUser"`
}

func (app *application) likeBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input likeBlogRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	liked, err := app.engagementService.ToggleLike(r.Context(), app.getUserContext(r), input.ID)
	if err != nil {
		switch {
		case errors.Is(err, engagementservice.ErrBlogNotFound):
			app.writeErrorResponse(w, r, http.StatusInternalServerError, "blog not found")
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"liked_by_user": liked}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type isLikedRequest struct {
	ID string `json:"_id"`
}

func (app *application) isLikedByUserHandler(w http.ResponseWriter, r *http.Request) {
	var input isLikedRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	liked, err := app.engagementService.IsLiked(r.Context(), app.getUserContext(r), input.ID)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"result": liked}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getUploadURLHandler(w http.ResponseWriter, r *http.Request) {
	url, err := app.mediaService.UploadURL(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"uploadURL": url}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}
