package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hustleworks/hustleblog/internal/common"
)

var (
	// ErrFederatedAccount is returned when a password sign-in targets an
	// account that was created through Google.
	ErrFederatedAccount = errors.New("account is registered with google")

	// ErrLocalAccount is returned when a Google sign-in targets an account
	// that holds a local password.
	ErrLocalAccount = errors.New("account is registered with a password")

	ErrInvalidCredentials = errors.New("password is incorrect")
)

func NewUserService(db *mongo.Database, mb common.MessageProducer, tokens *TokenService, google IdentityVerifier) *UserService {
	return &UserService{
		m:      newUserModel(db),
		mb:     mb,
		tokens: tokens,
		google: google,
	}
}

// Setup creates the collection indexes the service relies on.
func (s *UserService) Setup(ctx context.Context) error {
	return s.m.EnsureIndexes(ctx)
}

// SignUp creates a local account, publishes a user.created event and returns
// an issued token with the public profile fields.
func (s *UserService) SignUp(ctx context.Context, fullname, email, password string) (*AuthResult, error) {
	v := common.NewValidator()
	validateFullname(v, fullname)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		PersonalInfo: PersonalInfo{
			Fullname: fullname,
			Email:    email,
		},
	}

	if err := u.PersonalInfo.Password.set(password); err != nil {
		return nil, err
	}

	if err := s.createWithDerivedUsername(ctx, &u); err != nil {
		return nil, err
	}

	s.publishUserCreated(ctx, &u)

	return s.formatAuthResult(&u)
}

// SignIn authenticates a local account by email and password.
func (s *UserService) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	v := common.NewValidator()
	validateEmail(v, email)
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u, err := s.m.getUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if u.GoogleAuth {
		return nil, ErrFederatedAccount
	}

	ok, err := u.PersonalInfo.Password.compare(password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return s.formatAuthResult(u)
}

// GoogleAuth verifies the identity assertion and finds or creates the
// matching federated account.
func (s *UserService) GoogleAuth(ctx context.Context, assertion string) (*AuthResult, error) {
	if assertion == "" {
		return nil, fmt.Errorf("%w: empty assertion", ErrInvalidAssertion)
	}

	identity, err := s.google.Verify(ctx, assertion)
	if err != nil {
		return nil, err
	}

	u, err := s.m.getUserByEmail(ctx, identity.Email)
	switch {
	case err == nil:
		if !u.GoogleAuth {
			return nil, ErrLocalAccount
		}
		return s.formatAuthResult(u)
	case errors.Is(err, ErrNotFound):
		// first federated login, fall through and create the account
	default:
		return nil, err
	}

	u = &User{
		PersonalInfo: PersonalInfo{
			Fullname:   identity.Fullname,
			Email:      identity.Email,
			ProfileImg: identity.ProfileImg,
		},
		GoogleAuth: true,
	}

	if err := s.createWithDerivedUsername(ctx, u); err != nil {
		return nil, err
	}

	s.publishUserCreated(ctx, u)

	return s.formatAuthResult(u)
}

// GetProfile returns the public user document for a username.
func (s *UserService) GetProfile(ctx context.Context, username string) (*User, error) {
	v := common.NewValidator()
	v.Check(username != "", "username", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getProfileByUsername(ctx, username)
}

// SearchUsers matches usernames case-insensitively, capped at 50 results.
func (s *UserService) SearchUsers(ctx context.Context, query string) ([]Profile, error) {
	v := common.NewValidator()
	v.Check(query != "", "query", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.searchUsers(ctx, query, 50)
}

// VerifyToken resolves an access token to a user id hex string.
func (s *UserService) VerifyToken(token string) (string, error) {
	id, err := s.tokens.Verify(token)
	if err != nil {
		return "", err
	}

	return id.Hex(), nil
}

// createWithDerivedUsername inserts the user under the email local-part,
// retrying with a short random suffix when the unique username index rejects
// the insert. The index decides uniqueness, not a prior read.
func (s *UserService) createWithDerivedUsername(ctx context.Context, u *User) error {
	base, _, _ := strings.Cut(u.PersonalInfo.Email, "@")

	u.PersonalInfo.Username = base
	if u.PersonalInfo.ProfileImg == "" {
		u.PersonalInfo.ProfileImg = defaultAvatar(base)
	}

	for attempt := 0; ; attempt++ {
		err := s.m.insertUser(ctx, u)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrDuplicateUsername) || attempt == maxUsernameRetries {
			return err
		}

		suffix, err := gonanoid.New(usernameSuffixLen)
		if err != nil {
			return err
		}
		u.PersonalInfo.Username = base + suffix
	}
}

func (s *UserService) publishUserCreated(ctx context.Context, u *User) {
	data := struct {
		Email    string
		Fullname string
		Username string
	}{
		Email:    u.PersonalInfo.Email,
		Fullname: u.PersonalInfo.Fullname,
		Username: u.PersonalInfo.Username,
	}

	// Best effort: the account exists either way, the welcome email is not
	// part of the signup contract.
	if msg, err := json.Marshal(data); err == nil {
		_ = s.mb.Publish(ctx, msg, common.UserCreatedKey, common.UserExchange)
	}
}

func (s *UserService) formatAuthResult(u *User) (*AuthResult, error) {
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		AccessToken: token,
		ProfileImg:  u.PersonalInfo.ProfileImg,
		Username:    u.PersonalInfo.Username,
		Fullname:    u.PersonalInfo.Fullname,
	}, nil
}

func defaultAvatar(seed string) string {
	return "https://api.dicebear.com/6.x/avataaars/svg?seed=" + seed
}
