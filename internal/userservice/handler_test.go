package userservice

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hustleworks/hustleblog/internal/common"
)

type stubVerifier struct {
	identity *Identity
	err      error
}

func (s *stubVerifier) Verify(ctx context.Context, assertion string) (*Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.identity, nil
}

func setupTestEnvironment(t *testing.T, google IdentityVerifier) (*UserService, *mongo.Database, func() error) {
	t.Helper()

	db := common.TestDB(t)
	connURL := common.TestRabbitMQ(t)
	mb, err := common.NewMessageBroker(connURL)
	assert.NoError(t, err)

	err = common.SetupUserExchange(mb)
	assert.NoError(t, err)

	s := NewUserService(db, mb, NewTokenService("test-secret", time.Hour), google)
	err = s.Setup(context.Background())
	assert.NoError(t, err)

	cleanup := func() error {
		_, err := db.Collection(usersCollection).DeleteMany(context.Background(), bson.M{})
		return err
	}

	return s, db, cleanup
}

func TestSignUp(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t, &stubVerifier{})

	testCases := []struct {
		name     string
		fullname string
		email    string
		password string
		wantErr  string
	}{
		{
			name:     "valid signup",
			fullname: "Jane Doe",
			email:    "jane@example.com",
			password: "Abcdef1",
		},
		{
			name:     "short fullname",
			fullname: "Ja",
			email:    "jane2@example.com",
			password: "Abcdef1",
			wantErr:  "fullname",
		},
		{
			name:     "invalid email",
			fullname: "Jane Doe",
			email:    "not-an-email",
			password: "Abcdef1",
			wantErr:  "email",
		},
		{
			name:     "password without digit",
			fullname: "Jane Doe",
			email:    "jane3@example.com",
			password: "Abcdefg",
			wantErr:  "password",
		},
		{
			name:     "password without uppercase",
			fullname: "Jane Doe",
			email:    "jane4@example.com",
			password: "abcdef1",
			wantErr:  "password",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			res, err := s.SignUp(ctx, tc.fullname, tc.email, tc.password)
			if tc.wantErr != "" {
				var vErr common.ValidationError
				assert.ErrorAs(t, err, &vErr)
				assert.Contains(t, vErr.Errors, tc.wantErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "jane", res.Username)
			assert.Equal(t, tc.fullname, res.Fullname)
			assert.NotEmpty(t, res.AccessToken)

			// the token must resolve to the stored user
			userID, err := s.VerifyToken(res.AccessToken)
			assert.NoError(t, err)

			var u User
			err = db.Collection(usersCollection).FindOne(ctx, bson.M{"personal_info.email": tc.email}).Decode(&u)
			assert.NoError(t, err)
			assert.Equal(t, u.ID.Hex(), userID)
			assert.False(t, u.GoogleAuth)

			t.Cleanup(func() {
				assert.NoError(t, cleanup())
			})
		})
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t, &stubVerifier{})
	defer func() {
		assert.NoError(t, cleanup())
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := s.SignUp(ctx, "Jane Doe", "jane@example.com", "Abcdef1")
	assert.NoError(t, err)

	_, err = s.SignUp(ctx, "Other Jane", "jane@example.com", "Abcdef1")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestSignUpUsernameCollision(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t, &stubVerifier{})
	defer func() {
		assert.NoError(t, cleanup())
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	first, err := s.SignUp(ctx, "Jane Doe", "jane@example.com", "Abcdef1")
	assert.NoError(t, err)

	// same local-part, different domain: colliding derived username
	second, err := s.SignUp(ctx, "Jane Smith", "jane@other.com", "Abcdef1")
	assert.NoError(t, err)

	assert.Equal(t, "jane", first.Username)
	assert.NotEqual(t, first.Username, second.Username)
	assert.Len(t, second.Username, len("jane")+usernameSuffixLen)
}

func TestSignIn(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t, &stubVerifier{})
	defer func() {
		assert.NoError(t, cleanup())
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	signup, err := s.SignUp(ctx, "Jane Doe", "jane@example.com", "Abcdef1")
	assert.NoError(t, err)

	// a federated account to sign in against
	federated := &User{
		PersonalInfo: PersonalInfo{
			Fullname: "Google Jane",
			Email:    "gjane@example.com",
			Username: "gjane",
		},
		GoogleAuth: true,
	}
	_, err = db.Collection(usersCollection).InsertOne(ctx, federated)
	assert.NoError(t, err)

	testCases := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid credentials", email: "jane@example.com", password: "Abcdef1"},
		{name: "unknown email", email: "nobody@example.com", password: "Abcdef1", wantErr: ErrNotFound},
		{name: "wrong password", email: "jane@example.com", password: "Wrong123", wantErr: ErrInvalidCredentials},
		{name: "federated account", email: "gjane@example.com", password: "Abcdef1", wantErr: ErrFederatedAccount},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := s.SignIn(ctx, tc.email, tc.password)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, signup.Username, res.Username)
			assert.Equal(t, signup.Fullname, res.Fullname)
			assert.Equal(t, signup.ProfileImg, res.ProfileImg)
		})
	}
}

func TestGoogleAuth(t *testing.T) {
	identity := &Identity{
		Email:      "gjane@example.com",
		Fullname:   "Google Jane",
		ProfileImg: "https://lh3.googleusercontent.com/a/abc=s384-c",
	}
	s, db, cleanup := setupTestEnvironment(t, &stubVerifier{identity: identity})
	defer func() {
		assert.NoError(t, cleanup())
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// first login creates the account
	res, err := s.GoogleAuth(ctx, "assertion")
	assert.NoError(t, err)
	assert.Equal(t, "gjane", res.Username)
	assert.Equal(t, identity.ProfileImg, res.ProfileImg)

	var u User
	err = db.Collection(usersCollection).FindOne(ctx, bson.M{"personal_info.email": identity.Email}).Decode(&u)
	assert.NoError(t, err)
	assert.True(t, u.GoogleAuth)

	// second login finds it
	again, err := s.GoogleAuth(ctx, "assertion")
	assert.NoError(t, err)
	assert.Equal(t, res.Username, again.Username)

	count, err := db.Collection(usersCollection).CountDocuments(ctx, bson.M{})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGoogleAuthLocalConflict(t *testing.T) {
	identity := &Identity{Email: "jane@example.com", Fullname: "Jane Doe"}
	s, _, cleanup := setupTestEnvironment(t, &stubVerifier{identity: identity})
	defer func() {
		assert.NoError(t, cleanup())
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := s.SignUp(ctx, "Jane Doe", "jane@example.com", "Abcdef1")
	assert.NoError(t, err)

	_, err = s.GoogleAuth(ctx, "assertion")
	assert.ErrorIs(t, err, ErrLocalAccount)
}

func TestGoogleAuthInvalidAssertion(t *testing.T) {
	s, _, _ := setupTestEnvironment(t, &stubVerifier{err: fmt.Errorf("%w: bad signature", ErrInvalidAssertion)})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := s.GoogleAuth(ctx, "assertion")
	assert.ErrorIs(t, err, ErrInvalidAssertion)
}

func TestGetProfile(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t, &stubVerifier{})
	defer func() {
		assert.NoError(t, cleanup())
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := s.SignUp(ctx, "Jane Doe", "jane@example.com", "Abcdef1")
	assert.NoError(t, err)

	profile, err := s.GetProfile(ctx, "jane")
	assert.NoError(t, err)
	assert.Equal(t, "Jane Doe", profile.PersonalInfo.Fullname)
	assert.Empty(t, profile.PersonalInfo.Password.Plain)

	_, err = s.GetProfile(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchUsers(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t, &stubVerifier{})
	defer func() {
		assert.NoError(t, cleanup())
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := s.SignUp(ctx, "Jane Doe", "jane@example.com", "Abcdef1")
	assert.NoError(t, err)
	_, err = s.SignUp(ctx, "John Roe", "john@example.com", "Abcdef1")
	assert.NoError(t, err)

	users, err := s.SearchUsers(ctx, "JA")
	assert.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "jane", users[0].PersonalInfo.Username)
}
