package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hustleworks/hustleblog/internal/blogservice"
	"github.com/hustleworks/hustleblog/internal/common"
	"github.com/hustleworks/hustleblog/internal/engagementservice"
	"github.com/hustleworks/hustleblog/internal/userservice"
)

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var envelope envelope
	err = json.Unmarshal(responseBody, &envelope)
	if err != nil {
		t.Fatal(err)
	}

	return res.StatusCode, res.Header, envelope
}

type stubVerifier struct {
	identity *userservice.Identity
	err      error
}

func (s *stubVerifier) Verify(ctx context.Context, assertion string) (*userservice.Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.identity, nil
}

func newTestApplication(t *testing.T) (*application, *mongo.Database) {
	db := common.TestDB(t)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	rabbitURI := common.TestRabbitMQ(t)
	rabbitmq, err := common.NewMessageBroker(rabbitURI)
	assert.NoError(t, err)

	err = common.SetupUserExchange(rabbitmq)
	assert.NoError(t, err)

	t.Cleanup(func() { rabbitmq.Close() })

	cfg := &Config{
		Port:        ":0",
		Environment: "test",
		Version:     "test",
		JWTSecret:   "test-jwt-secret",
	}

	cache := common.NewCache(time.Minute, time.Minute)
	tokens := userservice.NewTokenService(cfg.JWTSecret, userservice.AccessTokenTime)
	google := &stubVerifier{identity: &userservice.Identity{
		Email:    "federated@example.com",
		Fullname: "Federated User",
	}}

	app := &application{
		config:            cfg,
		logger:            logger,
		userService:       userservice.NewUserService(db, rabbitmq, tokens, google),
		blogService:       blogservice.NewBlogService(db, cache),
		engagementService: engagementservice.NewEngagementService(db),
		broker:            rabbitmq,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, setup := range []func(context.Context) error{
		app.userService.Setup,
		app.blogService.Setup,
		app.engagementService.Setup,
	} {
		assert.NoError(t, setup(ctx))
	}

	return app, db
}

func (ts *testServer) post(t *testing.T, path string, data any, token *string) (int, http.Header, envelope) {
	jsonPayload, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}

	body := bytes.NewReader(jsonPayload)
	req, err := http.NewRequest(http.MethodPost, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != nil {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", *token))
	}
	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) get(t *testing.T, path string, token *string) (int, http.Header, envelope) {
	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if token != nil {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", *token))
	}
	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func strptr(s string) *string {
	return &s
}
