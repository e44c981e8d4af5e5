package handlers_fiber

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"senior-hub-api/config"
	"senior-hub-api/internal/dto"
	"senior-hub-api/internal/entities"
	"senior-hub-api/internal/notify"
	"senior-hub-api/internal/repository"
	"senior-hub-api/internal/token"
	"senior-hub-api/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type usecaseMock struct{ mock.Mock }

func (m *usecaseMock) Invite(ctx context.Context, req entities.InviteRequest) (*entities.InviteReport, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.InviteReport), args.Error(1)
}

func (m *usecaseMock) Validate(ctx context.Context, token string) (*entities.InvitationView, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.InvitationView), args.Error(1)
}

func (m *usecaseMock) Accept(ctx context.Context, token string) (*entities.AcceptReport, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AcceptReport), args.Error(1)
}

func (m *usecaseMock) Team(ctx context.Context, teamID string) (*entities.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *usecaseMock) CreateTeam(ctx context.Context, team entities.Team) (*entities.Team, error) {
	args := m.Called(ctx, team)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *usecaseMock) CreateUser(ctx context.Context, usr entities.User) (*entities.User, error) {
	args := m.Called(ctx, usr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func newTestApp(uc usecase.InterfaceUsecase) *fiber.App {
	app := fiber.New()
	RegisterHandlers(app, NewHandler(zap.NewNop().Sugar(), uc))
	return app
}

func TestPostTeamInvitation(t *testing.T) {
	uc := &usecaseMock{}
	exp := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	uc.On("Invite", mock.Anything, entities.InviteRequest{
		TeamID: "T1", InviterID: "U1", RoleSlug: "member", Email: "a@x.com",
	}).Return(&entities.InviteReport{
		InvitationID: "inv-1",
		Token:        "tok",
		Email:        "a@x.com",
		Link:         "https://hub/invitations?token=tok",
		ExpiresAt:    exp,
		Delivery:     entities.DeliveryReport{MessageID: "m1", Channel: "smtp", Recipient: "a@x.com"},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/teams/T1/invitations",
		strings.NewReader(`{"inviter_id":"U1","role":"member","email":"a@x.com"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := newTestApp(uc).Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var body struct {
		Invitation dto.Invitation `json:"invitation"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "inv-1", body.Invitation.InvitationID)
	require.Equal(t, "https://hub/invitations?token=tok", body.Invitation.Link)
	require.Equal(t, "smtp", body.Invitation.Delivery.Channel)
	require.True(t, exp.Equal(body.Invitation.ExpiresAt))
	uc.AssertExpectations(t)
}

func TestPostTeamInvitationInvalidBody(t *testing.T) {
	uc := &usecaseMock{}

	req := httptest.NewRequest(http.MethodPost, "/teams/T1/invitations", strings.NewReader(`{`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := newTestApp(uc).Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	uc.AssertNotCalled(t, "Invite", mock.Anything, mock.Anything)
}

func TestPostTeamInvitationInvalidRole(t *testing.T) {
	uc := &usecaseMock{}
	uc.On("Invite", mock.Anything, mock.Anything).Return(nil, entities.ErrInvalidRole)

	req := httptest.NewRequest(http.MethodPost, "/teams/T1/invitations",
		strings.NewReader(`{"inviter_id":"U1","role":"nonexistent","email":"a@x.com"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := newTestApp(uc).Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, dto.INVALIDROLE, body.Error.Code)
}

func TestGetInvitationValidate(t *testing.T) {
	uc := &usecaseMock{}
	uc.On("Validate", mock.Anything, "tok").Return(&entities.InvitationView{
		Token:   "tok",
		Email:   "a@x.com",
		Status:  entities.InvitationPending,
		Team:    entities.Team{ID: "T1", Name: "Care"},
		Role:    entities.Role{Slug: "member", Name: "Member"},
		Inviter: entities.User{ID: "U1", Name: "Olivia", Email: "o@x.com"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/invitations/validate?token=tok", nil)
	resp, err := newTestApp(uc).Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body dto.InvitationView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "T1", body.Team.TeamID)
	require.Equal(t, "member", body.Role.Slug)
	require.Equal(t, "pending", body.Status)
}

func TestGetInvitationValidateExpired(t *testing.T) {
	uc := &usecaseMock{}
	uc.On("Validate", mock.Anything, "old").Return(nil, entities.ErrExpired)

	req := httptest.NewRequest(http.MethodGet, "/invitations/validate?token=old", nil)
	resp, err := newTestApp(uc).Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusGone, resp.StatusCode)
}

func TestPostInvitationAccept(t *testing.T) {
	uc := &usecaseMock{}
	uc.On("Accept", mock.Anything, "tok").Return(&entities.AcceptReport{
		Message: "invitation accepted", TeamID: "T1", UserID: "U2", RoleSlug: "member", Added: true,
	}, nil).Once()
	uc.On("Accept", mock.Anything, "tok").Return(nil, entities.ErrAlreadyUsed).Once()

	app := newTestApp(uc)
	accept := func() *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/invitations/accept", strings.NewReader(`{"token":"tok"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	resp := accept()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body dto.AcceptResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	require.Equal(t, "invitation accepted", body.Message)
	require.Equal(t, "U2", body.UserID)
	require.True(t, body.Added)

	resp = accept()
	defer resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var errBody dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	require.Equal(t, dto.ALREADYUSED, errBody.Error.Code)
}

func TestGetTeam(t *testing.T) {
	uc := &usecaseMock{}
	uc.On("Team", mock.Anything, "T1").Return(&entities.Team{ID: "T1", Name: "Care", Members: []entities.Member{
		{UserID: "U1", Name: "Olivia", RoleSlug: "owner"},
	}}, nil)
	uc.On("Team", mock.Anything, "T404").Return(nil, entities.NotFound(entities.ResourceTeam, "T404"))

	app := newTestApp(uc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/teams/T1", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var team dto.Team
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&team))
	require.Len(t, team.Members, 1)
	require.Equal(t, "owner", team.Members[0].Role)

	resp2, err := app.Test(httptest.NewRequest(http.MethodGet, "/teams/T404", nil))
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusNotFound, resp2.StatusCode)
	var errBody dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&errBody))
	require.Equal(t, dto.ErrorCode("team_not_found"), errBody.Error.Code)
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestPostTeam(t *testing.T) {
	uc := &usecaseMock{}
	uc.On("CreateTeam", mock.Anything, entities.Team{ID: "T1", Name: "Care", Members: []entities.Member{
		{UserID: "U1", RoleSlug: "owner"},
	}}).Return(&entities.Team{ID: "T1", Name: "Care", Members: []entities.Member{
		{UserID: "U1", Name: "Olivia", Email: "o@x.com", RoleSlug: "owner"},
	}}, nil).Once()
	uc.On("CreateTeam", mock.Anything, mock.Anything).Return(nil, entities.ErrAlreadyExists).Once()

	app := newTestApp(uc)
	body := `{"team_id":"T1","name":"Care","members":[{"user_id":"U1","role":"owner"}]}`

	resp := postJSON(t, app, "/teams", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Team dto.Team `json:"team"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	require.Equal(t, "T1", created.Team.TeamID)
	require.Len(t, created.Team.Members, 1)
	require.Equal(t, "owner", created.Team.Members[0].Role)

	resp = postJSON(t, app, "/teams", body)
	defer resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var errBody dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	require.Equal(t, dto.ALREADYEXISTS, errBody.Error.Code)
	uc.AssertExpectations(t)
}

func TestPostUser(t *testing.T) {
	uc := &usecaseMock{}
	uc.On("CreateUser", mock.Anything, entities.User{ID: "U2", Email: "a@x.com", Name: "Alice"}).
		Return(&entities.User{ID: "U2", Email: "a@x.com", Name: "Alice"}, nil)

	resp := postJSON(t, newTestApp(uc), "/users", `{"user_id":"U2","email":"a@x.com","name":"Alice"}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var body struct {
		User dto.User `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, dto.User{UserID: "U2", Name: "Alice", Email: "a@x.com"}, body.User)
}

func TestInvitationFlowOnMemoryBackend(t *testing.T) {
	log := zap.NewNop().Sugar()
	repo, err := repository.New(context.Background(), "memory", log, &config.Config{})
	require.NoError(t, err)
	require.NoError(t, repo.OnStart(context.Background()))

	uc := usecase.New(log, usecase.Deps{
		Repo:     repo,
		Tokens:   token.NewRandom(token.DefaultBytes),
		Notifier: notify.NewLog(log),
	}, config.InvitationConfig{TTLSeconds: 3600, BaseURL: "https://hub.example.com", MaxTokenAttempts: 5, TokenBytes: 32}, time.Second)
	app := newTestApp(uc)

	for _, body := range []string{
		`{"user_id":"U1","email":"owner@x.com","name":"Olivia"}`,
		`{"user_id":"U2","email":"a@x.com","name":"Alice"}`,
	} {
		resp := postJSON(t, app, "/users", body)
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := postJSON(t, app, "/teams", `{"team_id":"T1","name":"Care","members":[{"user_id":"U1","role":"owner"}]}`)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/teams/T1/invitations", `{"inviter_id":"U1","role":"member","email":"a@x.com"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var invited struct {
		Invitation dto.Invitation `json:"invitation"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&invited))
	resp.Body.Close()
	require.Equal(t, "log", invited.Invitation.Delivery.Channel)

	resp = postJSON(t, app, "/invitations/accept", `{"token":"`+invited.Invitation.Token+`"}`)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/teams/T1", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	var team dto.Team
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&team))
	require.Len(t, team.Members, 2)
	require.Equal(t, "member", team.Members[1].Role)
}
