package service

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"rolemenu-service/internal/interaction"
	"rolemenu-service/internal/repository"
)

const testMember = `"member":{"user":{"id":"42"},"roles":["5000"]}`

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	testService

	router     *gin.Engine
	privateKey ed25519.PrivateKey
}

func newTestServer(t *testing.T) testServer {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	ts := newTestService(t)
	return testServer{
		testService: ts,
		router:      NewRouter(zap.NewNop().Sugar(), publicKey, ts.svc),
		privateKey:  privateKey,
	}
}

func (s testServer) signedRequest(body string) *http.Request {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	signature := ed25519.Sign(s.privateKey, []byte(timestamp+body))

	req := httptest.NewRequest(http.MethodPost, interactionsPath, bytes.NewBufferString(body))
	req.Header.Set("X-Signature-Ed25519", hex.EncodeToString(signature))
	req.Header.Set("X-Signature-Timestamp", timestamp)
	return req
}

func (s testServer) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestInteractionHandler_Unauthorized(t *testing.T) {
	body := `{"id":"1","type":3,"guild_id":"900",` + testMember + `,"data":{"custom_id":"apply:1001","component_type":2}}`

	tests := []struct {
		name   string
		modify func(s testServer, req *http.Request)
	}{
		{
			name: "missing signature",
			modify: func(_ testServer, req *http.Request) {
				req.Header.Del("X-Signature-Ed25519")
			},
		},
		{
			name: "missing timestamp",
			modify: func(_ testServer, req *http.Request) {
				req.Header.Del("X-Signature-Timestamp")
			},
		},
		{
			name: "signature not hex",
			modify: func(_ testServer, req *http.Request) {
				req.Header.Set("X-Signature-Ed25519", "not-a-signature")
			},
		},
		{
			name: "signed by another key",
			modify: func(_ testServer, req *http.Request) {
				_, other, _ := ed25519.GenerateKey(rand.Reader)
				sig := ed25519.Sign(other, []byte(req.Header.Get("X-Signature-Timestamp")+body))
				req.Header.Set("X-Signature-Ed25519", hex.EncodeToString(sig))
			},
		},
		{
			name: "timestamp changed",
			modify: func(_ testServer, req *http.Request) {
				req.Header.Set("X-Signature-Timestamp", "1")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The mocks have no expectations, so any store read or Discord call fails the test.
			s := newTestServer(t)

			req := s.signedRequest(body)
			tt.modify(s, req)

			w := s.serve(req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Empty(t, w.Body.String())
		})
	}
}

func TestInteractionHandler_TamperedBody(t *testing.T) {
	s := newTestServer(t)

	req := s.signedRequest(`{"id":"1","type":1}`)
	req.Body = io.NopCloser(bytes.NewBufferString(`{"id":"2","type":1}`))

	w := s.serve(req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestInteractionHandler_BodyTooLarge(t *testing.T) {
	s := newTestServer(t)

	// Correctly signed, but over the size limit.
	body := `{"id":"1","type":1,"padding":"` + strings.Repeat("a", maxBodyBytes) + `"}`

	w := s.serve(s.signedRequest(body))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestInteractionHandler_Ping(t *testing.T) {
	s := newTestServer(t)

	w := s.serve(s.signedRequest(`{"id":"1","application_id":"2","type":1,"token":"t","version":1}`))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, `{"type":1}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(requestIdHeader))
}

func TestInteractionHandler_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `{"type":`},
		{name: "application command", body: `{"id":"1","type":2,"guild_id":"900",` + testMember + `,"data":{"id":"5","name":"roles"}}`},
		{name: "no guild", body: `{"id":"1","type":3,"user":{"id":"42"},"data":{"custom_id":"apply:1001","component_type":2}}`},
		{name: "no custom id", body: `{"id":"1","type":3,"guild_id":"900",` + testMember + `,"data":{"component_type":2}}`},
		{name: "unknown operation", body: `{"id":"1","type":3,"guild_id":"900",` + testMember + `,"data":{"custom_id":"grant:1001","component_type":2}}`},
		{name: "bad index", body: `{"id":"1","type":3,"guild_id":"900",` + testMember + `,"data":{"custom_id":"view:one","component_type":2}}`},
		{name: "edit button", body: `{"id":"1","type":3,"guild_id":"900",` + testMember + `,"data":{"custom_id":"edit:0","component_type":2}}`},
		{name: "apply menu", body: `{"id":"1","type":3,"guild_id":"900",` + testMember + `,"data":{"custom_id":"apply:1001","component_type":3,"values":[]}}`},
		{name: "text input", body: `{"id":"1","type":3,"guild_id":"900",` + testMember + `,"data":{"custom_id":"apply:1001","component_type":4}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)

			w := s.serve(s.signedRequest(tt.body))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, w.Body.String())
		})
	}
}

func TestInteractionHandler_ApplyRole(t *testing.T) {
	s := newTestServer(t)

	s.roles.EXPECT().AddMemberRole(gomock.Any(), "900", "42", "1001").Return(nil)
	s.notif.EXPECT().MemberRolesUpdate(gomock.Any(), "900", "42", []string{"1001"}, nil).Return(nil)

	w := s.serve(s.signedRequest(`{"id":"1","type":3,"guild_id":"900",` + testMember + `,"data":{"custom_id":"apply:1001","component_type":2}}`))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Type int `json:"type"`
		Data struct {
			Content string `json:"content"`
			Flags   int    `json:"flags"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int(discordgo.InteractionResponseChannelMessageWithSource), resp.Type)
	assert.Equal(t, int(discordgo.MessageFlagsEphemeral), resp.Data.Flags)
	assert.Equal(t, "Gave you the <@&1001> role.", resp.Data.Content)
}

func TestInteractionHandler_ViewGroup(t *testing.T) {
	s := newTestServer(t)

	s.repo.EXPECT().GetGroup(gomock.Any(), "900", 0).Return(colourGroup(), nil)

	w := s.serve(s.signedRequest(`{"id":"1","type":3,"guild_id":"900",` + testMember + `,"data":{"custom_id":"view:0","component_type":2}}`))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Type int `json:"type"`
		Data struct {
			Content    string `json:"content"`
			Flags      int    `json:"flags"`
			Components []struct {
				Type       int `json:"type"`
				Components []struct {
					Type      int    `json:"type"`
					CustomID  string `json:"custom_id"`
					MinValues *int   `json:"min_values"`
					MaxValues int    `json:"max_values"`
					Options   []struct {
						Value   string `json:"value"`
						Default bool   `json:"default"`
					} `json:"options"`
				} `json:"components"`
			} `json:"components"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, int(discordgo.InteractionResponseChannelMessageWithSource), resp.Type)
	assert.Equal(t, int(discordgo.MessageFlagsEphemeral), resp.Data.Flags)
	assert.Equal(t, selectRolesContent, resp.Data.Content)
	require.Len(t, resp.Data.Components, 1)
	assert.Equal(t, int(discordgo.ActionsRowComponent), resp.Data.Components[0].Type)
	require.Len(t, resp.Data.Components[0].Components, 1)

	menu := resp.Data.Components[0].Components[0]
	assert.Equal(t, int(discordgo.SelectMenuComponent), menu.Type)
	assert.Equal(t, "edit:0", menu.CustomID)
	require.NotNil(t, menu.MinValues)
	assert.Equal(t, 0, *menu.MinValues)
	assert.Equal(t, 3, menu.MaxValues)
	assert.Len(t, menu.Options, 3)
}

func TestInteractionHandler_GroupNotFound(t *testing.T) {
	s := newTestServer(t)

	s.repo.EXPECT().GetGroup(gomock.Any(), "900", 7).Return(nil, repository.ErrGroupNotFound)

	w := s.serve(s.signedRequest(`{"id":"1","type":3,"guild_id":"900",` + testMember + `,"data":{"custom_id":"edit:7","component_type":3,"values":["2001"]}}`))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestInteractionHandler_StoreFailure(t *testing.T) {
	s := newTestServer(t)

	s.repo.EXPECT().GetGroup(gomock.Any(), "900", 0).Return(nil, errors.New("connection refused"))

	w := s.serve(s.signedRequest(`{"id":"1","type":3,"guild_id":"900",` + testMember + `,"data":{"custom_id":"view:0","component_type":2}}`))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Body.String())
}

type panickingService struct{}

func (panickingService) Handle(context.Context, interaction.Event) (*discordgo.InteractionResponse, error) {
	panic("boom")
}

func TestInteractionHandler_RecoversPanic(t *testing.T) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	s := testServer{
		router:     NewRouter(zap.NewNop().Sugar(), publicKey, panickingService{}),
		privateKey: privateKey,
	}

	w := s.serve(s.signedRequest(`{"id":"1","type":1}`))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// The router keeps serving after a panic.
	w = s.serve(s.signedRequest(`{"id":"1","type":1}`))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestInteractionHandler_NoPublicKey(t *testing.T) {
	s := newTestServer(t)
	s.router = NewRouter(zap.NewNop().Sugar(), nil, s.svc)

	w := s.serve(s.signedRequest(`{"id":"1","type":1}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)

	s.serve(s.signedRequest(`{"id":"1","type":1}`))

	w := s.serve(httptest.NewRequest(http.MethodGet, metricsPath, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "rolemenu_interactions_total")
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
