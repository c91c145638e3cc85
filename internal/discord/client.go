package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
	"rolemenu-service/internal/metrics"
)

//go:generate mockgen -source=client.go -destination=mock_client.go -package=discord

// RoleClient mutates guild member roles through the Discord REST API.
type RoleClient interface {
	AddMemberRole(ctx context.Context, guildId, userId, roleId string) error
	RemoveMemberRole(ctx context.Context, guildId, userId, roleId string) error
	// SetMemberRoles replaces the member's whole role list.
	SetMemberRoles(ctx context.Context, guildId, userId string, roleIds []string) error
}

// UpstreamError carries the status Discord answered with when the response body could not be
// decoded into a discordgo error, such as an empty or HTML 429 from the edge.
type UpstreamError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("discord responded %d: %v", e.StatusCode, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

type sessionClient struct {
	session *discordgo.Session
}

// NewSessionClient creates a RoleClient authenticated with the bot token. Requests are sent once:
// rate limited and failed calls are reported to the caller instead of being retried. A nil
// httpClient keeps the discordgo default.
func NewSessionClient(token string, httpClient *http.Client) (RoleClient, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	session.ShouldRetryOnRateLimit = false
	session.MaxRestRetries = 0
	if httpClient == nil {
		httpClient = session.Client
	}

	client := *httpClient
	client.Transport = &statusTransport{next: client.Transport}
	session.Client = &client

	return &sessionClient{session: session}, nil
}

func (c *sessionClient) AddMemberRole(ctx context.Context, guildId, userId, roleId string) error {
	ctx, rec := withStatusRecorder(ctx)
	err := rec.wrap(c.session.GuildMemberRoleAdd(guildId, userId, roleId, discordgo.WithContext(ctx)))
	observe(http.MethodPut, err)
	return err
}

func (c *sessionClient) RemoveMemberRole(ctx context.Context, guildId, userId, roleId string) error {
	ctx, rec := withStatusRecorder(ctx)
	err := rec.wrap(c.session.GuildMemberRoleRemove(guildId, userId, roleId, discordgo.WithContext(ctx)))
	observe(http.MethodDelete, err)
	return err
}

func (c *sessionClient) SetMemberRoles(ctx context.Context, guildId, userId string, roleIds []string) error {
	ctx, rec := withStatusRecorder(ctx)
	// The response body is ignored; Discord may answer with 204 and no member.
	_, err := c.session.RequestWithBucketID(
		http.MethodPatch,
		discordgo.EndpointGuildMember(guildId, userId),
		discordgo.GuildMemberParams{Roles: &roleIds},
		discordgo.EndpointGuildMember(guildId, ""),
		discordgo.WithContext(ctx),
	)
	err = rec.wrap(err)
	observe(http.MethodPatch, err)
	return err
}

// StatusCode extracts the HTTP status of a failed Discord call. It returns 0 when the failure
// did not come with a status, such as a transport error.
func StatusCode(err error) int {
	var rateLimitErr *discordgo.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return http.StatusTooManyRequests
	}

	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		return restErr.Response.StatusCode
	}

	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr.StatusCode
	}

	return 0
}

func observe(method string, err error) {
	status := "ok"
	if err != nil {
		status = strconv.Itoa(StatusCode(err))
	}
	metrics.DiscordRequests.WithLabelValues(method, status).Inc()
}

type statusRecorderKey struct{}

// statusRecorder keeps the status of the last response seen for one call.
type statusRecorder struct {
	mu     sync.Mutex
	status int
}

func withStatusRecorder(ctx context.Context) (context.Context, *statusRecorder) {
	rec := &statusRecorder{}
	return context.WithValue(ctx, statusRecorderKey{}, rec), rec
}

func (r *statusRecorder) record(status int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = status
}

// wrap attaches the recorded status to errors that lost it.
func (r *statusRecorder) wrap(err error) error {
	if err == nil || StatusCode(err) != 0 {
		return err
	}

	r.mu.Lock()
	status := r.status
	r.mu.Unlock()

	if status < http.StatusBadRequest {
		return err
	}
	return &UpstreamError{StatusCode: status, Err: err}
}

type statusTransport struct {
	next http.RoundTripper
}

func (t *statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.next
	if next == nil {
		next = http.DefaultTransport
	}

	resp, err := next.RoundTrip(req)
	if err == nil {
		if rec, ok := req.Context().Value(statusRecorderKey{}).(*statusRecorder); ok {
			rec.record(resp.StatusCode)
		}
	}
	return resp, err
}

// UseLogger routes discordgo's internal logging through zap.
func UseLogger(logger *zap.SugaredLogger) {
	logger = logger.Named("discordgo")

	discordgo.Logger = func(msgL, _ int, format string, a ...interface{}) {
		switch msgL {
		case discordgo.LogError:
			logger.Errorf(format, a...)
		case discordgo.LogWarning:
			logger.Warnf(format, a...)
		case discordgo.LogInformational:
			logger.Infof(format, a...)
		default:
			logger.Debugf(format, a...)
		}
	}
}
