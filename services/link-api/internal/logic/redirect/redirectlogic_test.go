package redirect

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-shortlink/common/events"
	"go-shortlink/pkg/problemdetails"
	"go-shortlink/services/link-api/internal/config"
	"go-shortlink/services/link-api/internal/svc"
	"go-shortlink/services/link-api/internal/types"
	"go-shortlink/services/link-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducer struct {
	sent []*events.ClickEvent
	err  error
}

func (p *fakeProducer) Send(_ context.Context, event *events.ClickEvent) error {
	p.sent = append(p.sent, event)
	return p.err
}

func newTestSvc(producer *fakeProducer, links model.LinksModel) *svc.ServiceContext {
	return &svc.ServiceContext{
		Config: config.Config{
			BaseUrl: "http://s.ly",
		},
		LinksModel:    links,
		StatsProducer: producer,
	}
}

func foundLink(originUrl, gid string) model.LinksModel {
	return &model.MockLinksModel{
		FindOneByFullShortUrlFunc: func(_ context.Context, fullShortUrl string) (*model.Links, error) {
			return &model.Links{FullShortUrl: fullShortUrl, OriginUrl: originUrl, Gid: gid}, nil
		},
	}
}

func TestRedirect_PublishesClickEvent(t *testing.T) {
	producer := &fakeProducer{}
	svcCtx := newTestSvc(producer, foundLink("https://example.com/landing", "g1"))
	l := NewRedirectLogic(context.Background(), svcCtx)

	r := httptest.NewRequest(http.MethodGet, "/abc", nil)
	r.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/117.0")
	r.Header.Set("X-Real-IP", "1.2.3.4")
	w := httptest.NewRecorder()

	originUrl, err := l.Redirect(&types.RedirectRequest{Code: "abc"}, r, w)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/landing", originUrl)

	require.Len(t, producer.sent, 1)
	event := producer.sent[0]
	assert.Equal(t, "http://s.ly/abc", event.FullShortURL)
	assert.Equal(t, "g1", event.Gid)
	assert.Equal(t, "1.2.3.4", event.Record.RemoteAddr)
	assert.Equal(t, "Firefox", event.Record.Browser)
	assert.Equal(t, "Windows", event.Record.OS)
	assert.Equal(t, "Desktop", event.Record.Device)
	assert.Equal(t, "WIFI", event.Record.Network)
	assert.NotEmpty(t, event.Record.UV)
}

func TestRedirect_SetsVisitorCookieOnce(t *testing.T) {
	producer := &fakeProducer{}
	svcCtx := newTestSvc(producer, foundLink("https://example.com", "g1"))
	l := NewRedirectLogic(context.Background(), svcCtx)

	r := httptest.NewRequest(http.MethodGet, "/abc", nil)
	w := httptest.NewRecorder()
	_, err := l.Redirect(&types.RedirectRequest{Code: "abc"}, r, w)
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "uv", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)

	// A returning visitor keeps their fingerprint and gets no new cookie.
	r2 := httptest.NewRequest(http.MethodGet, "/abc", nil)
	r2.AddCookie(cookies[0])
	w2 := httptest.NewRecorder()
	_, err = l.Redirect(&types.RedirectRequest{Code: "abc"}, r2, w2)
	require.NoError(t, err)

	assert.Empty(t, w2.Result().Cookies())
	require.Len(t, producer.sent, 2)
	assert.Equal(t, cookies[0].Value, producer.sent[1].Record.UV)
}

func TestRedirect_SurvivesProducerFailure(t *testing.T) {
	producer := &fakeProducer{err: errors.New("broker down")}
	svcCtx := newTestSvc(producer, foundLink("https://example.com", "g1"))
	l := NewRedirectLogic(context.Background(), svcCtx)

	r := httptest.NewRequest(http.MethodGet, "/abc", nil)
	w := httptest.NewRecorder()

	originUrl, err := l.Redirect(&types.RedirectRequest{Code: "abc"}, r, w)
	require.NoError(t, err, "stats loss is acceptable, a failed redirect is not")
	assert.Equal(t, "https://example.com", originUrl)
}

func TestRedirect_UnknownCodeIs404(t *testing.T) {
	producer := &fakeProducer{}
	svcCtx := newTestSvc(producer, &model.MockLinksModel{
		FindOneByFullShortUrlFunc: func(context.Context, string) (*model.Links, error) {
			return nil, model.ErrNotFound
		},
	})
	l := NewRedirectLogic(context.Background(), svcCtx)

	r := httptest.NewRequest(http.MethodGet, "/missing", nil)
	w := httptest.NewRecorder()

	_, err := l.Redirect(&types.RedirectRequest{Code: "missing"}, r, w)
	require.Error(t, err)
	problem, ok := err.(*problemdetails.ProblemDetail)
	require.True(t, ok)
	assert.Equal(t, 404, problem.Status)
	assert.Empty(t, producer.sent, "no event for a miss")
}

func TestRedirect_BotClassification(t *testing.T) {
	producer := &fakeProducer{}
	svcCtx := newTestSvc(producer, foundLink("https://example.com", "g1"))
	l := NewRedirectLogic(context.Background(), svcCtx)

	r := httptest.NewRequest(http.MethodGet, "/abc", nil)
	r.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")
	w := httptest.NewRecorder()

	_, err := l.Redirect(&types.RedirectRequest{Code: "abc"}, r, w)
	require.NoError(t, err)

	require.Len(t, producer.sent, 1)
	assert.Equal(t, "Bot", producer.sent[0].Record.Device)
}
