package spin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dto "tosipeli/internal/api/dto/spin"
	"tosipeli/internal/middleware"
	"tosipeli/internal/model"
	"tosipeli/internal/repository/preference_repo"
	"tosipeli/internal/repository/session_repo"
	"tosipeli/internal/repository/stats_repo"
	spinserv "tosipeli/internal/service/spin"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	bodyA = `{"auto":"kasko","home":"laaja","travel":"all"}`
	bodyB = `{"auto":"liikenne","home":"laaja","travel":"all"}`
)

type client struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

func newClient(t *testing.T) *client {
	t.Helper()
	svc := spinserv.NewSpinService(
		session_repo.NewSessionRepository(),
		preference_repo.NewMemoryRepository(),
		stats_repo.NewStatsRepository(),
		nil,
		zerolog.Nop(),
		model.DefaultCatalog(),
		spinserv.DefaultCenterWinProbability,
		nil,
	)
	h := NewHandler(HandlerDeps{Serv: svc})

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/spin", h.Spin)
	mux.HandleFunc("POST /api/spin/status", h.Status)
	mux.HandleFunc("GET /api/catalog", h.Catalog)

	return &client{t: t, handler: middleware.PlaySession(mux)}
}

func (c *client) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	c.cookies = append(c.cookies, rec.Result().Cookies()...)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestSpin_Flow(t *testing.T) {
	c := newClient(t)

	rec := c.do(http.MethodPost, "/api/spin", bodyA)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	res := decode[dto.SpinResponse](t, rec)
	assert.True(t, res.Success)
	assert.Len(t, res.Picks, 3)
	assert.Len(t, res.Lines, 3)
	assert.Contains(t, []string{"win", "tip"}, res.Kind)
	assert.NotEmpty(t, res.Message)
	assert.Equal(t, 1, res.PlayCount)
	assert.Equal(t, 1, res.Remaining)

	rec = c.do(http.MethodPost, "/api/spin", bodyA)
	require.Equal(t, http.StatusForbidden, rec.Code)
	blocked := decode[dto.BlockedResponse](t, rec)
	assert.Equal(t, string(model.GateExhaustedNoChange), blocked.State)
	assert.NotEmpty(t, blocked.Error)

	rec = c.do(http.MethodPost, "/api/spin", bodyB)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decode[dto.SpinResponse](t, rec).PlayCount)

	rec = c.do(http.MethodPost, "/api/spin", bodyA)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, string(model.GateExhausted), decode[dto.BlockedResponse](t, rec).State)
}

func TestSpin_FreshSessionIsIndependent(t *testing.T) {
	c := newClient(t)
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/spin", bodyA).Code)

	other := newClient(t)
	other.handler = c.handler
	assert.Equal(t, http.StatusOK, other.do(http.MethodPost, "/api/spin", bodyA).Code)
}

func TestSpin_BadRequests(t *testing.T) {
	c := newClient(t)

	rec := c.do(http.MethodPost, "/api/spin", `{"auto":"kasko"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(model.GateNotReady), decode[dto.BlockedResponse](t, rec).State)

	rec = c.do(http.MethodPost, "/api/spin", `{"auto":"kasko","home":"castle","travel":"all"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodPost, "/api/spin", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodPost, "/api/spin", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// none of the above spent a play
	rec = c.do(http.MethodPost, "/api/spin/status", bodyA)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[dto.StatusResponse](t, rec).PlayCount)
}

func TestStatus(t *testing.T) {
	c := newClient(t)

	rec := c.do(http.MethodPost, "/api/spin/status", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decode[dto.StatusResponse](t, rec)
	assert.Equal(t, string(model.GateNotReady), st.State)
	assert.False(t, st.Permitted)

	rec = c.do(http.MethodPost, "/api/spin/status", bodyA)
	st = decode[dto.StatusResponse](t, rec)
	assert.True(t, st.Permitted)
	assert.Equal(t, 2, st.Remaining)
	assert.Equal(t, "Voit pyörittää! Pyörityksiä jäljellä: 2/2", st.Message)

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/spin", bodyA).Code)

	st = decode[dto.StatusResponse](t, c.do(http.MethodPost, "/api/spin/status", bodyA))
	assert.Equal(t, string(model.GateExhaustedNoChange), st.State)

	st = decode[dto.StatusResponse](t, c.do(http.MethodPost, "/api/spin/status", bodyB))
	assert.Equal(t, string(model.GatePermitted), st.State)
	assert.Equal(t, 1, st.Remaining)
}

func TestCatalog(t *testing.T) {
	c := newClient(t)

	rec := c.do(http.MethodGet, "/api/catalog", "")
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[dto.CatalogResponse](t, rec)
	require.Len(t, res.Insurers, 6)
	assert.Equal(t, dto.Insurer{ID: "if", Name: "If", Image: "public/if_logo.png"}, res.Insurers[0])
}
