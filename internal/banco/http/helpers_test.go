package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	bancohttp "github.com/aussiebroadwan/mibanco/internal/banco/http"
	"github.com/aussiebroadwan/mibanco/internal/banco/service"
	"github.com/aussiebroadwan/mibanco/internal/banco/store/drivers/sqlite"
	"github.com/aussiebroadwan/mibanco/pkg/bancosdk"
	"github.com/aussiebroadwan/mibanco/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router *bancohttp.Router
	store  *sqlite.Store
}

// newTestServer wires a router over an in-memory store. customize may
// adjust the router options before it is built.
func newTestServer(t *testing.T, customize ...func(*bancohttp.Options)) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	opts := bancohttp.Options{
		AllowedOrigins: []string{"http://localhost:4200"},
		Metrics:        collector,
		Gatherer:       reg,
	}
	for _, fn := range customize {
		fn(&opts)
	}

	r, err := bancohttp.NewRouter(st, "test", slog.New(slog.NewTextHandler(io.Discard, nil)), opts)
	require.NoError(t, err)

	r.UserService = &service.UserService{Store: st, Metrics: collector}
	r.BeneficiaryService = &service.BeneficiaryService{Store: st, Metrics: collector}
	r.TransferService = &service.TransferService{Store: st, Metrics: collector}
	r.ApplyRoutes()

	return &testServer{router: r, store: st}
}

func (s *testServer) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return s.serve(newJSONRequest(t, method, target, body))
}

func (s *testServer) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// newJSONRequest builds a request whose body is nil, a raw string or a value
// encoded as JSON.
func newJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func (s *testServer) register(t *testing.T, rut, email string) {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/usuario", bancosdk.CreateUsuarioRequest{
		Nombre:   "Juan Pérez",
		Email:    email,
		Rut:      rut,
		Password: "secreto123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func decodeOK[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var env bancosdk.Envelope[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.True(t, env.OK)
	return env.Body
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder, code int) bancosdk.ErrorBody {
	t.Helper()

	require.Equal(t, code, rec.Code, rec.Body.String())
	var env bancosdk.Envelope[bancosdk.ErrorBody]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.False(t, env.OK)
	require.Equal(t, http.StatusText(code), env.Body.Error)
	return env.Body
}

func destinatario(owner, rut string) bancosdk.CreateDestinatarioRequest {
	return bancosdk.CreateDestinatarioRequest{
		RutCliente:      owner,
		Nombre:          "María",
		Apellido:        "González",
		Email:           "maria@example.com",
		RutDestinatario: rut,
		Telefono:        "+56912345678",
		Banco:           "Banco Estado",
		TipoCuenta:      "Vista",
		NumeroCuenta:    123456,
	}
}

func transferencia(owner, rut string, monto int64) bancosdk.CreateTransferenciaRequest {
	return bancosdk.CreateTransferenciaRequest{
		RutCliente:      owner,
		Nombre:          "María González",
		Email:           "maria@example.com",
		RutDestinatario: rut,
		Banco:           "Banco Estado",
		TipoCuenta:      "Vista",
		Monto:           monto,
	}
}
