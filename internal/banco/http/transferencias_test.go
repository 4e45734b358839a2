package http_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/mibanco/pkg/bancosdk"
	"github.com/stretchr/testify/require"
)

func TestTransferAmountValidation(t *testing.T) {
	tests := []struct {
		monto    int64
		wantCode int
	}{
		{0, http.StatusBadRequest},
		{-5, http.StatusBadRequest},
		{1, http.StatusOK},
	}

	s := newTestServer(t)
	s.register(t, "87654321-4", "cliente@example.com")

	for _, tt := range tests {
		rec := s.do(t, http.MethodPost, "/transferencias", transferencia("87654321-4", "11111111-1", tt.monto))
		require.Equal(t, tt.wantCode, rec.Code, "monto=%d: %s", tt.monto, rec.Body.String())
		if tt.wantCode == http.StatusBadRequest {
			require.Contains(t, decodeError(t, rec, http.StatusBadRequest).Details, "monto")
		}
	}

	history := decodeOK[bancosdk.HistorialBody](t, s.do(t, http.MethodGet, "/transferencias?rut=87654321-4", nil))
	require.Len(t, history.Historial, 1)
	require.Equal(t, int64(1), history.Historial[0].Monto)
}

func TestTransferRejectsClientDate(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "87654321-4", "cliente@example.com")

	body := `{"rut_cliente":"87654321-4","nombre":"María","email":"maria@example.com",` +
		`"rut_destinatario":"11111111-1","banco":"BCI","tipo_cuenta":"Vista","monto":10,"fecha":"1999-01-01T00:00:00Z"}`
	rec := s.do(t, http.MethodPost, "/transferencias", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransferHistoryNotFoundVersusEmpty(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/transferencias?rut=87654321-4", nil)
	require.Equal(t, "El cliente 87.654.321-4 no existe", decodeError(t, rec, http.StatusNotFound).Message)

	rec = s.do(t, http.MethodPost, "/transferencias", transferencia("87654321-4", "11111111-1", 10))
	decodeError(t, rec, http.StatusNotFound)

	s.register(t, "87654321-4", "cliente@example.com")
	history := decodeOK[bancosdk.HistorialBody](t, s.do(t, http.MethodGet, "/transferencias?rut=87654321-4", nil))
	require.NotNil(t, history.Historial)
	require.Empty(t, history.Historial)

	rec = s.do(t, http.MethodGet, "/transferencias", nil)
	require.Equal(t, "El RUT es requerido", decodeError(t, rec, http.StatusBadRequest).Message)
}

func TestBankingScenario(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "87654321-4", "cliente@example.com")

	rec := s.do(t, http.MethodPost, "/cuentas", destinatario("87654321-4", "11111111-1"))
	require.True(t, decodeOK[bancosdk.CreatedBody](t, rec).Created)

	rec = s.do(t, http.MethodPost, "/transferencias", transferencia("87654321-4", "11111111-1", 50000))
	saved := decodeOK[bancosdk.CreatedBody](t, rec)
	require.Equal(t, "Transferencia guardada!", saved.Message)

	history := decodeOK[bancosdk.HistorialBody](t, s.do(t, http.MethodGet, "/transferencias?rut=87654321-4", nil))
	require.Len(t, history.Historial, 1)
	require.Equal(t, int64(50000), history.Historial[0].Monto)
	require.Equal(t, "Banco Estado", history.Historial[0].Banco)
	require.False(t, history.Historial[0].Fecha.IsZero())

	list := decodeOK[bancosdk.DestinatariosBody](t, s.do(t, http.MethodGet, "/cuentas?rut=87654321-4", nil))
	require.Len(t, list.Destinatarios, 1)

	login := decodeOK[bancosdk.UsuarioBody](t, s.do(t, http.MethodPost, "/usuario/login",
		bancosdk.LoginRequest{Rut: "87654321-4", Password: "secreto123"}))
	require.Len(t, login.Usuario.Destinatarios, 1)
	require.Len(t, login.Usuario.Transferencia, 1)
}
