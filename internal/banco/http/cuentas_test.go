package http_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/mibanco/pkg/bancosdk"
	"github.com/stretchr/testify/require"
)

func TestListCuentasNotFoundVersusEmpty(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/cuentas?rut=12345678-5", nil)
	require.Equal(t, "El cliente 12.345.678-5 no existe", decodeError(t, rec, http.StatusNotFound).Message)

	s.register(t, "12345678-5", "juan@example.com")

	rec = s.do(t, http.MethodGet, "/cuentas?rut=12345678-5", nil)
	body := decodeOK[bancosdk.DestinatariosBody](t, rec)
	require.NotNil(t, body.Destinatarios)
	require.Empty(t, body.Destinatarios)
}

func TestListCuentasRequiresRUT(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/cuentas", nil)
	require.Equal(t, "El RUT es requerido", decodeError(t, rec, http.StatusBadRequest).Message)

	rec = s.do(t, http.MethodGet, "/cuentas?rut=12345678-9", nil)
	require.Contains(t, decodeError(t, rec, http.StatusBadRequest).Details, "rut")
}

func TestCreateCuenta(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "12345678-5", "juan@example.com")
	s.register(t, "87654321-4", "ana@example.com")

	rec := s.do(t, http.MethodPost, "/cuentas", destinatario("12345678-5", "11.111.111-1"))
	created := decodeOK[bancosdk.CreatedBody](t, rec)
	require.True(t, created.Created)
	require.Equal(t, "Destinatario agregado exitosamente", created.Message)

	rec = s.do(t, http.MethodPost, "/cuentas", destinatario("12345678-5", "11111111-1"))
	require.Equal(t, "El destinatario con RUT 11.111.111-1 ya está registrado",
		decodeError(t, rec, http.StatusConflict).Message)

	// Uniqueness is per owner.
	rec = s.do(t, http.MethodPost, "/cuentas", destinatario("87654321-4", "11111111-1"))
	require.True(t, decodeOK[bancosdk.CreatedBody](t, rec).Created)

	list := decodeOK[bancosdk.DestinatariosBody](t, s.do(t, http.MethodGet, "/cuentas?rut=12345678-5", nil))
	require.Len(t, list.Destinatarios, 1)
	require.Equal(t, "11111111-1", list.Destinatarios[0].RutDestinatario)
	require.NotEmpty(t, list.Destinatarios[0].ID)
}

func TestCreateCuentaErrors(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/cuentas", destinatario("12345678-5", "11111111-1"))
	require.Equal(t, "El cliente 12.345.678-5 no existe", decodeError(t, rec, http.StatusNotFound).Message)

	bad := destinatario("12345678-5", "11111111-2")
	bad.NumeroCuenta = 0
	errBody := decodeError(t, s.do(t, http.MethodPost, "/cuentas", bad), http.StatusBadRequest)
	require.Contains(t, errBody.Details, "rut_destinatario")
	require.Contains(t, errBody.Details, "numero_cuenta")
}
