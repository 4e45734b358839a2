package bancosdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient calls the mibanco API.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient returns a client with a 10 second timeout.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Register creates a user. POST /usuario.
func (c *SDKClient) Register(ctx context.Context, req CreateUsuarioRequest) (*Usuario, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/usuario", req)
	if err != nil {
		return nil, err
	}

	body, err := decodeEnvelope[UsuarioBody](resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &body.Usuario, nil
}

// Login checks credentials and returns the user with its beneficiaries and
// transfers. POST /usuario/login.
func (c *SDKClient) Login(ctx context.Context, rut, password string) (*Usuario, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/usuario/login", LoginRequest{Rut: rut, Password: password})
	if err != nil {
		return nil, err
	}

	body, err := decodeEnvelope[UsuarioBody](resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &body.Usuario, nil
}

// ListDestinatarios returns the beneficiaries of rut. GET /cuentas.
func (c *SDKClient) ListDestinatarios(ctx context.Context, rut string) ([]Destinatario, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, withRUT("/cuentas", rut), nil)
	if err != nil {
		return nil, err
	}

	body, err := decodeEnvelope[DestinatariosBody](resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return body.Destinatarios, nil
}

// AddDestinatario registers a beneficiary. POST /cuentas.
func (c *SDKClient) AddDestinatario(ctx context.Context, req CreateDestinatarioRequest) (bool, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/cuentas", req)
	if err != nil {
		return false, err
	}

	body, err := decodeEnvelope[CreatedBody](resp, http.StatusOK)
	if err != nil {
		return false, err
	}
	return body.Created, nil
}

// Historial returns the transfers of rut, newest first. GET /transferencias.
func (c *SDKClient) Historial(ctx context.Context, rut string) ([]Transferencia, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, withRUT("/transferencias", rut), nil)
	if err != nil {
		return nil, err
	}

	body, err := decodeEnvelope[HistorialBody](resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return body.Historial, nil
}

// CreateTransferencia records a transfer. POST /transferencias.
func (c *SDKClient) CreateTransferencia(ctx context.Context, req CreateTransferenciaRequest) (bool, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/transferencias", req)
	if err != nil {
		return false, err
	}

	body, err := decodeEnvelope[CreatedBody](resp, http.StatusOK)
	if err != nil {
		return false, err
	}
	return body.Created, nil
}

// ListBancos returns the bank catalogue. GET /bancos.
func (c *SDKClient) ListBancos(ctx context.Context) ([]Banco, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/bancos", nil)
	if err != nil {
		return nil, err
	}

	body, err := decodeEnvelope[BancosBody](resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return body.Bancos, nil
}
