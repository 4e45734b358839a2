package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/mibanco/internal/banco/domain"
	"github.com/aussiebroadwan/mibanco/internal/banco/service"
	"github.com/aussiebroadwan/mibanco/pkg/bancosdk"
	"github.com/aussiebroadwan/mibanco/pkg/httpx"
)

type UsuarioHandler struct {
	UserService *service.UserService
}

// HandleRegister creates a user.
//
//	@Summary		Register a user
//	@Description	Creates a user with an empty beneficiary list and transfer history. The RUT must carry a valid check digit.
//	@Tags			Usuario
//	@Accept			json
//	@Produce		json
//	@Param			request	body		bancosdk.CreateUsuarioRequest						true	"New user"
//	@Success		200		{object}	bancosdk.Envelope[bancosdk.UsuarioBody]				"Registered user, without password"
//	@Failure		400		{object}	bancosdk.Envelope[bancosdk.ErrorBody]				"Invalid body or RUT"
//	@Failure		409		{object}	bancosdk.Envelope[bancosdk.ErrorBody]				"Email or RUT already registered"
//	@Failure		429		{object}	bancosdk.Envelope[bancosdk.ErrorBody]				"Rate limited"
//	@Failure		500		{object}	bancosdk.Envelope[bancosdk.ErrorBody]				"Internal error"
//	@Router			/usuario [post].
func (h *UsuarioHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	// 1. Parse and validate
	req, ok := decodeRequest(w, r, bancosdk.CreateUsuarioRequest.Normalize)
	if !ok {
		return
	}

	// 2. Register
	user, err := h.UserService.Register(r.Context(), domain.NewUser{
		Name:       req.Nombre,
		Email:      req.Email,
		NationalID: req.Rut,
		Password:   req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			httpx.WriteError(w, http.StatusConflict, msgEmailTaken)
		case errors.Is(err, service.ErrNationalIDTaken):
			httpx.WriteError(w, http.StatusConflict, msgRutTaken)
		case errors.Is(err, service.ErrInvalidNationalID):
			httpx.WriteErrorDetails(w, http.StatusBadRequest, msgRutInvalid, map[string]string{"rut": msgRutInvalid})
		default:
			writeInternalError(w, r, "failed to register user", err)
		}
		return
	}

	// 3. Respond
	httpx.WriteOK(w, http.StatusOK, bancosdk.UsuarioBody{Usuario: toUsuario(user)})
}

// HandleLogin checks a RUT and password pair.
//
//	@Summary		Log in
//	@Description	Verifies the credentials and returns the user with its beneficiaries and transfer history (newest first).
//	@Description	An unknown RUT and a wrong password get the same answer.
//	@Tags			Usuario
//	@Accept			json
//	@Produce		json
//	@Param			request	body		bancosdk.LoginRequest						true	"Credentials"
//	@Success		200		{object}	bancosdk.Envelope[bancosdk.UsuarioBody]		"Authenticated user, without password"
//	@Failure		400		{object}	bancosdk.Envelope[bancosdk.ErrorBody]		"Invalid body"
//	@Failure		401		{object}	bancosdk.Envelope[bancosdk.ErrorBody]		"RUT o contraseña incorrectos"
//	@Failure		429		{object}	bancosdk.Envelope[bancosdk.ErrorBody]		"Rate limited"
//	@Failure		500		{object}	bancosdk.Envelope[bancosdk.ErrorBody]		"Internal error"
//	@Router			/usuario/login [post].
func (h *UsuarioHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r, bancosdk.LoginRequest.Normalize)
	if !ok {
		return
	}

	user, err := h.UserService.Login(r.Context(), req.Rut, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized, msgInvalidCredential)
			return
		}
		writeInternalError(w, r, "failed to log in", err)
		return
	}

	httpx.WriteOK(w, http.StatusOK, bancosdk.UsuarioBody{Usuario: toUsuario(user)})
}
