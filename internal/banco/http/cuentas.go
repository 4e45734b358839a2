package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/mibanco/internal/banco/service"
	"github.com/aussiebroadwan/mibanco/pkg/bancosdk"
	"github.com/aussiebroadwan/mibanco/pkg/httpx"
	"github.com/aussiebroadwan/mibanco/pkg/rut"
	"github.com/aussiebroadwan/mibanco/pkg/slogx"
)

// CuentasHandler serves a user's saved beneficiaries.
type CuentasHandler struct {
	BeneficiaryService *service.BeneficiaryService
}

// HandleList returns the beneficiaries of a user.
//
//	@Summary		List beneficiaries
//	@Description	Returns the saved beneficiaries of the user. A user with none gets an empty list.
//	@Tags			Cuentas
//	@Produce		json
//	@Param			rut	query		string											true	"RUT of the user"	example(12345678-5)
//	@Success		200	{object}	bancosdk.Envelope[bancosdk.DestinatariosBody]	"Beneficiaries"
//	@Failure		400	{object}	bancosdk.Envelope[bancosdk.ErrorBody]			"Missing or invalid RUT"
//	@Failure		404	{object}	bancosdk.Envelope[bancosdk.ErrorBody]			"User not found"
//	@Failure		500	{object}	bancosdk.Envelope[bancosdk.ErrorBody]			"Internal error"
//	@Router			/cuentas [get].
func (h *CuentasHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	owner, ok := queryRUT(w, r)
	if !ok {
		return
	}
	ctx := slogx.With(r.Context(), slog.String("rut", owner))
	r = r.WithContext(ctx)

	list, err := h.BeneficiaryService.List(ctx, owner)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteError(w, http.StatusNotFound, fmt.Sprintf(msgClientNotFound, rut.Format(owner)))
			return
		}
		writeInternalError(w, r, "failed to list beneficiaries", err)
		return
	}

	httpx.WriteOK(w, http.StatusOK, bancosdk.DestinatariosBody{Destinatarios: toDestinatarios(list)})
}

// HandleCreate saves a beneficiary under a user.
//
//	@Summary		Add beneficiary
//	@Description	Saves a transfer destination for the user. A beneficiary RUT may appear once per user.
//	@Tags			Cuentas
//	@Accept			json
//	@Produce		json
//	@Param			request	body		bancosdk.CreateDestinatarioRequest			true	"Beneficiary"
//	@Success		200		{object}	bancosdk.Envelope[bancosdk.CreatedBody]		"Destinatario agregado exitosamente"
//	@Failure		400		{object}	bancosdk.Envelope[bancosdk.ErrorBody]		"Invalid body or RUT"
//	@Failure		404		{object}	bancosdk.Envelope[bancosdk.ErrorBody]		"User not found"
//	@Failure		409		{object}	bancosdk.Envelope[bancosdk.ErrorBody]		"Beneficiary already registered"
//	@Failure		500		{object}	bancosdk.Envelope[bancosdk.ErrorBody]		"Internal error"
//	@Router			/cuentas [post].
func (h *CuentasHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	// 1. Parse and validate
	req, ok := decodeRequest(w, r, bancosdk.CreateDestinatarioRequest.Normalize)
	if !ok {
		return
	}

	// 2. Append to the owner
	_, err := h.BeneficiaryService.Add(r.Context(), req.RutCliente, fromDestinatarioRequest(req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			httpx.WriteError(w, http.StatusNotFound, fmt.Sprintf(msgClientNotFound, rut.Format(req.RutCliente)))
		case errors.Is(err, service.ErrBeneficiaryExists):
			httpx.WriteError(w, http.StatusConflict, fmt.Sprintf(msgBeneficiaryExists, rut.Format(req.RutDestinatario)))
		case errors.Is(err, service.ErrInvalidNationalID):
			httpx.WriteErrorDetails(w, http.StatusBadRequest, msgRutInvalid,
				map[string]string{"rut_destinatario": msgRutInvalid})
		default:
			writeInternalError(w, r, "failed to add beneficiary", err)
		}
		return
	}

	// 3. Respond
	httpx.WriteOK(w, http.StatusOK, bancosdk.CreatedBody{Message: msgBeneficiaryAdded, Created: true})
}
