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

type TransferenciasHandler struct {
	TransferService *service.TransferService
}

// HandleHistory returns a user's transfers.
//
//	@Summary		Transfer history
//	@Description	Returns the transfers of the user, newest first.
//	@Tags			Transferencias
//	@Produce		json
//	@Param			rut	query		string										true	"RUT of the user"	example(12345678-5)
//	@Success		200	{object}	bancosdk.Envelope[bancosdk.HistorialBody]	"History"
//	@Failure		400	{object}	bancosdk.Envelope[bancosdk.ErrorBody]		"Missing or invalid RUT"
//	@Failure		404	{object}	bancosdk.Envelope[bancosdk.ErrorBody]		"User not found"
//	@Failure		500	{object}	bancosdk.Envelope[bancosdk.ErrorBody]		"Internal error"
//	@Router			/transferencias [get].
func (h *TransferenciasHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	owner, ok := queryRUT(w, r)
	if !ok {
		return
	}
	ctx := slogx.With(r.Context(), slog.String("rut", owner))
	r = r.WithContext(ctx)

	history, err := h.TransferService.History(ctx, owner)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteError(w, http.StatusNotFound, fmt.Sprintf(msgClientNotFound, rut.Format(owner)))
			return
		}
		writeInternalError(w, r, "failed to load transfer history", err)
		return
	}

	httpx.WriteOK(w, http.StatusOK, bancosdk.HistorialBody{Historial: toTransferencias(history)})
}

// HandleCreate records a transfer.
//
//	@Summary		Create transfer
//	@Description	Records a transfer for the user. The date is assigned by the server; monto must be at least 1.
//	@Tags			Transferencias
//	@Accept			json
//	@Produce		json
//	@Param			request	body		bancosdk.CreateTransferenciaRequest			true	"Transfer"
//	@Success		200		{object}	bancosdk.Envelope[bancosdk.CreatedBody]		"Transferencia guardada!"
//	@Failure		400		{object}	bancosdk.Envelope[bancosdk.ErrorBody]		"Invalid body, RUT or amount"
//	@Failure		404		{object}	bancosdk.Envelope[bancosdk.ErrorBody]		"User not found"
//	@Failure		500		{object}	bancosdk.Envelope[bancosdk.ErrorBody]		"Internal error"
//	@Router			/transferencias [post].
func (h *TransferenciasHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r, bancosdk.CreateTransferenciaRequest.Normalize)
	if !ok {
		return
	}

	_, err := h.TransferService.Issue(r.Context(), req.RutCliente, fromTransferenciaRequest(req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			httpx.WriteError(w, http.StatusNotFound, fmt.Sprintf(msgClientNotFound, rut.Format(req.RutCliente)))
		case errors.Is(err, service.ErrInvalidAmount):
			httpx.WriteErrorDetails(w, http.StatusBadRequest, msgAmountInvalid, map[string]string{"monto": msgAmountInvalid})
		case errors.Is(err, service.ErrInvalidNationalID):
			httpx.WriteErrorDetails(w, http.StatusBadRequest, msgRutInvalid,
				map[string]string{"rut_destinatario": msgRutInvalid})
		default:
			writeInternalError(w, r, "failed to record transfer", err)
		}
		return
	}

	httpx.WriteOK(w, http.StatusOK, bancosdk.CreatedBody{Message: msgTransferSaved, Created: true})
}
