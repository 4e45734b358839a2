package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/mibanco/pkg/bancosdk"
	"github.com/aussiebroadwan/mibanco/pkg/httpx"
	"github.com/aussiebroadwan/mibanco/pkg/rut"
	"github.com/aussiebroadwan/mibanco/pkg/slogx"
)

const (
	msgBadJSON           = "El cuerpo de la solicitud debe ser un objeto JSON válido"
	msgRutRequired       = "El RUT es requerido"
	msgRutInvalid        = "RUT inválido (formato o dígito verificador incorrecto)"
	msgInvalidCredential = "RUT o contraseña incorrectos"
	msgEmailTaken        = "El email ya está registrado"
	msgRutTaken          = "El RUT ya está registrado"
	msgAmountInvalid     = "El monto debe ser mayor a 0"
	msgClientNotFound    = "El cliente %s no existe"
	msgBeneficiaryExists = "El destinatario con RUT %s ya está registrado"
	msgBeneficiaryAdded  = "Destinatario agregado exitosamente"
	msgTransferSaved     = "Transferencia guardada!"
)

// validator is implemented by every request type of bancosdk.
type validator interface {
	Validate() map[string]string
}

// decodeRequest decodes and validates a request body, writing the 400
// itself when either step fails.
func decodeRequest[T validator](w http.ResponseWriter, r *http.Request, normalize func(T) T) (T, bool) {
	var req T
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		slogx.FromContext(r.Context()).Info("rejected request body", slog.Any("error", err))
		httpx.WriteError(w, http.StatusBadRequest, msgBadJSON)
		return req, false
	}

	req = normalize(req)
	if errs := req.Validate(); errs != nil {
		httpx.WriteErrorDetails(w, http.StatusBadRequest, bancosdk.ValidationMessage, errs)
		return req, false
	}
	return req, true
}

// queryRUT reads the rut query parameter, writing the 400 itself when it is
// missing or invalid.
func queryRUT(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := r.URL.Query().Get("rut")
	if raw == "" {
		httpx.WriteError(w, http.StatusBadRequest, msgRutRequired)
		return "", false
	}

	canonical, err := rut.Parse(raw)
	if err != nil {
		httpx.WriteErrorDetails(w, http.StatusBadRequest, msgRutInvalid, map[string]string{"rut": msgRutInvalid})
		return "", false
	}
	return canonical, true
}

// writeInternalError logs err and answers with the generic 500.
func writeInternalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slogx.FromContext(r.Context()).Error(msg, slog.Any("error", err))
	httpx.WriteError(w, http.StatusInternalServerError, httpx.InternalErrorMessage)
}
