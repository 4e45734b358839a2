package http

import (
	"net/http"

	"github.com/aussiebroadwan/mibanco/internal/banco/domain"
	"github.com/aussiebroadwan/mibanco/pkg/bancosdk"
	"github.com/aussiebroadwan/mibanco/pkg/httpx"
)

// BancosHandler godoc
//
//	@Summary		Bank catalogue
//	@Description	Chilean banks offered as transfer destinations, ordered by code
//	@Tags			Bancos
//	@Produce		json
//	@Success		200	{object}	bancosdk.Envelope[bancosdk.BancosBody]	"Banks"
//	@Router			/bancos [get].
func BancosHandler() http.HandlerFunc {
	banks := domain.Banks()
	body := bancosdk.BancosBody{Bancos: make([]bancosdk.Banco, 0, len(banks))}
	for _, b := range banks {
		body.Bancos = append(body.Bancos, bancosdk.Banco{ID: b.Code, Nombre: b.Name})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteOK(w, http.StatusOK, body)
	}
}
