package http

import (
	"github.com/aussiebroadwan/mibanco/internal/banco/domain"
	"github.com/aussiebroadwan/mibanco/pkg/bancosdk"
)

// toUsuario maps a user onto the wire type, which has no password field.
func toUsuario(u domain.User) bancosdk.Usuario {
	return bancosdk.Usuario{
		Nombre:        u.Name,
		Email:         u.Email,
		Rut:           u.NationalID,
		Destinatarios: toDestinatarios(u.Beneficiaries),
		Transferencia: toTransferencias(u.Transfers),
	}
}

func toDestinatarios(bs []domain.Beneficiary) []bancosdk.Destinatario {
	out := make([]bancosdk.Destinatario, 0, len(bs))
	for _, b := range bs {
		out = append(out, bancosdk.Destinatario{
			ID:              b.ID,
			Nombre:          b.FirstName,
			Apellido:        b.LastName,
			Email:           b.Email,
			RutDestinatario: b.NationalID,
			Telefono:        b.Phone,
			Banco:           b.Bank,
			TipoCuenta:      b.AccountType,
			NumeroCuenta:    b.AccountNumber,
		})
	}
	return out
}

func toTransferencias(ts []domain.Transfer) []bancosdk.Transferencia {
	out := make([]bancosdk.Transferencia, 0, len(ts))
	for _, t := range ts {
		out = append(out, bancosdk.Transferencia{
			ID:              t.ID,
			Nombre:          t.RecipientName,
			Email:           t.RecipientEmail,
			RutDestinatario: t.RecipientNationalID,
			Banco:           t.Bank,
			TipoCuenta:      t.AccountType,
			Monto:           t.Amount,
			Fecha:           t.CreatedAt,
		})
	}
	return out
}

func fromDestinatarioRequest(req bancosdk.CreateDestinatarioRequest) domain.Beneficiary {
	return domain.Beneficiary{
		FirstName:     req.Nombre,
		LastName:      req.Apellido,
		Email:         req.Email,
		NationalID:    req.RutDestinatario,
		Phone:         req.Telefono,
		Bank:          req.Banco,
		AccountType:   req.TipoCuenta,
		AccountNumber: req.NumeroCuenta,
	}
}

func fromTransferenciaRequest(req bancosdk.CreateTransferenciaRequest) domain.Transfer {
	return domain.Transfer{
		RecipientName:       req.Nombre,
		RecipientEmail:      req.Email,
		RecipientNationalID: req.RutDestinatario,
		Bank:                req.Banco,
		AccountType:         req.TipoCuenta,
		Amount:              req.Monto,
	}
}
