package mongo

import (
	"time"

	"github.com/aussiebroadwan/mibanco/internal/banco/domain"
)

// userDoc is one user with its beneficiaries and transfers embedded, in the
// layout the original Mongo deployment already holds.
type userDoc struct {
	ID            string           `bson:"_id"`
	Nombre        string           `bson:"nombre"`
	Email         string           `bson:"email"`
	Rut           string           `bson:"rut"`
	Password      string           `bson:"password,omitempty"`
	Destinatarios []beneficiaryDoc `bson:"destinatarios"`
	Transferencia []transferDoc    `bson:"transferencia"`
	CreatedAt     time.Time        `bson:"createdAt"`
}

type beneficiaryDoc struct {
	ID              string    `bson:"_id"`
	Nombre          string    `bson:"nombre"`
	Apellido        string    `bson:"apellido"`
	Email           string    `bson:"email"`
	RutDestinatario string    `bson:"rut_destinatario"`
	Telefono        string    `bson:"telefono"`
	Banco           string    `bson:"banco"`
	TipoCuenta      string    `bson:"tipo_cuenta"`
	NumeroCuenta    int64     `bson:"numero_cuenta"`
	CreatedAt       time.Time `bson:"createdAt"`
}

type transferDoc struct {
	ID              string    `bson:"_id"`
	Nombre          string    `bson:"nombre"`
	Email           string    `bson:"email"`
	RutDestinatario string    `bson:"rut_destinatario"`
	Banco           string    `bson:"banco"`
	TipoCuenta      string    `bson:"tipo_cuenta"`
	Monto           int64     `bson:"monto"`
	Fecha           time.Time `bson:"fecha"`
}

func fromBeneficiary(b domain.Beneficiary) beneficiaryDoc {
	return beneficiaryDoc{
		ID:              b.ID,
		Nombre:          b.FirstName,
		Apellido:        b.LastName,
		Email:           b.Email,
		RutDestinatario: b.NationalID,
		Telefono:        b.Phone,
		Banco:           b.Bank,
		TipoCuenta:      b.AccountType,
		NumeroCuenta:    b.AccountNumber,
		CreatedAt:       b.CreatedAt.UTC(),
	}
}

func (d beneficiaryDoc) domain() domain.Beneficiary {
	return domain.Beneficiary{
		ID:            d.ID,
		FirstName:     d.Nombre,
		LastName:      d.Apellido,
		Email:         d.Email,
		NationalID:    d.RutDestinatario,
		Phone:         d.Telefono,
		Bank:          d.Banco,
		AccountType:   d.TipoCuenta,
		AccountNumber: d.NumeroCuenta,
		CreatedAt:     d.CreatedAt.UTC(),
	}
}

func fromTransfer(t domain.Transfer) transferDoc {
	return transferDoc{
		ID:              t.ID,
		Nombre:          t.RecipientName,
		Email:           t.RecipientEmail,
		RutDestinatario: t.RecipientNationalID,
		Banco:           t.Bank,
		TipoCuenta:      t.AccountType,
		Monto:           t.Amount,
		Fecha:           t.CreatedAt.UTC(),
	}
}

func (d transferDoc) domain() domain.Transfer {
	return domain.Transfer{
		ID:                  d.ID,
		RecipientName:       d.Nombre,
		RecipientEmail:      d.Email,
		RecipientNationalID: d.RutDestinatario,
		Bank:                d.Banco,
		AccountType:         d.TipoCuenta,
		Amount:              d.Monto,
		CreatedAt:           d.Fecha.UTC(),
	}
}
