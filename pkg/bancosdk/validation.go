package bancosdk

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/aussiebroadwan/mibanco/pkg/rut"
)

const (
	minPasswordLength = 6
	maxPasswordLength = 128
	maxTextLength     = 200

	msgRutInvalid = "RUT inválido (formato o dígito verificador incorrecto)"
)

// ValidationMessage is the envelope message of a rejected request body.
const ValidationMessage = "Los datos enviados no son válidos"

// Normalize trims every field, lower-cases the email and strips dots from
// the RUT.
func (r CreateUsuarioRequest) Normalize() CreateUsuarioRequest {
	r.Nombre = strings.TrimSpace(r.Nombre)
	r.Email = normalizeEmail(r.Email)
	r.Rut = rut.Normalize(r.Rut)
	return r
}

// Validate returns field name to message for every invalid field, or nil.
func (r CreateUsuarioRequest) Validate() map[string]string {
	errs := make(map[string]string)

	requireText(errs, "nombre", r.Nombre, "El nombre es requerido")
	requireEmail(errs, "email", r.Email)
	requireRUT(errs, "rut", r.Rut, "El RUT es requerido")

	switch n := utf8.RuneCountInString(r.Password); {
	case n == 0:
		errs["password"] = "La contraseña es requerida"
	case n < minPasswordLength:
		errs["password"] = "La contraseña debe tener al menos 6 caracteres"
	case len(r.Password) > maxPasswordLength:
		errs["password"] = "La contraseña es demasiado larga (máximo 128)"
	}

	return nilIfEmpty(errs)
}

func (r LoginRequest) Normalize() LoginRequest {
	r.Rut = rut.Normalize(r.Rut)
	return r
}

// Validate only checks presence: a malformed RUT on login is a failed
// login, not a validation error.
func (r LoginRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if r.Rut == "" {
		errs["rut"] = "El RUT es requerido"
	}
	if r.Password == "" {
		errs["password"] = "La contraseña es requerida"
	}
	return nilIfEmpty(errs)
}

func (r CreateDestinatarioRequest) Normalize() CreateDestinatarioRequest {
	r.RutCliente = rut.Normalize(r.RutCliente)
	r.Nombre = strings.TrimSpace(r.Nombre)
	r.Apellido = strings.TrimSpace(r.Apellido)
	r.Email = normalizeEmail(r.Email)
	r.RutDestinatario = rut.Normalize(r.RutDestinatario)
	r.Telefono = strings.TrimSpace(r.Telefono)
	r.Banco = strings.TrimSpace(r.Banco)
	r.TipoCuenta = strings.TrimSpace(r.TipoCuenta)
	return r
}

func (r CreateDestinatarioRequest) Validate() map[string]string {
	errs := make(map[string]string)

	requireRUT(errs, "rut_cliente", r.RutCliente, "El RUT del cliente es requerido")
	requireText(errs, "nombre", r.Nombre, "El nombre es requerido")
	requireText(errs, "apellido", r.Apellido, "El apellido es requerido")
	requireEmail(errs, "email", r.Email)
	requireRUT(errs, "rut_destinatario", r.RutDestinatario, "El RUT del destinatario es requerido")
	requireText(errs, "telefono", r.Telefono, "El teléfono es requerido")
	requireText(errs, "banco", r.Banco, "El banco es requerido")
	requireText(errs, "tipo_cuenta", r.TipoCuenta, "El tipo de cuenta es requerido")

	if r.NumeroCuenta < 1 {
		errs["numero_cuenta"] = "El número de cuenta debe ser mayor a 0"
	}

	return nilIfEmpty(errs)
}

func (r CreateTransferenciaRequest) Normalize() CreateTransferenciaRequest {
	r.RutCliente = rut.Normalize(r.RutCliente)
	r.Nombre = strings.TrimSpace(r.Nombre)
	r.Email = normalizeEmail(r.Email)
	r.RutDestinatario = rut.Normalize(r.RutDestinatario)
	r.Banco = strings.TrimSpace(r.Banco)
	r.TipoCuenta = strings.TrimSpace(r.TipoCuenta)
	return r
}

func (r CreateTransferenciaRequest) Validate() map[string]string {
	errs := make(map[string]string)

	requireRUT(errs, "rut_cliente", r.RutCliente, "El RUT del cliente es requerido")
	requireText(errs, "nombre", r.Nombre, "El nombre del destinatario es requerido")
	requireEmail(errs, "email", r.Email)
	requireRUT(errs, "rut_destinatario", r.RutDestinatario, "El RUT del destinatario es requerido")
	requireText(errs, "banco", r.Banco, "El banco es requerido")
	requireText(errs, "tipo_cuenta", r.TipoCuenta, "El tipo de cuenta es requerido")

	if r.Monto < 1 {
		errs["monto"] = "El monto debe ser mayor a 0"
	}

	return nilIfEmpty(errs)
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func requireText(errs map[string]string, field, value, required string) {
	switch {
	case value == "":
		errs[field] = required
	case utf8.RuneCountInString(value) > maxTextLength:
		errs[field] = "Demasiado largo (máximo 200)"
	}
}

// requireEmail accepts a bare address only, not "Name <addr>".
func requireEmail(errs map[string]string, field, value string) {
	if value == "" {
		errs[field] = "El email es requerido"
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || !strings.Contains(addr.Address, ".") {
		errs[field] = "El email debe ser válido"
	}
}

func requireRUT(errs map[string]string, field, value, required string) {
	if value == "" {
		errs[field] = required
		return
	}
	if !rut.Valid(value) {
		errs[field] = msgRutInvalid
	}
}

func nilIfEmpty(errs map[string]string) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	return errs
}
