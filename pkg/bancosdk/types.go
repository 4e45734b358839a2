package bancosdk

import "time"

// Envelope wraps every response body.
type Envelope[T any] struct {
	OK   bool `json:"ok"`
	Body T    `json:"body"`
}

// ErrorBody is the body of a failed response.
type ErrorBody struct {
	Message string            `json:"message" example:"El cliente 12345678-5 no existe"`
	Error   string            `json:"error" example:"Not Found"`
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// Requests
// ============================================================================

// CreateUsuarioRequest is the body of POST /usuario.
type CreateUsuarioRequest struct {
	Nombre   string `json:"nombre" example:"Juan Pérez González"`
	Email    string `json:"email" example:"juan.perez@example.com"`
	Rut      string `json:"rut" example:"12345678-5"`
	Password string `json:"password" example:"password123"`
}

// LoginRequest is the body of POST /usuario/login.
type LoginRequest struct {
	Rut      string `json:"rut" example:"12345678-5"`
	Password string `json:"password" example:"password123"`
}

// CreateDestinatarioRequest is the body of POST /cuentas.
type CreateDestinatarioRequest struct {
	RutCliente      string `json:"rut_cliente" example:"12345678-5"`
	Nombre          string `json:"nombre" example:"María"`
	Apellido        string `json:"apellido" example:"González López"`
	Email           string `json:"email" example:"maria.gonzalez@example.com"`
	RutDestinatario string `json:"rut_destinatario" example:"11111111-1"`
	Telefono        string `json:"telefono" example:"+56912345678"`
	Banco           string `json:"banco" example:"Banco de Chile"`
	TipoCuenta      string `json:"tipo_cuenta" example:"Corriente"`
	NumeroCuenta    int64  `json:"numero_cuenta" example:"123456789"`
}

// CreateTransferenciaRequest is the body of POST /transferencias. The date
// is always assigned by the server.
type CreateTransferenciaRequest struct {
	RutCliente      string `json:"rut_cliente" example:"12345678-5"`
	Nombre          string `json:"nombre" example:"María González López"`
	Email           string `json:"email" example:"maria.gonzalez@example.com"`
	RutDestinatario string `json:"rut_destinatario" example:"11111111-1"`
	Banco           string `json:"banco" example:"Banco de Chile"`
	TipoCuenta      string `json:"tipo_cuenta" example:"Corriente"`
	Monto           int64  `json:"monto" example:"50000"`
}

// ============================================================================
// Resources
// ============================================================================

// Usuario is a user as returned by registration and login. It has no
// password field of any kind.
type Usuario struct {
	Nombre        string          `json:"nombre"`
	Email         string          `json:"email"`
	Rut           string          `json:"rut"`
	Destinatarios []Destinatario  `json:"destinatarios"`
	Transferencia []Transferencia `json:"transferencia"`
}

type Destinatario struct {
	ID              string `json:"_id"`
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	Email           string `json:"email"`
	RutDestinatario string `json:"rut_destinatario"`
	Telefono        string `json:"telefono"`
	Banco           string `json:"banco"`
	TipoCuenta      string `json:"tipo_cuenta"`
	NumeroCuenta    int64  `json:"numero_cuenta"`
}

type Transferencia struct {
	ID              string    `json:"_id"`
	Nombre          string    `json:"nombre"`
	Email           string    `json:"email"`
	RutDestinatario string    `json:"rut_destinatario"`
	Banco           string    `json:"banco"`
	TipoCuenta      string    `json:"tipo_cuenta"`
	Monto           int64     `json:"monto"`
	Fecha           time.Time `json:"fecha"`
}

// Banco is an entry of the bank catalogue.
type Banco struct {
	ID     string `json:"id" example:"001"`
	Nombre string `json:"nombre" example:"Banco de Chile"`
}

// ============================================================================
// Response bodies
// ============================================================================

type UsuarioBody struct {
	Usuario Usuario `json:"usuario"`
}

type DestinatariosBody struct {
	Destinatarios []Destinatario `json:"destinatarios"`
}

type HistorialBody struct {
	Historial []Transferencia `json:"historial"`
}

type BancosBody struct {
	Bancos []Banco `json:"bancos"`
}

// CreatedBody answers POST /cuentas and POST /transferencias.
type CreatedBody struct {
	Message string `json:"message" example:"Transferencia guardada!"`
	Created bool   `json:"created" example:"true"`
}

// HealthResponse answers /livez and /readyz.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// DatabaseStatus is the database part of /health.
type DatabaseStatus struct {
	Connected bool   `json:"connected"`
	State     string `json:"state" example:"connected"`
	Host      string `json:"host" example:"localhost:27017"`
	Name      string `json:"name" example:"mi-banco"`
}

// SystemHealth answers /health.
type SystemHealth struct {
	Status        string         `json:"status" example:"ok"`
	Version       string         `json:"version" example:"v0.1.0"`
	UptimeSeconds int64          `json:"uptime_seconds" example:"3600"`
	Database      DatabaseStatus `json:"database"`
	Timestamp     time.Time      `json:"timestamp"`
}
