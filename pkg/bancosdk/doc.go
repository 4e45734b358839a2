/*
Package bancosdk provides the wire types and a Go client for the mibanco REST
API.

Every response is wrapped in an envelope:

	{"ok": true,  "body": {...}}
	{"ok": false, "body": {"message": "...", "error": "Not Found"}}

The request types carry a Validate method that the server runs before any
service call, so a client can reject malformed input with the same messages:

	req := bancosdk.CreateTransferenciaRequest{RutCliente: "87654321-4", Monto: 0}
	if errs := req.Normalize().Validate(); errs != nil {
		// errs["monto"] == "El monto debe ser mayor a 0"
	}

Calls against a running server:

	client := bancosdk.NewSDKClient("http://localhost:8001")

	usuario, err := client.Register(ctx, bancosdk.CreateUsuarioRequest{...})
	usuario, err = client.Login(ctx, "87654321-4", "secreto")

	ok, err := client.AddDestinatario(ctx, bancosdk.CreateDestinatarioRequest{...})
	destinatarios, err := client.ListDestinatarios(ctx, "87654321-4")

	ok, err = client.CreateTransferencia(ctx, bancosdk.CreateTransferenciaRequest{...})
	historial, err := client.Historial(ctx, "87654321-4")

Failed calls return an *APIError carrying the status code and the envelope
message:

	var apiErr *bancosdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
		// duplicate
	}

There is no session token: the server identifies the account by the RUT in
each request.
*/
package bancosdk
