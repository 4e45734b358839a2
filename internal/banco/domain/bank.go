package domain

import "slices"

type Bank struct {
	Code string
	Name string
}

// banks is the catalogue of Chilean institutions offered as transfer
// destinations, keyed by their SBIF code.
var banks = []Bank{
	{Code: "001", Name: "Banco de Chile"},
	{Code: "012", Name: "Banco Estado"},
	{Code: "014", Name: "Scotiabank"},
	{Code: "016", Name: "BCI"},
	{Code: "027", Name: "Corpbanca"},
	{Code: "028", Name: "Bice"},
	{Code: "031", Name: "HSBC"},
	{Code: "037", Name: "Santander"},
	{Code: "039", Name: "Itaú"},
	{Code: "049", Name: "Security"},
	{Code: "051", Name: "Falabella"},
	{Code: "053", Name: "Ripley"},
	{Code: "055", Name: "Consorcio"},
	{Code: "504", Name: "BBVA"},
	{Code: "672", Name: "Coopeuch"},
	{Code: "673", Name: "Prepago Los Héroes"},
	{Code: "729", Name: "Mercado Pago"},
}

// Banks returns a copy of the bank catalogue ordered by code.
func Banks() []Bank {
	return slices.Clone(banks)
}
