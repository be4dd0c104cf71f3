package model

// VersionInfo contains version information for the application.
type VersionInfo struct {
	AppVersion string `json:"app_version"`
	DbVersion  string `json:"db_version"`
}

// ReferenceStatus summarises the active reference snapshot.
type ReferenceStatus struct {
	Splits        int `json:"splits"`
	ExchangeRates int `json:"exchange_rates"`
}
