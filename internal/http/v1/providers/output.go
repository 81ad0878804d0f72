package providers

// ListData is the response body containing ranked profiles.
type ListData struct {
	Providers []Provider `json:"providers" doc:"Ranked directory profiles"`
}

// ProvidersListOutput for GET /providers
type ProvidersListOutput struct {
	Body ListData
}

// ProviderGetOutput for GET /providers/{providerId}
type ProviderGetOutput struct {
	Body Provider
}
