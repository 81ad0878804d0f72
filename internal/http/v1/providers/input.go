package providers

// ProvidersListInput defines query parameters for the directory.
type ProvidersListInput struct {
	Role  string   `query:"role"  doc:"Filter by role"      enum:"trainer,institute" required:"false"`
	Sort  string   `query:"sort"  doc:"Ranking mode"        enum:"nearby,top-rated"  default:"top-rated"`
	Lat   *float64 `query:"lat"   doc:"Reference latitude"  minimum:"-90"  maximum:"90"`
	Lon   *float64 `query:"lon"   doc:"Reference longitude" minimum:"-180" maximum:"180"`
	Limit int      `query:"limit" doc:"Maximum results"     default:"20" minimum:"1" maximum:"100"`
}

// ProviderGetInput for GET /providers/{providerId}
type ProviderGetInput struct {
	ProviderID string `path:"providerId" doc:"Profile identifier" example:"t1"`
}
