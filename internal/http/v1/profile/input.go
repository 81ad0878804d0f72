package profile

// ProfileCreateInput for POST /profile
type ProfileCreateInput struct {
	Body struct {
		Role        string   `json:"role"                enum:"user,trainer,institute"  required:"true" doc:"Profile role"         example:"trainer"`
		Firstname   string   `json:"firstname"           minLength:"1" maxLength:"100"  required:"true" doc:"First name"           example:"Uma"`
		Lastname    string   `json:"lastname"            minLength:"1" maxLength:"100"  required:"true" doc:"Last name"            example:"Rao"`
		Email       string   `json:"email"               format:"email"                 required:"true" doc:"Email address"        example:"uma@example.com"`
		PhoneNumber string   `json:"phoneNumber"         pattern:"^\\+[1-9]\\d{6,14}$"  required:"true" doc:"Phone (E.164)"        example:"+919876543210"`
		City        string   `json:"city,omitempty"      maxLength:"100"                                doc:"City"                 example:"Bengaluru"`
		Latitude    *float64 `json:"latitude,omitempty"  minimum:"-90"  maximum:"90"                    doc:"Latitude in degrees"  example:"12.9716"`
		Longitude   *float64 `json:"longitude,omitempty" minimum:"-180" maximum:"180"                   doc:"Longitude in degrees" example:"77.5946"`
		Marketing   bool     `json:"marketing"                                                          doc:"Marketing opt-in"     example:"true"`
		Terms       bool     `json:"terms"                                              required:"true" doc:"Terms acceptance"     example:"true"`
	}
}

// ProfileGetInput for GET /profile (no body needed)
type ProfileGetInput struct{}

// ProfileUpdateInput for PATCH /profile
type ProfileUpdateInput struct {
	Body struct {
		Firstname   *string  `json:"firstname,omitempty"   minLength:"1" maxLength:"100" doc:"First name"           example:"Uma"`
		Lastname    *string  `json:"lastname,omitempty"    minLength:"1" maxLength:"100" doc:"Last name"            example:"Rao"`
		Email       *string  `json:"email,omitempty"       format:"email"                doc:"Email address"        example:"uma@example.com"`
		PhoneNumber *string  `json:"phoneNumber,omitempty" pattern:"^\\+[1-9]\\d{6,14}$" doc:"Phone (E.164)"        example:"+919876543210"`
		City        *string  `json:"city,omitempty"        maxLength:"100"               doc:"City"                 example:"Mumbai"`
		Latitude    *float64 `json:"latitude,omitempty"    minimum:"-90"  maximum:"90"   doc:"Latitude in degrees"  example:"19.076"`
		Longitude   *float64 `json:"longitude,omitempty"   minimum:"-180" maximum:"180"  doc:"Longitude in degrees" example:"72.8777"`
		Marketing   *bool    `json:"marketing,omitempty"                                 doc:"Marketing opt-in"     example:"true"`
	}
}

// ProfileDeleteInput for DELETE /profile (no body needed)
type ProfileDeleteInput struct{}
