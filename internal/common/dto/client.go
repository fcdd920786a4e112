package dto

// ClientRegistrationRequest is the body of POST /api/clients.
type ClientRegistrationRequest struct {
	ClientName              string   `json:"clientName" binding:"required"`
	ClientType              string   `json:"clientType" binding:"required"`
	RedirectURIs            []string `json:"redirectUris"`
	AllowedGrantTypes       []string `json:"allowedGrantTypes" binding:"required"`
	AllowedScopes           []string `json:"allowedScopes"`
	TokenEndpointAuthMethod string   `json:"tokenEndpointAuthMethod"`
	AccessTokenTTLSeconds   *int     `json:"accessTokenTtlSeconds"`
	RefreshTokenTTLSeconds  *int     `json:"refreshTokenTtlSeconds"`
}

// ClientUpdateRequest is the body of PUT /api/clients/:clientId. Every
// field is optional; absent fields keep their stored values.
type ClientUpdateRequest struct {
	ClientName             *string  `json:"clientName"`
	RedirectURIs           []string `json:"redirectUris"`
	AllowedGrantTypes      []string `json:"allowedGrantTypes"`
	AllowedScopes          []string `json:"allowedScopes"`
	AccessTokenTTLSeconds  *int     `json:"accessTokenTtlSeconds"`
	RefreshTokenTTLSeconds *int     `json:"refreshTokenTtlSeconds"`
}

// ClientRegistrationResponse is returned once, at creation time. It is
// the only place the plaintext secret ever appears.
type ClientRegistrationResponse struct {
	ClientID                string   `json:"clientId"`
	ClientSecret            string   `json:"clientSecret,omitempty"`
	ClientName              string   `json:"clientName"`
	ClientType              string   `json:"clientType"`
	RedirectURIs            []string `json:"redirectUris"`
	AllowedGrantTypes       []string `json:"allowedGrantTypes"`
	AllowedScopes           []string `json:"allowedScopes"`
	TokenEndpointAuthMethod string   `json:"tokenEndpointAuthMethod"`
	RequirePKCE             bool     `json:"requirePkce"`
	AccessTokenTTLSeconds   int      `json:"accessTokenTtlSeconds"`
	RefreshTokenTTLSeconds  int      `json:"refreshTokenTtlSeconds"`
	CreatedAt               string   `json:"createdAt"`
}

// ClientInfoResponse is the management read view; it never carries
// secret material, hashed or otherwise.
type ClientInfoResponse struct {
	ClientID                string   `json:"clientId"`
	ClientName              string   `json:"clientName"`
	ClientType              string   `json:"clientType"`
	RedirectURIs            []string `json:"redirectUris"`
	AllowedGrantTypes       []string `json:"allowedGrantTypes"`
	AllowedScopes           []string `json:"allowedScopes"`
	TokenEndpointAuthMethod string   `json:"tokenEndpointAuthMethod"`
	RequirePKCE             bool     `json:"requirePkce"`
	AccessTokenTTLSeconds   int      `json:"accessTokenTtlSeconds"`
	RefreshTokenTTLSeconds  int      `json:"refreshTokenTtlSeconds"`
	CreatedAt               string   `json:"createdAt"`
	UpdatedAt               string   `json:"updatedAt"`
}

// ClientIntrospectionResponse reports the identity established by the
// token-endpoint authentication check.
type ClientIntrospectionResponse struct {
	ClientID                string `json:"clientId"`
	ClientName              string `json:"clientName"`
	ClientType              string `json:"clientType"`
	TokenEndpointAuthMethod string `json:"tokenEndpointAuthMethod"`
}
