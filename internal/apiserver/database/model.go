package database

import "time"

// OAuthClient is a registered OAuth participant.
//
// List-valued metadata (redirect URIs, grant types, scopes) is kept as
// []string in the model; the json serializer turns it into a single TEXT
// column so only this adapter ever sees the serialized form.
type OAuthClient struct {
	ID                      uint      `json:"-" gorm:"primaryKey;autoIncrement"`
	ClientID                string    `json:"client_id" gorm:"type:varchar(36);uniqueIndex;not null"`
	ClientSecretHash        string    `json:"-" gorm:"type:varchar(72)"` // empty for public clients
	ClientName              string    `json:"client_name" gorm:"not null"`
	ClientType              string    `json:"client_type" gorm:"type:varchar(20);not null"`
	RedirectURIs            []string  `json:"redirect_uris" gorm:"serializer:json;type:text"`
	AllowedGrantTypes       []string  `json:"allowed_grant_types" gorm:"serializer:json;type:text"`
	AllowedScopes           []string  `json:"allowed_scopes" gorm:"serializer:json;type:text"`
	TokenEndpointAuthMethod string    `json:"token_endpoint_auth_method" gorm:"type:varchar(30);not null"`
	RequirePKCE             bool      `json:"require_pkce" gorm:"not null"`
	AccessTokenTTLSeconds   int       `json:"access_token_ttl_seconds" gorm:"not null"`
	RefreshTokenTTLSeconds  int       `json:"refresh_token_ttl_seconds" gorm:"not null"`
	IsActive                bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// User is an end user of the authorization server.
type User struct {
	ID            uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Username      string    `json:"username" gorm:"type:varchar(100);uniqueIndex;not null"`
	Email         string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash  string    `json:"-" gorm:"not null"`
	EmailVerified bool      `json:"email_verified" gorm:"not null;default:false"`
	IsActive      bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AuthorizationCode is the schema for the authorization-code exchange
// phase. Only the SHA-256 digest of the code is ever stored; the raw
// code exists solely in the redirect back to the client.
type AuthorizationCode struct {
	ID                  uint      `json:"-" gorm:"primaryKey;autoIncrement"`
	CodeHash            string    `json:"-" gorm:"type:varchar(64);uniqueIndex;not null"`
	ClientID            string    `json:"client_id" gorm:"type:varchar(36);not null"`
	UserID              uint      `json:"user_id" gorm:"not null"`
	RedirectURI         string    `json:"redirect_uri" gorm:"type:text;not null"`
	Scope               []string  `json:"scope" gorm:"serializer:json;type:text"`
	CodeChallenge       string    `json:"code_challenge" gorm:"type:varchar(128)"`
	CodeChallengeMethod string    `json:"code_challenge_method" gorm:"type:varchar(10)"`
	ExpiresAt           time.Time `json:"expires_at" gorm:"not null"`
	IsUsed              bool      `json:"is_used" gorm:"not null;default:false"`
	CreatedAt           time.Time `json:"created_at"`
}
