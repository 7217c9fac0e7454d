package dto

// UserInfo is one identity record from GET /.auth/me. An empty list means
// the deployment has no identity provider configured.
type UserInfo struct {
	AccessToken  string      `json:"access_token,omitempty"`
	ExpiresOn    string      `json:"expires_on,omitempty"`
	IdToken      string      `json:"id_token,omitempty"`
	ProviderName string      `json:"provider_name,omitempty"`
	UserClaims   []UserClaim `json:"user_claims,omitempty"`
	UserId       string      `json:"user_id,omitempty"`
}

type UserClaim struct {
	Typ string `json:"typ"`
	Val string `json:"val"`
}

// Claim returns the value of the first claim with the given type.
func (u UserInfo) Claim(typ string) string {
	for _, c := range u.UserClaims {
		if c.Typ == typ {
			return c.Val
		}
	}
	return ""
}
