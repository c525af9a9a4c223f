package identity

// Metadata carries the optional profile hints a provider attaches to a
// federated account (e.g. from a Google sign-in).
type Metadata struct {
	FullName  string `json:"full_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Identity is a verified external identity. It is only ever produced by the
// Verifier after signature and expiry checks; everything downstream trusts
// Subject and Email as-is.
type Identity struct {
	Subject  string   `json:"subject"`
	Email    string   `json:"email"`
	Role     string   `json:"role,omitempty"`
	Metadata Metadata `json:"metadata"`
}
