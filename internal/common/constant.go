package common

// AuthorizationHeaderName is the HTTP header carrying the bearer access token
// on outbound API requests.
const AuthorizationHeaderName = "Authorization"

// PremiumClaimName is the JWT claim the server sets for accounts with an
// active premium subscription. The client reads it to gate attachment
// downloads on individually-owned records.
const PremiumClaimName = "premium"
