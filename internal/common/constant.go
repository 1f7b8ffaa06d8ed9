package common

// AuthorizationHeaderName carries the bearer access token on HTTP requests.
const AuthorizationHeaderName = "Authorization"

// NoPet marks a user without a primary pet.
const NoPet int64 = 0

// MaxUploadSize is the default upper bound (exclusive) for image uploads.
const MaxUploadSize int64 = 10 << 20
