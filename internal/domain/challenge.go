package domain

// Challenge is one outstanding login code. One active challenge per
// identity; a later request for the same identity overwrites the earlier
// one. Created by the issuer, consumed by the verifier on first match or
// on expiry detection, never mutated in place.
// Durable backends use ExpiresAt (Unix seconds) as the record TTL.
type Challenge struct {
	Identity  string `json:"identity" dynamodbav:"identity"`
	Code      string `json:"code" dynamodbav:"code"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"`
}
