package models

// LikeCount is the response body for a like count lookup
type LikeCount struct {
	Count int64 `json:"count"`
}

// LikeResult is the response body for a like submission.
// Liked is true only when this request added a new fingerprint.
type LikeResult struct {
	Count int64 `json:"count"`
	Liked bool  `json:"liked"`
}

// MaxFingerprintLength caps the stored requester fingerprint
const MaxFingerprintLength = 160
