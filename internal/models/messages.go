package models

// Fixed client-facing messages.
const (
	MsgUnchangeable        = "cannot modify an already-approved listing"
	MsgNotActiveAd         = "this ad is not active"
	MsgAlreadySold         = "the ad was successfully unlisted"
	MsgSuccessConfirmEmail = "email confirmed successfully"
	MsgInvalidToken        = "invalid or expired token"
	MsgCannotUploadImage   = "image exceeds the maximum allowed size (1500x1500)"
)
