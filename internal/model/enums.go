package model

// CallStatus is a user's presence
type CallStatus string

const (
	CallStatusOnline  CallStatus = "online"
	CallStatusOffline CallStatus = "offline"
	CallStatusInCall  CallStatus = "in_call"
)

func (s CallStatus) Valid() bool {
	switch s {
	case CallStatusOnline, CallStatusOffline, CallStatusInCall:
		return true
	}
	return false
}

type FriendRequestStatus string

const (
	FriendRequestStatusPending  FriendRequestStatus = "pending"
	FriendRequestStatusAccepted FriendRequestStatus = "accepted"
	FriendRequestStatusRejected FriendRequestStatus = "rejected"
)

// ValidResponse reports whether s is a decision a receiver may give
func (s FriendRequestStatus) ValidResponse() bool {
	return s == FriendRequestStatusAccepted || s == FriendRequestStatusRejected
}

type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeVideo MessageType = "video"
	MessageTypeAudio MessageType = "audio"
)

func (t MessageType) Valid() bool {
	switch t {
	case MessageTypeText, MessageTypeImage, MessageTypeVideo, MessageTypeAudio:
		return true
	}
	return false
}

type CallType string

const (
	CallTypeAudio CallType = "audio"
	CallTypeVideo CallType = "video"
)

func (t CallType) Valid() bool {
	return t == CallTypeAudio || t == CallTypeVideo
}

// CallOutcome is how a logged call ended
type CallOutcome string

const (
	CallOutcomeCompleted CallOutcome = "completed"
	CallOutcomeMissed    CallOutcome = "missed"
	CallOutcomeRejected  CallOutcome = "rejected"
)

func (o CallOutcome) Valid() bool {
	switch o {
	case CallOutcomeCompleted, CallOutcomeMissed, CallOutcomeRejected:
		return true
	}
	return false
}

type MediaType string

const (
	MediaTypeText  MediaType = "text"
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

func (t MediaType) Valid() bool {
	switch t {
	case MediaTypeText, MediaTypeImage, MediaTypeVideo:
		return true
	}
	return false
}

type Privacy string

const (
	PrivacyPublic      Privacy = "public"
	PrivacyFriendsOnly Privacy = "friends_only"
)

func (p Privacy) Valid() bool {
	return p == PrivacyPublic || p == PrivacyFriendsOnly
}
