package entity

type ApplicationStatus string

const (
	ApplicationStatusDraft       ApplicationStatus = "draft"
	ApplicationStatusSubmitted   ApplicationStatus = "submitted"
	ApplicationStatusUnderReview ApplicationStatus = "under_review"
	ApplicationStatusApproved    ApplicationStatus = "approved"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
)

func (s ApplicationStatus) String() string {
	return string(s)
}

type VideoReviewStatus string

const (
	VideoReviewPending  VideoReviewStatus = "pending"
	VideoReviewApproved VideoReviewStatus = "approved"
	VideoReviewRejected VideoReviewStatus = "rejected"
)

func (s VideoReviewStatus) String() string {
	return string(s)
}

// Channel is a contact channel an applicant proves control of.
type Channel string

const (
	ChannelPhone Channel = "phone"
	ChannelEmail Channel = "email"
)

func (c Channel) String() string {
	return string(c)
}

// IsValid reports whether c is a known channel.
func (c Channel) IsValid() bool {
	return c == ChannelPhone || c == ChannelEmail
}
