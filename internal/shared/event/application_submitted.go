package event

import "time"

const ApplicationSubmittedDestination string = "ambassador.application.submitted"
const ApplicationSubmittedConsumerNotification string = "ambassador.application.submitted.notification"

type ApplicationSubmittedMessage struct {
	ApplicationID int64     `json:"application_id,string"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	SubmittedAt   time.Time `json:"submitted_at"`
}
