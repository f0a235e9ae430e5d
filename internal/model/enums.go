package model

type RequestType string

const (
	RequestTypeAppointment RequestType = "appointment"
	RequestTypeQuote       RequestType = "quote"
	RequestTypeMeeting     RequestType = "meeting"
)

func ValidRequestTypes() []RequestType {
	return []RequestType{RequestTypeAppointment, RequestTypeQuote, RequestTypeMeeting}
}

func IsValidRequestType(t RequestType) bool {
	switch t {
	case RequestTypeAppointment, RequestTypeQuote, RequestTypeMeeting:
		return true
	}
	return false
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"
)

func IsValidRequestStatus(s RequestStatus) bool {
	switch s {
	case RequestStatusPending, RequestStatusAccepted, RequestStatusRejected:
		return true
	}
	return false
}
