// Package events defines the numeric event codes emitted by the message
// store and the lookup table that turns them into readable names.
package events

import "fmt"

// Code identifies a store event.
type Code int

const (
	Info            Code = 100
	SMTPConnected   Code = 101
	IMAPConnected   Code = 102
	SMTPMessageSent Code = 103

	Warning Code = 300
	Error   Code = 400

	MsgsChanged     Code = 2000
	IncomingMsg     Code = 2005
	MsgDelivered    Code = 2010
	MsgFailed       Code = 2012
	MsgRead         Code = 2015
	ChatModified    Code = 2020
	ContactsChanged Code = 2030
)

// UnknownName is substituted for codes missing from the table.
const UnknownName = "<unknown-event>"

var names = map[Code]string{
	Info:            "DC_EVENT_INFO",
	SMTPConnected:   "DC_EVENT_SMTP_CONNECTED",
	IMAPConnected:   "DC_EVENT_IMAP_CONNECTED",
	SMTPMessageSent: "DC_EVENT_SMTP_MESSAGE_SENT",
	Warning:         "DC_EVENT_WARNING",
	Error:           "DC_EVENT_ERROR",
	MsgsChanged:     "DC_EVENT_MSGS_CHANGED",
	IncomingMsg:     "DC_EVENT_INCOMING_MSG",
	MsgDelivered:    "DC_EVENT_MSG_DELIVERED",
	MsgFailed:       "DC_EVENT_MSG_FAILED",
	MsgRead:         "DC_EVENT_MSG_READ",
	ChatModified:    "DC_EVENT_CHAT_MODIFIED",
	ContactsChanged: "DC_EVENT_CONTACTS_CHANGED",
}

// Name returns the table entry for code.
func Name(code Code) (string, bool) {
	name, ok := names[code]
	return name, ok
}

// NameOrUnknown returns the table entry for code or UnknownName.
func NameOrUnknown(code Code) string {
	if name, ok := names[code]; ok {
		return name
	}
	return UnknownName
}

// Event is a single notification from the store. Data1 and Data2 carry
// event specific values, usually a chat id and a message id.
type Event struct {
	Code  Code
	Data1 any
	Data2 any
}

// New creates an event.
func New(code Code, data1, data2 any) Event {
	return Event{Code: code, Data1: data1, Data2: data2}
}

func (e Event) String() string {
	return fmt.Sprintf("%s (%d) %v %v", NameOrUnknown(e.Code), e.Code, e.Data1, e.Data2)
}
