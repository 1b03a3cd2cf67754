// Package contactclient drives the contact form from the browser side: it
// owns the field values and submission status, posts the form to the API and
// maps the response back to the form.
package contactclient

import (
	"errors"
	"strings"
)

// Status is where the form is in its submission lifecycle.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

// Field names one of the form inputs.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldSubject Field = "subject"
	FieldMessage Field = "message"
)

// ErrMissingFields is returned by Submit when a required input is empty.
var ErrMissingFields = errors.New("all fields are required")

// Fields mirrors the request body accepted by POST /api/contact.
type Fields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Missing lists the empty fields in form order.
func (f Fields) Missing() []Field {
	var missing []Field
	for _, kv := range []struct {
		field Field
		value string
	}{
		{FieldName, f.Name},
		{FieldEmail, f.Email},
		{FieldSubject, f.Subject},
		{FieldMessage, f.Message},
	} {
		if strings.TrimSpace(kv.value) == "" {
			missing = append(missing, kv.field)
		}
	}
	return missing
}

func (f Fields) with(field Field, value string) Fields {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldSubject:
		f.Subject = value
	case FieldMessage:
		f.Message = value
	}
	return f
}

// State is everything the form renders from.
type State struct {
	Fields Fields
	Status Status
	// Invalid holds the fields that blocked the last submit attempt.
	Invalid []Field
	// Err is the failure behind StatusError.
	Err error
}

// CanSubmit reports whether the submit control is enabled.
func (s State) CanSubmit() bool {
	return s.Status == StatusIdle || s.Status == StatusError
}

// Action is an event applied to State by Reduce.
type Action interface {
	isAction()
}

// FieldChanged records user input.
type FieldChanged struct {
	Field Field
	Value string
}

// SubmitRequested is the user pressing submit.
type SubmitRequested struct{}

// SubmitSucceeded is a 2xx response from the API.
type SubmitSucceeded struct{}

// SubmitFailed is a non-2xx response or a failed request.
type SubmitFailed struct {
	Err error
}

// ResetElapsed fires once the success message has been shown long enough.
type ResetElapsed struct{}

func (FieldChanged) isAction()    {}
func (SubmitRequested) isAction() {}
func (SubmitSucceeded) isAction() {}
func (SubmitFailed) isAction()    {}
func (ResetElapsed) isAction()    {}

// InitialState is the form as first rendered.
func InitialState() State {
	return State{Status: StatusIdle}
}

// Reduce returns the state that follows s after a. It never mutates s.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case FieldChanged:
		s.Fields = s.Fields.with(a.Field, a.Value)
		s.Invalid = nil
	case SubmitRequested:
		if !s.CanSubmit() {
			return s
		}
		if missing := s.Fields.Missing(); len(missing) > 0 {
			s.Invalid = missing
			return s
		}
		s.Status = StatusSubmitting
		s.Invalid = nil
		s.Err = nil
	case SubmitSucceeded:
		if s.Status != StatusSubmitting {
			return s
		}
		s.Status = StatusSuccess
		s.Fields = Fields{}
	case SubmitFailed:
		if s.Status != StatusSubmitting {
			return s
		}
		s.Status = StatusError
		s.Err = a.Err
	case ResetElapsed:
		if s.Status == StatusSuccess {
			s.Status = StatusIdle
		}
	}
	return s
}
