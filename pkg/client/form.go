package client

import (
	"errors"
	"sync"

	"congreso/internal/validation"
)

// State is the submission form's lifecycle state. The tagged variant rules
// out impossible combinations such as success and error at the same time.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// ErrSubmissionInFlight is returned by Submit while a submission is already
// outstanding; the form allows exactly one at a time.
var ErrSubmissionInFlight = errors.New("a submission is already in flight")

// ErrFormCompleted is returned by Submit after a successful submission;
// Reset starts a new one.
var ErrFormCompleted = errors.New("submission already succeeded; call Reset to start a new one")

// ErrEditRequired is returned by Submit while the form is in the error
// state; the user leaves it through the explicit Edit transition.
var ErrEditRequired = errors.New("previous submission failed; call Edit before resubmitting")

// Form drives one registration submission:
//
//	idle -> submitting -> success
//	idle/submitting -> error -> idle (via Edit)
//
// Submit gates on a local run of the server's validation rules for immediate
// feedback; an invalid form stays idle with per-field errors and no request
// is made. Nothing is retried automatically.
type Form struct {
	FullName     string
	Email        string
	Institution  string
	Phone        string
	CommissionID int64
	WorkTitle    string
	WorkSummary  string

	client *Client

	mu          sync.Mutex
	state       State
	fieldErrors map[string]string
	errorKind   OutcomeKind
	messages    []string
	result      *Record
}

// NewForm creates an empty Form in the idle state.
func NewForm(c *Client) *Form {
	return &Form{
		client:      c,
		state:       StateIdle,
		fieldErrors: make(map[string]string),
	}
}

// State returns the current lifecycle state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// FieldErrors returns the current per-field messages (local validation
// failures, or the email field after a conflict).
func (f *Form) FieldErrors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.fieldErrors))
	for k, v := range f.fieldErrors {
		out[k] = v
	}
	return out
}

// ErrorKind returns the outcome kind of the last failed submission. Only
// meaningful in StateError.
func (f *Form) ErrorKind() OutcomeKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errorKind
}

// Messages returns the messages surfaced by the last failed submission.
func (f *Form) Messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

// Result returns the created record after a successful submission.
func (f *Form) Result() *Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

// Submit validates the form locally and, if it passes, posts it to the
// server, transitioning to success or error. The call blocks until the
// outcome is known.
func (f *Form) Submit() error {
	f.mu.Lock()
	switch f.state {
	case StateSubmitting:
		f.mu.Unlock()
		return ErrSubmissionInFlight
	case StateSuccess:
		f.mu.Unlock()
		return ErrFormCompleted
	case StateError:
		f.mu.Unlock()
		return ErrEditRequired
	}

	payload := f.payloadLocked()

	if result := validation.Validate(payload); !result.Valid {
		// Stays idle: the user corrects the fields and submits again.
		f.state = StateIdle
		f.fieldErrors = result.FieldErrors
		f.errorKind = ""
		f.messages = nil
		f.mu.Unlock()
		return nil
	}

	f.state = StateSubmitting
	f.fieldErrors = make(map[string]string)
	f.errorKind = ""
	f.messages = nil
	f.mu.Unlock()

	outcome := f.client.SubmitRegistration(payload)

	f.mu.Lock()
	defer f.mu.Unlock()

	if outcome.Kind == OutcomeCreated {
		f.state = StateSuccess
		f.result = outcome.Record
		f.clearFieldsLocked()
		return nil
	}

	f.state = StateError
	f.errorKind = outcome.Kind
	if len(outcome.Errors) > 0 {
		f.messages = outcome.Errors
	} else if outcome.Message != "" {
		f.messages = []string{outcome.Message}
	}
	if outcome.Kind == OutcomeEmailConflict {
		f.fieldErrors[validation.FieldEmail] = outcome.Message
	}
	return nil
}

// Edit returns an errored form to idle so the user can correct it. Field
// values are kept; error state is cleared.
func (f *Form) Edit() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateError {
		return
	}
	f.state = StateIdle
	f.fieldErrors = make(map[string]string)
	f.errorKind = ""
	f.messages = nil
}

// Reset returns the form to idle for a fresh submission, clearing fields,
// errors and the previous result.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateIdle
	f.clearFieldsLocked()
	f.fieldErrors = make(map[string]string)
	f.errorKind = ""
	f.messages = nil
	f.result = nil
}

func (f *Form) payloadLocked() map[string]interface{} {
	payload := map[string]interface{}{
		"full_name":     f.FullName,
		"email":         f.Email,
		"institution":   f.Institution,
		"commission_id": f.CommissionID,
		"work_title":    f.WorkTitle,
		"work_summary":  f.WorkSummary,
	}
	if f.Phone != "" {
		payload["phone"] = f.Phone
	} else {
		payload["phone"] = nil
	}
	return payload
}

func (f *Form) clearFieldsLocked() {
	f.FullName = ""
	f.Email = ""
	f.Institution = ""
	f.Phone = ""
	f.CommissionID = 0
	f.WorkTitle = ""
	f.WorkSummary = ""
}
