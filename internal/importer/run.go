package importer

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/vendas/internal/sale"
)

var (
	ErrInvalidTransition = errors.New("invalid import transition")
	ErrSubmitInProgress  = errors.New("submission already in progress")
	ErrStaleAttempt      = errors.New("result belongs to a superseded file")
)

// State is a step of one interactive import run.
type State int

const (
	StateIdle State = iota
	StateFileSelected
	StateParsing
	StateHasErrors
	StateReadyToSubmit
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFileSelected:
		return "file selected"
	case StateParsing:
		return "parsing"
	case StateHasErrors:
		return "has errors"
	case StateReadyToSubmit:
		return "ready to submit"
	case StateSubmitting:
		return "submitting"
	}

	return "unknown"
}

// Attempt identifies one file selection. Results carrying an older attempt
// are discarded, so a late parse or submission cannot overwrite a newer file.
type Attempt uint64

// Submission is what BeginSubmit hands to the caller to send.
type Submission struct {
	Attempt        Attempt
	IdempotencyKey string
	FileName       string
	Records        []sale.Sale
}

// Run tracks one import from file selection to submission:
//
//	Idle → FileSelected → Parsing → HasErrors
//	                              → ReadyToSubmit → Submitting → Idle (success)
//	                                                           → ReadyToSubmit (failure)
//
// Selecting a file from any state starts over at FileSelected.
type Run struct {
	state    State
	attempt  Attempt
	fileName string
	outcome  *Outcome
	key      string
	err      error
	imported *sale.Import
}

func NewRun() *Run {
	return &Run{}
}

func (r *Run) State() State           { return r.state }
func (r *Run) FileName() string       { return r.fileName }
func (r *Run) Outcome() *Outcome      { return r.outcome }
func (r *Run) Err() error             { return r.err }
func (r *Run) Imported() *sale.Import { return r.imported }

// SelectFile discards whatever the run held and starts over with name.
func (r *Run) SelectFile(name string) Attempt {
	r.attempt++
	r.state = StateFileSelected
	r.fileName = name
	r.outcome = nil
	r.key = ""
	r.err = nil

	return r.attempt
}

func (r *Run) BeginParse(a Attempt) error {
	if a != r.attempt {
		return ErrStaleAttempt
	}

	if r.state != StateFileSelected {
		return fmt.Errorf("%w: parse from %s", ErrInvalidTransition, r.state)
	}

	r.state = StateParsing

	return nil
}

// FinishParse records the pipeline result. A decode error or any row error
// lands in HasErrors; a clean outcome is ready to submit under a fresh
// idempotency key that every resubmission reuses.
func (r *Run) FinishParse(a Attempt, o *Outcome, err error) error {
	if a != r.attempt {
		return ErrStaleAttempt
	}

	if r.state != StateParsing {
		return fmt.Errorf("%w: finish parse from %s", ErrInvalidTransition, r.state)
	}

	r.outcome = o
	r.err = err

	if err != nil || o == nil || !o.OK() || len(o.Records) == 0 {
		r.state = StateHasErrors
		return nil
	}

	r.key = uuid.NewString()
	r.state = StateReadyToSubmit

	return nil
}

// BeginSubmit is only allowed from ReadyToSubmit.
func (r *Run) BeginSubmit() (Submission, error) {
	switch r.state {
	case StateReadyToSubmit:
	case StateSubmitting:
		return Submission{}, ErrSubmitInProgress
	default:
		return Submission{}, fmt.Errorf("%w: submit from %s", ErrInvalidTransition, r.state)
	}

	r.state = StateSubmitting
	r.err = nil

	return Submission{
		Attempt:        r.attempt,
		IdempotencyKey: r.key,
		FileName:       r.fileName,
		Records:        r.outcome.Records,
	}, nil
}

// FinishSubmit returns the run to Idle on success. On failure the validated
// records are kept so the user can resubmit without re-uploading.
func (r *Run) FinishSubmit(a Attempt, imp *sale.Import, err error) error {
	if a != r.attempt {
		return ErrStaleAttempt
	}

	if r.state != StateSubmitting {
		return fmt.Errorf("%w: finish submit from %s", ErrInvalidTransition, r.state)
	}

	if err != nil {
		r.err = err
		r.state = StateReadyToSubmit

		return nil
	}

	r.imported = imp
	r.state = StateIdle
	r.outcome = nil
	r.key = ""

	return nil
}
