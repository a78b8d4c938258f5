package service

import (
	"errors"

	"subtrans/internal/awsauth"
	"subtrans/internal/scheduler"
	"subtrans/internal/subtitle"
	"subtrans/internal/translator"
)

// ErrPrerequisiteMissing means the selected backend cannot be constructed
// from the available configuration (no credentials, no API key). Raised
// before any job runs.
var ErrPrerequisiteMissing = errors.New("backend prerequisite missing")

// ErrNoInputFiles means the scan found nothing to translate. A run that
// touches zero files is reported as a failure so automation notices dead
// input directories.
var ErrNoInputFiles = errors.New("no source subtitle files found")

type ErrorKind int

const (
	KindPrerequisite ErrorKind = iota
	KindCredentials
	KindEmptyLibrary
	KindBackend
	KindMalformedInput
	KindPostcondition
	KindUnknown
)

// Classify maps an error from anywhere in the pipeline onto the operator
// taxonomy. Wrapped sentinels are matched through the chain.
func Classify(err error) ErrorKind {
	switch {
	case errors.Is(err, awsauth.ErrCredentialsUnavailable):
		return KindCredentials
	case errors.Is(err, ErrPrerequisiteMissing):
		return KindPrerequisite
	case errors.Is(err, ErrNoInputFiles):
		return KindEmptyLibrary
	case errors.Is(err, translator.ErrBackendUnavailable),
		errors.Is(err, translator.ErrEmptyResponse):
		return KindBackend
	case errors.Is(err, subtitle.ErrMalformedDocument),
		errors.Is(err, subtitle.ErrReconstructionUnderflow):
		return KindMalformedInput
	case errors.Is(err, scheduler.ErrPostconditionViolation):
		return KindPostcondition
	default:
		return KindUnknown
	}
}

// Advice returns a short operator hint for an error. Logged next to the
// error itself so a failed run tells the operator what to check first.
func Advice(err error) string {
	switch Classify(err) {
	case KindCredentials:
		return "set AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY or add the profile to the shared credentials file"
	case KindPrerequisite:
		return "check TRANSLATE_BACKEND and the backend's required settings (LLM_API_KEY for prompt, credentials for rest)"
	case KindEmptyLibrary:
		return "check INPUT_DIRS and SOURCE_LANG; files must end in .<source>.srt"
	case KindBackend:
		return "check network reachability and the provider's status, then re-run; finished pairs are skipped"
	case KindMalformedInput:
		return "inspect the source file; it must contain at least one SRT cue block"
	case KindPostcondition:
		return "the bad output was removed; re-run to retry, and reduce MAX_CHUNK_BYTES if it recurs"
	default:
		return "review the error detail and the run's log output"
	}
}
