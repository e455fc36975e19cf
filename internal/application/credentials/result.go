package credentials

import (
	"errors"

	"github.com/researcher10001-hub/bytecity-accounting/internal/domain"
)

// ResultKind tags the outcome of an update.
type ResultKind string

const (
	KindSuccess    ResultKind = "success"
	KindValidation ResultKind = ResultKind(domain.KindValidation)
	KindStorage    ResultKind = ResultKind(domain.KindStorage)
	KindNotFound   ResultKind = ResultKind(domain.KindNotFound)
	KindInternal   ResultKind = ResultKind(domain.KindInternal)
)

const (
	MsgUpdated       = "Password updated successfully"
	msgServerErrorPf = "Server error: "
)

// Result is returned by Updater.Update instead of an error so that every
// outcome, including internal failures, reaches the caller as a value.
type Result struct {
	Kind    ResultKind
	Message string

	// Cause is the underlying error for failures. Never rendered to clients.
	Cause error
}

func (r Result) OK() bool { return r.Kind == KindSuccess }

// Err converts a failed result into a *domain.Error. It returns nil on success.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	var de *domain.Error
	if errors.As(r.Cause, &de) && string(de.Kind) == string(r.Kind) {
		return de
	}
	if r.Kind == KindInternal {
		de = domain.ErrInternal(r.Cause)
		de.Message = r.Message
		return de
	}
	return domain.Wrap(domain.ErrKind(r.Kind), "internal_error", r.Message, r.Cause)
}

func success() Result {
	return Result{Kind: KindSuccess, Message: MsgUpdated}
}

// fromDomain maps a known domain error to its result kind.
func fromDomain(de *domain.Error) Result {
	return Result{Kind: ResultKind(de.Kind), Message: de.Message, Cause: de}
}

// Internal builds an internal-error result whose message carries err's text.
func Internal(err error) Result {
	return Result{Kind: KindInternal, Message: msgServerErrorPf + err.Error(), Cause: err}
}
