package bootstrap

import (
	"errors"
	"fmt"

	"github.com/dealpipeline/dbinit/internal/mongodb"
)

// set of bootstrap failure kinds, matched with errors.Is
var (
	ErrInvalidConfig             = errors.New("invalid configuration")
	ErrConnection                = errors.New("database server is unreachable")
	ErrAuthorization             = errors.New("not authorized")
	ErrDuplicateCredential       = errors.New("credential already exists")
	ErrCollectionExists          = errors.New("collection already exists")
	ErrIndexConflict             = errors.New("index conflicts with an existing index")
	ErrUniqueConstraintViolation = errors.New("existing documents violate the unique constraint")
)

// StepError is the error that halted the bootstrap at a given step
type StepError struct {
	Step string
	Kind error
	Err  error
}

func (err StepError) Error() string {
	if err.Err == nil {
		return fmt.Sprintf("%s failed: %s", err.Step, err.Kind)
	}
	return fmt.Sprintf("%s failed: %s", err.Step, err.Err)
}

// Unwrap returns the driver error, if any
func (err StepError) Unwrap() error {
	if err.Err == nil {
		return err.Kind
	}
	return err.Err
}

// Is matches the error against its failure kind
func (err StepError) Is(target error) bool {
	return err.Kind != nil && err.Kind == target
}

// classify maps a driver error onto a failure kind
func classify(err error) error {
	switch {
	case mongodb.IsConnectionError(err):
		return ErrConnection
	case mongodb.HasErrorCode(err, mongodb.CodeUnauthorized):
		return ErrAuthorization
	case mongodb.HasErrorCode(err, mongodb.CodeUserAlreadyExists):
		return ErrDuplicateCredential
	case mongodb.HasErrorCode(err, mongodb.CodeNamespaceExists):
		return ErrCollectionExists
	case mongodb.HasErrorCode(err, mongodb.CodeIndexOptionsConflict, mongodb.CodeIndexKeySpecsConflict):
		return ErrIndexConflict
	case mongodb.HasErrorCode(err, mongodb.CodeDuplicateKey):
		return ErrUniqueConstraintViolation
	}
	return nil
}
