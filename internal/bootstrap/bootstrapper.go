// Package bootstrap initializes a MongoDB database for an application:
// it selects the database, creates the application credential,
// creates the collections and builds their indexes, in that order.
//
// Every step looks up its target before creating it and applies the
// target's if-exists policy when it is already present, so a second run
// against an initialized database does not touch existing documents.
package bootstrap

import (
	"context"
	"errors"

	"github.com/dealpipeline/dbinit/internal/mongodb"
)

// Bootstrapper runs the bootstrap steps against a MongoDB server
type Bootstrapper struct {
	client mongodb.Client
	config Config
}

// New creates a new Bootstrapper
func New(client mongodb.Client, config Config) *Bootstrapper {
	config.Normalize()
	return &Bootstrapper{client, config}
}

// Report is the record of a bootstrap run
type Report struct {
	Database string
	Results  []StepResult
}

// Count returns the number of steps that finished with the provided outcome
func (r Report) Count(outcome Outcome) int {
	var n int
	for _, res := range r.Results {
		if res.Outcome == outcome {
			n++
		}
	}
	return n
}

// Run executes every step in order, stopping at the first failure.
// The observer, if provided, is called after each successful step.
// The returned report holds the results of the steps that completed.
func (b *Bootstrapper) Run(ctx context.Context, observer func(StepResult)) (Report, error) {
	report := Report{Database: b.config.Database}

	if err := b.config.Validate(); err != nil {
		return report, err
	}

	for _, step := range Steps(b.config) {
		outcome, err := step.apply(ctx, b.client)
		if err != nil {
			return report, StepError{Step: step.Name, Kind: kindOf(err), Err: err}
		}

		res := StepResult{step, outcome}
		report.Results = append(report.Results, res)
		if observer != nil {
			observer(res)
		}
	}
	return report, nil
}

var allKinds = []error{
	ErrConnection,
	ErrAuthorization,
	ErrDuplicateCredential,
	ErrCollectionExists,
	ErrIndexConflict,
	ErrUniqueConstraintViolation,
}

func kindOf(err error) error {
	for _, kind := range allKinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return classify(err)
}
