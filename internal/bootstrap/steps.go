package bootstrap

import (
	"context"
	"fmt"

	"github.com/dealpipeline/dbinit/internal/mongodb"
)

// StepKind is the kind of object a step creates
type StepKind string

// set of step kinds, in the order they run
const (
	StepKindDatabase   StepKind = "database"
	StepKindCredential StepKind = "credential"
	StepKindCollection StepKind = "collection"
	StepKindIndex      StepKind = "index"
)

// Outcome is what a step did to its target
type Outcome string

// set of step outcomes
const (
	OutcomeSelected Outcome = "selected"
	OutcomeCreated  Outcome = "created"
	OutcomeSkipped  Outcome = "skipped"
	OutcomeReplaced Outcome = "replaced"
)

// Step is a single named bootstrap operation
type Step struct {
	Name     string
	Kind     StepKind
	Target   string
	IfExists Policy

	apply func(ctx context.Context, client mongodb.Client) (Outcome, error)
}

// StepResult is the result of a completed step
type StepResult struct {
	Step    Step
	Outcome Outcome
}

// Steps builds the ordered step list for the configuration:
// database selection, then the credential, then collections, then indexes
func Steps(config Config) []Step {
	db := config.Database

	steps := make([]Step, 0, 2+len(config.Collections)+len(config.Indexes))
	steps = append(steps, Step{
		Name:   fmt.Sprintf("select database %s", db),
		Kind:   StepKindDatabase,
		Target: db,
		apply: func(ctx context.Context, client mongodb.Client) (Outcome, error) {
			return OutcomeSelected, nil
		},
	})

	cred := config.Credential
	steps = append(steps, Step{
		Name:     fmt.Sprintf("create credential %s", cred.Name),
		Kind:     StepKindCredential,
		Target:   fmt.Sprintf("%s.%s", db, cred.Name),
		IfExists: cred.IfExists,
		apply: func(ctx context.Context, client mongodb.Client) (Outcome, error) {
			return createCredential(ctx, client, db, cred)
		},
	})

	for _, coll := range config.Collections {
		coll := coll
		steps = append(steps, Step{
			Name:     fmt.Sprintf("create collection %s", coll.Name),
			Kind:     StepKindCollection,
			Target:   fmt.Sprintf("%s.%s", db, coll.Name),
			IfExists: coll.IfExists,
			apply: func(ctx context.Context, client mongodb.Client) (Outcome, error) {
				return createCollection(ctx, client, db, coll)
			},
		})
	}

	for _, idx := range config.Indexes {
		idx := idx
		steps = append(steps, Step{
			Name:     fmt.Sprintf("create index %s on %s", idx.IndexName(), idx.Collection),
			Kind:     StepKindIndex,
			Target:   fmt.Sprintf("%s.%s %s", db, idx.Collection, idx.Index()),
			IfExists: idx.IfExists,
			apply: func(ctx context.Context, client mongodb.Client) (Outcome, error) {
				return createIndex(ctx, client, db, idx)
			},
		})
	}

	return steps
}

func createCredential(ctx context.Context, client mongodb.Client, db string, cred CredentialConfig) (Outcome, error) {
	user := mongodb.User{Name: cred.Name, Password: cred.Password, Roles: cred.Roles}

	_, found, err := client.FindUser(ctx, db, cred.Name)
	if err != nil {
		return "", err
	}
	if found {
		return onExistingCredential(ctx, client, db, cred.IfExists, user)
	}

	if err := client.CreateUser(ctx, db, user); err != nil {
		// created by someone else in between the lookup and the create
		if mongodb.HasErrorCode(err, mongodb.CodeUserAlreadyExists) {
			return onExistingCredential(ctx, client, db, cred.IfExists, user)
		}
		return "", err
	}
	return OutcomeCreated, nil
}

func onExistingCredential(ctx context.Context, client mongodb.Client, db string, policy Policy, user mongodb.User) (Outcome, error) {
	switch policy {
	case PolicySkip:
		return OutcomeSkipped, nil
	case PolicyReplace:
		if err := client.UpdateUser(ctx, db, user); err != nil {
			return "", err
		}
		return OutcomeReplaced, nil
	}
	return "", ErrDuplicateCredential
}

func createCollection(ctx context.Context, client mongodb.Client, db string, coll CollectionSpec) (Outcome, error) {
	names, err := client.CollectionNames(ctx, db)
	if err != nil {
		return "", err
	}

	for _, name := range names {
		if name != coll.Name {
			continue
		}
		if coll.IfExists == PolicySkip {
			return OutcomeSkipped, nil
		}
		return "", ErrCollectionExists
	}

	if err := client.CreateCollection(ctx, db, coll.Name); err != nil {
		// created by someone else in between the listing and the create
		if mongodb.HasErrorCode(err, mongodb.CodeNamespaceExists) && coll.IfExists == PolicySkip {
			return OutcomeSkipped, nil
		}
		return "", err
	}
	return OutcomeCreated, nil
}

func createIndex(ctx context.Context, client mongodb.Client, db string, spec IndexSpec) (Outcome, error) {
	return createIndexAttempt(ctx, client, db, spec, false)
}

func createIndexAttempt(ctx context.Context, client mongodb.Client, db string, spec IndexSpec, retried bool) (Outcome, error) {
	want := spec.Index()

	existing, err := client.Indexes(ctx, db, spec.Collection)
	if err != nil {
		return "", err
	}

	var conflict *mongodb.Index
	for i, idx := range existing {
		if idx.Name == want.Name || idx.SameKeys(want) {
			conflict = &existing[i]
			break
		}
	}

	outcome := OutcomeCreated
	if conflict != nil {
		switch {
		case conflict.Matches(want) && spec.IfExists != PolicyError:
			return OutcomeSkipped, nil
		case conflict.Matches(want):
			return "", fmt.Errorf("%w: %s already exists", ErrIndexConflict, conflict.Name)
		case spec.IfExists != PolicyReplace:
			return "", fmt.Errorf("%w: %s already exists as %s", ErrIndexConflict, conflict.Name, conflict)
		}

		if err := client.DropIndex(ctx, db, spec.Collection, conflict.Name); err != nil {
			return "", err
		}
		outcome = OutcomeReplaced
	}

	if _, err := client.CreateIndex(ctx, db, spec.Collection, want); err != nil {
		// built by someone else in between the listing and the create,
		// list again once and settle it like any existing index
		if !retried && mongodb.HasErrorCode(err, mongodb.CodeIndexOptionsConflict, mongodb.CodeIndexKeySpecsConflict) {
			return createIndexAttempt(ctx, client, db, spec, true)
		}
		return "", err
	}
	return outcome, nil
}
