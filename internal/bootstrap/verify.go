package bootstrap

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dealpipeline/dbinit/internal/mongodb"
)

// Check is the result of checking one configured object against the server
type Check struct {
	Name   string
	Passed bool
	Detail string
}

// Failed returns the checks that did not pass
func Failed(checks []Check) []Check {
	var failed []Check
	for _, c := range checks {
		if !c.Passed {
			failed = append(failed, c)
		}
	}
	return failed
}

// Verify checks that the server state matches the configuration.
// A returned error means the server could not be inspected,
// mismatches are reported as failed checks.
func Verify(ctx context.Context, client mongodb.Client, config Config) ([]Check, error) {
	config.Normalize()
	db := config.Database

	var checks []Check

	user, found, err := client.FindUser(ctx, db, config.Credential.Name)
	if err != nil {
		return nil, StepError{Step: "verify credential", Kind: kindOf(err), Err: err}
	}
	checks = append(checks, checkCredential(config.Credential, user, found))

	names, err := client.CollectionNames(ctx, db)
	if err != nil {
		return nil, StepError{Step: "verify collections", Kind: kindOf(err), Err: err}
	}
	existing := make(map[string]struct{}, len(names))
	for _, name := range names {
		existing[name] = struct{}{}
	}
	for _, coll := range config.Collections {
		c := Check{Name: fmt.Sprintf("collection %s", coll.Name)}
		if _, ok := existing[coll.Name]; ok {
			c.Passed, c.Detail = true, "exists"
		} else {
			c.Detail = "not found"
		}
		checks = append(checks, c)
	}

	indexes := map[string][]mongodb.Index{}
	for _, spec := range config.Indexes {
		if _, ok := indexes[spec.Collection]; !ok {
			idxs, err := client.Indexes(ctx, db, spec.Collection)
			if err != nil {
				return nil, StepError{Step: "verify indexes", Kind: kindOf(err), Err: err}
			}
			indexes[spec.Collection] = idxs
		}
		checks = append(checks, checkIndex(spec, indexes[spec.Collection]))
	}

	return checks, nil
}

func checkCredential(cred CredentialConfig, user mongodb.User, found bool) Check {
	c := Check{Name: fmt.Sprintf("credential %s", cred.Name)}
	if !found {
		c.Detail = "not found"
		return c
	}

	want, got := roleStrings(cred.Roles), roleStrings(user.Roles)
	if want != got {
		c.Detail = fmt.Sprintf("roles are [%s], expected [%s]", got, want)
		return c
	}

	c.Passed, c.Detail = true, fmt.Sprintf("roles [%s]", got)
	return c
}

func checkIndex(spec IndexSpec, existing []mongodb.Index) Check {
	want := spec.Index()
	c := Check{Name: fmt.Sprintf("index %s.%s", spec.Collection, want.Name)}

	for _, idx := range existing {
		if idx.Name != want.Name && !idx.SameKeys(want) {
			continue
		}
		if !idx.Matches(want) {
			c.Detail = fmt.Sprintf("found %s, expected %s", idx, want)
			return c
		}
		c.Passed, c.Detail = true, idx.String()
		return c
	}

	c.Detail = "not found"
	return c
}

func roleStrings(roles []mongodb.Role) string {
	out := make([]string, 0, len(roles))
	for _, role := range roles {
		out = append(out, role.String())
	}
	sort.Strings(out)
	return strings.Join(out, ", ")
}
