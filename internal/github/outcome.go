package github

import (
	"context"

	"github.com/ghfreaks/eventlocator/internal/model"
)

// Outcome is the tagged result of a profile fetch: either User is set, or
// Kind and Err describe the failure.
type Outcome struct {
	User *model.GitHubUser
	Kind ErrorKind
	Err  error
}

// Succeeded reports whether the fetch produced a user.
func (o Outcome) Succeeded() bool {
	return o.Err == nil && o.User != nil
}

// Alert returns the alert for a failed outcome.
func (o Outcome) Alert() Alert {
	return AlertFor(o.Kind)
}

// OutcomeOf folds a FetchUser return pair into an Outcome.
func OutcomeOf(user *model.GitHubUser, err error) Outcome {
	if err != nil {
		return Outcome{Kind: KindOf(err), Err: err}
	}
	return Outcome{User: user}
}

// Resolve fetches the profile for username and returns the tagged result.
func (c *Client) Resolve(ctx context.Context, username string) Outcome {
	return OutcomeOf(c.FetchUser(ctx, username))
}
