// Package cli implements the mergemetrics command line: the github and whoami
// commands, their argument parsing and the token bootstrap.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ericfisherdev/mergemetrics/internal/domain/model"
)

var (
	// ErrInvalidRange is returned for a date range not in "start..end" form.
	ErrInvalidRange = errors.New("invalid date range")
	// ErrInvalidRepo is returned for a repository that cannot be resolved to owner and name.
	ErrInvalidRepo = errors.New("invalid repository")
)

// ParseRange parses "start..end", e.g. "2020-08-17..2020-08-28".
func ParseRange(s string) (model.DateRange, error) {
	start, end, ok := strings.Cut(strings.TrimSpace(s), "..")
	if !ok || start == "" || end == "" || strings.Contains(end, "..") {
		return model.DateRange{}, fmt.Errorf("%w %q: expected start..end", ErrInvalidRange, s)
	}
	return model.DateRange{Start: start, End: end}, nil
}

// ParseRanges parses every value with ParseRange, keeping their order.
func ParseRanges(values []string) ([]model.DateRange, error) {
	ranges := make([]model.DateRange, 0, len(values))
	for _, v := range values {
		r, err := ParseRange(v)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

// ParseRepo parses "owner/repo", or a bare "repo" owned by defaultOwner.
func ParseRepo(s, defaultOwner string) (model.RepoRef, error) {
	s = strings.TrimSpace(s)
	owner, name, hasOwner := strings.Cut(s, "/")
	if !hasOwner {
		owner, name = defaultOwner, s
	}

	if owner == "" || name == "" || strings.Contains(name, "/") {
		if !hasOwner && name != "" {
			return model.RepoRef{}, fmt.Errorf("%w %q: no owner given and MERGEMETRICS_DEFAULT_OWNER is not set", ErrInvalidRepo, s)
		}
		return model.RepoRef{}, fmt.Errorf("%w %q: expected owner/repo", ErrInvalidRepo, s)
	}
	return model.RepoRef{Owner: owner, Name: name}, nil
}

// ParseRepos parses every value with ParseRepo, keeping their order.
func ParseRepos(values []string, defaultOwner string) ([]model.RepoRef, error) {
	repos := make([]model.RepoRef, 0, len(values))
	for _, v := range values {
		repo, err := ParseRepo(v, defaultOwner)
		if err != nil {
			return nil, err
		}
		repos = append(repos, repo)
	}
	return repos, nil
}
