package tracker

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"code.gitea.io/sdk/gitea"
)

// GiteaTracker promotes cards into issues of a fixed Gitea repository.
type GiteaTracker struct {
	client *gitea.Client
	owner  string
	repo   string
}

// Compile-time verification that *GiteaTracker implements TaskCreator
var _ TaskCreator = (*GiteaTracker)(nil)

// NewGiteaTracker connects to a Gitea instance. repoPath is "owner/repo".
func NewGiteaTracker(url, token, repoPath string) (*GiteaTracker, error) {
	owner, repo, ok := strings.Cut(repoPath, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("invalid tracker repository %q, want owner/repo", repoPath)
	}
	client, err := gitea.NewClient(url, gitea.SetToken(token))
	if err != nil {
		return nil, fmt.Errorf("failed to create tracker client: %w", err)
	}
	return &GiteaTracker{client: client, owner: owner, repo: repo}, nil
}

// CreateTask opens one issue for the card. The first content line becomes the
// issue title; the author, when known, is recorded in the body.
func (t *GiteaTracker) CreateTask(ctx context.Context, content string, authorID *string) (string, error) {
	title, body, _ := strings.Cut(content, "\n")
	if title == "" {
		title = "Retrospective action"
	}
	if authorID != nil {
		body = strings.TrimSpace(body + "\n\nRaised by " + *authorID + " during a retrospective.")
	}
	issue, _, err := t.client.CreateIssue(t.owner, t.repo, gitea.CreateIssueOption{
		Title: title,
		Body:  body,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create issue: %w", err)
	}
	return strconv.FormatInt(issue.Index, 10), nil
}
