// Package mock provides test doubles for smartnurse interfaces using
// function fields.
package mock

import (
	"context"

	"github.com/jpalves/smartnurse"
)

// Interface compliance check.
var _ smartnurse.TriageClient = (*TriageClient)(nil)

// TriageClient is a test double for smartnurse.TriageClient.
// Set the function fields for the methods you need; unset methods return
// zero values.
type TriageClient struct {
	TriageFn         func(ctx context.Context, req smartnurse.TriageRequest) (smartnurse.TriageResult, error)
	TestConnectionFn func(ctx context.Context) (bool, error)
}

// Triage delegates to TriageFn.
func (c *TriageClient) Triage(ctx context.Context, req smartnurse.TriageRequest) (smartnurse.TriageResult, error) {
	if c.TriageFn == nil {
		return smartnurse.TriageResult{}, nil
	}
	return c.TriageFn(ctx, req)
}

// TestConnection delegates to TestConnectionFn. Unset, it reports connected.
func (c *TriageClient) TestConnection(ctx context.Context) (bool, error) {
	if c.TestConnectionFn == nil {
		return true, nil
	}
	return c.TestConnectionFn(ctx)
}
