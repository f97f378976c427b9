// Package workers runs the client's background jobs. Its single job today is
// the periodic [RefreshJob] that re-converges synced collections with the
// remote document.
package workers

import "context"

// Refresher is any sync component that can force-fetch its remote state.
// Both the array engines and the settings mirror satisfy it.
type Refresher interface {
	Refresh(ctx context.Context) error
}
