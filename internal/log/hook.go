// Package log implements logrus hooks for routing mybin logs to
// destinations other than the console.
package log

import (
	"context"

	"github.com/sirupsen/logrus"
)

// AsyncHook is a logrus hook that buffers entries internally and needs a
// separate goroutine, started via Listen, to flush them.
type AsyncHook interface {
	logrus.Hook
	Listen(ctx context.Context)
}
