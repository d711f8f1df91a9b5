package service

import (
	"context"

	"github.com/aussiebroadwan/clientcred/pkg/slogx"
)

// Audit event names, one per admin operation.
const (
	EventClientCreated    = "ClientCreated"
	EventClientDuplicated = "ClientDuplicated"
	EventClientDeleted    = "ClientDeleted"
	EventClientMigrated   = "ClientMigrated"
	EventDeploymentAdded  = "DeploymentAdded"
)

// Recorder receives audit events for admin operations. The default sink
// writes them to the request-scoped logger; deployments can plug in a
// real telemetry pipeline instead.
type Recorder interface {
	Record(ctx context.Context, event string, attrs map[string]string)
}

// SlogRecorder emits audit events as structured log lines.
type SlogRecorder struct{}

func (SlogRecorder) Record(ctx context.Context, event string, attrs map[string]string) {
	args := make([]any, 0, 2+len(attrs)*2)
	args = append(args, "event", event)
	for k, v := range attrs {
		args = append(args, k, v)
	}
	slogx.FromContext(ctx).Info("audit", args...)
}
