package protocol

import (
	"context"

	"github.com/dealflow/dealflow/pkg/models"
)

// TriggerCallback receives a run request produced by a trigger source.
type TriggerCallback func(ctx context.Context, request models.RunRequest) error

// Trigger is a long-running source of automation runs.
type Trigger interface {
	Start(ctx context.Context, callback TriggerCallback) error
	Stop(ctx context.Context) error
	Validate(ctx context.Context) error
}
