// Package cmd provides common initialization functions for command-line applications.
package cmd

import (
	"log/slog"

	"github.com/dealflow/dealflow/pkg/actions/createactivity"
	"github.com/dealflow/dealflow/pkg/actions/sendsms"
	"github.com/dealflow/dealflow/pkg/actions/updateworkflow"
	"github.com/dealflow/dealflow/pkg/persistence"
	"github.com/dealflow/dealflow/pkg/registry"
	"github.com/dealflow/dealflow/pkg/sms"
)

func registerNativeActions(reg *registry.Registry, p persistence.Persistence, sender sms.Sender, generator sendsms.MessageGenerator) {
	reg.RegisterAction(sendsms.NewActionFactory(sender, generator))
	reg.RegisterAction(updateworkflow.NewActionFactory(p.PropertyRepository()))
	reg.RegisterAction(createactivity.NewActionFactory(p.ActivityRepository()))
}

func NewRegistry(log *slog.Logger, p persistence.Persistence, sender sms.Sender, generator sendsms.MessageGenerator) *registry.Registry {
	reg := registry.NewRegistry(log)

	registerNativeActions(reg, p, sender, generator)

	return reg
}
