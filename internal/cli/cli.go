// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cli implements the clinic command line: authentication commands
// that drive the session, and records commands for patients, appointments,
// medical notes and photos.
//
// Commands never build their own dependencies. The root command asks a
// [RuntimeFactory] for a [Runtime] once the flags are parsed and closes it
// when the command returns.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/MKhiriev/go-clinic-client/internal/config"
	"github.com/MKhiriev/go-clinic-client/internal/service"
	"github.com/MKhiriev/go-clinic-client/models"
)

// annotationNoRuntime marks commands that run without a Runtime.
const annotationNoRuntime = "clinic/no-runtime"

// ErrNoRuntime is returned when a command needs services but the runtime was
// not built.
var ErrNoRuntime = errors.New("runtime is not initialised")

// Runtime is what the commands need from the running client.
type Runtime interface {
	Auth() service.AuthService
	Records() service.RecordsService
	Close() error
}

// RuntimeFactory builds a Runtime from the parsed persistent flags.
type RuntimeFactory func(ctx context.Context, fs *pflag.FlagSet) (Runtime, error)

// CLI owns the command tree and the runtime built for the current
// invocation.
type CLI struct {
	factory   RuntimeFactory
	buildInfo models.AppBuildInfo
	runtime   Runtime
	root      *cobra.Command
}

// New creates the command tree.
func New(factory RuntimeFactory, buildInfo models.AppBuildInfo) *CLI {
	c := &CLI{factory: factory, buildInfo: buildInfo}
	c.root = c.newRootCmd()
	return c
}

// Root returns the root command.
func (c *CLI) Root() *cobra.Command {
	return c.root
}

// ExecuteContext runs the command selected by the process arguments and
// closes the runtime afterwards.
func (c *CLI) ExecuteContext(ctx context.Context) error {
	err := c.root.ExecuteContext(ctx)

	if c.runtime != nil {
		if closeErr := c.runtime.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close runtime: %w", closeErr)
		}
		c.runtime = nil
	}

	return err
}

func (c *CLI) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "clinic",
		Short: "Clinical records client",
		Long: `Command line client for the clinic records API.

Sign in once with 'clinic auth login'; the session is kept on this device
until you sign out or the server rejects it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !needsRuntime(cmd) || c.runtime != nil {
				return nil
			}
			rt, err := c.factory(cmd.Context(), cmd.Flags())
			if err != nil {
				return err
			}
			c.runtime = rt
			return nil
		},
	}

	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		c.newAuthCmd(),
		c.newPatientsCmd(),
		c.newAppointmentsCmd(),
		c.newNotesCmd(),
		c.newPhotosCmd(),
		c.newVersionCmd(),
	)

	return root
}

// needsRuntime reports whether cmd talks to the services. Help, shell
// completion and annotated commands do not.
func needsRuntime(cmd *cobra.Command) bool {
	for cur := cmd; cur != nil; cur = cur.Parent() {
		if cur.Annotations[annotationNoRuntime] == "true" {
			return false
		}
		switch cur.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

func (c *CLI) auth() (service.AuthService, error) {
	if c.runtime == nil {
		return nil, ErrNoRuntime
	}
	return c.runtime.Auth(), nil
}

func (c *CLI) records() (service.RecordsService, error) {
	if c.runtime == nil {
		return nil, ErrNoRuntime
	}
	return c.runtime.Records(), nil
}
