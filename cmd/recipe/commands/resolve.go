package commands

import (
	"io"

	"github.com/spf13/cobra"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Print the resolved options and the options propagated to dependencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := c.request()
			if err != nil {
				return err
			}
			ev, err := c.app.Evaluate(req)
			if err != nil {
				return err
			}
			return c.emit(cmd, ev.Resolution, func(w io.Writer) {
				printSection(w, "Options", optionRows(ev.Resolution.Options))
				printSection(w, "Propagated", optionRows(ev.Resolution.Propagated))
				printSection(w, "Notices", noticeRows(ev.Resolution.Notices))
			})
		},
	}
}

func (c *CLI) newDepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Print the upstream packages the build requires",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := c.request()
			if err != nil {
				return err
			}
			ev, err := c.app.Evaluate(req)
			if err != nil {
				return err
			}
			spec := ev.Dependencies
			return c.emit(cmd, spec, func(w io.Writer) {
				refs := make([]string, len(spec.Requirements))
				for i, r := range spec.Requirements {
					refs[i] = r.Reference()
				}
				printSection(w, "Requirements", refs)
				printSection(w, "Propagated", optionRows(spec.Propagated))
			})
		},
	}
}

func (c *CLI) newFlagsCmd() *cobra.Command {
	var cmakeArgs bool
	cmd := &cobra.Command{
		Use:   "flags",
		Short: "Print the definitions passed to the native build",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := c.request()
			if err != nil {
				return err
			}
			ev, err := c.app.Evaluate(req)
			if err != nil {
				return err
			}
			if cmakeArgs {
				args := ev.Flags.CMakeArgs()
				return c.emit(cmd, args, func(w io.Writer) {
					for _, a := range args {
						_, _ = io.WriteString(w, a+"\n")
					}
				})
			}
			return c.emit(cmd, ev.Flags, func(w io.Writer) {
				printSection(w, "Definitions", definitionRows(ev.Flags))
			})
		},
	}
	cmd.Flags().BoolVar(&cmakeArgs, "cmake", false, "Render the definitions as -DNAME=VALUE arguments")
	return cmd
}

func (c *CLI) newIdentityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "identity",
		Short: "Print the package identity of the resolved build",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := c.request()
			if err != nil {
				return err
			}
			ev, err := c.app.Evaluate(req)
			if err != nil {
				return err
			}
			out := struct {
				ID       string            `json:"id"`
				Options  map[string]string `json:"options"`
				Settings map[string]string `json:"settings"`
			}{ev.IdentityID, ev.Identity.Options, ev.Identity.Settings}
			return c.emit(cmd, out, func(w io.Writer) {
				printSection(w, "Identity", []string{ev.IdentityID})
				printSection(w, "Options", mapRows(ev.Identity.Options))
				printSection(w, "Settings", mapRows(ev.Identity.Settings))
			})
		},
	}
}
