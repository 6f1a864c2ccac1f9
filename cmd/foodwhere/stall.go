package main

import (
	"foodwhere/pkg/domain"

	"github.com/spf13/cobra"
)

func newStallCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stall",
		Aliases: []string{"stalls"},
		Short:   "Add, edit, delete and look up stalls",
	}
	cmd.AddCommand(
		newStallAddCmd(a),
		newStallEditCmd(a),
		newStallDeleteCmd(a),
		newStallListCmd(a),
		newStallFindCmd(a),
	)
	return cmd
}

func newStallAddCmd(a *app) *cobra.Command {
	var name, address string
	var details []string
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a stall",
		Example: "  foodwhere stall add -n \"Alex Chicken Rice\" -a \"Blk 30 Geylang Street 29, #06-40\" -d chickenrice",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stall, err := buildStall(name, address, details)
			if err != nil {
				return err
			}
			added, err := a.svc.AddStall(cmd.Context(), stall)
			if err != nil {
				return err
			}
			a.printf(msgStallAdded, added)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "stall name")
	cmd.Flags().StringVarP(&address, "address", "a", "", "stall address")
	cmd.Flags().StringSliceVarP(&details, "detail", "d", nil, "one-word detail tag (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("address")
	return cmd
}

func newStallEditCmd(a *app) *cobra.Command {
	var name, address string
	var details, find []string
	cmd := &cobra.Command{
		Use:   "edit INDEX",
		Short: "Edit the stall at INDEX; renaming carries its reviews along",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			var patch domain.StallPatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				n, err := domain.NewName(name)
				if err != nil {
					return err
				}
				patch.Name = &n
			}
			if flags.Changed("address") {
				addr, err := domain.NewAddress(address)
				if err != nil {
					return err
				}
				patch.Address = &addr
			}
			if flags.Changed("detail") {
				set, err := parseDetails(details)
				if err != nil {
					return err
				}
				patch.Details = &set
			}
			narrowStalls(a, find)
			edited, err := a.svc.EditStall(cmd.Context(), index, patch)
			if err != nil {
				return err
			}
			a.printf(msgStallEdited, edited)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "new stall name")
	cmd.Flags().StringVarP(&address, "address", "a", "", "new stall address")
	cmd.Flags().StringSliceVarP(&details, "detail", "d", nil, "replace the detail tags; pass an empty value to clear them")
	addFindFlag(cmd, &find)
	return cmd
}

func newStallDeleteCmd(a *app) *cobra.Command {
	var find []string
	cmd := &cobra.Command{
		Use:   "delete INDEX",
		Short: "Delete the stall at INDEX together with its reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			narrowStalls(a, find)
			deleted, err := a.svc.DeleteStall(cmd.Context(), index)
			if err != nil {
				return err
			}
			a.printf(msgStallDeleted, deleted)
			return nil
		},
	}
	addFindFlag(cmd, &find)
	return cmd
}

func newStallListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every stall",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			stalls := a.svc.ListStalls()
			printNumbered(a, stalls)
			a.printf(msgStallsListed, len(stalls))
			return nil
		},
	}
}

func newStallFindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find KEYWORD...",
		Short: "List stalls whose name contains any KEYWORD as a whole word",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			stalls := a.svc.FindStalls(args...)
			printNumbered(a, stalls)
			a.printf(msgStallsListed, len(stalls))
			return nil
		},
	}
}

func buildStall(name, address string, details []string) (*domain.Stall, error) {
	n, err := domain.NewName(name)
	if err != nil {
		return nil, err
	}
	addr, err := domain.NewAddress(address)
	if err != nil {
		return nil, err
	}
	set, err := parseDetails(details)
	if err != nil {
		return nil, err
	}
	return domain.NewStall(n, addr, set)
}

// narrowStalls applies a find filter so INDEX refers to the filtered list.
func narrowStalls(a *app, keywords []string) {
	if len(keywords) > 0 {
		a.svc.FindStalls(keywords...)
	}
}
