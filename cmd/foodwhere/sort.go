package main

import (
	"fmt"
	"foodwhere/internal/core"
	"foodwhere/pkg/domain"
	"strings"

	"github.com/spf13/cobra"
)

func newSortCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Reorder stalls or reviews",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:       "stalls CRITERIA",
			Short:     fmt.Sprintf("Sort stalls by one of: %s", strings.Join(domain.StallCriteria(), ", ")),
			Args:      cobra.ExactArgs(1),
			ValidArgs: domain.StallCriteria(),
			RunE: func(cmd *cobra.Command, args []string) error {
				order, err := a.svc.SortStalls(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printNumbered(a, a.svc.ListStalls())
				a.printf(msgStallsSorted, order.Criteria)
				return nil
			},
		},
		&cobra.Command{
			Use:       "reviews CRITERIA",
			Short:     fmt.Sprintf("Sort reviews by one of: %s", strings.Join(domain.ReviewCriteria(), ", ")),
			Args:      cobra.ExactArgs(1),
			ValidArgs: domain.ReviewCriteria(),
			RunE: func(cmd *cobra.Command, args []string) error {
				order, err := a.svc.SortReviews(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printNumbered(a, a.svc.ListReviews())
				a.printf(msgReviewsSorted, order.Criteria)
				return nil
			},
		},
	)
	return cmd
}

func newSampleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Replace the address book with the sample data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.svc.Reset(cmd.Context(), core.SampleAddressBook()); err != nil {
				return err
			}
			a.printf(msgSampleRestored, a.svc.Book())
			return nil
		},
	}
}
