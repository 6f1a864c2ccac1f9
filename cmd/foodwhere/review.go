package main

import (
	"foodwhere/internal/core"
	"foodwhere/pkg/domain"

	"github.com/spf13/cobra"
)

func newReviewCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "review",
		Aliases: []string{"reviews"},
		Short:   "Add, edit, delete and look up reviews",
	}
	cmd.AddCommand(
		newReviewAddCmd(a),
		newReviewEditCmd(a),
		newReviewDeleteCmd(a),
		newReviewListCmd(a),
		newReviewFindCmd(a),
	)
	return cmd
}

type reviewFlags struct {
	date    string
	content string
	rating  int
	details []string
}

func (f *reviewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.date, "date", "D", "", "review date as d/m/yyyy")
	cmd.Flags().StringVarP(&f.content, "content", "c", "", "review text")
	cmd.Flags().IntVarP(&f.rating, "rating", "r", 0, "rating from 0 to 5")
	cmd.Flags().StringSliceVarP(&f.details, "detail", "d", nil, "one-word detail tag (repeatable)")
}

func newReviewAddCmd(a *app) *cobra.Command {
	var f reviewFlags
	var find []string
	cmd := &cobra.Command{
		Use:     "add STALL_INDEX",
		Short:   "Review the stall at STALL_INDEX",
		Example: "  foodwhere review add 1 -D 20/9/2022 -c \"Very tasty\" -r 5 -d travelworthy",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			draft, err := f.draft()
			if err != nil {
				return err
			}
			narrowStalls(a, find)
			added, err := a.svc.AddReview(cmd.Context(), index, draft)
			if err != nil {
				return err
			}
			a.printf(msgReviewAdded, added)
			return nil
		},
	}
	f.register(cmd)
	for _, name := range []string{"date", "content", "rating"} {
		_ = cmd.MarkFlagRequired(name)
	}
	addFindFlag(cmd, &find)
	return cmd
}

func (f *reviewFlags) draft() (core.ReviewDraft, error) {
	date, err := domain.NewDate(f.date)
	if err != nil {
		return core.ReviewDraft{}, err
	}
	content, err := domain.NewContent(f.content)
	if err != nil {
		return core.ReviewDraft{}, err
	}
	rating, err := domain.NewRating(f.rating)
	if err != nil {
		return core.ReviewDraft{}, err
	}
	details, err := parseDetails(f.details)
	if err != nil {
		return core.ReviewDraft{}, err
	}
	return core.ReviewDraft{Date: date, Content: content, Rating: rating, Details: details}, nil
}

func newReviewEditCmd(a *app) *cobra.Command {
	var f reviewFlags
	var find []string
	cmd := &cobra.Command{
		Use:   "edit INDEX",
		Short: "Edit the review at INDEX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			patch, err := f.patch(cmd)
			if err != nil {
				return err
			}
			narrowReviews(a, find)
			edited, err := a.svc.EditReview(cmd.Context(), index, patch)
			if err != nil {
				return err
			}
			a.printf(msgReviewEdited, edited)
			return nil
		},
	}
	f.register(cmd)
	addFindFlag(cmd, &find)
	return cmd
}

func (f *reviewFlags) patch(cmd *cobra.Command) (domain.ReviewPatch, error) {
	var patch domain.ReviewPatch
	flags := cmd.Flags()
	if flags.Changed("date") {
		date, err := domain.NewDate(f.date)
		if err != nil {
			return patch, err
		}
		patch.Date = &date
	}
	if flags.Changed("content") {
		content, err := domain.NewContent(f.content)
		if err != nil {
			return patch, err
		}
		patch.Content = &content
	}
	if flags.Changed("rating") {
		rating, err := domain.NewRating(f.rating)
		if err != nil {
			return patch, err
		}
		patch.Rating = &rating
	}
	if flags.Changed("detail") {
		details, err := parseDetails(f.details)
		if err != nil {
			return patch, err
		}
		patch.Details = &details
	}
	return patch, nil
}

func newReviewDeleteCmd(a *app) *cobra.Command {
	var find []string
	cmd := &cobra.Command{
		Use:   "delete INDEX",
		Short: "Delete the review at INDEX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			narrowReviews(a, find)
			deleted, err := a.svc.DeleteReview(cmd.Context(), index)
			if err != nil {
				return err
			}
			a.printf(msgReviewDeleted, deleted)
			return nil
		},
	}
	addFindFlag(cmd, &find)
	return cmd
}

func newReviewListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every review",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			reviews := a.svc.ListReviews()
			printNumbered(a, reviews)
			a.printf(msgReviewsListed, len(reviews))
			return nil
		},
	}
}

func newReviewFindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find KEYWORD...",
		Short: "List reviews of stalls whose name contains any KEYWORD as a whole word",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			reviews := a.svc.FindReviews(args...)
			printNumbered(a, reviews)
			a.printf(msgReviewsListed, len(reviews))
			return nil
		},
	}
}

func narrowReviews(a *app, keywords []string) {
	if len(keywords) > 0 {
		a.svc.FindReviews(keywords...)
	}
}
