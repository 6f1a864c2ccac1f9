package main

import (
	"fmt"
	"foodwhere/pkg/domain"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func parseIndex(raw string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || i < 1 {
		return 0, fmt.Errorf("index %q must be a positive integer", raw)
	}
	return i, nil
}

// parseDetails drops empty values so "--detail=" clears the tags.
func parseDetails(raw []string) (domain.DetailSet, error) {
	kept := make([]string, 0, len(raw))
	for _, r := range raw {
		if r = strings.TrimSpace(r); r != "" {
			kept = append(kept, r)
		}
	}
	return domain.ParseDetails(kept...)
}

func addFindFlag(cmd *cobra.Command, find *[]string) {
	cmd.Flags().StringSliceVar(find, "find", nil, "resolve INDEX against the list narrowed to these stall name keywords")
}

func printNumbered[E fmt.Stringer](a *app, items []E) {
	for i, item := range items {
		a.printf("%d. %s", i+1, item)
	}
}
