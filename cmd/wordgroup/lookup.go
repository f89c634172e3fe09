package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spektr-org/wordgroup/lookup"
)

func (a *app) rhymesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rhymes <word>",
		Short: "Words that rhyme with word, grouped by syllable count",
		Example: `  wordgroup rhymes cat
  wordgroup rhymes cat --order lexical --format pretty`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLookup(cmd, a.service.Rhymes, strings.Join(args, " "))
		},
	}
}

func (a *app) synonymsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "synonyms <word>",
		Aliases: []string{"ml"},
		Short:   "Words with a meaning similar to word",
		Example: `  wordgroup synonyms happy
  wordgroup ml "ringing in the ears" --format csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLookup(cmd, a.service.Synonyms, strings.Join(args, " "))
		},
	}
}

func (a *app) lookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <word>",
		Short: "Rhymes and similar words, fetched concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rhymes, synonyms, err := a.service.Both(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				_ = a.renderer.Failure(cmd.OutOrStdout(), err)
				return err
			}
			return a.renderer.Lookup(cmd.OutOrStdout(), rhymes, synonyms)
		},
	}
}

func (a *app) runLookup(cmd *cobra.Command, fn func(context.Context, string) (*lookup.Result, error), word string) error {
	res, err := fn(cmd.Context(), word)
	if err != nil {
		_ = a.renderer.Failure(cmd.OutOrStdout(), err)
		return err
	}
	return a.renderer.Lookup(cmd.OutOrStdout(), res)
}
