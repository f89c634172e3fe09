package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spektr-org/wordgroup/saved"
)

func (a *app) saveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <word>...",
		Short: "Add words to the saved list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := saved.Load(a.cfg.SavedPath)
			if err != nil {
				return err
			}
			added := 0
			for _, w := range args {
				if list.Add(w) {
					added++
				}
			}
			if added > 0 {
				if err := list.Save(a.cfg.SavedPath); err != nil {
					return err
				}
			}
			a.logger.Debug("save",
				zap.String("path", a.cfg.SavedPath),
				zap.Int("added", added),
				zap.Int("total", list.Len()))
			return a.renderer.Saved(cmd.OutOrStdout(), list)
		},
	}
}

func (a *app) savedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "saved",
		Short: "Show the saved list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := saved.Load(a.cfg.SavedPath)
			if err != nil {
				return err
			}
			return a.renderer.Saved(cmd.OutOrStdout(), list)
		},
	}
}
