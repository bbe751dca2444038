package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/abhisek/sqlpractice/internal/dataset"
	"github.com/abhisek/sqlpractice/internal/sqlexec"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Seed a fresh practice database and print table fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		showScript, _ := cmd.Flags().GetBool("script")
		if showScript {
			fmt.Fprint(cmd.OutOrStdout(), dataset.Script)
			return nil
		}

		ctx := context.Background()
		engine, err := sqlexec.Open(ctx)
		if err != nil {
			return err
		}
		defer engine.Close()

		if err := dataset.Reset(ctx, engine.Conn(), dataset.Script); err != nil {
			return err
		}
		fps, err := dataset.Fingerprint(ctx, engine.Conn())
		if err != nil {
			return fmt.Errorf("fingerprint dataset: %w", err)
		}

		data := pterm.TableData{{"Table", "Rows", "SHA-256"}}
		for _, fp := range fps {
			data = append(data, []string{fp.Table, strconv.Itoa(fp.Rows), fp.Checksum[:16]})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

func init() {
	datasetCmd.Flags().Bool("script", false, "Print the seed script instead of fingerprints")
}
