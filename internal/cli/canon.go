package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/grapheq/grapheq/pkg/cache"
	"github.com/grapheq/grapheq/pkg/canonical"
	"github.com/grapheq/grapheq/pkg/graphjson"
)

// canonCacheTTL bounds how long canonical forms stay in the local cache.
const canonCacheTTL = 7 * 24 * time.Hour

// canonCommand creates the 'canon' command.
func (c *CLI) canonCommand() *cobra.Command {
	var (
		format  string
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "canon FILE",
		Short: "Print the canonical form of a graph",
		Long:  `Canonicalize a graph file (.gdl or .json) and print its canonical text form. Two graphs with the same structure produce byte-identical output regardless of node identifiers or declaration order.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			c.Logger.Debug("canonicalizing graph", "path", path)

			g, err := loadGraph(path, format)
			if err != nil {
				return err
			}

			store := cache.NewNullCache()
			if !noCache {
				cfg, err := c.loadConfig()
				if err != nil {
					return err
				}
				if store, err = c.newCache(cfg); err != nil {
					return err
				}
			}
			defer store.Close()

			payload, err := graphjson.Marshal(g)
			if err != nil {
				return err
			}

			data, hit, err := cache.Cached(cmd.Context(), store, cache.CanonicalKey(payload), canonCacheTTL, func() ([]byte, error) {
				form, err := canonical.Canonicalize(g)
				if err != nil {
					return nil, err
				}
				return []byte(form), nil
			})
			if err != nil {
				return err
			}

			if output != "" {
				if err := os.WriteFile(output, append(data, '\n'), 0o644); err != nil {
					return fmt.Errorf("writing output: %w", err)
				}
				printSuccess("Canonicalized %s", path)
				printFile(output)
				printStats(g.NodeCount(), g.RelationshipCount(), hit)
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "input format: gdl or json (default: by extension)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the canonical form to a file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the canonical-form cache")

	return cmd
}
