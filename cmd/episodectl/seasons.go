package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pokerjest/animateRenamer/internal/grouping"
	"github.com/pokerjest/animateRenamer/internal/metadata"
	"github.com/pokerjest/animateRenamer/internal/model"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newSeasonsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seasons [provider]",
		Short: "Fetch a show's episode titles and group them into seasons",
		Long: "Providers: " + strings.Join(metadata.NewRegistry(metadata.Options{}).Names(), ", ") + ".\n" +
			"With --season, prints only that season's titles, one per line, ready for `titles --file`.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := a.cfg.Metadata.DefaultProvider
			if len(args) == 1 {
				name = args[0]
			}
			provider, err := metadata.NewRegistry(metadata.Options{
				Proxy:      a.cfg.Metadata.Proxy,
				Timeout:    a.cfg.Metadata.Timeout,
				TVDBAPIKey: a.cfg.Metadata.TVDBAPIKey,
				TMDBToken:  a.cfg.Metadata.TMDBToken,
			}).Get(name)
			if err != nil {
				return err
			}

			strategy, err := grouping.ParseStrategy(lo.Must(cmd.Flags().GetString("strategy")))
			if err != nil {
				return err
			}
			q := metadata.Query{
				ID:   lo.Must(cmd.Flags().GetInt("id")),
				Name: lo.Must(cmd.Flags().GetString("name")),
				Year: lo.Must(cmd.Flags().GetInt("year")),
			}

			ctx, cancel := interruptible(cmd)
			defer cancel()
			details, err := metadata.FetchShowDetails(ctx, provider, q, strategy, a.cfg.Grouping.ChunkSize)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cmd.Flags().Changed("season") {
				season := lo.Must(cmd.Flags().GetInt("season"))
				group, ok := lo.Find(details.EpisodesBySeason, func(s model.SeasonedEpisodes) bool { return s.Season == season })
				if !ok {
					return model.InputError("%s has no season %d", details.Name, season)
				}
				for _, t := range group.Titles {
					fmt.Fprintln(out, t)
				}
				return nil
			}

			fmt.Fprintf(out, "%s (id %d", details.Name, details.ID)
			if details.PremieredYear != nil {
				fmt.Fprintf(out, ", %s", *details.PremieredYear)
			}
			fmt.Fprintln(out, ")")
			rows := lo.Map(details.EpisodesBySeason, func(s model.SeasonedEpisodes, _ int) []string {
				return []string{
					strconv.Itoa(s.Season),
					fmt.Sprintf("%d-%d", s.StartEpisode, s.EndEpisode),
					strconv.Itoa(len(s.Titles)),
				}
			})
			fmt.Fprintln(out, renderTable([]string{"Season", "Episodes", "Titles"}, rows,
				[]columnAlignment{alignRight, alignRight, alignRight}))
			return nil
		},
	}
	cmd.Flags().Int("id", 0, "Show id at the provider")
	cmd.Flags().String("name", "", "Show name to search for")
	cmd.Flags().Int("year", 0, "Premiere year to narrow a name search")
	cmd.Flags().String("strategy", string(grouping.StrategyAuto), "Grouping: auto, chunk, boundary or year")
	cmd.Flags().Int("season", 0, "Print only this season's titles")
	return cmd
}
