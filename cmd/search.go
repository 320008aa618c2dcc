package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hbollon/go-edlib"
	"github.com/spf13/cobra"

	"github.com/moviestream/tamilblasters-indexer/config"
	"github.com/moviestream/tamilblasters-indexer/schema"
	"github.com/moviestream/tamilblasters-indexer/storage"
	"github.com/moviestream/tamilblasters-indexer/utils"
)

var flagLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search indexed movies by title",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum number of results")
}

type rankedMovie struct {
	schema.Movie
	similarity float32
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	movies, err := store.List(cmd.Context())
	if err != nil {
		return err
	}

	q := strings.ToLower(args[0])
	splitLength := 2
	ranked := make([]rankedMovie, 0, len(movies))
	for _, m := range movies {
		name := strings.ToLower(utils.RemoveKnownWebsites(m.Name))
		name = strings.ReplaceAll(name, ".", " ")
		ranked = append(ranked, rankedMovie{
			Movie:      m,
			similarity: edlib.JaccardSimilarity(name, q, splitLength),
		})
	}

	// remove the ones with zero similarity when there is enough to show
	if len(ranked) > flagLimit {
		ranked = utils.Filter(ranked, func(r rankedMovie) bool {
			return r.similarity > 0
		})
	}

	// sort by similarity
	slices.SortFunc(ranked, func(i, j rankedMovie) int {
		return int((j.similarity - i.similarity) * 1000)
	})
	if len(ranked) > flagLimit {
		ranked = ranked[:flagLimit]
	}

	rows := make([][]string, 0, len(ranked))
	for _, r := range ranked {
		qualities := make([]string, 0, len(r.VideoQualities))
		for quality := range r.VideoQualities {
			qualities = append(qualities, quality)
		}
		slices.Sort(qualities)
		rows = append(rows, []string{
			r.Name,
			r.Catalog,
			strings.Join(qualities, ", "),
			r.CreatedAt,
		})
	}

	fmt.Println(renderTable([]string{"Title", "Catalog", "Qualities", "Published"}, rows))

	total, err := store.Count(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("%d of %d indexed movies\n", len(ranked), total)
	return nil
}
