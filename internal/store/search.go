package store

import (
	"context"
	"iter"
	"sort"
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"

	"github.com/pagekeep/pagekeep/internal/wiki"
)

// searchLimit caps SearchPages results.
const searchLimit = 100

// slab sizes match fzf's own defaults.
const (
	slab16Size = 100 * 1024
	slab32Size = 2048
)

// fzf's algo package requires Init to populate its scoring tables
// before FuzzyMatchV2 is usable; "default" is the standard scheme.
func init() {
	algo.Init("default")
}

// SearchPages returns pages whose titles fuzzily match query, best
// match first, capped at 100 results. Ties break by folded title
// ascending so result order is stable. An empty query matches every
// page with equal score, degrading to a plain title listing.
//
// Candidate rows are fetched and scored up front; the returned sequence
// holds no database resources.
func (s *Store) SearchPages(ctx context.Context, guildID, query string) iter.Seq2[wiki.PageWithRevision, error] {
	return func(yield func(wiki.PageWithRevision, error) bool) {
		ranked, err := s.rankPages(ctx, guildID, query)
		if err != nil {
			yield(wiki.PageWithRevision{}, err)
			return
		}
		for _, m := range ranked {
			if !yield(m.pr, nil) {
				return
			}
		}
	}
}

type rankedPage struct {
	pr    wiki.PageWithRevision
	score int
	fold  string
}

func (s *Store) rankPages(ctx context.Context, guildID, query string) ([]rankedPage, error) {
	pattern := []rune(strings.ToLower(query))
	slab := util.MakeSlab(slab16Size, slab32Size)

	var ranked []rankedPage
	for pr, err := range s.AllPages(ctx, guildID) {
		if err != nil {
			return nil, err
		}
		chars := util.ToChars([]byte(pr.Page.Title))
		result, _ := algo.FuzzyMatchV2(false, true, true, &chars, pattern, false, slab)
		if result.Start < 0 {
			continue
		}
		ranked = append(ranked, rankedPage{
			pr:    pr,
			score: result.Score,
			fold:  wiki.Fold(pr.Page.Title),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].fold < ranked[j].fold
	})

	if len(ranked) > searchLimit {
		ranked = ranked[:searchLimit]
	}
	return ranked, nil
}
