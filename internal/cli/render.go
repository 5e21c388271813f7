package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pagekeep/pagekeep/internal/wiki"
)

const timeLayout = "2006-01-02 15:04:05 UTC"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// summarize reduces revision content to its first line, truncated so
// history listings stay one row per revision.
func summarize(content string) string {
	line, _, _ := strings.Cut(content, "\n")
	const max = 60
	runes := []rune(line)
	if len(runes) <= max {
		return line
	}
	return string(runes[:max]) + "…"
}

func renderPage(w io.Writer, pr wiki.PageWithRevision) {
	fmt.Fprintf(w, "%s\n", pr.Page.Title)
	fmt.Fprintf(w, "revision #%d by %s at %s\n", pr.Revision.RevisionID, pr.Revision.AuthorID, formatTime(pr.Revision.CreatedAt))
	fmt.Fprintf(w, "\n%s\n", pr.Revision.Content)
}

func renderHistory(w io.Writer, revs []wiki.PageWithRevision) {
	for _, pr := range revs {
		fmt.Fprintf(w, "#%d  %s  %s  %s\n",
			pr.Revision.RevisionID,
			formatTime(pr.Revision.CreatedAt),
			pr.Revision.AuthorID,
			summarize(pr.Revision.Content))
	}
}

func renderPageList(w io.Writer, pages []wiki.PageWithRevision) {
	for _, pr := range pages {
		fmt.Fprintf(w, "%s  (revision #%d, %s)\n",
			pr.Page.Title, pr.Revision.RevisionID, formatTime(pr.Revision.CreatedAt))
	}
}

func renderRevisions(w io.Writer, revs []wiki.PageWithRevision) {
	for i, pr := range revs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s, revision #%d by %s at %s\n%s\n",
			pr.Page.Title, pr.Revision.RevisionID, pr.Revision.AuthorID,
			formatTime(pr.Revision.CreatedAt), pr.Revision.Content)
	}
}

func renderOverwrites(w io.Writer, ows []wiki.PageOverwrite) {
	if len(ows) == 0 {
		fmt.Fprintln(w, "no overwrites")
		return
	}
	for _, ow := range ows {
		fmt.Fprintf(w, "role %s: allow %s, deny %s\n", ow.RoleID, ow.Allow, ow.Deny)
	}
}

// JSON output shapes. Text rendering is for humans; these are the
// stable machine form behind --format json.

type revisionJSON struct {
	RevisionID int64  `json:"revision_id"`
	AuthorID   string `json:"author_id"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
}

type pageJSON struct {
	PageID   string       `json:"page_id"`
	GuildID  string       `json:"guild_id"`
	Title    string       `json:"title"`
	Revision revisionJSON `json:"revision"`
}

type overwriteJSON struct {
	RoleID string `json:"role_id"`
	Allow  uint64 `json:"allow"`
	Deny   uint64 `json:"deny"`
}

type permissionsJSON struct {
	Mask  uint64 `json:"mask"`
	Names string `json:"names"`
}

func toPageJSON(pr wiki.PageWithRevision) pageJSON {
	return pageJSON{
		PageID:  pr.Page.PageID,
		GuildID: pr.Page.GuildID,
		Title:   pr.Page.Title,
		Revision: revisionJSON{
			RevisionID: pr.Revision.RevisionID,
			AuthorID:   pr.Revision.AuthorID,
			Content:    pr.Revision.Content,
			CreatedAt:  pr.Revision.CreatedAt.UTC().Format(time.RFC3339),
		},
	}
}

func toPageJSONs(prs []wiki.PageWithRevision) []pageJSON {
	out := make([]pageJSON, len(prs))
	for i, pr := range prs {
		out[i] = toPageJSON(pr)
	}
	return out
}

func toOverwriteJSONs(ows []wiki.PageOverwrite) []overwriteJSON {
	out := make([]overwriteJSON, len(ows))
	for i, ow := range ows {
		out[i] = overwriteJSON{RoleID: ow.RoleID, Allow: uint64(ow.Allow), Deny: uint64(ow.Deny)}
	}
	return out
}
