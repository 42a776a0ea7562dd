// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/thepetra/petra/internal/guide"
	"github.com/thepetra/petra/internal/readiness"
	"github.com/thepetra/petra/internal/recommend"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// barWidth is the width of a category score bar
	barWidth = 20
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func bar(earned, possible int) string {
	if possible <= 0 {
		return strings.Repeat("░", barWidth)
	}
	filled := min(earned*barWidth/possible, barWidth)
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// PrintReadiness outputs a readiness score with its category breakdown and
// checklist.
func (p *Printer) PrintReadiness(res *readiness.Result) {
	if res == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Score:    %d/100\n", res.Score)
	fmt.Fprintf(&sb, "Tier:     %s\n", res.Tier)
	if res.Headline != "" {
		fmt.Fprintf(&sb, "%s\n", res.Headline)
	}
	sb.WriteString("\n")

	for _, cs := range res.Breakdown {
		fmt.Fprintf(&sb, "%-14s %s %2d/%d\n", cs.Category, bar(cs.Earned, cs.Possible), cs.Earned, cs.Possible)
	}

	if len(res.Checklist) > 0 {
		sb.WriteString("\nChecklist:\n")
		for _, item := range res.Checklist {
			fmt.Fprintf(&sb, "  [%s] %s\n", item.Priority, item.Task)
		}
	}

	p.printBox("ADOPTION READINESS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs the top breed recommendations.
func (p *Printer) PrintRecommendations(recs []recommend.Recommendation, source string) {
	if len(recs) == 0 {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Source: %s\n\n", source)

	count := min(len(recs), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := recs[i]
		fmt.Fprintf(&sb, "#%d  %s (%s)\n", i+1, r.Breed, r.Type)
		fmt.Fprintf(&sb, "    Match: %d%%  Care: %s\n", r.MatchScore, r.CareLevel)
		if len(r.KeyTraits) > 0 {
			fmt.Fprintf(&sb, "    Traits: %s\n", strings.Join(r.KeyTraits, ", "))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(recs) > maxItemsToShow {
		fmt.Fprintf(&sb, "\n... and %d more breeds", len(recs)-maxItemsToShow)
	}

	p.printBox("BREED RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGuide outputs a guide's sections with their free tips. Premium tips
// are counted but not shown.
func (p *Printer) PrintGuide(g *guide.Guide) {
	if g == nil || len(g.Sections) == 0 {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Source: %s\n", g.Source)

	for _, section := range g.Sections {
		fmt.Fprintf(&sb, "\n%s %s\n", section.Icon, section.Title)
		premium := 0
		for _, c := range section.Contents {
			if c.IsPremium {
				premium++
				continue
			}
			fmt.Fprintf(&sb, "  • %s\n", c.Title)
		}
		if premium > 0 {
			fmt.Fprintf(&sb, "  + %d premium tips\n", premium)
		}
	}

	p.printBox("PET PARENT GUIDE", strings.TrimSuffix(sb.String(), "\n"))
}
