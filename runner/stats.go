package runner

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Stats struct {
	Commits int64
	Counts  map[string][]*statCount
}

func NewStats() *Stats {
	return &Stats{Counts: make(map[string][]*statCount)}
}

func (s *Stats) Add(bucket, name string, n int64) {
	counts := s.Counts[bucket]
	count, found := s.findCount(name, counts)
	if !found {
		counts = append(counts, count)
	}
	count.Add(n)

	s.Counts[bucket] = counts
}

// Count returns the count of name in bucket.
func (s *Stats) Count(bucket, name string) int64 {
	if c, ok := s.findCount(name, s.Counts[bucket]); ok {
		return c.n
	}
	return 0
}

func (s *Stats) findCount(name string, counts []*statCount) (*statCount, bool) {
	for _, c := range counts {
		if c.label == name {
			return c, true
		}
	}
	return &statCount{label: name}, false
}

func (s *Stats) sortedBuckets() []string {
	buckets := make([]string, 0, len(s.Counts))
	for name := range s.Counts {
		buckets = append(buckets, name)
	}
	sort.Strings(buckets)
	return buckets
}

type statCount struct {
	label string
	n     int64
}

func (c *statCount) Add(n int64) {
	c.n += n
}

func (s *Stats) TextSummary(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(fmt.Sprintf("%d commits\n\n", s.Commits))

	for _, name := range s.sortedBuckets() {
		counts := s.Counts[name]
		sort.SliceStable(counts, func(i, j int) bool {
			if counts[i].n == counts[j].n {
				return counts[i].label < counts[j].label
			}
			return counts[i].n > counts[j].n
		})
		bw.WriteString(fmt.Sprintf("%s:\n", toTitle(name)))
		for _, count := range counts {
			label := count.label
			if label == "" {
				label = "n/a"
			}
			bw.WriteString(fmt.Sprintf("  %20s\t\t%d\n", label, count.n))
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// Stats counts commit types, scopes, release types and note titles across
// entries.
func (r *Runner) Stats(entries []*Entry) *Stats {
	stats := NewStats()
	stats.Commits = int64(len(entries))

	for _, e := range entries {
		ac := r.analyzer.Classify(e.Commit)
		stats.Add("commit_type", ac.CommitType, 1)
		stats.Add("scope", ac.Scope, 1)
		stats.Add("release_type", ac.Type.String(), 1)
		for _, note := range e.Commit.Notes {
			stats.Add("notes", note.Title, 1)
		}
	}
	return stats
}

var nonAlphaRE = regexp.MustCompile(`[^A-Za-z]`)

func toTitle(s string) string {
	s = nonAlphaRE.ReplaceAllLiteralString(s, " ")
	return cases.Title(language.English).String(s)
}
