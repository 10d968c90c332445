package internal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/repomcp/repomcp/internal/observability"
	"github.com/repomcp/repomcp/internal/repodata"
)

type BatchEntry struct {
	Line   int               `json:"line"`
	Input  string            `json:"input"`
	Result repodata.RepoData `json:"result"`
}

/*
RepoBatch resolves a list of urls (one per line, blank lines and
# comments are skipped).
If requestHost is set, each line is a request url sent to this host,
else each line is a standalone url.
*/
type RepoBatch struct {
	resolver    *repodata.Resolver
	requestHost string
	feedback    observability.ResolveFeedback
}

func NewRepoBatch(resolver *repodata.Resolver, requestHost string) *RepoBatch {
	return &RepoBatch{
		resolver:    resolver,
		requestHost: requestHost,
	}
}

func (b *RepoBatch) SetResolveFeedback(feedback observability.ResolveFeedback) {
	b.feedback = feedback
}

func (b *RepoBatch) resolve(u string) repodata.RepoData {
	if b.requestHost != "" {
		return b.resolver.Resolve(b.requestHost, u)
	}
	return b.resolver.ResolveFromURL(u)
}

func readLines(r io.Reader) ([]string, error) {
	lines := []string{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// Resolve returns one entry per url. Urls without owner are reported as warnings
func (b *RepoBatch) Resolve(r io.Reader, logsCollector *observability.LogCollection) ([]BatchEntry, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("not able to read the urls: %v", err)
	}

	if b.feedback != nil {
		b.feedback.Init(len(lines))
	}

	entries := []BatchEntry{}
	unresolved := 0
	for i, line := range lines {
		if b.feedback != nil {
			b.feedback.LoadingAsset(1)
		}
		u := strings.TrimSpace(line)
		if u == "" || strings.HasPrefix(u, "#") {
			continue
		}

		data := b.resolve(u)
		entries = append(entries, BatchEntry{
			Line:   i + 1,
			Input:  u,
			Result: data,
		})

		if !data.HasOwner() {
			unresolved++
			logsCollector.AddWarn(fmt.Errorf("line %d: no repository found in %s", i+1, u))
			continue
		}
		logsCollector.AddDebug(map[string]any{"line": i + 1, "urlType": data.URLType}, "%s resolved to %s", u, data.FullName())
	}

	logsCollector.AddInfo(nil, "%d urls resolved, %d without repository", len(entries)-unresolved, unresolved)
	return entries, nil
}

// WriteBatchEntries writes one json object per line
func WriteBatchEntries(w io.Writer, entries []BatchEntry) error {
	encoder := json.NewEncoder(w)
	for _, entry := range entries {
		if err := encoder.Encode(entry); err != nil {
			return fmt.Errorf("not able to write the entry of line %d: %v", entry.Line, err)
		}
	}
	return nil
}
