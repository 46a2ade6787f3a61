package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// LegacyKind is the layout of an old leaderboard CSV.
type LegacyKind int

const (
	// LegacySolo has columns timestamp,name,score,speed,level,lines.
	LegacySolo LegacyKind = iota
	// LegacyMatch has columns timestamp,name,score,is_cpu.
	LegacyMatch
)

// LegacyImport is what ReadLegacyCSV recovered from a file.
type LegacyImport struct {
	Kind    LegacyKind
	Solo    []SoloScore
	Match   []MatchEntry
	Skipped int // Rows too short to carry a name and score
}

// ReadLegacyCSV parses a leaderboard CSV. The kind is detected from the
// header. Malformed numbers become 0 and short rows are skipped, so one bad
// line never aborts the import.
func ReadLegacyCSV(r io.Reader) (*LegacyImport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &LegacyImport{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read csv header: %w", err)
	}
	names := lo.Map(header, func(h string, _ int) string { return strings.ToLower(strings.TrimSpace(h)) })
	if !lo.Contains(names, "name") {
		return nil, fmt.Errorf("storage: csv has no name column")
	}
	index := func(name string) int { return lo.IndexOf(names, name) }

	out := &LegacyImport{Kind: LegacySolo}
	if lo.Contains(names, "is_cpu") {
		out.Kind = LegacyMatch
	}

	iTime, iName, iScore := index("timestamp"), index("name"), index("score")
	iSpeed, iLevel, iLines, iCPU := index("speed"), index("level"), index("lines"), index("is_cpu")

	field := func(rec []string, i int) string {
		if i < 0 || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			out.Skipped++
			continue
		}
		if err != nil {
			return out, fmt.Errorf("storage: cannot read csv: %w", err)
		}
		if len(rec) <= max(iName, iScore) {
			out.Skipped++
			continue
		}

		created, _ := time.Parse(timeLayout, field(rec, iTime))
		name := SafeName(field(rec, iName))
		score := atoiOrZero(field(rec, iScore))

		switch out.Kind {
		case LegacyMatch:
			out.Match = append(out.Match, MatchEntry{
				Name:      name,
				Score:     score,
				IsCPU:     parseBool(field(rec, iCPU)),
				CreatedAt: created,
			})
		default:
			out.Solo = append(out.Solo, SoloScore{
				Name:      name,
				Score:     score,
				Speed:     atoiOrZero(field(rec, iSpeed)),
				Level:     atoiOrZero(field(rec, iLevel)),
				Lines:     atoiOrZero(field(rec, iLines)),
				CreatedAt: created,
			})
		}
	}
	return out, nil
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

// ImportLegacyCSV reads path and stores every recovered row. Match rows
// are grouped by timestamp, one match per distinct time. Returns the
// number of rows stored and skipped.
func (s *Store) ImportLegacyCSV(path string) (imported, skipped int, err error) {
	path, err = expandHome(path)
	if err != nil {
		return 0, 0, err
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("storage: cannot open %s: %w", path, err)
	}
	defer f.Close()

	li, err := ReadLegacyCSV(f)
	if err != nil {
		return 0, 0, err
	}

	for _, e := range li.Solo {
		if _, err := s.SaveSolo(e); err != nil {
			return imported, li.Skipped, err
		}
		imported++
	}

	groups := lo.GroupBy(li.Match, func(e MatchEntry) time.Time { return e.CreatedAt })
	times := lo.Keys(groups)
	slices.SortFunc(times, time.Time.Compare)
	for _, at := range times {
		entries := groups[at]
		cpu := lo.SomeBy(entries, func(e MatchEntry) bool { return e.IsCPU })
		top := lo.MaxBy(entries, func(a, b MatchEntry) bool { return a.Score > b.Score }).Score
		id := "legacy-" + timestamp(at)
		for i := range entries {
			entries[i].MatchID = id
			entries[i].CPUMatch = cpu
			entries[i].Winner = entries[i].Score == top
		}
		if err := s.SaveMatch(entries); err != nil {
			return imported, li.Skipped, err
		}
		imported += len(entries)
	}
	return imported, li.Skipped, nil
}
