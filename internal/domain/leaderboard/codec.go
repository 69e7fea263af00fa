package leaderboard

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
)

const priorGamesPrefix = "games"

// PriorGamesKey returns the document key holding a player's games in year.
func PriorGamesKey(year int) string {
	return priorGamesPrefix + strconv.Itoa(year)
}

func parsePriorGamesKey(key string) (int, bool) {
	if !strings.HasPrefix(key, priorGamesPrefix) || len(key) != len(priorGamesPrefix)+4 {
		return 0, false
	}
	year, err := strconv.Atoi(key[len(priorGamesPrefix):])
	if err != nil {
		return 0, false
	}
	return year, true
}

func (e AttendanceEntry) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	w.field("category", e.Category)
	w.field("sno", e.SNo)
	w.field("name", e.Name)
	w.field("midweekGames", e.MidweekGames)
	w.field("weekendGames", e.WeekendGames)
	w.field("totalGames", e.TotalGames)
	w.field("midweekPercentage", e.MidweekPercentage)
	w.field("weekendPercentage", e.WeekendPercentage)
	w.field("totalPercentage", e.TotalPercentage)

	years := make([]int, 0, len(e.PriorGames))
	for year := range e.PriorGames {
		years = append(years, year)
	}
	sort.Ints(years)
	for _, year := range years {
		w.field(PriorGamesKey(year), e.PriorGames[year])
	}

	w.field("difference", e.Difference)
	w.field("notes", e.Notes)
	w.extras(e.Extra)
	return w.finish()
}

func (e *AttendanceEntry) UnmarshalJSON(data []byte) error {
	r, err := readObject(data)
	if err != nil {
		return fmt.Errorf("decode attendance entry: %w", err)
	}

	var out AttendanceEntry
	r.take("category", &out.Category)
	r.take("sno", &out.SNo)
	r.take("name", &out.Name)
	r.take("midweekGames", &out.MidweekGames)
	r.take("weekendGames", &out.WeekendGames)
	r.take("totalGames", &out.TotalGames)
	r.take("midweekPercentage", &out.MidweekPercentage)
	r.take("weekendPercentage", &out.WeekendPercentage)
	r.take("totalPercentage", &out.TotalPercentage)
	r.take("difference", &out.Difference)
	r.take("notes", &out.Notes)

	for _, key := range r.keys() {
		year, ok := parsePriorGamesKey(key)
		if !ok {
			continue
		}
		var games *int
		r.take(key, &games)
		if out.PriorGames == nil {
			out.PriorGames = make(map[int]*int)
		}
		out.PriorGames[year] = games
	}
	if r.err != nil {
		return fmt.Errorf("decode attendance entry: %w", r.err)
	}

	out.Extra = r.rest()
	*e = out
	return nil
}

func (e PerformanceEntry) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	w.field("id", e.ID)
	w.field("name", e.Name)
	w.field("position", e.Position)
	w.field("matches", e.Matches)
	w.field("wins", e.Wins)
	w.field("losses", e.Losses)
	w.field("draws", e.Draws)
	w.field("cleanSheets", e.CleanSheets)
	w.field("goals", e.Goals)
	w.field("hatTricks", e.HatTricks)
	w.field("ownGoals", e.OwnGoals)
	w.field("weekendStats", e.WeekendStats)
	w.field("weekdayStats", e.WeekdayStats)
	w.extras(e.Extra)
	return w.finish()
}

func (e *PerformanceEntry) UnmarshalJSON(data []byte) error {
	r, err := readObject(data)
	if err != nil {
		return fmt.Errorf("decode performance entry: %w", err)
	}

	var out PerformanceEntry
	r.take("id", &out.ID)
	r.take("name", &out.Name)
	r.takePosition(&out.Position)
	r.take("matches", &out.Matches)
	r.take("wins", &out.Wins)
	r.take("losses", &out.Losses)
	r.take("draws", &out.Draws)
	r.take("cleanSheets", &out.CleanSheets)
	r.take("goals", &out.Goals)
	r.take("hatTricks", &out.HatTricks)
	r.take("ownGoals", &out.OwnGoals)
	r.take("weekendStats", &out.WeekendStats)
	r.take("weekdayStats", &out.WeekdayStats)
	if r.err != nil {
		return fmt.Errorf("decode performance entry: %w", r.err)
	}

	out.Extra = r.rest()
	*e = out
	return nil
}

type objectWriter struct {
	buf   *bytebufferpool.ByteBuffer
	first bool
	err   error
}

func newObjectWriter() *objectWriter {
	buf := bytebufferpool.Get()
	_ = buf.WriteByte('{')
	return &objectWriter{buf: buf, first: true}
}

func (w *objectWriter) field(key string, value any) {
	if w.err != nil {
		return
	}
	raw, err := sonic.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("encode %s: %w", key, err)
		return
	}
	w.raw(key, raw)
}

func (w *objectWriter) raw(key string, raw []byte) {
	if w.err != nil {
		return
	}
	quoted, err := sonic.Marshal(key)
	if err != nil {
		w.err = fmt.Errorf("encode key %s: %w", key, err)
		return
	}
	if !w.first {
		_ = w.buf.WriteByte(',')
	}
	w.first = false
	_, _ = w.buf.Write(quoted)
	_ = w.buf.WriteByte(':')
	_, _ = w.buf.Write(raw)
}

func (w *objectWriter) extras(extra map[string]json.RawMessage) {
	keys := make([]string, 0, len(extra))
	for key := range extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		w.raw(key, extra[key])
	}
}

func (w *objectWriter) finish() ([]byte, error) {
	defer bytebufferpool.Put(w.buf)
	if w.err != nil {
		return nil, w.err
	}
	_ = w.buf.WriteByte('}')
	return append([]byte(nil), w.buf.B...), nil
}

type objectReader struct {
	fields map[string]json.RawMessage
	err    error
}

func readObject(data []byte) (*objectReader, error) {
	fields := make(map[string]json.RawMessage)
	if err := sonic.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return &objectReader{fields: fields}, nil
}

func (r *objectReader) take(key string, dst any) {
	raw, ok := r.fields[key]
	if !ok {
		return
	}
	delete(r.fields, key)
	if r.err != nil {
		return
	}
	if err := sonic.Unmarshal(raw, dst); err != nil {
		r.err = fmt.Errorf("field %s: %w", key, err)
	}
}

// takePosition accepts a list of codes or a single code.
func (r *objectReader) takePosition(dst *[]string) {
	raw, ok := r.fields["position"]
	if !ok {
		return
	}
	delete(r.fields, "position")
	var codes []string
	if err := sonic.Unmarshal(raw, &codes); err == nil {
		*dst = codes
		return
	}
	var single string
	if err := sonic.Unmarshal(raw, &single); err == nil && single != "" {
		*dst = []string{single}
	}
}

func (r *objectReader) keys() []string {
	out := make([]string, 0, len(r.fields))
	for key := range r.fields {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func (r *objectReader) rest() map[string]json.RawMessage {
	if len(r.fields) == 0 {
		return nil
	}
	return r.fields
}
