package telemetry

import (
	"strings"
	"sync"
)

type Level int

const (
	LevelDebug Level = iota
	LevelWarning
	LevelBroken
	LevelCount
)

type Record struct {
	Level  Level
	ID     string
	Params []any
	Count  int64
}

// Recorder is an API that keeps every report in memory, it is safe for
// concurrent use.
type Recorder struct {
	mutex   sync.Mutex
	records []Record
}

func (r *Recorder) add(record Record) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.records = append(r.records, record)
}

func (r *Recorder) ReportBroken(id string, params ...any) {
	r.add(Record{Level: LevelBroken, ID: id, Params: params})
}

func (r *Recorder) ReportWarning(id string, params ...any) {
	r.add(Record{Level: LevelWarning, ID: id, Params: params})
}

func (r *Recorder) ReportDebug(msg string, params ...any) {
	r.add(Record{Level: LevelDebug, ID: msg, Params: params})
}

func (r *Recorder) ReportCount(id string, count int64) {
	r.add(Record{Level: LevelCount, ID: id, Count: count})
}

// Records returns a copy of everything reported so far.
func (r *Recorder) Records() []Record {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return append([]Record(nil), r.records...)
}

// Find returns the records at level whose id ends with suffix, so that
// scoped ids can be matched without spelling out the namespace.
func (r *Recorder) Find(level Level, suffix string) []Record {
	var out []Record
	for _, record := range r.Records() {
		if record.Level == level && strings.HasSuffix(record.ID, suffix) {
			out = append(out, record)
		}
	}
	return out
}
