package logparse

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/malawski/cloudworkflowsimulator/contracts"
	"github.com/malawski/cloudworkflowsimulator/errors"
	"github.com/malawski/cloudworkflowsimulator/logger"
)

// MatchLine returns the event described by one trace line, or nil if the
// line is not a recognized trace line.
func MatchLine(line string) (contracts.Event, error) {
	line = strings.TrimSpace(line)
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		f := make(fields, len(m))
		for i, name := range p.re.SubexpNames() {
			if name != "" {
				f[name] = m[i]
			}
		}
		e, err := p.build(f)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "%s line %q", p.name, line), contracts.ErrFormat)
		}
		return e, nil
	}
	return nil, nil
}

// Parse reads trace output and returns its events in line order.
// Unrecognized lines are skipped.
func Parse(r io.Reader) ([]contracts.Event, error) {
	var (
		events  []contracts.Event
		lineNo  int
		skipped int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lineNo++
		e, err := MatchLine(scanner.Text())
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		if e == nil {
			skipped++
			continue
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading trace")
	}

	logger.Logger.Debugw("trace parsed", "lines", lineNo, "events", len(events), "skipped", skipped)
	return events, nil
}

// ParseFile parses the trace stored at path.
func ParseFile(path string) ([]contracts.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening trace %s", path)
	}
	defer f.Close()
	return Parse(f)
}
