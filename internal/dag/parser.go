package dag

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/malawski/cloudworkflowsimulator/contracts"
	"github.com/malawski/cloudworkflowsimulator/errors"
)

// Parse reads a DAG in the simulator's text format:
//
//	FILE <name> <size>
//	TASK <id> <type> <makespan>
//	EDGE <parent> <child>
//	INPUTS <task> <file>...
//	OUTPUTS <task> <file>...
//
// Keywords are case-insensitive; blank lines and lines starting with # are
// skipped. Any malformed record is fatal.
func Parse(r io.Reader, workflow contracts.WorkflowID) (*contracts.DAG, error) {
	b := NewBuilder(workflow)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := parseRecord(b, strings.Fields(line)); err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading DAG")
	}

	return b.Build()
}

// ParseFile parses the DAG stored at path.
func ParseFile(path string, workflow contracts.WorkflowID) (*contracts.DAG, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening DAG %s", path)
	}
	defer f.Close()

	d, err := Parse(f, workflow)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing DAG %s", path)
	}
	return d, nil
}

func parseRecord(b *Builder, rec []string) error {
	switch strings.ToUpper(rec[0]) {
	case "FILE":
		if len(rec) != 3 {
			return invalidRecord(rec)
		}
		size, err := strconv.ParseInt(rec[2], 10, 64)
		if err != nil {
			return errors.Mark(errors.Wrapf(err, "FILE %s size", rec[1]), contracts.ErrDAGInvalid)
		}
		b.AddFile(contracts.FileID(rec[1]), size)
		return nil

	case "TASK":
		if len(rec) != 4 {
			return invalidRecord(rec)
		}
		makespan, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return errors.Mark(errors.Wrapf(err, "TASK %s makespan", rec[1]), contracts.ErrDAGInvalid)
		}
		return b.AddTask(contracts.TaskID(rec[1]), makespan, rec[2])

	case "EDGE":
		if len(rec) != 3 {
			return invalidRecord(rec)
		}
		return b.AddEdge(contracts.TaskID(rec[1]), contracts.TaskID(rec[2]))

	case "INPUTS", "OUTPUTS":
		if len(rec) < 3 {
			return invalidRecord(rec)
		}
		add := b.AddInputFile
		if strings.EqualFold(rec[0], "OUTPUTS") {
			add = b.AddOutputFile
		}
		for _, file := range rec[2:] {
			if err := add(contracts.TaskID(rec[1]), contracts.FileID(file)); err != nil {
				return err
			}
		}
		return nil

	default:
		return invalidRecord(rec)
	}
}

func invalidRecord(rec []string) error {
	return errors.Wrapf(contracts.ErrDAGInvalid, "invalid %s record %q", strings.ToUpper(rec[0]), strings.Join(rec, " "))
}

// LoadForWorkflows parses the DAG of every workflow. Relative filenames
// are resolved against baseDir. A file shared by several workflows is
// parsed once.
func LoadForWorkflows(baseDir string, workflows []contracts.Workflow) (map[contracts.WorkflowID]*contracts.DAG, error) {
	parsed := make(map[string]*contracts.DAG)
	dags := make(map[contracts.WorkflowID]*contracts.DAG, len(workflows))

	for _, w := range workflows {
		path := w.Filename
		if !filepath.IsAbs(path) && baseDir != "" {
			path = filepath.Join(baseDir, path)
		}

		d, ok := parsed[path]
		if !ok {
			var err error
			d, err = ParseFile(path, w.ID)
			if err != nil {
				return nil, errors.Wrapf(err, "workflow %s", w.ID)
			}
			parsed[path] = d
		}
		dags[w.ID] = d.WithWorkflow(w.ID)
	}
	return dags, nil
}
