// Package logparse turns raw simulator trace output into partial events.
package logparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/guregu/null/v6"

	"github.com/malawski/cloudworkflowsimulator/contracts"
)

const (
	num    = `\d+(?:\.\d+)?(?:[Ee][+-]?\d+)?`
	prefix = `^` + num + ` \((?P<at>` + num + `)\)\s+`
	ident  = `[\w.]+`
)

// fields is the set of named groups of one match.
type fields map[string]string

func (f fields) float(name string) (float64, error) {
	return strconv.ParseFloat(f[name], 64)
}

func (f fields) str(name string) null.String {
	return null.StringFrom(f[name])
}

type pattern struct {
	name  string
	re    *regexp.Regexp
	build func(f fields) (contracts.Event, error)
}

func taskPattern(name, re string, started bool, result string) pattern {
	return pattern{
		name: name,
		re:   regexp.MustCompile(re),
		build: func(f fields) (contracts.Event, error) {
			at, err := f.float("at")
			if err != nil {
				return nil, err
			}
			e := contracts.TaskEvent{
				ID:         contracts.JobID(f["id"]),
				WorkflowID: f.str("workflow"),
				TaskID:     f.str("task_id"),
				VMID:       f.str("vm"),
			}
			if started {
				e.Started = null.FloatFrom(at)
			} else {
				e.Finished = null.FloatFrom(at)
				e.Result = null.StringFrom(result)
			}
			return e, nil
		},
	}
}

func transferStartPattern(name, kind string, dir contracts.Direction) pattern {
	return pattern{
		name: name,
		re: regexp.MustCompile(prefix + `Global ` + kind + ` transfer (?P<id>\d+) started: (?P<file_id>` + ident +
			`), size: \d+, vm: (?P<vm>\w+), job_id: (?P<job_id>\d+)`),
		build: func(f fields) (contracts.Event, error) {
			at, err := f.float("at")
			if err != nil {
				return nil, err
			}
			return contracts.TransferEvent{
				ID:        contracts.TransferID(f["id"]),
				VMID:      f.str("vm"),
				Started:   null.FloatFrom(at),
				Direction: null.StringFrom(dir.String()),
				JobID:     f.str("job_id"),
				FileID:    f.str("file_id"),
			}, nil
		},
	}
}

// patterns are tried in order; the first match wins.
var patterns = []pattern{
	taskPattern("job started",
		prefix+`Starting computational part of job (?P<id>\d+) \(task_id = (?P<task_id>\w+), workflow = (?P<workflow>\w+)\) on VM (?P<vm>\w+)`,
		true, ""),
	taskPattern("job finished",
		prefix+`Computational part of job (?P<id>\d+) \(task_id = (?P<task_id>\w+), workflow = (?P<workflow>\w+), retry = false\) on VM (?P<vm>\w+) finished`,
		false, contracts.ResultOK.String()),
	taskPattern("retried job finished",
		prefix+`Computational part of job (?P<id>\d+) \(task_id = (?P<task_id>\w+), workflow = (?P<workflow>\w+), retry = true\) on VM (?P<vm>\w+) finished`,
		false, contracts.ResultRetryOK.String()),
	taskPattern("job failed",
		prefix+`Job (?P<id>\d+) \(task_id = (?P<task_id>\w+), workflow_id = (?P<workflow>\w+), retry = false\) failed on VM (?P<vm>\w+)\. Resubmitting`,
		false, contracts.ResultFailed.String()),
	taskPattern("retried job failed",
		prefix+`Job (?P<id>\d+) \(task_id = (?P<task_id>\w+), workflow_id = (?P<workflow>\w+), retry = true\) failed on VM (?P<vm>\w+)\. Resubmitting`,
		false, contracts.ResultRetryFailed.String()),

	transferStartPattern("upload started", "write", contracts.Upload),
	transferStartPattern("download started", "read", contracts.Download),
	{
		name: "transfer finished",
		re: regexp.MustCompile(prefix + `Global (?:read|write) transfer (?P<id>\d+) finished: ` + ident +
			`, bytes transferred: \d+, duration: ` + num),
		build: func(f fields) (contracts.Event, error) {
			at, err := f.float("at")
			if err != nil {
				return nil, err
			}
			return contracts.TransferEvent{ID: contracts.TransferID(f["id"]), Finished: null.FloatFrom(at)}, nil
		},
	},

	{
		name: "vm started",
		re: regexp.MustCompile(prefix + `VM (?P<id>` + ident + `) started` +
			`(?:, cores = (?P<cores>\d+)(?:, price = (?P<price>` + num + `))?)?`),
		build: func(f fields) (contracts.Event, error) {
			at, err := f.float("at")
			if err != nil {
				return nil, err
			}
			e := contracts.VMEvent{ID: contracts.VMID(f["id"]), Started: null.FloatFrom(at)}
			if f["cores"] != "" {
				cores, err := strconv.ParseInt(f["cores"], 10, 64)
				if err != nil {
					return nil, err
				}
				e.Cores = null.IntFrom(cores)
			}
			if f["price"] != "" {
				price, err := f.float("price")
				if err != nil {
					return nil, err
				}
				e.PriceForBillingUnit = null.FloatFrom(price)
			}
			return e, nil
		},
	},
	{
		name: "vm terminated",
		re:   regexp.MustCompile(prefix + `VM (?P<id>` + ident + `) terminated`),
		build: func(f fields) (contracts.Event, error) {
			at, err := f.float("at")
			if err != nil {
				return nil, err
			}
			return contracts.VMEvent{ID: contracts.VMID(f["id"]), Finished: null.FloatFrom(at)}, nil
		},
	},

	{
		name: "workflow",
		re:   regexp.MustCompile(`^Workflow (?P<id>\w+), priority = (?P<priority>\d+), filename = (?P<filename>.*)`),
		build: func(f fields) (contracts.Event, error) {
			priority, err := strconv.Atoi(f["priority"])
			if err != nil {
				return nil, err
			}
			return contracts.WorkflowEvent{Workflow: contracts.Workflow{
				ID:       contracts.WorkflowID(f["id"]),
				Priority: priority,
				Filename: strings.TrimSpace(f["filename"]),
			}}, nil
		},
	},
	{
		name: "budget",
		re:   regexp.MustCompile(`^budget = (?P<value>` + num + `)`),
		build: func(f fields) (contracts.Event, error) {
			v, err := f.float("value")
			if err != nil {
				return nil, err
			}
			return contracts.SettingsEvent{ID: 0, Budget: null.FloatFrom(v)}, nil
		},
	},
	{
		name: "deadline",
		re:   regexp.MustCompile(`^deadline = (?P<value>` + num + `)`),
		build: func(f fields) (contracts.Event, error) {
			v, err := f.float("value")
			if err != nil {
				return nil, err
			}
			return contracts.SettingsEvent{ID: 0, Deadline: null.FloatFrom(v)}, nil
		},
	},
	{
		name: "storage state",
		re: regexp.MustCompile(prefix + `GS state has changed: readers = (?P<readers>\d+), writers = (?P<writers>\d+), ` +
			`read_speed = (?P<read_speed>` + num + `), write_speed = (?P<write_speed>` + num + `)`),
		build: func(f fields) (contracts.Event, error) {
			at, err := f.float("at")
			if err != nil {
				return nil, err
			}
			readers, err := strconv.Atoi(f["readers"])
			if err != nil {
				return nil, err
			}
			writers, err := strconv.Atoi(f["writers"])
			if err != nil {
				return nil, err
			}
			readSpeed, err := f.float("read_speed")
			if err != nil {
				return nil, err
			}
			writeSpeed, err := f.float("write_speed")
			if err != nil {
				return nil, err
			}
			return contracts.StorageStateEvent{State: contracts.StorageState{
				Time: at, Readers: readers, Writers: writers, ReadSpeed: readSpeed, WriteSpeed: writeSpeed,
			}}, nil
		},
	},
}
